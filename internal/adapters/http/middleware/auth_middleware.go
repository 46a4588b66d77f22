package middleware

import (
	"strings"

	"hmc-messhub/internal/config"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/pkg/jwt"
	"hmc-messhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware. On success it
// stores a domain.Actor under Locals("actor"); handlers get their
// caller identity only from there.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		role := domain.Role(claims.Role)
		if !role.Valid() {
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Set actor in context
		c.Locals("actor", domain.Actor{
			UserID:   claims.UserID,
			Role:     role,
			HostelID: claims.HostelID,
		})

		return c.Next()
	}
}

// GetActor returns the authenticated actor set by AuthMiddleware
func GetActor(c *fiber.Ctx) (domain.Actor, bool) {
	actor, ok := c.Locals("actor").(domain.Actor)
	return actor, ok
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := GetActor(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if actor.Role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// MHMCOrAdmin middleware allows mhmc or admin roles
func MHMCOrAdmin() fiber.Handler {
	return RoleMiddleware(domain.RoleMHMC, domain.RoleAdmin)
}

// StaffOnly middleware allows munimji, mhmc or admin roles
func StaffOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleMunimji, domain.RoleMHMC, domain.RoleAdmin)
}
