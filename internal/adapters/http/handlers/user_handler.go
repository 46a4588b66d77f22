package handlers

import (
	"errors"
	"strconv"
	"strings"

	"hmc-messhub/internal/adapters/http/middleware"
	"hmc-messhub/internal/adapters/persistence/models"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/core/services"
	"hmc-messhub/internal/pkg/pagination"
	"hmc-messhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user and profile endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest represents profile update request body
type UpdateProfileRequest struct {
	FullName   string `json:"full_name"`
	RollNumber string `json:"roll_number"`
	RoomNumber string `json:"room_number"`
	Phone      string `json:"phone"`
}

// SetRoleRequest represents role change request body
type SetRoleRequest struct {
	Role string `json:"role"`
}

// SetBlockedRequest represents block/unblock request body
type SetBlockedRequest struct {
	Blocked bool `json:"blocked"`
}

// GetProfile returns the actor's own profile
// @Summary Get own profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.userService.GetProfile(c.Context(), actor.UserID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "Profile retrieved successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// UpdateProfile applies self-service profile edits
// @Summary Update own profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateProfileInput{
		FullName:   strings.TrimSpace(req.FullName),
		RollNumber: strings.TrimSpace(req.RollNumber),
		RoomNumber: strings.TrimSpace(req.RoomNumber),
		Phone:      strings.TrimSpace(req.Phone),
	}

	profile, err := h.userService.UpdateProfile(c.Context(), actor.UserID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to update profile")
		}
	}

	return response.Success(c, "Profile updated successfully", fiber.Map{
		"profile": profile,
	})
}

// ListUsers returns users visible to the actor
// @Summary List users
// @Description Admin sees all users; mhmc and munimji see their own hostel
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	users, total, err := h.userService.ListUsers(c.Context(), actor, params.Offset, params.Limit)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "You don't have permission to list users")
		case errors.Is(err, services.ErrNoHostelAssigned):
			return response.Forbidden(c, "No hostel assigned to your account")
		default:
			return response.InternalServerError(c, "Failed to list users")
		}
	}

	out := make([]*models.UserResponse, len(users))
	for i, u := range users {
		out[i] = u.ToResponse()
	}

	return response.Success(c, "Users retrieved successfully", fiber.Map{
		"users":      out,
		"pagination": pagination.GetMeta(params, total),
	})
}

// SetRole changes a user's role
// @Summary Set user role
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body SetRoleRequest true "New role"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id}/role [patch]
func (h *UserHandler) SetRole(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	userID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	profile, err := h.userService.SetRole(c.Context(), actor, userID, strings.TrimSpace(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "Only admin may change roles")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to change role")
		}
	}

	return response.Success(c, "Role updated successfully", fiber.Map{
		"profile": profile,
	})
}

// SetBlocked blocks or unblocks a user
// @Summary Block or unblock a user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body SetBlockedRequest true "Blocked flag"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id}/block [patch]
func (h *UserHandler) SetBlocked(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	userID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req SetBlockedRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	profile, err := h.userService.SetBlocked(c.Context(), actor, userID, req.Blocked)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "You don't have permission to block users")
		case errors.Is(err, services.ErrHostelMismatch):
			return response.Forbidden(c, "User belongs to a different hostel")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to update block status")
		}
	}

	return response.Success(c, "Block status updated successfully", fiber.Map{
		"profile": profile,
	})
}

// DeleteUser removes a user account
// @Summary Delete a user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	userID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.DeleteUser(c.Context(), actor, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "Only admin may delete users")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to delete user")
		}
	}

	return response.Success(c, "User deleted successfully", nil)
}

// parseIDParam reads a positive uint path parameter
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
