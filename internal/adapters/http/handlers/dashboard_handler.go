package handlers

import (
	"errors"

	"hmc-messhub/internal/adapters/http/middleware"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/core/services"
	"hmc-messhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get returns the dashboard matching the caller's role
// @Summary Get dashboard
// @Description Admin gets system-wide stats, mhmc/munimji their hostel, students their own bill and activity
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var (
		data interface{}
		err  error
	)
	switch actor.Role {
	case domain.RoleAdmin:
		data, err = h.dashboardService.GetAdminDashboard(c.Context())
	case domain.RoleMHMC, domain.RoleMunimji:
		data, err = h.dashboardService.GetStaffDashboard(c.Context(), actor)
	default:
		data, err = h.dashboardService.GetStudentDashboard(c.Context(), actor)
	}
	if err != nil {
		if errors.Is(err, services.ErrNoHostelAssigned) {
			return response.Forbidden(c, "No hostel assigned to your account")
		}
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", fiber.Map{
		"dashboard": data,
	})
}
