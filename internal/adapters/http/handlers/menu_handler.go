package handlers

import (
	"errors"
	"strconv"

	"hmc-messhub/internal/adapters/http/middleware"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/core/services"
	"hmc-messhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MenuHandler handles weekly mess menu endpoints
type MenuHandler struct {
	menuService *services.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// SetSlot writes one hostel/day/meal menu slot
// @Summary Set a menu slot
// @Tags Menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SetMenuInput true "Menu slot"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /menu [put]
func (h *MenuHandler) SetSlot(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.SetMenuInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	menu, err := h.menuService.SetSlot(c.Context(), actor, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrInvalidMealSlot):
			return response.BadRequest(c, "Unknown day or meal slot")
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "You don't have permission to edit menus")
		case errors.Is(err, services.ErrHostelMismatch):
			return response.Forbidden(c, "Menu belongs to a different hostel")
		default:
			return response.InternalServerError(c, "Failed to update menu")
		}
	}

	return response.Success(c, "Menu updated successfully", fiber.Map{
		"menu": menu,
	})
}

// Week returns the weekly menu of one hostel
// @Summary Get weekly menu
// @Tags Menu
// @Produce json
// @Security BearerAuth
// @Param hostel_id path int true "Hostel ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /menu/{hostel_id} [get]
func (h *MenuHandler) Week(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	hostelID, err := parseIDParam(c, "hostel_id")
	if err != nil {
		return response.BadRequest(c, "Invalid hostel ID")
	}

	menus, err := h.menuService.Week(c.Context(), actor, hostelID)
	if err != nil {
		if errors.Is(err, services.ErrHostelMismatch) {
			return response.Forbidden(c, "Menu belongs to a different hostel")
		}
		return response.InternalServerError(c, "Failed to get menu")
	}

	return response.Success(c, "Menu retrieved successfully", fiber.Map{
		"menu": menus,
	})
}

// Slot returns one hostel/day/meal menu slot
// @Summary Get a menu slot
// @Tags Menu
// @Produce json
// @Security BearerAuth
// @Param hostel_id path int true "Hostel ID"
// @Param day query int true "Day (0=Sunday .. 6=Saturday)"
// @Param meal query string true "Meal (breakfast/lunch/snacks/dinner)"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /menu/{hostel_id}/slot [get]
func (h *MenuHandler) Slot(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	hostelID, err := parseIDParam(c, "hostel_id")
	if err != nil {
		return response.BadRequest(c, "Invalid hostel ID")
	}

	day, err := strconv.Atoi(c.Query("day", "-1"))
	if err != nil {
		return response.BadRequest(c, "Invalid day")
	}
	meal := c.Query("meal")

	menu, err := h.menuService.Slot(c.Context(), actor, hostelID, day, meal)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidMealSlot):
			return response.BadRequest(c, "Unknown day or meal slot")
		case errors.Is(err, services.ErrHostelMismatch):
			return response.Forbidden(c, "Menu belongs to a different hostel")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "No menu set for this slot")
		default:
			return response.InternalServerError(c, "Failed to get menu")
		}
	}

	return response.Success(c, "Menu retrieved successfully", fiber.Map{
		"menu": menu,
	})
}
