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

// ExtrasHandler handles extra-item billing endpoints
type ExtrasHandler struct {
	extrasService *services.ExtrasService
}

// NewExtrasHandler creates a new extras handler
func NewExtrasHandler(extrasService *services.ExtrasService) *ExtrasHandler {
	return &ExtrasHandler{extrasService: extrasService}
}

// Bill records extra purchases against a student
// @Summary Bill extra items
// @Description Record one transaction of extra items against a student's account
// @Tags Extras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BillItemsInput true "Items to bill"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /extras/bill [post]
func (h *ExtrasHandler) Bill(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.BillItemsInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.extrasService.BillItems(c.Context(), actor, &input); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "You don't have permission to bill extras")
		case errors.Is(err, services.ErrHostelMismatch):
			return response.Forbidden(c, "Student belongs to a different hostel")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Student not found")
		default:
			return response.InternalServerError(c, "Failed to bill extras")
		}
	}

	return response.Created(c, "Items billed successfully", nil)
}

// ListMine returns the caller's own extra purchases
// @Summary List own extra purchases
// @Tags Extras
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /extras/my [get]
func (h *ExtrasHandler) ListMine(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	purchases, err := h.extrasService.ListForUser(c.Context(), actor.UserID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list purchases")
	}

	total, err := h.extrasService.TotalAmount(c.Context(), actor.UserID, nil)
	if err != nil {
		return response.InternalServerError(c, "Failed to total purchases")
	}

	return response.Success(c, "Purchases retrieved successfully", fiber.Map{
		"purchases": purchases,
		"total":     total,
	})
}

// Recent returns recent billing transactions grouped per visit
// @Summary List recent billing transactions
// @Description Consecutive items billed in one call appear as a single transaction
// @Tags Extras
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max raw rows to scan"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /extras/recent [get]
func (h *ExtrasHandler) Recent(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	transactions, err := h.extrasService.RecentGrouped(c.Context(), actor, limit)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "You don't have permission to view billing activity")
		case errors.Is(err, services.ErrNoHostelAssigned):
			return response.Forbidden(c, "No hostel assigned to your account")
		default:
			return response.InternalServerError(c, "Failed to list transactions")
		}
	}

	return response.Success(c, "Transactions retrieved successfully", fiber.Map{
		"transactions": transactions,
	})
}
