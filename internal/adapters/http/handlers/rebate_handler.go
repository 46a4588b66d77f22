package handlers

import (
	"errors"

	"hmc-messhub/internal/adapters/http/middleware"
	"hmc-messhub/internal/adapters/persistence/models"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/core/services"
	"hmc-messhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RebateHandler handles mess rebate endpoints
type RebateHandler struct {
	rebateService *services.RebateService
}

// NewRebateHandler creates a new rebate handler
func NewRebateHandler(rebateService *services.RebateService) *RebateHandler {
	return &RebateHandler{rebateService: rebateService}
}

// File files a rebate for the caller
// @Summary File a rebate
// @Description File a mess rebate for an inclusive date range (YYYY-MM-DD)
// @Tags Rebates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.FileRebateInput true "Rebate data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /rebates [post]
func (h *RebateHandler) File(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.FileRebateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	rebate, err := h.rebateService.File(c.Context(), actor, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrInvalidDateRange):
			return response.BadRequest(c, "from_date must not be after to_date")
		case errors.Is(err, services.ErrNoHostelAssigned):
			return response.Forbidden(c, "No hostel assigned to your account")
		default:
			return response.InternalServerError(c, "Failed to file rebate")
		}
	}

	return response.Created(c, "Rebate filed successfully", fiber.Map{
		"rebate": rebate.ToResponse(),
	})
}

// ListMine returns the caller's own rebates
// @Summary List own rebates
// @Tags Rebates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /rebates/my [get]
func (h *RebateHandler) ListMine(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	rebates, err := h.rebateService.ListForUser(c.Context(), actor.UserID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list rebates")
	}

	return response.Success(c, "Rebates retrieved successfully", fiber.Map{
		"rebates": toRebateResponses(rebates),
	})
}

// List returns rebates visible to staff
// @Summary List rebates
// @Description Admin sees all hostels; mhmc sees their own hostel
// @Tags Rebates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /rebates [get]
func (h *RebateHandler) List(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	rebates, err := h.rebateService.ListForHostelOrAll(c.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "You don't have permission to list rebates")
		case errors.Is(err, services.ErrNoHostelAssigned):
			return response.Forbidden(c, "No hostel assigned to your account")
		default:
			return response.InternalServerError(c, "Failed to list rebates")
		}
	}

	return response.Success(c, "Rebates retrieved successfully", fiber.Map{
		"rebates": toRebateResponses(rebates),
	})
}

// UpdateStatus applies a review decision
// @Summary Approve or reject a rebate
// @Tags Rebates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rebate ID"
// @Param body body services.UpdateStatusInput true "Review decision"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rebates/{id}/status [patch]
func (h *RebateHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid rebate ID")
	}

	var input services.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	rebate, err := h.rebateService.UpdateStatus(c.Context(), actor, id, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "You don't have permission to review rebates")
		case errors.Is(err, services.ErrHostelMismatch):
			return response.Forbidden(c, "Rebate belongs to a different hostel")
		case errors.Is(err, services.ErrRebateNotFound):
			return response.NotFound(c, "Rebate not found")
		default:
			return response.InternalServerError(c, "Failed to update rebate status")
		}
	}

	return response.Success(c, "Rebate status updated", fiber.Map{
		"rebate": rebate.ToResponse(),
	})
}

// Remove deletes a rebate
// @Summary Delete a rebate
// @Tags Rebates
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rebate ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rebates/{id} [delete]
func (h *RebateHandler) Remove(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid rebate ID")
	}

	if err := h.rebateService.Remove(c.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "You don't have permission to delete rebates")
		case errors.Is(err, services.ErrHostelMismatch):
			return response.Forbidden(c, "Rebate belongs to a different hostel")
		case errors.Is(err, services.ErrRebateNotFound):
			return response.NotFound(c, "Rebate not found")
		default:
			return response.InternalServerError(c, "Failed to delete rebate")
		}
	}

	return response.Success(c, "Rebate deleted successfully", nil)
}

func toRebateResponses(rebates []*models.Rebate) []*models.RebateResponse {
	out := make([]*models.RebateResponse, len(rebates))
	for i, r := range rebates {
		out[i] = r.ToResponse()
	}
	return out
}
