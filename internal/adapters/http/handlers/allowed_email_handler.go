package handlers

import (
	"errors"
	"strconv"

	"hmc-messhub/internal/adapters/http/middleware"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/core/services"
	"hmc-messhub/internal/pkg/pagination"
	"hmc-messhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AllowedEmailHandler handles signup allowlist endpoints
type AllowedEmailHandler struct {
	allowedEmailService *services.AllowedEmailService
}

// NewAllowedEmailHandler creates a new allowed email handler
func NewAllowedEmailHandler(allowedEmailService *services.AllowedEmailService) *AllowedEmailHandler {
	return &AllowedEmailHandler{allowedEmailService: allowedEmailService}
}

// Add puts one email on the allowlist
// @Summary Add an allowed email
// @Tags Allowlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AddInput true "Allowlist entry"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /allowed-emails [post]
func (h *AllowedEmailHandler) Add(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.AddInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	entry, err := h.allowedEmailService.Add(c.Context(), actor, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "Only admin may manage the allowlist")
		case errors.Is(err, services.ErrHostelNotFound):
			return response.NotFound(c, "Hostel not found")
		case errors.Is(err, services.ErrAllowedEmailExists):
			return response.Conflict(c, "Email is already on the allowlist")
		default:
			return response.InternalServerError(c, "Failed to add allowed email")
		}
	}

	return response.Created(c, "Email added to allowlist", fiber.Map{
		"entry": entry,
	})
}

// Import bulk-adds allowlist entries from CSV
// @Summary Import allowed emails
// @Description Accepts CSV lines of the form "email" or "email,role"; malformed lines are skipped
// @Tags Allowlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ImportInput true "CSV payload"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /allowed-emails/import [post]
func (h *AllowedEmailHandler) Import(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.ImportInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.allowedEmailService.Import(c.Context(), actor, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "Only admin may manage the allowlist")
		case errors.Is(err, services.ErrHostelNotFound):
			return response.NotFound(c, "Hostel not found")
		default:
			return response.InternalServerError(c, "Failed to import allowed emails")
		}
	}

	return response.Success(c, "Allowlist import completed", fiber.Map{
		"result": result,
	})
}

// List returns allowlist entries
// @Summary List allowed emails
// @Tags Allowlist
// @Produce json
// @Security BearerAuth
// @Param hostel_id query int false "Filter by hostel"
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /allowed-emails [get]
func (h *AllowedEmailHandler) List(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var hostelID *uint
	if raw := c.Query("hostel_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid hostel_id filter")
		}
		v := uint(id)
		hostelID = &v
	}

	params := pagination.GetParams(c)
	entries, total, err := h.allowedEmailService.List(c.Context(), actor, hostelID, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, services.ErrNotPermitted) {
			return response.Forbidden(c, "Only admin may manage the allowlist")
		}
		return response.InternalServerError(c, "Failed to list allowed emails")
	}

	return response.Success(c, "Allowlist retrieved successfully", fiber.Map{
		"entries":    entries,
		"pagination": pagination.GetMeta(params, total),
	})
}

// Delete removes an allowlist entry
// @Summary Delete an allowed email
// @Tags Allowlist
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /allowed-emails/{id} [delete]
func (h *AllowedEmailHandler) Delete(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid entry ID")
	}

	if err := h.allowedEmailService.Delete(c.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "Only admin may manage the allowlist")
		case errors.Is(err, services.ErrAllowedEmailNotFound):
			return response.NotFound(c, "Allowlist entry not found")
		default:
			return response.InternalServerError(c, "Failed to delete allowed email")
		}
	}

	return response.Success(c, "Allowlist entry deleted", nil)
}
