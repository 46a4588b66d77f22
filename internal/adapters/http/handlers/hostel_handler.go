package handlers

import (
	"errors"

	"hmc-messhub/internal/adapters/http/middleware"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/core/services"
	"hmc-messhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HostelHandler handles hostel management endpoints
type HostelHandler struct {
	hostelService *services.HostelService
}

// NewHostelHandler creates a new hostel handler
func NewHostelHandler(hostelService *services.HostelService) *HostelHandler {
	return &HostelHandler{hostelService: hostelService}
}

// Create creates a hostel
// @Summary Create a hostel
// @Tags Hostels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.HostelInput true "Hostel data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /hostels [post]
func (h *HostelHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.HostelInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	hostel, err := h.hostelService.Create(c.Context(), actor, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "Only admin may create hostels")
		case errors.Is(err, services.ErrHostelExists):
			return response.Conflict(c, "A hostel with this name or code already exists")
		default:
			return response.InternalServerError(c, "Failed to create hostel")
		}
	}

	return response.Created(c, "Hostel created successfully", fiber.Map{
		"hostel": hostel,
	})
}

// List returns all hostels
// @Summary List hostels
// @Tags Hostels
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /hostels [get]
func (h *HostelHandler) List(c *fiber.Ctx) error {
	hostels, err := h.hostelService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list hostels")
	}

	return response.Success(c, "Hostels retrieved successfully", fiber.Map{
		"hostels": hostels,
	})
}

// Get returns one hostel
// @Summary Get a hostel
// @Tags Hostels
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /hostels/{id} [get]
func (h *HostelHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid hostel ID")
	}

	hostel, err := h.hostelService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrHostelNotFound) {
			return response.NotFound(c, "Hostel not found")
		}
		return response.InternalServerError(c, "Failed to get hostel")
	}

	return response.Success(c, "Hostel retrieved successfully", fiber.Map{
		"hostel": hostel,
	})
}

// Update edits a hostel
// @Summary Update a hostel
// @Tags Hostels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Param body body services.HostelInput true "Hostel data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /hostels/{id} [put]
func (h *HostelHandler) Update(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid hostel ID")
	}

	var input services.HostelInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	hostel, err := h.hostelService.Update(c.Context(), actor, id, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "Only admin may update hostels")
		case errors.Is(err, services.ErrHostelNotFound):
			return response.NotFound(c, "Hostel not found")
		default:
			return response.InternalServerError(c, "Failed to update hostel")
		}
	}

	return response.Success(c, "Hostel updated successfully", fiber.Map{
		"hostel": hostel,
	})
}

// Delete removes a hostel and all its hostel-scoped data
// @Summary Delete a hostel
// @Description Deletes the hostel together with its rebates, extras, menus, polls, forum and notices. Admin accounts survive.
// @Tags Hostels
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /hostels/{id} [delete]
func (h *HostelHandler) Delete(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid hostel ID")
	}

	if err := h.hostelService.Delete(c.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "Only admin may delete hostels")
		case errors.Is(err, services.ErrHostelNotFound):
			return response.NotFound(c, "Hostel not found")
		default:
			return response.InternalServerError(c, "Failed to delete hostel")
		}
	}

	return response.Success(c, "Hostel deleted successfully", nil)
}
