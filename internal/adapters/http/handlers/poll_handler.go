package handlers

import (
	"errors"

	"hmc-messhub/internal/adapters/http/middleware"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/core/services"
	"hmc-messhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PollHandler handles menu poll endpoints
type PollHandler struct {
	pollService *services.PollService
}

// NewPollHandler creates a new poll handler
func NewPollHandler(pollService *services.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

// VoteRequest represents a vote request body
type VoteRequest struct {
	InFavor bool `json:"in_favor"`
}

// CloseRequest represents a poll close request body
type CloseRequest struct {
	Approve bool `json:"approve"`
}

// Create opens a menu-change poll
// @Summary Create a poll
// @Tags Polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePollInput true "Poll data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /polls [post]
func (h *PollHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreatePollInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	poll, err := h.pollService.Create(c.Context(), actor, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrInvalidMealSlot):
			return response.BadRequest(c, "Unknown day or meal slot")
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "You don't have permission to create polls")
		case errors.Is(err, services.ErrNoHostelAssigned):
			return response.Forbidden(c, "No hostel assigned to your account")
		default:
			return response.InternalServerError(c, "Failed to create poll")
		}
	}

	return response.Created(c, "Poll created successfully", fiber.Map{
		"poll": poll,
	})
}

// List returns polls of one hostel
// @Summary List polls
// @Tags Polls
// @Produce json
// @Security BearerAuth
// @Param hostel_id path int true "Hostel ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /polls/hostel/{hostel_id} [get]
func (h *PollHandler) List(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	hostelID, err := parseIDParam(c, "hostel_id")
	if err != nil {
		return response.BadRequest(c, "Invalid hostel ID")
	}

	polls, err := h.pollService.ListForHostel(c.Context(), actor, hostelID)
	if err != nil {
		if errors.Is(err, services.ErrHostelMismatch) {
			return response.Forbidden(c, "Polls belong to a different hostel")
		}
		return response.InternalServerError(c, "Failed to list polls")
	}

	return response.Success(c, "Polls retrieved successfully", fiber.Map{
		"polls": polls,
	})
}

// Get returns one poll with tallies
// @Summary Get a poll
// @Tags Polls
// @Produce json
// @Security BearerAuth
// @Param id path int true "Poll ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /polls/{id} [get]
func (h *PollHandler) Get(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid poll ID")
	}

	poll, err := h.pollService.Get(c.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPollNotFound):
			return response.NotFound(c, "Poll not found")
		case errors.Is(err, services.ErrHostelMismatch):
			return response.Forbidden(c, "Poll belongs to a different hostel")
		default:
			return response.InternalServerError(c, "Failed to get poll")
		}
	}

	return response.Success(c, "Poll retrieved successfully", fiber.Map{
		"poll": poll,
	})
}

// Vote records the caller's vote
// @Summary Vote on a poll
// @Description Each user may vote once; a second vote is rejected
// @Tags Polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Poll ID"
// @Param body body VoteRequest true "Vote"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /polls/{id}/vote [post]
func (h *PollHandler) Vote(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid poll ID")
	}

	var req VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.pollService.Vote(c.Context(), actor, id, req.InFavor); err != nil {
		switch {
		case errors.Is(err, domain.ErrPollNotFound):
			return response.NotFound(c, "Poll not found")
		case errors.Is(err, domain.ErrPollClosed):
			return response.BadRequest(c, "Poll is closed")
		case errors.Is(err, domain.ErrAlreadyVoted):
			return response.Conflict(c, "You have already voted on this poll")
		case errors.Is(err, services.ErrHostelMismatch):
			return response.Forbidden(c, "Poll belongs to a different hostel")
		default:
			return response.InternalServerError(c, "Failed to record vote")
		}
	}

	return response.Success(c, "Vote recorded successfully", nil)
}

// Close settles a poll
// @Summary Close a poll
// @Description Approving applies the proposed items to the menu slot
// @Tags Polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Poll ID"
// @Param body body CloseRequest true "Decision"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /polls/{id}/close [post]
func (h *PollHandler) Close(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid poll ID")
	}

	var req CloseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	poll, err := h.pollService.Close(c.Context(), actor, id, req.Approve)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPollNotFound):
			return response.NotFound(c, "Poll not found")
		case errors.Is(err, domain.ErrPollClosed):
			return response.BadRequest(c, "Poll is already closed")
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "You don't have permission to close polls")
		case errors.Is(err, services.ErrHostelMismatch):
			return response.Forbidden(c, "Poll belongs to a different hostel")
		default:
			return response.InternalServerError(c, "Failed to close poll")
		}
	}

	return response.Success(c, "Poll closed successfully", fiber.Map{
		"poll": poll,
	})
}
