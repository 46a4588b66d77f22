package handlers

import (
	"errors"

	"hmc-messhub/internal/adapters/http/middleware"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/core/services"
	"hmc-messhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles mess notice endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Create publishes a notice
// @Summary Create a notification
// @Description A notice without hostel_id goes to every hostel (admin only)
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateNotificationInput true "Notice data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /notifications [post]
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	notification, err := h.notificationService.Create(c.Context(), actor, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "You don't have permission to publish notices")
		case errors.Is(err, services.ErrHostelMismatch):
			return response.Forbidden(c, "Notice targets a different hostel")
		default:
			return response.InternalServerError(c, "Failed to create notification")
		}
	}

	return response.Created(c, "Notification created successfully", fiber.Map{
		"notification": notification,
	})
}

// List returns active notices visible to the caller
// @Summary List active notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	notifications, err := h.notificationService.ListActive(c.Context(), actor)
	if err != nil {
		if errors.Is(err, services.ErrNoHostelAssigned) {
			return response.Forbidden(c, "No hostel assigned to your account")
		}
		return response.InternalServerError(c, "Failed to list notifications")
	}

	return response.Success(c, "Notifications retrieved successfully", fiber.Map{
		"notifications": notifications,
	})
}

// Delete removes a notice
// @Summary Delete a notification
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.Delete(c.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, services.ErrNotificationNotFound):
			return response.NotFound(c, "Notification not found")
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "You don't have permission to delete notices")
		case errors.Is(err, services.ErrHostelMismatch):
			return response.Forbidden(c, "Notice belongs to a different hostel")
		default:
			return response.InternalServerError(c, "Failed to delete notification")
		}
	}

	return response.Success(c, "Notification deleted successfully", nil)
}
