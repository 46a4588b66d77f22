package handlers

import (
	"errors"

	"hmc-messhub/internal/adapters/http/middleware"
	"hmc-messhub/internal/core/services"
	"hmc-messhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BillingHandler handles mess bill endpoints
type BillingHandler struct {
	billingService *services.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *services.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// MyBill returns the caller's current bill summary
// @Summary Get own bill
// @Description Net bill = base fee + extras - approved rebates
// @Tags Billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /billing/my [get]
func (h *BillingHandler) MyBill(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	summary, err := h.billingService.ComputeSummary(c.Context(), actor.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoHostelAssigned):
			return response.Forbidden(c, "No hostel assigned to your account")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to compute bill")
		}
	}

	return response.Success(c, "Bill computed successfully", fiber.Map{
		"bill": summary,
	})
}

// UserBill returns a student's bill summary to staff
// @Summary Get a user's bill
// @Tags Billing
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /billing/users/{id} [get]
func (h *BillingHandler) UserBill(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	userID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	summary, err := h.billingService.ComputeSummaryFor(c.Context(), actor, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "You may only view your own bill")
		case errors.Is(err, services.ErrHostelMismatch):
			return response.Forbidden(c, "User belongs to a different hostel")
		case errors.Is(err, services.ErrNoHostelAssigned):
			return response.BadRequest(c, "User has no hostel assigned")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to compute bill")
		}
	}

	return response.Success(c, "Bill computed successfully", fiber.Map{
		"bill": summary,
	})
}

// Pay acknowledges a payment request. Payment processing is not
// integrated; the endpoint exists so clients have a stable target.
// @Summary Pay bill (stub)
// @Tags Billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /billing/pay [post]
func (h *BillingHandler) Pay(c *fiber.Ctx) error {
	if _, ok := middleware.GetActor(c); !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	return response.Success(c, "Payment request received; online payment is not yet available", nil)
}
