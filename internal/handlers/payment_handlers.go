package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kingjj-tech/Trackporter/internal/domain"
	"github.com/kingjj-tech/Trackporter/internal/services"
)

// PaymentHandler exposes batch settlement.
type PaymentHandler struct {
	payments *services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Process settles the listed trips as one call.
func (h *PaymentHandler) Process(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	if err := domain.Authorize(p, domain.ActionPaymentSettle, domain.Resource{OwnerID: p.ID}); err != nil {
		return err
	}

	var req ProcessPaymentRequest
	if err := c.Bind(&req); err != nil {
		return domain.ValidationError{Msg: "malformed request body"}
	}

	payments, err := h.payments.ProcessPayment(c.Request().Context(), p.ID, req.TripIDs, req.PaymentMethod)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Payments processed successfully",
		"payments": payments,
	})
}
