package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kingjj-tech/Trackporter/internal/domain"
	"github.com/kingjj-tech/Trackporter/internal/models"
	"github.com/kingjj-tech/Trackporter/internal/services"
)

// AdminHandler exposes the admin console operations.
type AdminHandler struct {
	admin *services.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// OverridePaymentStatus sets any trip's status, with audit logging.
func (h *AdminHandler) OverridePaymentStatus(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	if err := domain.Authorize(p, domain.ActionAdminOverride, domain.Resource{}); err != nil {
		return err
	}

	tripID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req OverrideStatusRequest
	if err := c.Bind(&req); err != nil {
		return domain.ValidationError{Msg: "malformed request body"}
	}

	trip, err := h.admin.OverridePaymentStatus(c.Request().Context(), p.ID, tripID, models.PaymentStatus(req.PaymentStatus))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trip)
}

// ListTrips returns every trip with its owner.
func (h *AdminHandler) ListTrips(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	if err := domain.Authorize(p, domain.ActionAdminListTrips, domain.Resource{}); err != nil {
		return err
	}

	trips, err := h.admin.ListAllTrips(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trips)
}

// ListUsers returns every user.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	if err := domain.Authorize(p, domain.ActionAdminListUsers, domain.Resource{}); err != nil {
		return err
	}

	users, err := h.admin.ListAllUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
