package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kingjj-tech/Trackporter/internal/domain"
	"github.com/kingjj-tech/Trackporter/internal/models"
	"github.com/kingjj-tech/Trackporter/internal/services"
)

// TripHandler exposes the trip ledger to the mobile client.
type TripHandler struct {
	trips *services.TripService
}

// NewTripHandler creates a new TripHandler
func NewTripHandler(trips *services.TripService) *TripHandler {
	return &TripHandler{trips: trips}
}

// List returns the caller's trips, newest first.
func (h *TripHandler) List(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	if err := domain.Authorize(p, domain.ActionTripRead, domain.Resource{OwnerID: p.ID}); err != nil {
		return err
	}

	trips, err := h.trips.ListByOwner(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trips)
}

// Create records a new trip owned by the caller.
func (h *TripHandler) Create(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	if err := domain.Authorize(p, domain.ActionTripWrite, domain.Resource{OwnerID: p.ID}); err != nil {
		return err
	}

	var req CreateTripRequest
	if err := c.Bind(&req); err != nil {
		return domain.ValidationError{Msg: "malformed request body"}
	}

	trip, err := h.trips.Create(c.Request().Context(), p.ID, services.CreateTripInput{
		Destination:   req.Destination,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		DriverID:      req.DriverID,
		AmountDue:     req.AmountDue,
		PaymentStatus: models.PaymentStatus(req.PaymentStatus),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, trip)
}

// UpdatePaymentStatus is the owner's self-service status toggle.
func (h *TripHandler) UpdatePaymentStatus(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	if err := domain.Authorize(p, domain.ActionTripWrite, domain.Resource{OwnerID: p.ID}); err != nil {
		return err
	}

	tripID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateTripStatusRequest
	if err := c.Bind(&req); err != nil {
		return domain.ValidationError{Msg: "malformed request body"}
	}

	trip, err := h.trips.SetPaymentStatus(c.Request().Context(), tripID, p.ID, models.PaymentStatus(req.PaymentStatus))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trip)
}

// OutstandingBalances returns the caller's unpaid trips and their total.
func (h *TripHandler) OutstandingBalances(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	if err := domain.Authorize(p, domain.ActionTripRead, domain.Resource{OwnerID: p.ID}); err != nil {
		return err
	}

	balance, err := h.trips.OutstandingBalance(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balance)
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, domain.ValidationError{Field: name, Msg: "must be a positive integer"}
	}
	return uint(id), nil
}
