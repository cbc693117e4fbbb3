package handlers

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/kingjj-tech/Trackporter/internal/domain"
	"github.com/kingjj-tech/Trackporter/internal/middleware"
)

// CreateTripRequest is the trip submission payload.
type CreateTripRequest struct {
	Destination   string          `json:"destination"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
	DriverID      *uint           `json:"driver_id,omitempty"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	PaymentStatus string          `json:"payment_status,omitempty"`
}

// UpdateTripStatusRequest is the self-service status toggle payload.
type UpdateTripStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

// ProcessPaymentRequest is the batch settlement payload.
type ProcessPaymentRequest struct {
	TripIDs       []uint `json:"trip_ids"`
	PaymentMethod string `json:"payment_method"`
}

// OverrideStatusRequest is the admin override payload.
type OverrideStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

// SendNotificationRequest is the direct notification payload.
type SendNotificationRequest struct {
	UserID  uint   `json:"user_id"`
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// principalFrom extracts the authenticated principal set by RequireAuth.
func principalFrom(c echo.Context) (domain.Principal, error) {
	p, ok := c.Get(middleware.PrincipalKey).(domain.Principal)
	if !ok {
		return domain.Principal{}, domain.AuthenticationError{Msg: "missing principal"}
	}
	return p, nil
}
