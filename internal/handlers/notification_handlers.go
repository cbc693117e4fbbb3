package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kingjj-tech/Trackporter/internal/domain"
	"github.com/kingjj-tech/Trackporter/internal/models"
	"github.com/kingjj-tech/Trackporter/internal/services"
)

// NotificationHandler exposes the notification sink to clients.
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// Send appends a notification. Sending to another user requires admin.
func (h *NotificationHandler) Send(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req SendNotificationRequest
	if err := c.Bind(&req); err != nil {
		return domain.ValidationError{Msg: "malformed request body"}
	}
	if req.UserID == 0 {
		req.UserID = p.ID
	}

	if err := domain.Authorize(p, domain.ActionNotificationSend, domain.Resource{OwnerID: req.UserID}); err != nil {
		return err
	}

	n, err := h.notifications.Send(c.Request().Context(), req.UserID, req.Message, models.NotificationType(req.Type))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, n)
}

// List returns the caller's notifications, most recent first.
func (h *NotificationHandler) List(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	notifications, err := h.notifications.ListByUser(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkRead flips the read flag; only the recipient may do so.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	n, err := h.notifications.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if err := domain.Authorize(p, domain.ActionNotificationRead, domain.Resource{OwnerID: n.UserID}); err != nil {
		return err
	}

	if err := h.notifications.MarkAsRead(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "read"})
}
