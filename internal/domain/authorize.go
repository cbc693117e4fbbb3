package domain

import (
	"github.com/kingjj-tech/Trackporter/internal/models"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	ID   uint
	Role models.UserRole
}

// Action is an operation subject to the authorization policy.
type Action string

const (
	ActionTripRead         Action = "trip:read"
	ActionTripWrite        Action = "trip:write"
	ActionPaymentSettle    Action = "payment:settle"
	ActionAdminOverride    Action = "admin:override"
	ActionAdminListTrips   Action = "admin:list_trips"
	ActionAdminListUsers   Action = "admin:list_users"
	ActionNotificationSend Action = "notification:send"
	ActionNotificationRead Action = "notification:read"
)

// Resource carries the ownership facts the policy needs. OwnerID is the
// user the resource belongs to (the notification recipient, the trip
// owner); zero when the action has no target.
type Resource struct {
	OwnerID uint
}

// Authorize is the single policy check invoked before each core operation.
// Trip and settlement operations pass for any authenticated principal
// because their queries are ownership-filtered; admin actions require the
// admin role; sending a notification to another user requires admin;
// marking a notification read is reserved to its recipient, admins
// included.
func Authorize(p Principal, action Action, res Resource) error {
	switch action {
	case ActionTripRead, ActionTripWrite, ActionPaymentSettle:
		return nil
	case ActionAdminOverride, ActionAdminListTrips, ActionAdminListUsers:
		if p.Role != models.RoleAdmin {
			return ForbiddenError{Msg: "admin access required"}
		}
		return nil
	case ActionNotificationSend:
		if res.OwnerID != p.ID && p.Role != models.RoleAdmin {
			return ForbiddenError{Msg: "Not authorized"}
		}
		return nil
	case ActionNotificationRead:
		if res.OwnerID != p.ID {
			return ForbiddenError{Msg: "not the recipient of this notification"}
		}
		return nil
	}
	return ForbiddenError{Msg: "unknown action"}
}
