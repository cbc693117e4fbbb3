package models

import (
	"time"
)

// AdminActionPaymentOverride is the action name recorded for a payment
// status override.
const AdminActionPaymentOverride = "payment_override"

// AdminAction is an append-only audit record of a privileged mutation.
// One record per override; rows are never updated or deleted.
type AdminAction struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	AdminID uint                   `gorm:"index" json:"admin_id"`
	Action  string                 `gorm:"type:varchar(50)" json:"action"`
	TripID  uint                   `gorm:"index" json:"trip_id"`
	Details map[string]interface{} `gorm:"serializer:json" json:"details"`

	// Relationships
	Admin User `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	Trip  Trip `gorm:"foreignKey:TripID" json:"trip,omitempty"`
}
