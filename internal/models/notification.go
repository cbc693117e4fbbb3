package models

import (
	"time"

	"gorm.io/gorm"
)

// NotificationType categorizes a notification
type NotificationType string

const (
	NotificationTypePaymentReminder NotificationType = "payment_reminder"
	NotificationTypeMonthlySummary  NotificationType = "monthly_summary"
	NotificationTypeTripUpdate      NotificationType = "trip_update"
	NotificationTypeGeneral         NotificationType = "general"
)

// Valid reports whether the type is one of the known notification types
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypePaymentReminder, NotificationTypeMonthlySummary,
		NotificationTypeTripUpdate, NotificationTypeGeneral:
		return true
	}
	return false
}

// Notification is a record handed to the delivery sink. Read defaults to
// false and is flipped only by the recipient.
type Notification struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID  uint             `gorm:"index" json:"user_id"`
	Message string           `gorm:"type:text" json:"message"`
	Type    NotificationType `gorm:"type:varchar(50);default:'general'" json:"type"`
	Read    bool             `gorm:"default:false" json:"read"`
	SentAt  time.Time        `json:"sent_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
