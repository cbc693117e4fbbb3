package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStatus represents the payment state of a trip
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Valid reports whether the status is one of the known trip payment states
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// Trip represents a journey owed payment by its creator. Trips are never
// physically deleted; the payment status only changes through the owner,
// the batch payment processor, or an admin override.
type Trip struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID        uint            `gorm:"index" json:"user_id"`
	DriverID      *uint           `gorm:"index" json:"driver_id,omitempty"`
	Destination   string          `gorm:"type:varchar(255)" json:"destination"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
	AmountDue     decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount_due"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);default:'unpaid'" json:"payment_status"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Driver   *User     `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	Payments []Payment `gorm:"foreignKey:TripID" json:"payments,omitempty"`
}
