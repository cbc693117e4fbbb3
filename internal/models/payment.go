package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentState represents the state of an individual payment record
type PaymentState string

const (
	PaymentStatePending   PaymentState = "pending"
	PaymentStateCompleted PaymentState = "completed"
	PaymentStateFailed    PaymentState = "failed"
)

// Payment records a settlement attempt against a trip. One record per trip
// per attempt; payments are an append-only audit of money movement and are
// created only by the batch payment processor.
type Payment struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	TripID        uint            `gorm:"index" json:"trip_id"`
	OrderID       string          `gorm:"type:varchar(100);index" json:"order_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount"`
	PaymentStatus PaymentState    `gorm:"type:varchar(20)" json:"payment_status"`
	PaymentMethod string          `gorm:"type:varchar(50)" json:"payment_method"`
	PaymentDate   time.Time       `json:"payment_date"`

	// Relationships
	Trip Trip `gorm:"foreignKey:TripID" json:"trip,omitempty"`
}
