package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kingjj-tech/Trackporter/internal/domain"
	"github.com/kingjj-tech/Trackporter/internal/models"
)

// PaymentService settles batches of trips against the payment gateway.
type PaymentService struct {
	db      *gorm.DB
	cache   *RedisCache
	gateway Gateway
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(db *gorm.DB, cache *RedisCache, gateway Gateway) *PaymentService {
	return &PaymentService{db: db, cache: cache, gateway: gateway}
}

// ProcessPayment settles every trip in tripIDs owned by userID, in input
// order: re-read under the ownership filter, charge the gateway, insert the
// payment record, flip the trip to paid. A missing or foreign trip aborts
// the whole call with TripNotFoundError; trips settled before it stay
// committed. The loop is not wrapped in a transaction, so a store failure
// mid-batch likewise leaves earlier settlements in place.
func (s *PaymentService) ProcessPayment(ctx context.Context, userID uint, tripIDs []uint, method string) ([]models.Payment, error) {
	if len(tripIDs) == 0 {
		return nil, domain.ValidationError{Field: "trip_ids", Msg: "must not be empty"}
	}
	if method == "" {
		return nil, domain.ValidationError{Field: "payment_method", Msg: "must not be empty"}
	}

	payments := make([]models.Payment, 0, len(tripIDs))

	for _, tripID := range tripIDs {
		var trip models.Trip
		err := s.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", tripID, userID).
			First(&trip).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.TripNotFoundError{TripID: tripID}
			}
			return nil, domain.PersistenceError{Op: "load trip", Err: err}
		}

		orderID := uuid.New().String()
		if _, err := s.gateway.Charge(ctx, orderID, trip.AmountDue, method); err != nil {
			return nil, domain.PersistenceError{Op: "gateway charge", Err: err}
		}

		payment := models.Payment{
			TripID:        trip.ID,
			OrderID:       orderID,
			Amount:        trip.AmountDue,
			PaymentStatus: models.PaymentStateCompleted,
			PaymentMethod: method,
			PaymentDate:   time.Now(),
		}
		if err := s.db.WithContext(ctx).Create(&payment).Error; err != nil {
			return nil, domain.PersistenceError{Op: "create payment", Err: err}
		}

		err = s.db.WithContext(ctx).
			Model(&models.Trip{}).
			Where("id = ?", trip.ID).
			Update("payment_status", models.PaymentStatusPaid).Error
		if err != nil {
			return nil, domain.PersistenceError{Op: "mark trip paid", Err: err}
		}

		payments = append(payments, payment)
	}

	if s.cache != nil {
		s.cache.InvalidateTripViews(ctx, userID)
	}
	return payments, nil
}
