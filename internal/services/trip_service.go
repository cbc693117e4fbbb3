package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kingjj-tech/Trackporter/internal/domain"
	"github.com/kingjj-tech/Trackporter/internal/models"
)

const tripCacheTTL = 5 * time.Minute

// TripService owns trip records and their payment status transitions.
type TripService struct {
	db    *gorm.DB
	cache *RedisCache
}

// NewTripService creates a new TripService
func NewTripService(db *gorm.DB, cache *RedisCache) *TripService {
	return &TripService{db: db, cache: cache}
}

// CreateTripInput carries the fields of a trip submission.
type CreateTripInput struct {
	Destination   string
	StartDate     time.Time
	EndDate       *time.Time
	DriverID      *uint
	AmountDue     decimal.Decimal
	PaymentStatus models.PaymentStatus
}

// Create validates and inserts a new trip owned by ownerID. The payment
// status defaults to unpaid.
func (s *TripService) Create(ctx context.Context, ownerID uint, in CreateTripInput) (*models.Trip, error) {
	if strings.TrimSpace(in.Destination) == "" {
		return nil, domain.ValidationError{Field: "destination", Msg: "must not be empty"}
	}
	if in.AmountDue.IsNegative() {
		return nil, domain.ValidationError{Field: "amount_due", Msg: "must be a non-negative number"}
	}
	status := in.PaymentStatus
	if status == "" {
		status = models.PaymentStatusUnpaid
	}
	if !status.Valid() {
		return nil, domain.ValidationError{Field: "payment_status", Msg: "unknown status"}
	}

	trip := models.Trip{
		UserID:        ownerID,
		DriverID:      in.DriverID,
		Destination:   strings.TrimSpace(in.Destination),
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		AmountDue:     in.AmountDue,
		PaymentStatus: status,
	}
	if err := s.db.WithContext(ctx).Create(&trip).Error; err != nil {
		return nil, domain.PersistenceError{Op: "create trip", Err: err}
	}

	if s.cache != nil {
		s.cache.InvalidateTripViews(ctx, ownerID)
	}
	return &trip, nil
}

// ListByOwner returns the owner's trips, newest first.
func (s *TripService) ListByOwner(ctx context.Context, ownerID uint) ([]models.Trip, error) {
	return GetOrSet(s.cache, ctx, tripsCacheKey(ownerID), tripCacheTTL, func() ([]models.Trip, error) {
		var trips []models.Trip
		err := s.db.WithContext(ctx).
			Where("user_id = ?", ownerID).
			Order("created_at desc").
			Find(&trips).Error
		if err != nil {
			return nil, domain.PersistenceError{Op: "list trips", Err: err}
		}
		return trips, nil
	})
}

// SetPaymentStatus is the owner's self-service status toggle. It only
// touches trips owned by ownerID and setting the current status again is a
// no-op success.
func (s *TripService) SetPaymentStatus(ctx context.Context, tripID, ownerID uint, status models.PaymentStatus) (*models.Trip, error) {
	if !status.Valid() {
		return nil, domain.ValidationError{Field: "payment_status", Msg: "unknown status"}
	}

	var trip models.Trip
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", tripID, ownerID).
		First(&trip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "trip"}
		}
		return nil, domain.PersistenceError{Op: "load trip", Err: err}
	}

	if trip.PaymentStatus == status {
		return &trip, nil
	}

	if err := s.db.WithContext(ctx).Model(&trip).Update("payment_status", status).Error; err != nil {
		return nil, domain.PersistenceError{Op: "update trip status", Err: err}
	}

	if s.cache != nil {
		s.cache.InvalidateTripViews(ctx, ownerID)
	}
	return &trip, nil
}

// OutstandingBalance is the owner's unpaid trips with their exact total.
type OutstandingBalance struct {
	Trips []models.Trip   `json:"trips"`
	Total decimal.Decimal `json:"total_outstanding"`
	Count int             `json:"count"`
}

// OutstandingBalance sums amount_due over the owner's unpaid trips. The
// total is the same decimal arithmetic the batch processor settles against.
func (s *TripService) OutstandingBalance(ctx context.Context, ownerID uint) (*OutstandingBalance, error) {
	trips, err := s.unpaidByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, trip := range trips {
		total = total.Add(trip.AmountDue)
	}

	return &OutstandingBalance{Trips: trips, Total: total, Count: len(trips)}, nil
}

func (s *TripService) unpaidByOwner(ctx context.Context, ownerID uint) ([]models.Trip, error) {
	return GetOrSet(s.cache, ctx, unpaidTripsCacheKey(ownerID), tripCacheTTL, func() ([]models.Trip, error) {
		var trips []models.Trip
		err := s.db.WithContext(ctx).
			Where("user_id = ? AND payment_status = ?", ownerID, models.PaymentStatusUnpaid).
			Order("start_date asc").
			Find(&trips).Error
		if err != nil {
			return nil, domain.PersistenceError{Op: "list unpaid trips", Err: err}
		}
		return trips, nil
	})
}
