package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kingjj-tech/Trackporter/internal/domain"
	"github.com/kingjj-tech/Trackporter/internal/models"
)

// AdminService performs privileged mutations for the admin console.
type AdminService struct {
	db    *gorm.DB
	cache *RedisCache
}

// NewAdminService creates a new AdminService
func NewAdminService(db *gorm.DB, cache *RedisCache) *AdminService {
	return &AdminService{db: db, cache: cache}
}

// OverridePaymentStatus sets a trip's payment status regardless of owner
// and appends an AdminAction audit record. The audit write happens after
// the status change has committed; if it fails the change stays in place
// and the failure is only logged.
func (s *AdminService) OverridePaymentStatus(ctx context.Context, adminID, tripID uint, status models.PaymentStatus) (*models.Trip, error) {
	if !status.Valid() {
		return nil, domain.ValidationError{Field: "payment_status", Msg: "unknown status"}
	}

	var trip models.Trip
	if err := s.db.WithContext(ctx).First(&trip, tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "trip"}
		}
		return nil, domain.PersistenceError{Op: "load trip", Err: err}
	}

	oldStatus := trip.PaymentStatus
	if err := s.db.WithContext(ctx).Model(&trip).Update("payment_status", status).Error; err != nil {
		return nil, domain.PersistenceError{Op: "override trip status", Err: err}
	}

	action := models.AdminAction{
		AdminID: adminID,
		Action:  models.AdminActionPaymentOverride,
		TripID:  trip.ID,
		Details: map[string]interface{}{
			"old_status": string(oldStatus),
			"new_status": string(status),
		},
	}
	if err := s.db.WithContext(ctx).Create(&action).Error; err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"admin_id": adminID,
			"trip_id":  trip.ID,
		}).Error("audit log write failed after status override")
	}

	if s.cache != nil {
		s.cache.InvalidateTripViews(ctx, trip.UserID)
	}
	return &trip, nil
}

// ListAllTrips returns every trip with its owning user, newest first.
func (s *AdminService) ListAllTrips(ctx context.Context) ([]models.Trip, error) {
	var trips []models.Trip
	err := s.db.WithContext(ctx).
		Preload("User").
		Order("created_at desc").
		Find(&trips).Error
	if err != nil {
		return nil, domain.PersistenceError{Op: "list all trips", Err: err}
	}
	return trips, nil
}

// ListAllUsers returns every user, newest first.
func (s *AdminService) ListAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Order("created_at desc").
		Find(&users).Error
	if err != nil {
		return nil, domain.PersistenceError{Op: "list all users", Err: err}
	}
	return users, nil
}
