package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kingjj-tech/Trackporter/internal/domain"
	"github.com/kingjj-tech/Trackporter/internal/models"
)

// NotificationService writes to and reads from the notification sink.
// Inserts are fire-and-forget append-only records; no delivery contract.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Send appends a notification for userID. The type defaults to general.
func (s *NotificationService) Send(ctx context.Context, userID uint, message string, typ models.NotificationType) (*models.Notification, error) {
	if message == "" {
		return nil, domain.ValidationError{Field: "message", Msg: "must not be empty"}
	}
	if typ == "" {
		typ = models.NotificationTypeGeneral
	}
	if !typ.Valid() {
		return nil, domain.ValidationError{Field: "type", Msg: "unknown notification type"}
	}

	n := models.Notification{
		UserID:  userID,
		Message: message,
		Type:    typ,
		SentAt:  time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, domain.PersistenceError{Op: "create notification", Err: err}
	}
	return &n, nil
}

// ListByUser returns the user's notifications, most recent first.
func (s *NotificationService) ListByUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sent_at desc").
		Find(&notifications).Error
	if err != nil {
		return nil, domain.PersistenceError{Op: "list notifications", Err: err}
	}
	return notifications, nil
}

// Get loads a single notification by id.
func (s *NotificationService) Get(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.WithContext(ctx).First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "notification"}
		}
		return nil, domain.PersistenceError{Op: "load notification", Err: err}
	}
	return &n, nil
}

// MarkAsRead flips the read flag. Authorization (recipient only) is checked
// by the caller against the loaded notification.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
	if err != nil {
		return domain.PersistenceError{Op: "mark notification read", Err: err}
	}
	return nil
}
