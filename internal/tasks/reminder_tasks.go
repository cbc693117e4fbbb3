package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kingjj-tech/Trackporter/internal/models"
)

// OverdueGrace is how long after its start date an unpaid trip counts as
// overdue.
const OverdueGrace = 7 * 24 * time.Hour

// UserTripGroup collects one user's overdue trips.
type UserTripGroup struct {
	User  models.User
	Trips []models.Trip
}

// GroupTripsByUser fans overdue trips in per owner, so each user receives
// one reminder regardless of how many trips they owe.
func GroupTripsByUser(trips []models.Trip) map[uint]*UserTripGroup {
	groups := make(map[uint]*UserTripGroup)
	for _, trip := range trips {
		g, ok := groups[trip.UserID]
		if !ok {
			g = &UserTripGroup{User: trip.User}
			groups[trip.UserID] = g
		}
		g.Trips = append(g.Trips, trip)
	}
	return groups
}

// SumAmountDue totals amount_due over trips with exact decimal arithmetic.
func SumAmountDue(trips []models.Trip) decimal.Decimal {
	total := decimal.Zero
	for _, trip := range trips {
		total = total.Add(trip.AmountDue)
	}
	return total
}

// ReminderMessage formats the overdue reminder body.
func ReminderMessage(count int, total decimal.Decimal) string {
	return fmt.Sprintf("You have %d overdue trip(s) totaling R%s. Please make payment as soon as possible.", count, total.StringFixed(2))
}

// PaymentReminderTaskDef encapsulates the daily overdue reminder job
type PaymentReminderTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *PaymentReminderTaskDef) TaskID() string {
	return "payment_reminder"
}

// CreateTask builds the recurring ScheduledTask record for this job
func (t *PaymentReminderTaskDef) CreateTask(due time.Time, rrule string) (*models.ScheduledTask, error) {
	return BuildScheduledTask(t.TaskID(), map[string]interface{}{}, due, &rrule, models.ScheduledTaskTypeRecurring, 1)
}

// HandleExecution scans unpaid trips past the grace window, groups them per
// user and emits one payment_reminder notification per user. A failed
// insert for one user is logged and the run continues with the others.
func (t *PaymentReminderTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	now := time.Now()
	cutoff := now.Add(-OverdueGrace)

	var overdue []models.Trip
	err := db.WithContext(ctx).
		Preload("User").
		Where("payment_status = ? AND start_date < ?", models.PaymentStatusUnpaid, cutoff).
		Find(&overdue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overdue trips: %w", err)
	}

	groups := GroupTripsByUser(overdue)

	sent := 0
	failed := 0
	for userID, group := range groups {
		total := SumAmountDue(group.Trips)
		n := models.Notification{
			UserID:  userID,
			Message: ReminderMessage(len(group.Trips), total),
			Type:    models.NotificationTypePaymentReminder,
			SentAt:  now,
		}
		if err := db.WithContext(ctx).Create(&n).Error; err != nil {
			logrus.WithError(err).WithField("user_id", userID).Error("failed to send payment reminder")
			failed++
			continue
		}
		sent++
	}

	logrus.Infof("Sent %d payment reminders", sent)

	return map[string]interface{}{
		"overdue_trips": len(overdue),
		"users":         len(groups),
		"sent":          sent,
		"failed":        failed,
	}, nil
}

// PaymentReminderTask is the singleton instance of PaymentReminderTaskDef
var PaymentReminderTask = &PaymentReminderTaskDef{}
