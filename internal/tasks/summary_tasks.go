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

// MonthlySummary aggregates one user's trips over a month.
type MonthlySummary struct {
	TotalTrips    int
	PaidTrips     int
	TotalEarnings decimal.Decimal
	PendingAmount decimal.Decimal
}

// Summarize computes the monthly aggregate for a set of trips.
func Summarize(trips []models.Trip) MonthlySummary {
	s := MonthlySummary{
		TotalTrips:    len(trips),
		TotalEarnings: decimal.Zero,
		PendingAmount: decimal.Zero,
	}
	for _, trip := range trips {
		switch trip.PaymentStatus {
		case models.PaymentStatusPaid:
			s.PaidTrips++
			s.TotalEarnings = s.TotalEarnings.Add(trip.AmountDue)
		case models.PaymentStatusUnpaid:
			s.PendingAmount = s.PendingAmount.Add(trip.AmountDue)
		}
	}
	return s
}

// PreviousMonth returns the [start, end) interval of the calendar month
// before now, in now's location.
func PreviousMonth(now time.Time) (time.Time, time.Time) {
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	start := end.AddDate(0, -1, 0)
	return start, end
}

// SummaryMessage formats the monthly summary body.
func SummaryMessage(monthName string, s MonthlySummary) string {
	return fmt.Sprintf("%s Summary: %d trips, %d paid, R%s earned, R%s pending",
		monthName, s.TotalTrips, s.PaidTrips, s.TotalEarnings.StringFixed(2), s.PendingAmount.StringFixed(2))
}

// MonthlySummaryTaskDef encapsulates the month-end summary job
type MonthlySummaryTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *MonthlySummaryTaskDef) TaskID() string {
	return "monthly_summary"
}

// CreateTask builds the recurring ScheduledTask record for this job
func (t *MonthlySummaryTaskDef) CreateTask(due time.Time, rrule string) (*models.ScheduledTask, error) {
	return BuildScheduledTask(t.TaskID(), map[string]interface{}{}, due, &rrule, models.ScheduledTaskTypeRecurring, 1)
}

// HandleExecution emits at most one monthly_summary notification per user
// for the previous calendar month. Users with no trips in the interval are
// skipped; a store error for one user is logged and the run continues.
func (t *MonthlySummaryTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	now := time.Now()
	start, end := PreviousMonth(now)
	monthName := start.Format("January 2006")

	var users []models.User
	if err := db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	sent := 0
	skipped := 0
	failed := 0
	for _, user := range users {
		var trips []models.Trip
		err := db.WithContext(ctx).
			Where("user_id = ? AND start_date >= ? AND start_date < ?", user.ID, start, end).
			Find(&trips).Error
		if err != nil {
			logrus.WithError(err).WithField("user_id", user.ID).Error("failed to fetch monthly trips")
			failed++
			continue
		}

		if len(trips) == 0 {
			skipped++
			continue
		}

		summary := Summarize(trips)
		n := models.Notification{
			UserID:  user.ID,
			Message: SummaryMessage(monthName, summary),
			Type:    models.NotificationTypeMonthlySummary,
			SentAt:  now,
		}
		if err := db.WithContext(ctx).Create(&n).Error; err != nil {
			logrus.WithError(err).WithField("user_id", user.ID).Error("failed to send monthly summary")
			failed++
			continue
		}
		sent++
	}

	logrus.Infof("Sent %d monthly summaries", sent)

	return map[string]interface{}{
		"month":   monthName,
		"users":   len(users),
		"sent":    sent,
		"skipped": skipped,
		"failed":  failed,
	}, nil
}

// MonthlySummaryTask is the singleton instance of MonthlySummaryTaskDef
var MonthlySummaryTask = &MonthlySummaryTaskDef{}
