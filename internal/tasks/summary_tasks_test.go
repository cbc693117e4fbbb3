package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/kingjj-tech/Trackporter/internal/models"
)

func TestPreviousMonth(t *testing.T) {
	cases := []struct {
		name      string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "mid month",
			now:       time.Date(2025, time.March, 15, 9, 30, 0, 0, time.UTC),
			wantStart: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "first of month",
			now:       time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC),
			wantStart: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "january rolls back a year",
			now:       time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := PreviousMonth(tc.now)
			require.True(t, start.Equal(tc.wantStart), "start = %v", start)
			require.True(t, end.Equal(tc.wantEnd), "end = %v", end)
		})
	}
}

func TestSummarize(t *testing.T) {
	trips := []models.Trip{
		{AmountDue: mustDecimal(t, "100.00"), PaymentStatus: models.PaymentStatusPaid},
		{AmountDue: mustDecimal(t, "49.95"), PaymentStatus: models.PaymentStatusPaid},
		{AmountDue: mustDecimal(t, "30.10"), PaymentStatus: models.PaymentStatusUnpaid},
		{AmountDue: mustDecimal(t, "20.00"), PaymentStatus: models.PaymentStatusPartial},
	}

	s := Summarize(trips)
	require.Equal(t, 4, s.TotalTrips)
	require.Equal(t, 2, s.PaidTrips)
	require.Equal(t, "149.95", s.TotalEarnings.StringFixed(2))
	require.Equal(t, "30.10", s.PendingAmount.StringFixed(2))
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	require.Equal(t, 0, s.TotalTrips)
	require.Equal(t, "0.00", s.TotalEarnings.StringFixed(2))
	require.Equal(t, "0.00", s.PendingAmount.StringFixed(2))
}

func TestSummaryMessage(t *testing.T) {
	s := MonthlySummary{
		TotalTrips:    5,
		PaidTrips:     3,
		TotalEarnings: mustDecimal(t, "1200.00"),
		PendingAmount: mustDecimal(t, "340.50"),
	}
	require.Equal(t,
		"February 2025 Summary: 5 trips, 3 paid, R1200.00 earned, R340.50 pending",
		SummaryMessage("February 2025", s))
}

func TestMonthlySummarySkipsUsersWithoutTrips(t *testing.T) {
	db, mock := newMockDB(t)

	userCols := []string{"id", "email", "role"}
	tripCols := []string{"id", "user_id", "destination", "amount_due", "payment_status"}

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(10, "a@example.com", "passenger").
			AddRow(20, "b@example.com", "driver"))

	// User 10 had trips last month, user 20 did not.
	mock.ExpectQuery(`SELECT \* FROM "trips"`).
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow(1, 10, "Durban", "80.00", "paid").
			AddRow(2, 10, "Pretoria", "45.00", "unpaid"))
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	mock.ExpectQuery(`SELECT \* FROM "trips"`).
		WillReturnRows(sqlmock.NewRows(tripCols))

	result, err := MonthlySummaryTask.HandleExecution(context.Background(), db, models.ScheduledTask{})
	require.NoError(t, err)
	require.Equal(t, 2, result["users"])
	require.Equal(t, 1, result["sent"])
	require.Equal(t, 1, result["skipped"])
	require.Equal(t, 0, result["failed"])
	require.NoError(t, mock.ExpectationsWereMet())
}
