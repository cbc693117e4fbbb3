package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kingjj-tech/Trackporter/internal/domain"
	"github.com/kingjj-tech/Trackporter/internal/models"
)

func TestCreateTripValidation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateTripInput
	}{
		{
			name: "empty destination",
			input: CreateTripInput{
				Destination: "   ",
				AmountDue:   decimal.NewFromInt(100),
			},
		},
		{
			name: "negative amount",
			input: CreateTripInput{
				Destination: "Cape Town",
				AmountDue:   decimal.NewFromInt(-1),
			},
		},
		{
			name: "unknown status",
			input: CreateTripInput{
				Destination:   "Cape Town",
				AmountDue:     decimal.NewFromInt(100),
				PaymentStatus: models.PaymentStatus("refunded"),
			},
		},
	}

	svc := NewTripService(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, tt.input)
			require.Error(t, err)
			require.True(t, domain.IsValidation(err), "expected ValidationError, got %v", err)
		})
	}
}

func TestCreateTripDefaultsToUnpaid(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO "trips"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	svc := NewTripService(db, nil)
	trip, err := svc.Create(context.Background(), 3, CreateTripInput{
		Destination: "Durban",
		StartDate:   time.Now(),
		AmountDue:   decimal.NewFromInt(250),
	})
	require.NoError(t, err)
	require.Equal(t, uint(7), trip.ID)
	require.Equal(t, uint(3), trip.UserID)
	require.Equal(t, models.PaymentStatusUnpaid, trip.PaymentStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPaymentStatusNotOwned(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "trips"`).
		WillReturnRows(tripRows())

	svc := NewTripService(db, nil)
	_, err := svc.SetPaymentStatus(context.Background(), 9, 2, models.PaymentStatusPaid)
	require.Error(t, err)
	require.True(t, domain.IsNotFound(err), "expected NotFoundError, got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPaymentStatusIdempotent(t *testing.T) {
	db, mock := newMockDB(t)

	// Same status again: read only, no update statement.
	mock.ExpectQuery(`SELECT \* FROM "trips"`).
		WillReturnRows(tripRows().AddRow(9, 2, "Durban", "250.00", "paid"))

	svc := NewTripService(db, nil)
	trip, err := svc.SetPaymentStatus(context.Background(), 9, 2, models.PaymentStatusPaid)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPaid, trip.PaymentStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPaymentStatusTransition(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "trips"`).
		WillReturnRows(tripRows().AddRow(9, 2, "Durban", "250.00", "unpaid"))
	mock.ExpectExec(`UPDATE "trips" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := NewTripService(db, nil)
	trip, err := svc.SetPaymentStatus(context.Background(), 9, 2, models.PaymentStatusPartial)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPartial, trip.PaymentStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOutstandingBalanceSumsUnpaidTrips(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "trips"`).
		WillReturnRows(tripRows().
			AddRow(1, 2, "Durban", "100.10", "unpaid").
			AddRow(2, 2, "Pretoria", "49.95", "unpaid").
			AddRow(3, 2, "Soweto", "0.00", "unpaid"))

	svc := NewTripService(db, nil)
	balance, err := svc.OutstandingBalance(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 3, balance.Count)
	require.Len(t, balance.Trips, 3)
	require.True(t, balance.Total.Equal(decimal.RequireFromString("150.05")),
		"total = %s", balance.Total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOutstandingBalanceEmpty(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "trips"`).
		WillReturnRows(tripRows())

	svc := NewTripService(db, nil)
	balance, err := svc.OutstandingBalance(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 0, balance.Count)
	require.True(t, balance.Total.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}
