package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kingjj-tech/Trackporter/internal/domain"
	"github.com/kingjj-tech/Trackporter/internal/models"
)

func TestProcessPaymentSettlesBatch(t *testing.T) {
	db, mock := newMockDB(t)

	// Trip 1: ownership re-read, payment insert, status flip.
	mock.ExpectQuery(`SELECT \* FROM "trips"`).
		WillReturnRows(tripRows().AddRow(1, 5, "Durban", "120.50", "unpaid"))
	mock.ExpectQuery(`INSERT INTO "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(`UPDATE "trips" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Trip 2, same sequence.
	mock.ExpectQuery(`SELECT \* FROM "trips"`).
		WillReturnRows(tripRows().AddRow(2, 5, "Pretoria", "79.50", "unpaid"))
	mock.ExpectQuery(`INSERT INTO "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectExec(`UPDATE "trips" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := NewPaymentService(db, nil, NewSimulatedGateway(0))
	payments, err := svc.ProcessPayment(context.Background(), 5, []uint{1, 2}, "card")
	require.NoError(t, err)
	require.Len(t, payments, 2)

	for i, payment := range payments {
		require.Equal(t, models.PaymentStateCompleted, payment.PaymentStatus)
		require.Equal(t, "card", payment.PaymentMethod)
		require.NotEmpty(t, payment.OrderID)
		require.Equal(t, uint(i+1), payment.TripID)
	}
	require.True(t, payments[0].Amount.Equal(decimal.RequireFromString("120.50")))
	require.True(t, payments[1].Amount.Equal(decimal.RequireFromString("79.50")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessPaymentAbortsOnMissingTrip(t *testing.T) {
	db, mock := newMockDB(t)

	// First trip settles and stays committed.
	mock.ExpectQuery(`SELECT \* FROM "trips"`).
		WillReturnRows(tripRows().AddRow(1, 5, "Durban", "120.50", "unpaid"))
	mock.ExpectQuery(`INSERT INTO "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(`UPDATE "trips" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Second trip is not owned by the caller: empty ownership re-read.
	mock.ExpectQuery(`SELECT \* FROM "trips"`).
		WillReturnRows(tripRows())

	svc := NewPaymentService(db, nil, NewSimulatedGateway(0))
	payments, err := svc.ProcessPayment(context.Background(), 5, []uint{1, 99}, "card")
	require.Error(t, err)
	require.Nil(t, payments)

	var notFound domain.TripNotFoundError
	require.True(t, errors.As(err, &notFound), "expected TripNotFoundError, got %v", err)
	require.Equal(t, uint(99), notFound.TripID)

	// All expectations met: trip 1's payment and status flip were written
	// before the abort. The batch is not atomic.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessPaymentValidation(t *testing.T) {
	svc := NewPaymentService(nil, nil, NewSimulatedGateway(0))

	_, err := svc.ProcessPayment(context.Background(), 5, nil, "card")
	require.True(t, domain.IsValidation(err), "expected ValidationError, got %v", err)

	_, err = svc.ProcessPayment(context.Background(), 5, []uint{1}, "")
	require.True(t, domain.IsValidation(err), "expected ValidationError, got %v", err)
}
