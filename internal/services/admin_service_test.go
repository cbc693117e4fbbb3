package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/kingjj-tech/Trackporter/internal/domain"
	"github.com/kingjj-tech/Trackporter/internal/models"
)

func TestOverridePaymentStatusWritesAudit(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "trips"`).
		WillReturnRows(tripRows().AddRow(4, 8, "Durban", "300.00", "unpaid"))
	mock.ExpectExec(`UPDATE "trips" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "admin_actions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	svc := NewAdminService(db, nil)
	trip, err := svc.OverridePaymentStatus(context.Background(), 1, 4, models.PaymentStatusPaid)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPaid, trip.PaymentStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOverridePaymentStatusAuditFailureDoesNotRollBack(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "trips"`).
		WillReturnRows(tripRows().AddRow(4, 8, "Durban", "300.00", "unpaid"))
	mock.ExpectExec(`UPDATE "trips" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "admin_actions"`).
		WillReturnError(errors.New("audit table unavailable"))

	svc := NewAdminService(db, nil)
	trip, err := svc.OverridePaymentStatus(context.Background(), 1, 4, models.PaymentStatusPaid)

	// The status change has already committed; the audit failure is only
	// logged.
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPaid, trip.PaymentStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOverridePaymentStatusMissingTrip(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "trips"`).
		WillReturnRows(tripRows())

	svc := NewAdminService(db, nil)
	_, err := svc.OverridePaymentStatus(context.Background(), 1, 404, models.PaymentStatusPaid)
	require.Error(t, err)
	require.True(t, domain.IsNotFound(err), "expected NotFoundError, got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOverridePaymentStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewAdminService(nil, nil)
	_, err := svc.OverridePaymentStatus(context.Background(), 1, 4, models.PaymentStatus("void"))
	require.True(t, domain.IsValidation(err), "expected ValidationError, got %v", err)
}
