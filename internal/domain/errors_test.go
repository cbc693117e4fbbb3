package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorPredicatesMatchWrappedErrors(t *testing.T) {
	base := errors.New("connection reset")

	cases := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", ValidationError{Field: "destination", Msg: "is required"}, IsValidation},
		{"not found", NotFoundError{Resource: "trip"}, IsNotFound},
		{"trip not found", TripNotFoundError{TripID: 42}, IsTripNotFound},
		{"authentication", AuthenticationError{Msg: "invalid token"}, IsAuthentication},
		{"forbidden", ForbiddenError{Msg: "admin access required"}, IsForbidden},
		{"persistence", PersistenceError{Op: "create payment", Err: base}, IsPersistence},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.True(t, tc.check(tc.err))
			require.True(t, tc.check(fmt.Errorf("handling request: %w", tc.err)))
			require.False(t, tc.check(base))
		})
	}
}

func TestTripNotFoundErrorMessage(t *testing.T) {
	require.Equal(t, "Trip 42 not found", TripNotFoundError{TripID: 42}.Error())
}

func TestPersistenceErrorUnwraps(t *testing.T) {
	base := errors.New("deadlock detected")
	err := PersistenceError{Op: "update trip", Err: base}
	require.ErrorIs(t, err, base)
	require.Contains(t, err.Error(), "update trip")
}
