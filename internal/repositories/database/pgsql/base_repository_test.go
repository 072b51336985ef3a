package pgsql

import (
	"errors"
	"net/http"
	"testing"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		status   int
	}{
		{"check violation", &pgconn.PgError{Code: pgCheckViolation, ConstraintName: "transactions_amount_check"}, apperrors.ErrValidation, http.StatusBadRequest},
		{"foreign key violation", &pgconn.PgError{Code: pgForeignKeyViolation}, apperrors.ErrValidation, http.StatusBadRequest},
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation}, apperrors.ErrDuplicate, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := writeError(tt.err, "failed to save transaction")
			assert.ErrorIs(t, err, tt.sentinel)

			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.status, appErr.Code)
		})
	}

	other := writeError(errors.New("connection reset"), "failed to save transaction")
	assert.EqualError(t, other, "failed to save transaction: connection reset")
	var appErr *apperrors.AppError
	assert.False(t, errors.As(other, &appErr))
}

func TestRequireRowsAffected(t *testing.T) {
	assert.NoError(t, requireRowsAffected(pgconn.NewCommandTag("UPDATE 1"), nil, "failed to update goal"))
	assert.ErrorIs(t, requireRowsAffected(pgconn.NewCommandTag("UPDATE 0"), nil, "failed to update goal"), apperrors.ErrNotFound)

	err := requireRowsAffected(pgconn.CommandTag{}, &pgconn.PgError{Code: pgCheckViolation}, "failed to update goal")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNotFoundIfNoRows(t *testing.T) {
	assert.ErrorIs(t, notFoundIfNoRows(pgx.ErrNoRows, "failed to scan goal"), apperrors.ErrNotFound)
	assert.NotErrorIs(t, notFoundIfNoRows(errors.New("boom"), "failed to scan goal"), apperrors.ErrNotFound)
}
