package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction. Rolling back an already finished transaction is not an error.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// writeError maps constraint violations raised by a write onto client errors;
// anything else is wrapped with msg and surfaces as a 500.
func writeError(err error, msg string) error {
	switch pgErrorCode(err) {
	case pgUniqueViolation:
		return apperrors.NewConflictError("A record with the same values already exists")
	case pgForeignKeyViolation:
		return apperrors.NewBadRequestError("A referenced record does not exist")
	case pgCheckViolation:
		return apperrors.NewBadRequestError("A value is outside the allowed range")
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// notFoundIfNoRows maps pgx.ErrNoRows to apperrors.ErrNotFound and wraps everything else.
func notFoundIfNoRows(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	return apperrors.NewAppError(http.StatusInternalServerError, msg, err)
}

// requireRowsAffected turns an UPDATE or DELETE that touched nothing into ErrNotFound.
func requireRowsAffected(tag pgconn.CommandTag, err error, msg string) error {
	if err != nil {
		return writeError(err, msg)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
