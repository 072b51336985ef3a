package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/personal_finance_app/internal/models"
	"github.com/SscSPs/personal_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBillRepository struct {
	BaseRepository
}

func newPgxBillRepository(pool *pgxpool.Pool) portsrepo.BillRepositoryWithTx {
	return &PgxBillRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BillRepositoryWithTx = (*PgxBillRepository)(nil)

const billColumns = `
	bill_id, user_id, type, amount, category, description, due_date, status, paid_at, recurrence_id,
	created_at, created_by, last_updated_at, last_updated_by
`

const billInsertQuery = `
	INSERT INTO bills (` + billColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

func billInsertArgs(b domain.Bill) []any {
	m := mapping.ToModelBill(b)
	return []any{
		m.BillID, m.UserID, m.Type, m.Amount, m.Category, m.Description, m.DueDate, m.Status, m.PaidAt, m.RecurrenceID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

const recurrenceColumns = `
	recurrence_id, user_id, type, amount, category, description, frequency, interval_count,
	start_date, end_date, next_due_date, active,
	created_at, created_by, last_updated_at, last_updated_by
`

func (r *PgxBillRepository) getBills(ctx context.Context, filter string, args ...any) ([]domain.Bill, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+billColumns+` FROM bills `+filter, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Bill])
	if err != nil {
		return nil, fmt.Errorf("failed to collect bill rows: %w", err)
	}
	return mapping.ToDomainBillSlice(ms), nil
}

func (r *PgxBillRepository) FindBillByID(ctx context.Context, userID, billID string) (*domain.Bill, error) {
	bills, err := r.getBills(ctx, `WHERE bill_id = $1 AND user_id = $2`, billID, userID)
	if err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &bills[0], nil
}

func (r *PgxBillRepository) ListBills(ctx context.Context, userID string, filter domain.BillFilter, today time.Time) ([]domain.Bill, error) {
	w := &whereClause{}
	w.add("user_id = ?", userID)
	switch filter.Status {
	case "":
	case domain.BillOverdue:
		w.add("status = ?", string(domain.BillOpen))
		w.add("due_date < ?", today)
	case domain.BillOpen:
		w.add("status = ?", string(domain.BillOpen))
		w.add("due_date >= ?", today)
	default:
		w.add("status = ?", string(filter.Status))
	}
	if filter.Type != "" {
		w.add("type = ?", string(filter.Type))
	}
	if filter.From != nil {
		w.add("due_date >= ?", *filter.From)
	}
	if filter.To != nil {
		w.add("due_date < ?", *filter.To)
	}
	return r.getBills(ctx, w.String()+` ORDER BY due_date, created_at`, w.args...)
}

func (r *PgxBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	if _, err := r.Pool.Exec(ctx, billInsertQuery, billInsertArgs(bill)...); err != nil {
		return writeError(err, "failed to save bill")
	}
	return nil
}

func (r *PgxBillRepository) UpdateBill(ctx context.Context, bill domain.Bill) error {
	m := mapping.ToModelBill(bill)
	query := `
		UPDATE bills
		SET type = $1, amount = $2, category = $3, description = $4, due_date = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE bill_id = $8 AND user_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Type, m.Amount, m.Category, m.Description, m.DueDate,
		m.LastUpdatedAt, m.LastUpdatedBy, m.BillID, m.UserID,
	)
	return requireRowsAffected(tag, err, "failed to update bill")
}

func (r *PgxBillRepository) DeleteBill(ctx context.Context, userID, billID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM bills WHERE bill_id = $1 AND user_id = $2`, billID, userID)
	return requireRowsAffected(tag, err, "failed to delete bill")
}

const closeOpenBillQuery = `
	UPDATE bills
	SET status = $1, paid_at = $2, last_updated_at = $3, last_updated_by = $4
	WHERE bill_id = $5 AND user_id = $6 AND status = 'open';
`

func closeOpenBillArgs(b domain.Bill) []any {
	return []any{string(b.Status), b.PaidAt, b.LastUpdatedAt, b.LastUpdatedBy, b.BillID, b.UserID}
}

func errBillNotOpen(billID string) error {
	return fmt.Errorf("bill %s is no longer open: %w", billID, apperrors.ErrValidation)
}

func (r *PgxBillRepository) SetBillStatus(ctx context.Context, bill domain.Bill) error {
	tag, err := r.Pool.Exec(ctx, closeOpenBillQuery, closeOpenBillArgs(bill)...)
	if err != nil {
		return writeError(err, "failed to update bill status")
	}
	if tag.RowsAffected() == 0 {
		return errBillNotOpen(bill.BillID)
	}
	return nil
}

func (r *PgxBillRepository) PayBill(ctx context.Context, bill domain.Bill, txn *domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	tag, err := tx.Exec(ctx, closeOpenBillQuery, closeOpenBillArgs(bill)...)
	if err != nil {
		return writeError(err, "failed to mark bill paid")
	}
	if tag.RowsAffected() == 0 {
		return errBillNotOpen(bill.BillID)
	}
	if txn != nil {
		if _, err := tx.Exec(ctx, transactionInsertQuery, transactionInsertArgs(*txn)...); err != nil {
			return writeError(err, "failed to record bill transaction")
		}
	}
	return r.Commit(ctx, tx)
}

func recurrenceInsertArgs(rec domain.BillRecurrence) []any {
	m := mapping.ToModelBillRecurrence(rec)
	return []any{
		m.RecurrenceID, m.UserID, m.Type, m.Amount, m.Category, m.Description, m.Frequency, m.Interval,
		m.StartDate, m.EndDate, m.NextDueDate, m.Active,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

func (r *PgxBillRepository) SaveRecurrence(ctx context.Context, recurrence domain.BillRecurrence, first domain.Bill) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO bill_recurrences (` + recurrenceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	if _, err := tx.Exec(ctx, query, recurrenceInsertArgs(recurrence)...); err != nil {
		return writeError(err, "failed to save bill recurrence")
	}
	if _, err := tx.Exec(ctx, billInsertQuery, billInsertArgs(first)...); err != nil {
		return writeError(err, "failed to save first recurring bill")
	}
	return r.Commit(ctx, tx)
}

func (r *PgxBillRepository) getRecurrences(ctx context.Context, filter string, args ...any) ([]domain.BillRecurrence, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+recurrenceColumns+` FROM bill_recurrences `+filter, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bill recurrences: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BillRecurrence])
	if err != nil {
		return nil, fmt.Errorf("failed to collect bill recurrence rows: %w", err)
	}
	return mapping.ToDomainBillRecurrenceSlice(ms), nil
}

func (r *PgxBillRepository) FindRecurrenceByID(ctx context.Context, userID, recurrenceID string) (*domain.BillRecurrence, error) {
	recs, err := r.getRecurrences(ctx, `WHERE recurrence_id = $1 AND user_id = $2`, recurrenceID, userID)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &recs[0], nil
}

func (r *PgxBillRepository) ListRecurrences(ctx context.Context, userID string) ([]domain.BillRecurrence, error) {
	return r.getRecurrences(ctx, `WHERE user_id = $1 ORDER BY active DESC, next_due_date`, userID)
}

func (r *PgxBillRepository) ListDueRecurrences(ctx context.Context, userID string, horizon time.Time) ([]domain.BillRecurrence, error) {
	return r.getRecurrences(ctx, `WHERE user_id = $1 AND active AND next_due_date <= $2 ORDER BY next_due_date`, userID, horizon)
}

func (r *PgxBillRepository) AdvanceRecurrence(ctx context.Context, recurrence domain.BillRecurrence, previousNextDue time.Time, bills []domain.Bill) (bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		UPDATE bill_recurrences
		SET next_due_date = $1, active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE recurrence_id = $5 AND user_id = $6 AND active AND next_due_date = $7;
	`
	tag, err := tx.Exec(ctx, query,
		recurrence.NextDueDate, recurrence.Active, recurrence.LastUpdatedAt, recurrence.LastUpdatedBy,
		recurrence.RecurrenceID, recurrence.UserID, previousNextDue,
	)
	if err != nil {
		return false, writeError(err, "failed to advance bill recurrence")
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if len(bills) > 0 {
		batch := &pgx.Batch{}
		for _, b := range bills {
			batch.Queue(billInsertQuery+` ON CONFLICT (recurrence_id, due_date) WHERE recurrence_id IS NOT NULL DO NOTHING`, billInsertArgs(b)...)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return false, writeError(err, "failed to insert generated bills")
		}
	}
	if err := r.Commit(ctx, tx); err != nil {
		return false, err
	}
	return true, nil
}

func (r *PgxBillRepository) DeactivateRecurrence(ctx context.Context, userID, recurrenceID string, at time.Time) error {
	query := `
		UPDATE bill_recurrences
		SET active = false, last_updated_at = $1, last_updated_by = $2
		WHERE recurrence_id = $3 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, at, userID, recurrenceID)
	return requireRowsAffected(tag, err, "failed to deactivate bill recurrence")
}
