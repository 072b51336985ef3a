package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/personal_finance_app/internal/models"
	"github.com/SscSPs/personal_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	transaction_id, user_id, type, amount, category, description, transaction_date,
	tags, notes, source, external_id,
	created_at, created_by, last_updated_at, last_updated_by
`

const transactionInsertQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`

func transactionInsertArgs(t domain.Transaction) []any {
	m := mapping.ToModelTransaction(t)
	return []any{
		m.TransactionID, m.UserID, m.Type, m.Amount, m.Category, m.Description, m.Date,
		m.Tags, m.Notes, m.Source, m.ExternalID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

// whereClause collects optional filters. Every ? in a condition refers to the argument added with it.
type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *whereClause) String() string {
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func transactionFilterClause(userID string, f domain.TransactionFilter) *whereClause {
	w := &whereClause{}
	w.add("user_id = ?", userID)
	if f.Type != "" {
		w.add("type = ?", string(f.Type))
	}
	if f.Category != "" {
		w.add("lower(category) = lower(?)", f.Category)
	}
	if f.From != nil {
		w.add("transaction_date >= ?", *f.From)
	}
	if f.To != nil {
		w.add("transaction_date < ?", *f.To)
	}
	if f.Search != "" {
		w.add("(description ILIKE ? OR notes ILIKE ?)", "%"+f.Search+"%")
	}
	return w
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 AND user_id = $2`
	rows, err := r.Pool.Query(ctx, query, transactionID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, notFoundIfNoRows(err, "failed to scan transaction")
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	w := transactionFilterClause(userID, filter)
	query := `SELECT ` + transactionColumns + ` FROM transactions` + w.String() +
		` ORDER BY transaction_date DESC, created_at DESC`
	args := w.args
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, fmt.Errorf("failed to collect transaction rows: %w", err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

func (r *PgxTransactionRepository) CountTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) (int, error) {
	w := transactionFilterClause(userID, filter)
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`+w.String(), w.args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	if _, err := r.Pool.Exec(ctx, transactionInsertQuery, transactionInsertArgs(txn)...); err != nil {
		return writeError(err, "failed to save transaction")
	}
	return nil
}

func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) (int, error) {
	if len(txns) == 0 {
		return 0, nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	batch := &pgx.Batch{}
	for _, t := range txns {
		batch.Queue(transactionInsertQuery+` ON CONFLICT (user_id, external_id) WHERE external_id IS NOT NULL DO NOTHING`, transactionInsertArgs(t)...)
	}
	results := tx.SendBatch(ctx, batch)
	inserted := 0
	for range txns {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return 0, writeError(err, "failed to insert imported transaction")
		}
		inserted += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, writeError(err, "failed to finish import batch")
	}
	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET type = $1, amount = $2, category = $3, description = $4, transaction_date = $5,
			tags = $6, notes = $7, last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $10 AND user_id = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Type, m.Amount, m.Category, m.Description, m.Date,
		m.Tags, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy,
		m.TransactionID, m.UserID,
	)
	return requireRowsAffected(tag, err, "failed to update transaction")
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2`, transactionID, userID)
	return requireRowsAffected(tag, err, "failed to delete transaction")
}
