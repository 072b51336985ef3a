package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/personal_finance_app/internal/models"
	"github.com/SscSPs/personal_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLoanRepository struct {
	BaseRepository
}

func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepositoryWithTx {
	return &PgxLoanRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LoanRepositoryWithTx = (*PgxLoanRepository)(nil)

const loanColumns = `
	loan_id, user_id, type, amount, person, paid_amount, description, loan_date, due_date,
	created_at, created_by, last_updated_at, last_updated_by
`

const loanPaymentColumns = `
	payment_id, loan_id, amount, paid_at, notes,
	created_at, created_by, last_updated_at, last_updated_by
`

// querier is satisfied by both the pool and a pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func findLoan(ctx context.Context, q querier, filter string, args ...any) (*domain.Loan, error) {
	rows, err := q.Query(ctx, `SELECT `+loanColumns+` FROM loans `+filter, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loan: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Loan])
	if err != nil {
		return nil, notFoundIfNoRows(err, "failed to scan loan")
	}
	loan := mapping.ToDomainLoan(m)
	return &loan, nil
}

func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, userID, loanID string) (*domain.Loan, error) {
	return findLoan(ctx, r.Pool, `WHERE loan_id = $1 AND user_id = $2`, loanID, userID)
}

func (r *PgxLoanRepository) ListLoans(ctx context.Context, userID string, loanType domain.LoanType) ([]domain.Loan, error) {
	w := &whereClause{}
	w.add("user_id = ?", userID)
	if loanType != "" {
		w.add("type = ?", string(loanType))
	}
	rows, err := r.Pool.Query(ctx, `SELECT `+loanColumns+` FROM loans`+w.String()+` ORDER BY loan_date DESC, created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Loan])
	if err != nil {
		return nil, fmt.Errorf("failed to collect loan rows: %w", err)
	}
	return mapping.ToDomainLoanSlice(ms), nil
}

func (r *PgxLoanRepository) ListPayments(ctx context.Context, userID, loanID string) ([]domain.LoanPayment, error) {
	query := `
		SELECT ` + loanPaymentColumns + `
		FROM loan_payments
		WHERE loan_id = $1 AND EXISTS (SELECT 1 FROM loans l WHERE l.loan_id = $1 AND l.user_id = $2)
		ORDER BY paid_at, created_at
	`
	rows, err := r.Pool.Query(ctx, query, loanID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loan payments: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LoanPayment])
	if err != nil {
		return nil, fmt.Errorf("failed to collect loan payment rows: %w", err)
	}
	return mapping.ToDomainLoanPaymentSlice(ms), nil
}

func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LoanID, m.UserID, m.Type, m.Amount, m.Person, m.PaidAmount, m.Description, m.LoanDate, m.DueDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return writeError(err, "failed to save loan")
	}
	return nil
}

func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)
	query := `
		UPDATE loans
		SET type = $1, amount = $2, person = $3, description = $4, loan_date = $5, due_date = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE loan_id = $9 AND user_id = $10 AND paid_amount <= $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Type, m.Amount, m.Person, m.Description, m.LoanDate, m.DueDate,
		m.LastUpdatedAt, m.LastUpdatedBy, m.LoanID, m.UserID,
	)
	if err != nil {
		return writeError(err, "failed to update loan")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("loan not found or amount below what was already paid: %w", apperrors.ErrValidation)
	}
	return nil
}

func (r *PgxLoanRepository) DeleteLoan(ctx context.Context, userID, loanID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM loans WHERE loan_id = $1 AND user_id = $2`, loanID, userID)
	return requireRowsAffected(tag, err, "failed to delete loan")
}

func setPaidAmount(ctx context.Context, tx pgx.Tx, loan *domain.Loan) error {
	query := `
		UPDATE loans SET paid_amount = $1, last_updated_at = $2, last_updated_by = $3
		WHERE loan_id = $4;
	`
	if _, err := tx.Exec(ctx, query, loan.PaidAmount, loan.LastUpdatedAt, loan.LastUpdatedBy, loan.LoanID); err != nil {
		return writeError(err, "failed to update loan paid amount")
	}
	return nil
}

func (r *PgxLoanRepository) AddPayment(ctx context.Context, userID string, payment domain.LoanPayment) (*domain.Loan, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	loan, err := findLoan(ctx, tx, `WHERE loan_id = $1 AND user_id = $2 FOR UPDATE`, payment.LoanID, userID)
	if err != nil {
		return nil, err
	}
	if payment.Amount.GreaterThan(loan.Remaining()) {
		return nil, fmt.Errorf("payment of %s exceeds remaining %s: %w", payment.Amount, loan.Remaining(), apperrors.ErrValidation)
	}

	m := mapping.ToModelLoanPayment(payment)
	query := `
		INSERT INTO loan_payments (` + loanPaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := tx.Exec(ctx, query,
		m.PaymentID, m.LoanID, m.Amount, m.PaidAt, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	); err != nil {
		return nil, writeError(err, "failed to save loan payment")
	}

	loan.PaidAmount = loan.PaidAmount.Add(payment.Amount)
	loan.Touch(payment.CreatedBy, payment.CreatedAt)
	if err := setPaidAmount(ctx, tx, loan); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return loan, nil
}

func (r *PgxLoanRepository) DeletePayment(ctx context.Context, userID, loanID, paymentID string) (*domain.Loan, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	loan, err := findLoan(ctx, tx, `WHERE loan_id = $1 AND user_id = $2 FOR UPDATE`, loanID, userID)
	if err != nil {
		return nil, err
	}

	var amount decimal.Decimal
	err = tx.QueryRow(ctx, `DELETE FROM loan_payments WHERE payment_id = $1 AND loan_id = $2 RETURNING amount`, paymentID, loanID).Scan(&amount)
	if err != nil {
		return nil, notFoundIfNoRows(err, "failed to delete loan payment")
	}

	loan.PaidAmount = loan.PaidAmount.Sub(amount)
	if loan.PaidAmount.IsNegative() {
		loan.PaidAmount = decimal.Zero
	}
	if err := setPaidAmount(ctx, tx, loan); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return loan, nil
}
