package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
)

// BillReader defines read operations for bills
type BillReader interface {
	FindBillByID(ctx context.Context, userID, billID string) (*domain.Bill, error)
	// ListBills resolves the derived overdue status against today.
	ListBills(ctx context.Context, userID string, filter domain.BillFilter, today time.Time) ([]domain.Bill, error)
}

// BillWriter defines write operations for bills
type BillWriter interface {
	SaveBill(ctx context.Context, bill domain.Bill) error
	UpdateBill(ctx context.Context, bill domain.Bill) error
	DeleteBill(ctx context.Context, userID, billID string) error
	// SetBillStatus moves an open bill to status. Returns apperrors.ErrValidation when the bill is not open.
	SetBillStatus(ctx context.Context, bill domain.Bill) error
	// PayBill marks an open bill paid and, when txn is not nil, stores the settling
	// transaction in the same database transaction.
	PayBill(ctx context.Context, bill domain.Bill, txn *domain.Transaction) error
}

// BillRecurrenceManager defines operations on recurring bill templates
type BillRecurrenceManager interface {
	// SaveRecurrence stores the template together with its first bill.
	SaveRecurrence(ctx context.Context, recurrence domain.BillRecurrence, first domain.Bill) error
	FindRecurrenceByID(ctx context.Context, userID, recurrenceID string) (*domain.BillRecurrence, error)
	ListRecurrences(ctx context.Context, userID string) ([]domain.BillRecurrence, error)
	// ListDueRecurrences returns active templates whose next due date is on or before horizon.
	ListDueRecurrences(ctx context.Context, userID string, horizon time.Time) ([]domain.BillRecurrence, error)
	// AdvanceRecurrence inserts generated bills and moves the template forward, guarded by
	// the previous next due date. It returns false when another run advanced it first.
	AdvanceRecurrence(ctx context.Context, recurrence domain.BillRecurrence, previousNextDue time.Time, bills []domain.Bill) (bool, error)
	DeactivateRecurrence(ctx context.Context, userID, recurrenceID string, at time.Time) error
}

// BillRepositoryFacade combines all bill repository interfaces
type BillRepositoryFacade interface {
	BillReader
	BillWriter
	BillRecurrenceManager
}

// BillRepositoryWithTx extends BillRepositoryFacade with transaction capabilities
type BillRepositoryWithTx interface {
	BillRepositoryFacade
	TransactionManager
}
