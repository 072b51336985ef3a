package services

import (
	"context"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	"github.com/SscSPs/personal_finance_app/internal/dto"
)

// BillReaderSvc defines read operations for bills
type BillReaderSvc interface {
	GetBill(ctx context.Context, userID, billID string) (*domain.Bill, error)
	// ListBills generates pending recurring bills before listing.
	ListBills(ctx context.Context, userID string, params dto.ListBillsParams) ([]domain.Bill, error)
}

// BillWriterSvc defines write operations for bills
type BillWriterSvc interface {
	CreateBill(ctx context.Context, userID string, req dto.CreateBillRequest) (*domain.Bill, error)
	UpdateBill(ctx context.Context, userID, billID string, req dto.UpdateBillRequest) (*domain.Bill, error)
	DeleteBill(ctx context.Context, userID, billID string) error
	// PayBill closes an open bill, optionally recording the matching transaction atomically.
	PayBill(ctx context.Context, userID, billID string, req dto.PayBillRequest) (*domain.Bill, *domain.Transaction, error)
	CancelBill(ctx context.Context, userID, billID string) (*domain.Bill, error)
}

// BillRecurrenceSvc manages recurrence templates.
type BillRecurrenceSvc interface {
	ListRecurrences(ctx context.Context, userID string) ([]domain.BillRecurrence, error)
	DeactivateRecurrence(ctx context.Context, userID, recurrenceID string) error
	// GenerateDueBills materializes every occurrence up to the configured horizon and
	// returns how many bills were created.
	GenerateDueBills(ctx context.Context, userID string) (int, error)
}

// BillSvcFacade combines all bill-related service interfaces
type BillSvcFacade interface {
	BillReaderSvc
	BillWriterSvc
	BillRecurrenceSvc
}
