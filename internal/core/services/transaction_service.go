package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/SscSPs/personal_finance_app/internal/utils/pagination"
	"github.com/google/uuid"
)

type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryWithTx
	categoryRepo    portsrepo.CategoryReader
}

func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryWithTx, categoryRepo portsrepo.CategoryReader, options ...ServiceOption) portssvc.TransactionSvcFacade {
	return &transactionService{
		BaseService:     newBaseService(options),
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// canonicalCategory returns the user's spelling of name when such a category exists.
// Unknown names are kept as free labels.
func (s *transactionService) canonicalCategory(ctx context.Context, userID, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.FallbackCategory, nil
	}
	category, err := s.categoryRepo.FindCategoryByName(ctx, userID, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return name, nil
		}
		return "", err
	}
	return category.Name, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if tag == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}

func validateTransaction(txn domain.Transaction) error {
	if !txn.Type.Valid() {
		return fmt.Errorf("invalid transaction type %q: %w", txn.Type, apperrors.ErrValidation)
	}
	if !txn.Amount.IsPositive() {
		return fmt.Errorf("transaction amount must be greater than zero: %w", apperrors.ErrValidation)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("transaction date is required: %w", apperrors.ErrValidation)
	}
	return nil
}

func (s *transactionService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	from, err := dto.ParseOptionalDate(params.From)
	if err != nil {
		return nil, err
	}
	to, err := dto.ParseOptionalDate(params.To)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("'to' must not be before 'from': %w", apperrors.ErrValidation)
	}

	page := pagination.NewPage(params.Limit, params.Offset)
	filter := domain.TransactionFilter{
		Type:     params.Type,
		Category: strings.TrimSpace(params.Category),
		From:     from,
		To:       dto.ExclusiveEnd(to),
		Search:   strings.TrimSpace(params.Search),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}

	txns, err := s.transactionRepo.ListTransactions(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, err
	}
	total, err := s.transactionRepo.CountTransactions(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to count transactions", slog.String("user_id", userID))
		return nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}

	return &dto.ListTransactionsResponse{
		Transactions: txns,
		Total:        total,
		Limit:        page.Limit,
		Offset:       page.Offset,
		NextOffset:   page.NextOffset(total),
	}, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	category, err := s.canonicalCategory(ctx, userID, req.Category)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve category", slog.String("category", req.Category))
		return nil, err
	}
	return s.RecordTransaction(ctx, domain.Transaction{
		UserID:      userID,
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    category,
		Description: strings.TrimSpace(req.Description),
		Date:        date,
		Tags:        normalizeTags(req.Tags),
		Notes:       req.Notes,
		Source:      domain.SourceManual,
	})
}

func (s *transactionService) RecordTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	if err := validateTransaction(txn); err != nil {
		return nil, err
	}
	if txn.TransactionID == "" {
		txn.TransactionID = uuid.NewString()
	}
	if txn.Source == "" {
		txn.Source = domain.SourceManual
	}
	if txn.Category == "" {
		txn.Category = domain.FallbackCategory
	}
	if txn.Tags == nil {
		txn.Tags = []string{}
	}
	txn.Date = domain.DateOnly(txn.Date)
	txn.AuditFields = domain.NewAuditFields(txn.UserID, s.Now())

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("user_id", txn.UserID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("source", string(txn.Source)))
	return &txn, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.GetTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		txn.Type = *req.Type
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Category != nil {
		category, err := s.canonicalCategory(ctx, userID, *req.Category)
		if err != nil {
			return nil, err
		}
		txn.Category = category
	}
	if req.Description != nil {
		txn.Description = strings.TrimSpace(*req.Description)
	}
	if req.Date != nil {
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		txn.Date = date
	}
	if req.Tags != nil {
		txn.Tags = normalizeTags(*req.Tags)
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}
	if err := validateTransaction(*txn); err != nil {
		return nil, err
	}
	txn.Touch(userID, s.Now())

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	if err := s.transactionRepo.DeleteTransaction(ctx, userID, transactionID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		}
		return err
	}
	return nil
}
