package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/SscSPs/personal_finance_app/internal/utils/statement"
	"github.com/google/uuid"
)

type importService struct {
	BaseService
	parser          *statement.Parser
	categories      portssvc.CategoryReaderSvc
	transactionRepo portsrepo.TransactionWriter
}

func NewImportService(parser *statement.Parser, categories portssvc.CategoryReaderSvc, transactionRepo portsrepo.TransactionWriter, options ...ServiceOption) portssvc.ImportSvc {
	if parser == nil {
		parser = statement.NewParser()
	}
	return &importService{
		BaseService:     newBaseService(options),
		parser:          parser,
		categories:      categories,
		transactionRepo: transactionRepo,
	}
}

var _ portssvc.ImportSvc = (*importService)(nil)

func (s *importService) Preview(ctx context.Context, userID, filename string, content []byte, format statement.Format) (*statement.Result, error) {
	if format == "" {
		format = statement.DetectFormat(filename, content)
	}
	res, err := s.parser.Parse(content, format)
	if err != nil {
		s.LogInfo(ctx, "Statement rejected",
			slog.String("user_id", userID),
			slog.String("format", string(format)),
			slog.String("reason", err.Error()))
		return nil, err
	}
	s.LogInfo(ctx, "Statement parsed",
		slog.String("user_id", userID),
		slog.String("format", string(res.Format)),
		slog.Int("drafts", len(res.Drafts)),
		slog.Int("skipped", len(res.Skipped)))
	return res, nil
}

func (s *importService) Commit(ctx context.Context, userID string, req dto.ImportCommitRequest) (*dto.ImportCommitResponse, error) {
	if len(req.Drafts) == 0 {
		return nil, fmt.Errorf("no drafts to import: %w", apperrors.ErrValidation)
	}

	now := s.Now()
	resolved := make(map[string]string)
	txns := make([]domain.Transaction, 0, len(req.Drafts))
	for i, draft := range req.Drafts {
		date, err := dto.ParseDate(draft.Date)
		if err != nil {
			return nil, fmt.Errorf("draft %d: %w", i+1, err)
		}
		if !draft.Type.Valid() {
			return nil, fmt.Errorf("draft %d: invalid type %q: %w", i+1, draft.Type, apperrors.ErrValidation)
		}
		if !draft.Amount.IsPositive() {
			return nil, fmt.Errorf("draft %d: amount must be greater than zero: %w", i+1, apperrors.ErrValidation)
		}

		key := strings.ToLower(strings.TrimSpace(draft.Category))
		category, ok := resolved[key]
		if !ok {
			if category, err = s.categories.ResolveCategory(ctx, userID, draft.Category); err != nil {
				s.LogError(ctx, err, "Failed to resolve import category", slog.String("category", draft.Category))
				return nil, err
			}
			resolved[key] = category
		}

		txns = append(txns, domain.Transaction{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			Type:          draft.Type,
			Amount:        draft.Amount,
			Category:      category,
			Description:   strings.TrimSpace(draft.Description),
			Date:          date,
			Tags:          []string{},
			Source:        domain.SourceImport,
			ExternalID:    strings.TrimSpace(draft.ExternalID),
			AuditFields:   domain.NewAuditFields(userID, now),
		})
	}

	inserted, err := s.transactionRepo.SaveTransactions(ctx, txns)
	if err != nil {
		s.LogError(ctx, err, "Failed to import transactions", slog.String("user_id", userID), slog.Int("drafts", len(txns)))
		return nil, fmt.Errorf("failed to import transactions: %w", err)
	}
	resp := &dto.ImportCommitResponse{Imported: inserted, Duplicates: len(txns) - inserted}
	s.LogInfo(ctx, "Statement imported",
		slog.String("user_id", userID),
		slog.Int("imported", resp.Imported),
		slog.Int("duplicates", resp.Duplicates))
	return resp, nil
}
