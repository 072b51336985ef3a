package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/SscSPs/personal_finance_app/internal/utils"
	"github.com/SscSPs/personal_finance_app/internal/utils/statement"
	"github.com/SscSPs/personal_finance_app/internal/utils/whatsapp"
)

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

type whatsAppService struct {
	BaseService
	users         portssvc.UserReaderSvc
	categories    portssvc.CategoryReaderSvc
	transactions  portssvc.TransactionWriterSvc
	reportingRepo portsrepo.ReportingRepository
	categorizer   *statement.Categorizer
}

func NewWhatsAppService(
	users portssvc.UserReaderSvc,
	categories portssvc.CategoryReaderSvc,
	transactions portssvc.TransactionWriterSvc,
	reportingRepo portsrepo.ReportingRepository,
	categorizer *statement.Categorizer,
	options ...ServiceOption,
) portssvc.WhatsAppSvc {
	if categorizer == nil {
		categorizer = statement.DefaultCategorizer()
	}
	return &whatsAppService{
		BaseService:   newBaseService(options),
		users:         users,
		categories:    categories,
		transactions:  transactions,
		reportingRepo: reportingRepo,
		categorizer:   categorizer,
	}
}

var _ portssvc.WhatsAppSvc = (*whatsAppService)(nil)

// HandleMessage classifies message and acts on it for userID. Unknown users yield apperrors.ErrNotFound.
func (s *whatsAppService) HandleMessage(ctx context.Context, userID, message string) (*dto.WhatsAppMessageResponse, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	cmd := whatsapp.Parse(message)
	s.LogDebug(ctx, "WhatsApp message classified", slog.String("user_id", userID), slog.String("kind", string(cmd.Kind)))

	var (
		text string
		err  error
	)
	switch cmd.Kind {
	case whatsapp.KindExpense:
		text, err = s.record(ctx, userID, cmd, domain.Expense)
	case whatsapp.KindIncome:
		text, err = s.record(ctx, userID, cmd, domain.Income)
	case whatsapp.KindBalance:
		text, err = s.balance(ctx, userID)
	case whatsapp.KindHelp:
		text = whatsapp.HelpText
	default:
		text = "Não entendi sua mensagem.\n\n" + whatsapp.HelpText
	}
	if err != nil {
		return nil, err
	}
	return &dto.WhatsAppMessageResponse{Response: text, Kind: cmd.Kind}, nil
}

func (s *whatsAppService) record(ctx context.Context, userID string, cmd whatsapp.Command, txType domain.TransactionType) (string, error) {
	category, err := s.categories.ResolveCategory(ctx, userID, s.categorizer.Categorize(cmd.Description))
	if err != nil {
		return "", err
	}
	description := cmd.Description
	if description == "" {
		description = category
	}

	txn, err := s.transactions.RecordTransaction(ctx, domain.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      cmd.Amount,
		Category:    category,
		Description: description,
		Date:        domain.DateOnly(s.Now()),
		Source:      domain.SourceWhatsApp,
	})
	if err != nil {
		return "", err
	}

	label := "Despesa"
	if txType == domain.Income {
		label = "Receita"
	}
	return fmt.Sprintf("✅ %s registrada: %s - %s (%s)", label, utils.FormatBRL(txn.Amount), txn.Description, txn.Category), nil
}

func (s *whatsAppService) balance(ctx context.Context, userID string) (string, error) {
	from, to := domain.MonthRange(s.Now())
	summary, err := s.reportingRepo.Summarize(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize month for WhatsApp", slog.String("user_id", userID))
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Resumo de %s/%d\n", monthNames[from.Month()-1], from.Year())
	fmt.Fprintf(&b, "Receitas: %s\n", utils.FormatBRL(summary.Income))
	fmt.Fprintf(&b, "Despesas: %s\n", utils.FormatBRL(summary.Expense))
	fmt.Fprintf(&b, "Saldo: %s", utils.FormatBRL(summary.Balance))
	return b.String(), nil
}
