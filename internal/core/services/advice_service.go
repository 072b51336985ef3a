package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
)

const (
	// DefaultAdviceHistoryDays is the look-back window used when none is configured.
	DefaultAdviceHistoryDays = 90
	// maxAdviceTransactions caps how many transactions are serialized into the prompt.
	maxAdviceTransactions = 200

	adviceSystemPrompt = "You are a personal finance assistant for a Brazilian user. " +
		"Amounts are in BRL. Answer in Portuguese with short, practical recommendations " +
		"based only on the data provided. Do not invent transactions."

	defaultAdviceQuestion = "Como posso melhorar minhas finanças com base nesses dados?"

	// NoHistoryAdvice is returned without calling the model when there is nothing to analyse.
	NoHistoryAdvice = "Ainda não há transações suficientes para gerar conselhos. Registre algumas receitas e despesas e tente novamente."
)

// ErrAdvisorNotConfigured is returned when no language model is configured.
var ErrAdvisorNotConfigured = fmt.Errorf("advice is not configured: %w", apperrors.ErrUpstream)

type adviceService struct {
	BaseService
	advisor         portssvc.Advisor
	transactionRepo portsrepo.TransactionReader
	reportingRepo   portsrepo.ReportingRepository
	historyDays     int
}

// NewAdviceService creates the advice service. advisor may be nil when no model is configured.
func NewAdviceService(advisor portssvc.Advisor, transactionRepo portsrepo.TransactionReader, reportingRepo portsrepo.ReportingRepository, historyDays int, options ...ServiceOption) portssvc.AdviceSvc {
	if historyDays <= 0 {
		historyDays = DefaultAdviceHistoryDays
	}
	return &adviceService{
		BaseService:     newBaseService(options),
		advisor:         advisor,
		transactionRepo: transactionRepo,
		reportingRepo:   reportingRepo,
		historyDays:     historyDays,
	}
}

var _ portssvc.AdviceSvc = (*adviceService)(nil)

func (s *adviceService) GetAdvice(ctx context.Context, userID, question string) (string, error) {
	if s.advisor == nil {
		return "", ErrAdvisorNotConfigured
	}

	to := domain.DateOnly(s.Now()).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -s.historyDays)

	txns, err := s.transactionRepo.ListTransactions(ctx, userID, domain.TransactionFilter{
		From:  &from,
		To:    &to,
		Limit: maxAdviceTransactions,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for advice", slog.String("user_id", userID))
		return "", err
	}
	if len(txns) == 0 {
		return NoHistoryAdvice, nil
	}

	summary, err := s.reportingRepo.Summarize(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize transactions for advice", slog.String("user_id", userID))
		return "", err
	}
	totals, err := s.reportingRepo.TotalsByCategory(ctx, userID, domain.Expense, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to total expenses for advice", slog.String("user_id", userID))
		return "", err
	}

	prompt := BuildAdvicePrompt(question, s.historyDays, summary, domain.WithPercentages(totals), txns)
	start := time.Now()
	advice, err := s.advisor.Complete(ctx, adviceSystemPrompt, prompt)
	if err != nil {
		s.LogError(ctx, err, "Advisor request failed", slog.String("user_id", userID))
		if errors.Is(err, apperrors.ErrUpstream) {
			return "", err
		}
		return "", fmt.Errorf("advisor request failed: %v: %w", err, apperrors.ErrUpstream)
	}
	s.LogInfo(ctx, "Advice generated",
		slog.String("user_id", userID),
		slog.Int("transactions", len(txns)),
		slog.Duration("latency", time.Since(start)))
	return strings.TrimSpace(advice), nil
}

// BuildAdvicePrompt serializes the user's recent history into the prompt sent to the model.
func BuildAdvicePrompt(question string, days int, summary *domain.Summary, expenses []domain.CategoryTotal, txns []domain.Transaction) string {
	question = strings.TrimSpace(question)
	if question == "" {
		question = defaultAdviceQuestion
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Resumo dos últimos %d dias:\n", days)
	fmt.Fprintf(&b, "- Receitas: %s (%d lançamentos)\n", summary.Income.StringFixed(2), summary.IncomeCount)
	fmt.Fprintf(&b, "- Despesas: %s (%d lançamentos)\n", summary.Expense.StringFixed(2), summary.ExpenseCount)
	fmt.Fprintf(&b, "- Saldo: %s\n", summary.Balance.StringFixed(2))

	if len(expenses) > 0 {
		b.WriteString("\nDespesas por categoria:\n")
		for _, t := range expenses {
			fmt.Fprintf(&b, "- %s: %s (%s%%)\n", t.Category, t.Total.StringFixed(2), t.Percentage.StringFixed(2))
		}
	}

	b.WriteString("\nTransações (data | tipo | categoria | descrição | valor):\n")
	for _, t := range txns {
		fmt.Fprintf(&b, "%s | %s | %s | %s | %s\n",
			t.Date.Format("2006-01-02"), t.Type, t.Category, t.Description, t.Amount.StringFixed(2))
	}

	fmt.Fprintf(&b, "\nPergunta: %s", question)
	return b.String()
}
