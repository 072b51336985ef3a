package services

import (
	portsrepo "github.com/SscSPs/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/platform/config"
	"github.com/SscSPs/personal_finance_app/internal/utils/statement"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// advisor may be nil when no language model is configured; categorizer defaults to the built-in table.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, advisor portssvc.Advisor, categorizer *statement.Categorizer) *portssvc.ServiceContainer {
	if categorizer == nil {
		categorizer = statement.DefaultCategorizer()
	}
	container := &portssvc.ServiceContainer{}

	// Categories first: users, imports and WhatsApp resolve names through them
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.User = NewUserService(repos.UserRepo, container.Category)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.CategoryRepo)
	container.Bill = NewBillService(repos.BillRepo, cfg.BillRecurrenceHorizon)
	container.Loan = NewLoanService(repos.LoanRepo)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.ReportingRepo)
	container.Goal = NewGoalService(repos.GoalRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, container.Budget)

	container.Import = NewImportService(
		statement.NewParser(statement.WithCategorizer(categorizer)),
		container.Category,
		repos.TransactionRepo,
	)
	container.WhatsApp = NewWhatsAppService(
		container.User,
		container.Category,
		container.Transaction,
		repos.ReportingRepo,
		categorizer,
	)
	container.Advice = NewAdviceService(advisor, repos.TransactionRepo, repos.ReportingRepo, cfg.AdviceHistoryDays)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
