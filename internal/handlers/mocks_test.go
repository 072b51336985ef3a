package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/SscSPs/personal_finance_app/internal/utils/statement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func argOrZero[T any](args mock.Arguments, i int) T {
	var zero T
	if args.Get(i) == nil {
		return zero
	}
	return args.Get(i).(T)
}

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	return argOrZero[*domain.User](args, 0), args.Error(1)
}
func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	return argOrZero[*domain.User](args, 0), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	return argOrZero[*domain.User](args, 0), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	return argOrZero[*domain.User](args, 0), args.Error(1)
}
func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime).Error(0)
}
func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	return argOrZero[*domain.User](args, 0), args.Error(1)
}
func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	return argOrZero[*domain.User](args, 0), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) IssueRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	args := m.Called(ctx, userID, refreshTokenString)
	return argOrZero[*domain.User](args, 0), args.Error(1)
}
func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock GoogleOAuthService ---
type MockGoogleService struct {
	mock.Mock
}

func (m *MockGoogleService) VerifyIDToken(ctx context.Context, idToken string) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, idToken)
	return argOrZero[*domain.GoogleUserInfo](args, 0), args.Error(1)
}
func (m *MockGoogleService) ExchangeCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*MockGoogleService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	return argOrZero[*domain.Transaction](args, 0), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, params)
	return argOrZero[*dto.ListTransactionsResponse](args, 0), args.Error(1)
}
func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	return argOrZero[*domain.Transaction](args, 0), args.Error(1)
}
func (m *MockTransactionService) RecordTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	return argOrZero[*domain.Transaction](args, 0), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, req)
	return argOrZero[*domain.Transaction](args, 0), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	return m.Called(ctx, userID, transactionID).Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock BillService ---
type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) GetBill(ctx context.Context, userID, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, userID, billID)
	return argOrZero[*domain.Bill](args, 0), args.Error(1)
}
func (m *MockBillService) ListBills(ctx context.Context, userID string, params dto.ListBillsParams) ([]domain.Bill, error) {
	args := m.Called(ctx, userID, params)
	return argOrZero[[]domain.Bill](args, 0), args.Error(1)
}
func (m *MockBillService) CreateBill(ctx context.Context, userID string, req dto.CreateBillRequest) (*domain.Bill, error) {
	args := m.Called(ctx, userID, req)
	return argOrZero[*domain.Bill](args, 0), args.Error(1)
}
func (m *MockBillService) UpdateBill(ctx context.Context, userID, billID string, req dto.UpdateBillRequest) (*domain.Bill, error) {
	args := m.Called(ctx, userID, billID, req)
	return argOrZero[*domain.Bill](args, 0), args.Error(1)
}
func (m *MockBillService) DeleteBill(ctx context.Context, userID, billID string) error {
	return m.Called(ctx, userID, billID).Error(0)
}
func (m *MockBillService) PayBill(ctx context.Context, userID, billID string, req dto.PayBillRequest) (*domain.Bill, *domain.Transaction, error) {
	args := m.Called(ctx, userID, billID, req)
	return argOrZero[*domain.Bill](args, 0), argOrZero[*domain.Transaction](args, 1), args.Error(2)
}
func (m *MockBillService) CancelBill(ctx context.Context, userID, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, userID, billID)
	return argOrZero[*domain.Bill](args, 0), args.Error(1)
}
func (m *MockBillService) ListRecurrences(ctx context.Context, userID string) ([]domain.BillRecurrence, error) {
	args := m.Called(ctx, userID)
	return argOrZero[[]domain.BillRecurrence](args, 0), args.Error(1)
}
func (m *MockBillService) DeactivateRecurrence(ctx context.Context, userID, recurrenceID string) error {
	return m.Called(ctx, userID, recurrenceID).Error(0)
}
func (m *MockBillService) GenerateDueBills(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

var _ portssvc.BillSvcFacade = (*MockBillService)(nil)

// --- Mock LoanService ---
type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) GetLoan(ctx context.Context, userID, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, userID, loanID)
	return argOrZero[*domain.Loan](args, 0), args.Error(1)
}
func (m *MockLoanService) ListLoans(ctx context.Context, userID string, params dto.ListLoansParams) ([]domain.Loan, error) {
	args := m.Called(ctx, userID, params)
	return argOrZero[[]domain.Loan](args, 0), args.Error(1)
}
func (m *MockLoanService) ListPayments(ctx context.Context, userID, loanID string) ([]domain.LoanPayment, error) {
	args := m.Called(ctx, userID, loanID)
	return argOrZero[[]domain.LoanPayment](args, 0), args.Error(1)
}
func (m *MockLoanService) CreateLoan(ctx context.Context, userID string, req dto.CreateLoanRequest) (*domain.Loan, error) {
	args := m.Called(ctx, userID, req)
	return argOrZero[*domain.Loan](args, 0), args.Error(1)
}
func (m *MockLoanService) UpdateLoan(ctx context.Context, userID, loanID string, req dto.UpdateLoanRequest) (*domain.Loan, error) {
	args := m.Called(ctx, userID, loanID, req)
	return argOrZero[*domain.Loan](args, 0), args.Error(1)
}
func (m *MockLoanService) DeleteLoan(ctx context.Context, userID, loanID string) error {
	return m.Called(ctx, userID, loanID).Error(0)
}
func (m *MockLoanService) AddPayment(ctx context.Context, userID, loanID string, req dto.AddLoanPaymentRequest) (*domain.Loan, error) {
	args := m.Called(ctx, userID, loanID, req)
	return argOrZero[*domain.Loan](args, 0), args.Error(1)
}
func (m *MockLoanService) DeletePayment(ctx context.Context, userID, loanID, paymentID string) (*domain.Loan, error) {
	args := m.Called(ctx, userID, loanID, paymentID)
	return argOrZero[*domain.Loan](args, 0), args.Error(1)
}

var _ portssvc.LoanSvcFacade = (*MockLoanService)(nil)

// --- Mock BudgetService ---
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	args := m.Called(ctx, userID, req)
	return argOrZero[*domain.Budget](args, 0), args.Error(1)
}
func (m *MockBudgetService) GetBudget(ctx context.Context, userID, budgetID string, month time.Time) (*domain.BudgetProgress, error) {
	args := m.Called(ctx, userID, budgetID, month)
	return argOrZero[*domain.BudgetProgress](args, 0), args.Error(1)
}
func (m *MockBudgetService) ListBudgetProgress(ctx context.Context, userID string, month time.Time) ([]domain.BudgetProgress, error) {
	args := m.Called(ctx, userID, month)
	return argOrZero[[]domain.BudgetProgress](args, 0), args.Error(1)
}
func (m *MockBudgetService) UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	args := m.Called(ctx, userID, budgetID, req)
	return argOrZero[*domain.Budget](args, 0), args.Error(1)
}
func (m *MockBudgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	return m.Called(ctx, userID, budgetID).Error(0)
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

// --- Mock GoalService ---
type MockGoalService struct {
	mock.Mock
}

func (m *MockGoalService) CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error) {
	args := m.Called(ctx, userID, req)
	return argOrZero[*domain.Goal](args, 0), args.Error(1)
}
func (m *MockGoalService) GetGoal(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	args := m.Called(ctx, userID, goalID)
	return argOrZero[*domain.Goal](args, 0), args.Error(1)
}
func (m *MockGoalService) ListGoals(ctx context.Context, userID string, status domain.GoalStatus) ([]domain.Goal, error) {
	args := m.Called(ctx, userID, status)
	return argOrZero[[]domain.Goal](args, 0), args.Error(1)
}
func (m *MockGoalService) UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error) {
	args := m.Called(ctx, userID, goalID, req)
	return argOrZero[*domain.Goal](args, 0), args.Error(1)
}
func (m *MockGoalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	return m.Called(ctx, userID, goalID).Error(0)
}
func (m *MockGoalService) Contribute(ctx context.Context, userID, goalID string, amount decimal.Decimal) (*domain.Goal, error) {
	args := m.Called(ctx, userID, goalID, amount)
	return argOrZero[*domain.Goal](args, 0), args.Error(1)
}

var _ portssvc.GoalSvcFacade = (*MockGoalService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetSummary(ctx context.Context, userID string, from, to time.Time) (*domain.Summary, error) {
	args := m.Called(ctx, userID, from, to)
	return argOrZero[*domain.Summary](args, 0), args.Error(1)
}
func (m *MockReportingService) GetCategoryTotals(ctx context.Context, userID string, txType domain.TransactionType, from, to time.Time) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, userID, txType, from, to)
	return argOrZero[[]domain.CategoryTotal](args, 0), args.Error(1)
}
func (m *MockReportingService) GetMonthlyTotals(ctx context.Context, userID string, months int) ([]domain.MonthlyTotal, error) {
	args := m.Called(ctx, userID, months)
	return argOrZero[[]domain.MonthlyTotal](args, 0), args.Error(1)
}
func (m *MockReportingService) GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	args := m.Called(ctx, userID)
	return argOrZero[*domain.Dashboard](args, 0), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock ImportService ---
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Preview(ctx context.Context, userID, filename string, content []byte, format statement.Format) (*statement.Result, error) {
	args := m.Called(ctx, userID, filename, content, format)
	return argOrZero[*statement.Result](args, 0), args.Error(1)
}
func (m *MockImportService) Commit(ctx context.Context, userID string, req dto.ImportCommitRequest) (*dto.ImportCommitResponse, error) {
	args := m.Called(ctx, userID, req)
	return argOrZero[*dto.ImportCommitResponse](args, 0), args.Error(1)
}

var _ portssvc.ImportSvc = (*MockImportService)(nil)

// --- Mock WhatsAppService ---
type MockWhatsAppService struct {
	mock.Mock
}

func (m *MockWhatsAppService) HandleMessage(ctx context.Context, userID, message string) (*dto.WhatsAppMessageResponse, error) {
	args := m.Called(ctx, userID, message)
	return argOrZero[*dto.WhatsAppMessageResponse](args, 0), args.Error(1)
}

var _ portssvc.WhatsAppSvc = (*MockWhatsAppService)(nil)

// --- Mock AdviceService ---
type MockAdviceService struct {
	mock.Mock
}

func (m *MockAdviceService) GetAdvice(ctx context.Context, userID, question string) (string, error) {
	args := m.Called(ctx, userID, question)
	return args.String(0), args.Error(1)
}

var _ portssvc.AdviceSvc = (*MockAdviceService)(nil)
