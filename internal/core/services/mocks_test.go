package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// argOrZero returns args.Get(i) as T, or the zero value when the mock returned nil.
func argOrZero[T any](args mock.Arguments, i int) T {
	var zero T
	if args.Get(i) == nil {
		return zero
	}
	return args.Get(i).(T)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	return argOrZero[*domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	return argOrZero[*domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, authProvider, providerUserID)
	return argOrZero[*domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime).Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	return argOrZero[[]domain.Category](args, 0), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, userID, categoryID)
	return argOrZero[*domain.Category](args, 0), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByName(ctx context.Context, userID, name string) (*domain.Category, error) {
	args := m.Called(ctx, userID, name)
	return argOrZero[*domain.Category](args, 0), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) SaveCategories(ctx context.Context, categories []domain.Category) error {
	return m.Called(ctx, categories).Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	return m.Called(ctx, userID, categoryID).Error(0)
}

// --- Mock TransactionManager, embedded by repositories that support transactions ---
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return argOrZero[pgx.Tx](args, 0), args.Error(1)
}

func (m *MockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	MockTxManager
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	return argOrZero[*domain.Transaction](args, 0), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	return argOrZero[[]domain.Transaction](args, 0), args.Error(1)
}

func (m *MockTransactionRepository) CountTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) (int, error) {
	args := m.Called(ctx, userID, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) (int, error) {
	args := m.Called(ctx, txns)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	return m.Called(ctx, userID, transactionID).Error(0)
}

// --- Mock BillRepository ---
type MockBillRepository struct {
	MockTxManager
}

func (m *MockBillRepository) FindBillByID(ctx context.Context, userID, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, userID, billID)
	return argOrZero[*domain.Bill](args, 0), args.Error(1)
}

func (m *MockBillRepository) ListBills(ctx context.Context, userID string, filter domain.BillFilter, today time.Time) ([]domain.Bill, error) {
	args := m.Called(ctx, userID, filter, today)
	return argOrZero[[]domain.Bill](args, 0), args.Error(1)
}

func (m *MockBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	return m.Called(ctx, bill).Error(0)
}

func (m *MockBillRepository) UpdateBill(ctx context.Context, bill domain.Bill) error {
	return m.Called(ctx, bill).Error(0)
}

func (m *MockBillRepository) DeleteBill(ctx context.Context, userID, billID string) error {
	return m.Called(ctx, userID, billID).Error(0)
}

func (m *MockBillRepository) SetBillStatus(ctx context.Context, bill domain.Bill) error {
	return m.Called(ctx, bill).Error(0)
}

func (m *MockBillRepository) PayBill(ctx context.Context, bill domain.Bill, txn *domain.Transaction) error {
	return m.Called(ctx, bill, txn).Error(0)
}

func (m *MockBillRepository) SaveRecurrence(ctx context.Context, recurrence domain.BillRecurrence, first domain.Bill) error {
	return m.Called(ctx, recurrence, first).Error(0)
}

func (m *MockBillRepository) FindRecurrenceByID(ctx context.Context, userID, recurrenceID string) (*domain.BillRecurrence, error) {
	args := m.Called(ctx, userID, recurrenceID)
	return argOrZero[*domain.BillRecurrence](args, 0), args.Error(1)
}

func (m *MockBillRepository) ListRecurrences(ctx context.Context, userID string) ([]domain.BillRecurrence, error) {
	args := m.Called(ctx, userID)
	return argOrZero[[]domain.BillRecurrence](args, 0), args.Error(1)
}

func (m *MockBillRepository) ListDueRecurrences(ctx context.Context, userID string, horizon time.Time) ([]domain.BillRecurrence, error) {
	args := m.Called(ctx, userID, horizon)
	return argOrZero[[]domain.BillRecurrence](args, 0), args.Error(1)
}

func (m *MockBillRepository) AdvanceRecurrence(ctx context.Context, recurrence domain.BillRecurrence, previousNextDue time.Time, bills []domain.Bill) (bool, error) {
	args := m.Called(ctx, recurrence, previousNextDue, bills)
	return args.Bool(0), args.Error(1)
}

func (m *MockBillRepository) DeactivateRecurrence(ctx context.Context, userID, recurrenceID string, at time.Time) error {
	return m.Called(ctx, userID, recurrenceID, at).Error(0)
}

// --- Mock LoanRepository ---
type MockLoanRepository struct {
	MockTxManager
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, userID, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, userID, loanID)
	return argOrZero[*domain.Loan](args, 0), args.Error(1)
}

func (m *MockLoanRepository) ListLoans(ctx context.Context, userID string, loanType domain.LoanType) ([]domain.Loan, error) {
	args := m.Called(ctx, userID, loanType)
	return argOrZero[[]domain.Loan](args, 0), args.Error(1)
}

func (m *MockLoanRepository) ListPayments(ctx context.Context, userID, loanID string) ([]domain.LoanPayment, error) {
	args := m.Called(ctx, userID, loanID)
	return argOrZero[[]domain.LoanPayment](args, 0), args.Error(1)
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *MockLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *MockLoanRepository) DeleteLoan(ctx context.Context, userID, loanID string) error {
	return m.Called(ctx, userID, loanID).Error(0)
}

func (m *MockLoanRepository) AddPayment(ctx context.Context, userID string, payment domain.LoanPayment) (*domain.Loan, error) {
	args := m.Called(ctx, userID, payment)
	return argOrZero[*domain.Loan](args, 0), args.Error(1)
}

func (m *MockLoanRepository) DeletePayment(ctx context.Context, userID, loanID, paymentID string) (*domain.Loan, error) {
	args := m.Called(ctx, userID, loanID, paymentID)
	return argOrZero[*domain.Loan](args, 0), args.Error(1)
}

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, userID, budgetID)
	return argOrZero[*domain.Budget](args, 0), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	args := m.Called(ctx, userID)
	return argOrZero[[]domain.Budget](args, 0), args.Error(1)
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	return m.Called(ctx, budget).Error(0)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	return m.Called(ctx, budget).Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	return m.Called(ctx, userID, budgetID).Error(0)
}

// --- Mock GoalRepository ---
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) FindGoalByID(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	args := m.Called(ctx, userID, goalID)
	return argOrZero[*domain.Goal](args, 0), args.Error(1)
}

func (m *MockGoalRepository) ListGoals(ctx context.Context, userID string, status domain.GoalStatus) ([]domain.Goal, error) {
	args := m.Called(ctx, userID, status)
	return argOrZero[[]domain.Goal](args, 0), args.Error(1)
}

func (m *MockGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *MockGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *MockGoalRepository) DeleteGoal(ctx context.Context, userID, goalID string) error {
	return m.Called(ctx, userID, goalID).Error(0)
}

func (m *MockGoalRepository) AddContribution(ctx context.Context, userID, goalID string, amount decimal.Decimal, by string) (*domain.Goal, error) {
	args := m.Called(ctx, userID, goalID, amount, by)
	return argOrZero[*domain.Goal](args, 0), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) Summarize(ctx context.Context, userID string, from, to time.Time) (*domain.Summary, error) {
	args := m.Called(ctx, userID, from, to)
	return argOrZero[*domain.Summary](args, 0), args.Error(1)
}

func (m *MockReportingRepository) TotalsByCategory(ctx context.Context, userID string, txType domain.TransactionType, from, to time.Time) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, userID, txType, from, to)
	return argOrZero[[]domain.CategoryTotal](args, 0), args.Error(1)
}

func (m *MockReportingRepository) MonthlyTotals(ctx context.Context, userID string, from, to time.Time) ([]domain.MonthlyTotal, error) {
	args := m.Called(ctx, userID, from, to)
	return argOrZero[[]domain.MonthlyTotal](args, 0), args.Error(1)
}

func (m *MockReportingRepository) BillTotals(ctx context.Context, userID string, today time.Time) (*domain.BillTotals, error) {
	args := m.Called(ctx, userID, today)
	return argOrZero[*domain.BillTotals](args, 0), args.Error(1)
}

func (m *MockReportingRepository) LoanTotals(ctx context.Context, userID string) (*domain.LoanTotals, error) {
	args := m.Called(ctx, userID)
	return argOrZero[*domain.LoanTotals](args, 0), args.Error(1)
}

// --- Mock Advisor ---
type MockAdvisor struct {
	mock.Mock
}

func (m *MockAdvisor) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

// fixedNow is the clock used across service tests.
var fixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
