package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CRUDHandlerTestSuite struct {
	handlerSuite
}

// --- Transactions ---

func (s *CRUDHandlerTestSuite) TestCreateTransaction_Success() {
	txn := &domain.Transaction{
		TransactionID: "txn-1",
		UserID:        testUserID,
		Type:          domain.Expense,
		Amount:        decimal.RequireFromString("25.50"),
		Category:      "Food",
		Source:        domain.SourceManual,
	}
	s.transactions.On("CreateTransaction", mock.Anything, testUserID, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.Type == domain.Expense && req.Amount.Equal(decimal.RequireFromString("25.5")) && req.Date == "2024-03-10"
	})).Return(txn, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/transactions",
		`{"type":"expense","amount":"25.50","category":"Food","date":"2024-03-10"}`, testUserID)

	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp domain.Transaction
	s.decode(w, &resp)
	s.Equal("txn-1", resp.TransactionID)
	s.True(resp.Amount.Equal(decimal.RequireFromString("25.5")))
	s.transactions.AssertExpectations(s.T())
}

func (s *CRUDHandlerTestSuite) TestCreateTransaction_RejectsInvalidBodies() {
	cases := map[string]string{
		"zero amount":     `{"type":"expense","amount":"0","category":"Food","date":"2024-03-10"}`,
		"negative amount": `{"type":"expense","amount":-3,"category":"Food","date":"2024-03-10"}`,
		"unknown type":    `{"type":"transfer","amount":"10","category":"Food","date":"2024-03-10"}`,
		"bad date":        `{"type":"income","amount":"10","category":"Salary","date":"10/03/2024"}`,
		"missing amount":  `{"type":"income","category":"Salary","date":"2024-03-10"}`,
	}
	for name, body := range cases {
		w := s.do(http.MethodPost, "/api/v1/transactions", body, testUserID)
		s.Equal(http.StatusBadRequest, w.Code, name)
	}
	s.transactions.AssertNotCalled(s.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *CRUDHandlerTestSuite) TestCreateTransaction_RequiresToken() {
	w := s.do(http.MethodPost, "/api/v1/transactions", `{}`, "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *CRUDHandlerTestSuite) TestListTransactions_BindsQuery() {
	s.transactions.On("ListTransactions", mock.Anything, testUserID, mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.Type == domain.Expense && p.Search == "uber" && p.Limit == 10 && p.Offset == 0 && p.To == "2024-03-31"
	})).Return(&dto.ListTransactionsResponse{Transactions: []domain.Transaction{}, Total: 0, Limit: 10}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/transactions?type=expense&search=uber&limit=10&to=2024-03-31", nil, testUserID)

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	s.transactions.AssertExpectations(s.T())
}

func (s *CRUDHandlerTestSuite) TestGetTransaction_NotFound() {
	s.transactions.On("GetTransaction", mock.Anything, testUserID, "someone-elses").
		Return(nil, fmt.Errorf("transaction someone-elses: %w", apperrors.ErrNotFound)).Once()

	w := s.do(http.MethodGet, "/api/v1/transactions/someone-elses", nil, testUserID)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *CRUDHandlerTestSuite) TestCreateTransaction_ConstraintViolationIsBadRequest() {
	s.transactions.On("CreateTransaction", mock.Anything, testUserID, mock.Anything).
		Return(nil, fmt.Errorf("create transaction: %w", apperrors.NewBadRequestError("A value is outside the allowed range"))).Once()

	w := s.do(http.MethodPost, "/api/v1/transactions",
		`{"type":"expense","amount":"25.50","category":"Food","date":"2024-03-10"}`, testUserID)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("A value is outside the allowed range", s.errorMessage(w))
}

func (s *CRUDHandlerTestSuite) TestDeleteTransaction_Forbidden() {
	s.transactions.On("DeleteTransaction", mock.Anything, testUserID, "txn-9").
		Return(fmt.Errorf("transaction txn-9 is locked: %w", apperrors.ErrForbidden)).Once()

	w := s.do(http.MethodDelete, "/api/v1/transactions/txn-9", nil, testUserID)

	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("transaction txn-9 is locked: forbidden", s.errorMessage(w))
}

func (s *CRUDHandlerTestSuite) TestDeleteTransaction() {
	s.transactions.On("DeleteTransaction", mock.Anything, testUserID, "txn-1").Return(nil).Once()

	w := s.do(http.MethodDelete, "/api/v1/transactions/txn-1", nil, testUserID)

	s.Equal(http.StatusNoContent, w.Code)
}

// --- Bills ---

func (s *CRUDHandlerTestSuite) TestListBills_DerivesOverdue() {
	past := domain.DateOnly(time.Now().UTC().AddDate(0, 0, -3))
	future := domain.DateOnly(time.Now().UTC().AddDate(0, 0, 3))
	s.bills.On("ListBills", mock.Anything, testUserID, dto.ListBillsParams{}).Return([]domain.Bill{
		{BillID: "late", Status: domain.BillOpen, DueDate: past},
		{BillID: "soon", Status: domain.BillOpen, DueDate: future},
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/bills", nil, testUserID)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp []dto.BillResponse
	s.decode(w, &resp)
	s.Require().Len(resp, 2)
	s.Equal(domain.BillOverdue, resp[0].Status)
	s.Equal(domain.BillOpen, resp[1].Status)
}

func (s *CRUDHandlerTestSuite) TestListBills_RejectsUnknownStatus() {
	w := s.do(http.MethodGet, "/api/v1/bills?status=late", nil, testUserID)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *CRUDHandlerTestSuite) TestRecurrenceRoutesAreNotBillIDs() {
	s.bills.On("ListRecurrences", mock.Anything, testUserID).Return([]domain.BillRecurrence{}, nil).Once()
	s.bills.On("GenerateDueBills", mock.Anything, testUserID).Return(3, nil).Once()

	list := s.do(http.MethodGet, "/api/v1/bills/recurrences", nil, testUserID)
	gen := s.do(http.MethodPost, "/api/v1/bills/recurrences/generate", nil, testUserID)

	s.Equal(http.StatusOK, list.Code)
	s.Require().Equal(http.StatusOK, gen.Code)
	var resp dto.GenerateBillsResponse
	s.decode(gen, &resp)
	s.Equal(3, resp.Created)
	s.bills.AssertNotCalled(s.T(), "GetBill", mock.Anything, mock.Anything, mock.Anything)
}

func (s *CRUDHandlerTestSuite) TestPayBill_WithoutBody() {
	now := time.Now().UTC()
	paid := &domain.Bill{BillID: "bill-1", Status: domain.BillPaid, PaidAt: &now}
	s.bills.On("PayBill", mock.Anything, testUserID, "bill-1", dto.PayBillRequest{}).Return(paid, nil, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/bills/bill-1/pay", nil, testUserID)

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp map[string]any
	s.decode(w, &resp)
	s.NotContains(resp, "transaction")
	s.Equal("paid", resp["bill"].(map[string]any)["status"])
}

func (s *CRUDHandlerTestSuite) TestPayBill_CreatesTransaction() {
	paid := &domain.Bill{BillID: "bill-1", Status: domain.BillPaid}
	txn := &domain.Transaction{TransactionID: "txn-9", Source: domain.SourceBill}
	s.bills.On("PayBill", mock.Anything, testUserID, "bill-1", dto.PayBillRequest{CreateTransaction: true, PaidAt: "2024-03-12"}).
		Return(paid, txn, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/bills/bill-1/pay",
		map[string]any{"createTransaction": true, "paidAt": "2024-03-12"}, testUserID)

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.PayBillResponse
	s.decode(w, &resp)
	s.Require().NotNil(resp.Transaction)
	s.Equal("txn-9", resp.Transaction.TransactionID)
}

func (s *CRUDHandlerTestSuite) TestPayBill_NotOpen() {
	s.bills.On("PayBill", mock.Anything, testUserID, "bill-1", mock.Anything).
		Return(nil, nil, fmt.Errorf("%w: bill is already paid", apperrors.ErrValidation)).Once()

	w := s.do(http.MethodPost, "/api/v1/bills/bill-1/pay", nil, testUserID)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorMessage(w), "already paid")
}

func (s *CRUDHandlerTestSuite) TestCreateBill_RejectsBadRecurrence() {
	w := s.do(http.MethodPost, "/api/v1/bills", map[string]any{
		"type": "payable", "amount": "120", "category": "Housing", "description": "Rent", "dueDate": "2024-04-05",
		"recurrence": map[string]any{"frequency": "daily"},
	}, testUserID)

	s.Equal(http.StatusBadRequest, w.Code)
	s.bills.AssertNotCalled(s.T(), "CreateBill", mock.Anything, mock.Anything, mock.Anything)
}

// --- Loans ---

func (s *CRUDHandlerTestSuite) TestAddLoanPayment() {
	loan := &domain.Loan{LoanID: "loan-1", Amount: decimal.NewFromInt(500), PaidAmount: decimal.NewFromInt(200)}
	s.loans.On("AddPayment", mock.Anything, testUserID, "loan-1", mock.MatchedBy(func(req dto.AddLoanPaymentRequest) bool {
		return req.Amount.Equal(decimal.NewFromInt(200))
	})).Return(loan, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/loans/loan-1/payments", map[string]any{"amount": 200}, testUserID)

	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.LoanResponse
	s.decode(w, &resp)
	s.Equal(domain.LoanPartial, resp.Status)
	s.True(resp.Remaining.Equal(decimal.NewFromInt(300)))
}

func (s *CRUDHandlerTestSuite) TestAddLoanPayment_Overpayment() {
	s.loans.On("AddPayment", mock.Anything, testUserID, "loan-1", mock.Anything).
		Return(nil, fmt.Errorf("%w: payment exceeds the remaining 300", apperrors.ErrValidation)).Once()

	w := s.do(http.MethodPost, "/api/v1/loans/loan-1/payments", map[string]any{"amount": 900}, testUserID)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *CRUDHandlerTestSuite) TestDeleteLoanPayment() {
	loan := &domain.Loan{LoanID: "loan-1", Amount: decimal.NewFromInt(500)}
	s.loans.On("DeletePayment", mock.Anything, testUserID, "loan-1", "pay-1").Return(loan, nil).Once()

	w := s.do(http.MethodDelete, "/api/v1/loans/loan-1/payments/pay-1", nil, testUserID)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.LoanResponse
	s.decode(w, &resp)
	s.Equal(domain.LoanPending, resp.Status)
}

// --- Budgets and goals ---

func (s *CRUDHandlerTestSuite) TestListBudgets_ForMonth() {
	progress := domain.NewBudgetProgress(
		domain.Budget{BudgetID: "b-1", Category: "Food", MonthlyLimit: decimal.NewFromInt(100)},
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(130))
	s.budgets.On("ListBudgetProgress", mock.Anything, testUserID, mock.MatchedBy(func(m time.Time) bool {
		return m.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	})).Return([]domain.BudgetProgress{progress}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/budgets?month=2024-03", nil, testUserID)

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp []dto.BudgetProgressResponse
	s.decode(w, &resp)
	s.Require().Len(resp, 1)
	s.True(resp[0].Exceeded)
	s.True(resp[0].Percentage.Equal(decimal.NewFromInt(130)))
}

func (s *CRUDHandlerTestSuite) TestListBudgets_InvalidMonth() {
	w := s.do(http.MethodGet, "/api/v1/budgets?month=2024-13", nil, testUserID)

	s.Equal(http.StatusBadRequest, w.Code)
	s.budgets.AssertNotCalled(s.T(), "ListBudgetProgress", mock.Anything, mock.Anything, mock.Anything)
}

func (s *CRUDHandlerTestSuite) TestCreateBudget_Duplicate() {
	s.budgets.On("CreateBudget", mock.Anything, testUserID, mock.Anything).
		Return(nil, fmt.Errorf("%w: category Food already has a budget", apperrors.ErrDuplicate)).Once()

	w := s.do(http.MethodPost, "/api/v1/budgets", map[string]any{"category": "Food", "monthlyLimit": "300"}, testUserID)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *CRUDHandlerTestSuite) TestContributeToGoal() {
	goal := &domain.Goal{GoalID: "g-1", TargetAmount: decimal.NewFromInt(1000), CurrentAmount: decimal.NewFromInt(1000), Status: domain.GoalCompleted}
	s.goals.On("Contribute", mock.Anything, testUserID, "g-1", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(250))
	})).Return(goal, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/goals/g-1/contributions", map[string]any{"amount": "250"}, testUserID)

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.GoalResponse
	s.decode(w, &resp)
	s.Equal(domain.GoalCompleted, resp.Status)
	s.True(resp.Remaining.IsZero())
}

func (s *CRUDHandlerTestSuite) TestListGoals_FiltersByStatus() {
	s.goals.On("ListGoals", mock.Anything, testUserID, domain.GoalActive).Return([]domain.Goal{}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/goals?status=active", nil, testUserID)

	s.Equal(http.StatusOK, w.Code)
	s.goals.AssertExpectations(s.T())
}

func TestCRUDHandlers(t *testing.T) {
	suite.Run(t, new(CRUDHandlerTestSuite))
}
