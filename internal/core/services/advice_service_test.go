package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	"github.com/SscSPs/personal_finance_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AdviceServiceTestSuite struct {
	suite.Suite
	mockAdvisor       *MockAdvisor
	mockTxnRepo       *MockTransactionRepository
	mockReportingRepo *MockReportingRepository
	ctx               context.Context
}

func (suite *AdviceServiceTestSuite) SetupTest() {
	suite.mockAdvisor = new(MockAdvisor)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.ctx = context.Background()
}

func (suite *AdviceServiceTestSuite) windowFilter() interface{} {
	return mock.MatchedBy(func(f domain.TransactionFilter) bool {
		return f.From != nil && f.From.Equal(day(2023, 12, 17)) &&
			f.To != nil && f.To.Equal(day(2024, 3, 16)) && f.Limit == 200
	})
}

func (suite *AdviceServiceTestSuite) TestGetAdvice() {
	service := services.NewAdviceService(suite.mockAdvisor, suite.mockTxnRepo, suite.mockReportingRepo, 0, services.WithClock(fixedClock))
	from, to := day(2023, 12, 17), day(2024, 3, 16)

	txns := []domain.Transaction{
		{Date: day(2024, 3, 10), Type: domain.Expense, Category: "Food", Description: "iFood", Amount: dec("60")},
	}
	suite.mockTxnRepo.On("ListTransactions", suite.ctx, "u1", suite.windowFilter()).Return(txns, nil).Once()
	suite.mockReportingRepo.On("Summarize", suite.ctx, "u1", from, to).
		Return(&domain.Summary{Income: dec("3000"), Expense: dec("60"), Balance: dec("2940"), IncomeCount: 1, ExpenseCount: 1}, nil).Once()
	suite.mockReportingRepo.On("TotalsByCategory", suite.ctx, "u1", domain.Expense, from, to).
		Return([]domain.CategoryTotal{{Category: "Food", Total: dec("60")}}, nil).Once()
	suite.mockAdvisor.On("Complete", suite.ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Resumo dos últimos 90 dias") &&
			strings.Contains(p, "- Food: 60.00 (100.00%)") &&
			strings.Contains(p, "2024-03-10 | expense | Food | iFood | 60.00") &&
			strings.HasSuffix(p, "Pergunta: Devo investir?")
	})).Return("  Guarde 10% do salário.  ", nil).Once()

	advice, err := service.GetAdvice(suite.ctx, "u1", "Devo investir?")

	suite.Require().NoError(err)
	suite.Equal("Guarde 10% do salário.", advice)
	suite.mockAdvisor.AssertExpectations(suite.T())
}

func (suite *AdviceServiceTestSuite) TestGetAdvice_NoHistory() {
	service := services.NewAdviceService(suite.mockAdvisor, suite.mockTxnRepo, suite.mockReportingRepo, 0, services.WithClock(fixedClock))
	suite.mockTxnRepo.On("ListTransactions", suite.ctx, "u1", suite.windowFilter()).Return([]domain.Transaction{}, nil).Once()

	advice, err := service.GetAdvice(suite.ctx, "u1", "")

	suite.Require().NoError(err)
	suite.Equal(services.NoHistoryAdvice, advice)
	suite.mockAdvisor.AssertNotCalled(suite.T(), "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdviceServiceTestSuite) TestGetAdvice_NotConfigured() {
	service := services.NewAdviceService(nil, suite.mockTxnRepo, suite.mockReportingRepo, 30, services.WithClock(fixedClock))

	_, err := service.GetAdvice(suite.ctx, "u1", "")

	suite.ErrorIs(err, apperrors.ErrUpstream)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdviceServiceTestSuite) TestGetAdvice_AdvisorFailure() {
	service := services.NewAdviceService(suite.mockAdvisor, suite.mockTxnRepo, suite.mockReportingRepo, 0, services.WithClock(fixedClock))
	suite.mockTxnRepo.On("ListTransactions", suite.ctx, "u1", mock.Anything).
		Return([]domain.Transaction{{Date: day(2024, 3, 1), Amount: dec("1")}}, nil).Once()
	suite.mockReportingRepo.On("Summarize", suite.ctx, "u1", mock.Anything, mock.Anything).Return(&domain.Summary{}, nil).Once()
	suite.mockReportingRepo.On("TotalsByCategory", suite.ctx, "u1", domain.Expense, mock.Anything, mock.Anything).Return(nil, nil).Once()
	suite.mockAdvisor.On("Complete", suite.ctx, mock.Anything, mock.Anything).Return("", errors.New("429 too many requests")).Once()

	_, err := service.GetAdvice(suite.ctx, "u1", "")

	suite.ErrorIs(err, apperrors.ErrUpstream)
}

func TestAdviceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdviceServiceTestSuite))
}

func TestBuildAdvicePrompt_DefaultQuestion(t *testing.T) {
	prompt := services.BuildAdvicePrompt(" ", 30, &domain.Summary{}, nil, nil)

	assert.Contains(t, prompt, "Resumo dos últimos 30 dias")
	assert.NotContains(t, prompt, "Despesas por categoria")
	assert.True(t, strings.HasSuffix(prompt, "Pergunta: Como posso melhorar minhas finanças com base nesses dados?"))
}
