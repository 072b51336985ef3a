package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/core/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo    *MockBudgetRepository
	mockReportingRepo *MockReportingRepository
	service           portssvc.BudgetSvcFacade
	ctx               context.Context
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewBudgetService(suite.mockBudgetRepo, suite.mockReportingRepo, services.WithClock(fixedClock))
	suite.ctx = context.Background()
}

func (suite *BudgetServiceTestSuite) TestListBudgetProgress() {
	budgets := []domain.Budget{
		{BudgetID: "b1", Category: "Food", MonthlyLimit: dec("800")},
		{BudgetID: "b2", Category: "Leisure", MonthlyLimit: dec("200")},
		{BudgetID: "b3", Category: "Health", MonthlyLimit: dec("300")},
	}
	suite.mockBudgetRepo.On("ListBudgets", suite.ctx, "u1").Return(budgets, nil).Once()
	suite.mockReportingRepo.On("TotalsByCategory", suite.ctx, "u1", domain.Expense, day(2024, 3, 1), day(2024, 4, 1)).
		Return([]domain.CategoryTotal{
			{Category: "food", Total: dec("200")},
			{Category: "Leisure", Total: dec("250.50")},
		}, nil).Once()

	progress, err := suite.service.ListBudgetProgress(suite.ctx, "u1", day(2024, 3, 20))

	suite.Require().NoError(err)
	suite.Require().Len(progress, 3)
	suite.True(progress[0].Spent.Equal(dec("200")))
	suite.True(progress[0].Percentage.Equal(dec("25")))
	suite.False(progress[0].Exceeded())
	suite.True(progress[1].Percentage.Equal(dec("125.25")))
	suite.True(progress[1].Exceeded())
	suite.True(progress[2].Spent.IsZero())
	suite.Equal(day(2024, 3, 1), progress[2].Month)
}

func (suite *BudgetServiceTestSuite) TestListBudgetProgress_NoBudgetsSkipsAggregation() {
	suite.mockBudgetRepo.On("ListBudgets", suite.ctx, "u1").Return(nil, nil).Once()

	progress, err := suite.service.ListBudgetProgress(suite.ctx, "u1", fixedNow)

	suite.Require().NoError(err)
	suite.NotNil(progress)
	suite.Empty(progress)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "TotalsByCategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_Duplicate() {
	suite.mockBudgetRepo.On("SaveBudget", suite.ctx, mock.AnythingOfType("domain.Budget")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateBudget(suite.ctx, "u1", dto.CreateBudgetRequest{Category: "Food", MonthlyLimit: dec("100")})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *BudgetServiceTestSuite) TestGetBudget() {
	suite.mockBudgetRepo.On("FindBudgetByID", suite.ctx, "u1", "b1").
		Return(&domain.Budget{BudgetID: "b1", Category: "Food", MonthlyLimit: dec("300")}, nil).Once()
	suite.mockReportingRepo.On("TotalsByCategory", suite.ctx, "u1", domain.Expense, day(2024, 2, 1), day(2024, 3, 1)).
		Return([]domain.CategoryTotal{{Category: "Food", Total: dec("100")}}, nil).Once()

	progress, err := suite.service.GetBudget(suite.ctx, "u1", "b1", day(2024, 2, 1))

	suite.Require().NoError(err)
	suite.True(progress.Percentage.Equal(dec("33.33")))
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}

type GoalServiceTestSuite struct {
	suite.Suite
	mockRepo *MockGoalRepository
	service  portssvc.GoalSvcFacade
	ctx      context.Context
}

func (suite *GoalServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockGoalRepository)
	suite.service = services.NewGoalService(suite.mockRepo, services.WithClock(fixedClock))
	suite.ctx = context.Background()
}

func (suite *GoalServiceTestSuite) TestCreateGoal_Defaults() {
	suite.mockRepo.On("SaveGoal", suite.ctx, mock.MatchedBy(func(g domain.Goal) bool {
		return g.Priority == domain.PriorityMedium && g.Status == domain.GoalActive && g.TargetDate == nil
	})).Return(nil).Once()

	goal, err := suite.service.CreateGoal(suite.ctx, "u1", dto.CreateGoalRequest{Title: "Trip", TargetAmount: dec("5000")})

	suite.Require().NoError(err)
	suite.True(goal.Progress().IsZero())
}

func (suite *GoalServiceTestSuite) TestCreateGoal_AlreadyReached() {
	suite.mockRepo.On("SaveGoal", suite.ctx, mock.MatchedBy(func(g domain.Goal) bool {
		return g.Status == domain.GoalCompleted
	})).Return(nil).Once()

	goal, err := suite.service.CreateGoal(suite.ctx, "u1", dto.CreateGoalRequest{
		Title: "Phone", TargetAmount: dec("1000"), CurrentAmount: dec("1000"),
	})

	suite.Require().NoError(err)
	suite.Equal(domain.GoalCompleted, goal.Status)
}

func (suite *GoalServiceTestSuite) TestContribute() {
	stored := &domain.Goal{GoalID: "g1", Status: domain.GoalActive, TargetAmount: dec("100"), CurrentAmount: dec("90")}
	updated := &domain.Goal{GoalID: "g1", Status: domain.GoalCompleted, TargetAmount: dec("100"), CurrentAmount: dec("110")}
	suite.mockRepo.On("FindGoalByID", suite.ctx, "u1", "g1").Return(stored, nil).Once()
	suite.mockRepo.On("AddContribution", suite.ctx, "u1", "g1", dec("20"), "u1").Return(updated, nil).Once()

	goal, err := suite.service.Contribute(suite.ctx, "u1", "g1", dec("20"))

	suite.Require().NoError(err)
	suite.Equal(domain.GoalCompleted, goal.Status)
	suite.True(goal.Remaining().IsZero())
}

func (suite *GoalServiceTestSuite) TestContribute_Rejected() {
	_, err := suite.service.Contribute(suite.ctx, "u1", "g1", dec("0"))
	suite.ErrorIs(err, apperrors.ErrValidation)

	canceled := &domain.Goal{GoalID: "g2", Status: domain.GoalCanceled}
	suite.mockRepo.On("FindGoalByID", suite.ctx, "u1", "g2").Return(canceled, nil).Once()
	_, err = suite.service.Contribute(suite.ctx, "u1", "g2", dec("10"))
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "AddContribution", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GoalServiceTestSuite) TestUpdateGoal_CompletesWhenTargetLowered() {
	stored := &domain.Goal{GoalID: "g1", UserID: "u1", Status: domain.GoalActive, TargetAmount: dec("1000"), CurrentAmount: dec("600")}
	suite.mockRepo.On("FindGoalByID", suite.ctx, "u1", "g1").Return(stored, nil).Once()
	suite.mockRepo.On("UpdateGoal", suite.ctx, mock.MatchedBy(func(g domain.Goal) bool {
		return g.Status == domain.GoalCompleted && g.TargetAmount.Equal(dec("500"))
	})).Return(nil).Once()

	target := dec("500")
	goal, err := suite.service.UpdateGoal(suite.ctx, "u1", "g1", dto.UpdateGoalRequest{TargetAmount: &target})

	suite.Require().NoError(err)
	suite.Equal(domain.GoalCompleted, goal.Status)
}

func TestGoalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GoalServiceTestSuite))
}
