package dto

import (
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a budget.
type CreateBudgetRequest struct {
	Category     string          `json:"category" binding:"required,max=60"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit" binding:"dgt0"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
type UpdateBudgetRequest struct {
	Category     *string          `json:"category" binding:"omitempty,min=1,max=60"`
	MonthlyLimit *decimal.Decimal `json:"monthlyLimit" binding:"omitempty,dgt0"`
}

// BudgetMonthParams selects the month budgets are measured against. Defaults to the current month.
type BudgetMonthParams struct {
	Month string `form:"month" binding:"omitempty,datetime=2006-01"`
}

// CreateGoalRequest defines the data needed to create a goal.
type CreateGoalRequest struct {
	Title         string              `json:"title" binding:"required,max=120"`
	TargetAmount  decimal.Decimal     `json:"targetAmount" binding:"dgt0"`
	CurrentAmount decimal.Decimal     `json:"currentAmount" binding:"dgte0"`
	TargetDate    string              `json:"targetDate" binding:"omitempty,datetime=2006-01-02"`
	Priority      domain.GoalPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// UpdateGoalRequest defines the data allowed for updating a goal.
type UpdateGoalRequest struct {
	Title         *string              `json:"title" binding:"omitempty,min=1,max=120"`
	TargetAmount  *decimal.Decimal     `json:"targetAmount" binding:"omitempty,dgt0"`
	CurrentAmount *decimal.Decimal     `json:"currentAmount" binding:"omitempty,dgte0"`
	TargetDate    *string              `json:"targetDate" binding:"omitempty,datetime=2006-01-02"`
	Priority      *domain.GoalPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status        *domain.GoalStatus   `json:"status" binding:"omitempty,oneof=active completed canceled"`
}

// GoalContributionRequest adds money to a goal.
type GoalContributionRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"dgt0"`
}

// ListGoalsParams defines query parameters for listing goals.
type ListGoalsParams struct {
	Status domain.GoalStatus `form:"status" binding:"omitempty,oneof=active completed canceled"`
}

// GoalResponse adds the derived progress figures to a goal.
type GoalResponse struct {
	domain.Goal
	Remaining decimal.Decimal `json:"remaining"`
	Progress  decimal.Decimal `json:"progress"`
}

func ToGoalResponse(g domain.Goal) GoalResponse {
	return GoalResponse{Goal: g, Remaining: g.Remaining(), Progress: g.Progress()}
}

func ToListGoalResponse(goals []domain.Goal) []GoalResponse {
	res := make([]GoalResponse, len(goals))
	for i, g := range goals {
		res[i] = ToGoalResponse(g)
	}
	return res
}

// BudgetProgressResponse flags budgets whose limit was exceeded.
type BudgetProgressResponse struct {
	domain.BudgetProgress
	Exceeded bool `json:"exceeded"`
}

func ToListBudgetProgressResponse(items []domain.BudgetProgress) []BudgetProgressResponse {
	res := make([]BudgetProgressResponse, len(items))
	for i, p := range items {
		res[i] = BudgetProgressResponse{BudgetProgress: p, Exceeded: p.Exceeded()}
	}
	return res
}
