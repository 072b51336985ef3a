package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a monthly spending limit for one category.
type Budget struct {
	BudgetID     string          `json:"budgetID"`
	UserID       string          `json:"userID"`
	Category     string          `json:"category"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
	AuditFields
}

// BudgetProgress is a budget together with what was spent in a given month.
type BudgetProgress struct {
	Budget
	Month      time.Time       `json:"month"`
	Spent      decimal.Decimal `json:"spent"`
	Percentage decimal.Decimal `json:"percentage"`
}

var hundred = decimal.NewFromInt(100)

// NewBudgetProgress computes spent percentage against the limit, rounded to 2 places.
func NewBudgetProgress(b Budget, month time.Time, spent decimal.Decimal) BudgetProgress {
	pct := decimal.Zero
	if b.MonthlyLimit.IsPositive() {
		pct = spent.Div(b.MonthlyLimit).Mul(hundred).Round(2)
	}
	start, _ := MonthRange(month)
	return BudgetProgress{Budget: b, Month: start, Spent: spent, Percentage: pct}
}

// Exceeded reports whether spending went over the limit.
func (p BudgetProgress) Exceeded() bool {
	return p.Spent.GreaterThan(p.MonthlyLimit)
}
