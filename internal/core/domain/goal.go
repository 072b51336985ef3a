package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalPriority ranks goals for display.
type GoalPriority string

const (
	PriorityLow    GoalPriority = "low"
	PriorityMedium GoalPriority = "medium"
	PriorityHigh   GoalPriority = "high"
)

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalCanceled  GoalStatus = "canceled"
)

// Goal is a savings target.
type Goal struct {
	GoalID        string          `json:"goalID"`
	UserID        string          `json:"userID"`
	Title         string          `json:"title"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    *time.Time      `json:"targetDate,omitempty"`
	Priority      GoalPriority    `json:"priority"`
	Status        GoalStatus      `json:"status"`
	AuditFields
}

// Remaining is how much is left to reach the target, never negative.
func (g Goal) Remaining() decimal.Decimal {
	rem := g.TargetAmount.Sub(g.CurrentAmount)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// Progress is the percentage of the target already saved, rounded to 2 places.
func (g Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	return g.CurrentAmount.Div(g.TargetAmount).Mul(hundred).Round(2)
}

// RefreshStatus marks an active goal completed once the target is reached.
func (g *Goal) RefreshStatus() {
	if g.Status == GoalActive && !g.CurrentAmount.LessThan(g.TargetAmount) {
		g.Status = GoalCompleted
	}
}
