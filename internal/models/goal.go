package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is the goals table row.
type Goal struct {
	GoalID        string          `db:"goal_id"`
	UserID        string          `db:"user_id"`
	Title         string          `db:"title"`
	TargetAmount  decimal.Decimal `db:"target_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount"`
	TargetDate    *time.Time      `db:"target_date"`
	Priority      string          `db:"priority"`
	Status        string          `db:"status"`
	AuditFields
}
