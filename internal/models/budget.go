package models

import "github.com/shopspring/decimal"

// Budget is the budgets table row.
type Budget struct {
	BudgetID     string          `db:"budget_id"`
	UserID       string          `db:"user_id"`
	Category     string          `db:"category"`
	MonthlyLimit decimal.Decimal `db:"monthly_limit"`
	AuditFields
}
