package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary holds income and expense totals for a period.
type Summary struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Balance      decimal.Decimal `json:"balance"`
	IncomeCount  int             `json:"incomeCount"`
	ExpenseCount int             `json:"expenseCount"`
}

// CategoryTotal is the sum of transactions of one type within a category.
type CategoryTotal struct {
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// MonthlyTotal is income and expense for one calendar month.
type MonthlyTotal struct {
	Month   time.Time       `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// BillTotals aggregates open bills.
type BillTotals struct {
	OpenPayable       decimal.Decimal `json:"openPayable"`
	OpenReceivable    decimal.Decimal `json:"openReceivable"`
	OverdueCount      int             `json:"overdueCount"`
	OverduePayable    decimal.Decimal `json:"overduePayable"`
	OverdueReceivable decimal.Decimal `json:"overdueReceivable"`
}

// LoanTotals aggregates outstanding loans.
type LoanTotals struct {
	OutstandingLent     decimal.Decimal `json:"outstandingLent"`
	OutstandingBorrowed decimal.Decimal `json:"outstandingBorrowed"`
}

// Dashboard is the read aggregation shown on the home screen.
type Dashboard struct {
	Month     Summary          `json:"month"`
	Bills     BillTotals       `json:"bills"`
	Loans     LoanTotals       `json:"loans"`
	Budgets   []BudgetProgress `json:"budgets"`
	TopSpends []CategoryTotal  `json:"topSpends"`
}

// WithPercentages fills Percentage on each total relative to their sum.
func WithPercentages(totals []CategoryTotal) []CategoryTotal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Total)
	}
	out := make([]CategoryTotal, len(totals))
	for i, t := range totals {
		if sum.IsPositive() {
			t.Percentage = t.Total.Div(sum).Mul(hundred).Round(2)
		} else {
			t.Percentage = decimal.Zero
		}
		out[i] = t
	}
	return out
}
