package dto

import "github.com/SscSPs/personal_finance_app/internal/core/domain"

// ReportRangeParams selects an inclusive date range. Defaults to the current month.
type ReportRangeParams struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// CategoryReportParams adds the transaction type to a range. Defaults to expense.
type CategoryReportParams struct {
	ReportRangeParams
	Type domain.TransactionType `form:"type" binding:"omitempty,oneof=income expense"`
}

// MonthlyReportParams selects how many months, ending with the current one, to report.
type MonthlyReportParams struct {
	Months int `form:"months,default=6" binding:"min=1,max=36"`
}
