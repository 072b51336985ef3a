package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is the bills table row.
type Bill struct {
	BillID       string          `db:"bill_id"`
	UserID       string          `db:"user_id"`
	Type         string          `db:"type"`
	Amount       decimal.Decimal `db:"amount"`
	Category     string          `db:"category"`
	Description  string          `db:"description"`
	DueDate      time.Time       `db:"due_date"`
	Status       string          `db:"status"`
	PaidAt       *time.Time      `db:"paid_at"`
	RecurrenceID *string         `db:"recurrence_id"`
	AuditFields
}

// BillRecurrence is the bill_recurrences table row.
type BillRecurrence struct {
	RecurrenceID string          `db:"recurrence_id"`
	UserID       string          `db:"user_id"`
	Type         string          `db:"type"`
	Amount       decimal.Decimal `db:"amount"`
	Category     string          `db:"category"`
	Description  string          `db:"description"`
	Frequency    string          `db:"frequency"`
	Interval     int             `db:"interval_count"`
	StartDate    time.Time       `db:"start_date"`
	EndDate      *time.Time      `db:"end_date"`
	NextDueDate  time.Time       `db:"next_due_date"`
	Active       bool            `db:"active"`
	AuditFields
}
