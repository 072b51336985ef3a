package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillType distinguishes money owed by the user from money owed to the user.
type BillType string

const (
	Payable    BillType = "payable"
	Receivable BillType = "receivable"
)

// Valid reports whether t is a known bill type.
func (t BillType) Valid() bool {
	return t == Payable || t == Receivable
}

// TransactionType returns the transaction type recorded when the bill is settled.
func (t BillType) TransactionType() TransactionType {
	if t == Receivable {
		return Income
	}
	return Expense
}

// BillStatus is the lifecycle state of a bill. BillOverdue is never stored.
type BillStatus string

const (
	BillOpen     BillStatus = "open"
	BillPaid     BillStatus = "paid"
	BillOverdue  BillStatus = "overdue"
	BillCanceled BillStatus = "canceled"
)

// Bill is a single payable or receivable with a due date.
type Bill struct {
	BillID       string          `json:"billID"`
	UserID       string          `json:"userID"`
	Type         BillType        `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	DueDate      time.Time       `json:"dueDate"`
	Status       BillStatus      `json:"status"`
	PaidAt       *time.Time      `json:"paidAt,omitempty"`
	RecurrenceID string          `json:"recurrenceID,omitempty"`
	AuditFields
}

// EffectiveStatus derives overdue from the stored status and the due date.
func (b Bill) EffectiveStatus(now time.Time) BillStatus {
	if b.Status == BillOpen && b.DueDate.Before(DateOnly(now)) {
		return BillOverdue
	}
	return b.Status
}

// BillFilter narrows a bill listing. Status may be BillOverdue.
type BillFilter struct {
	Status BillStatus
	Type   BillType
	From   *time.Time
	To     *time.Time // exclusive
}

// Frequency is the unit of a bill recurrence.
type Frequency string

const (
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	return f == Weekly || f == Monthly || f == Yearly
}

// maxOccurrencesPerRun bounds a single generation pass.
const maxOccurrencesPerRun = 500

// BillRecurrence is a template that generates future bills.
type BillRecurrence struct {
	RecurrenceID string          `json:"recurrenceID"`
	UserID       string          `json:"userID"`
	Type         BillType        `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Frequency    Frequency       `json:"frequency"`
	Interval     int             `json:"interval"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      *time.Time      `json:"endDate,omitempty"`
	NextDueDate  time.Time       `json:"nextDueDate"`
	Active       bool            `json:"active"`
	AuditFields
}

// OccurrenceAt returns the k-th due date counted from StartDate (k=0 is StartDate).
// Monthly and yearly dates keep the start day, clamped to the end of shorter months.
func (r BillRecurrence) OccurrenceAt(k int) time.Time {
	start := DateOnly(r.StartDate)
	interval := r.Interval
	if interval < 1 {
		interval = 1
	}
	switch r.Frequency {
	case Weekly:
		return start.AddDate(0, 0, 7*interval*k)
	case Yearly:
		return addMonthsClamped(start, 12*interval*k)
	default:
		return addMonthsClamped(start, interval*k)
	}
}

// NextAfter returns the first occurrence strictly after t.
func (r BillRecurrence) NextAfter(t time.Time) time.Time {
	day := DateOnly(t)
	for k := 0; ; k++ {
		occ := r.OccurrenceAt(k)
		if occ.After(day) {
			return occ
		}
	}
}

// Covers reports whether d falls on or before the optional end date.
func (r BillRecurrence) Covers(d time.Time) bool {
	return r.EndDate == nil || !d.After(DateOnly(*r.EndDate))
}

// Pending lists the due dates from NextDueDate up to and including horizon,
// and returns the next due date that follows them.
func (r BillRecurrence) Pending(horizon time.Time) ([]time.Time, time.Time) {
	var dates []time.Time
	next := DateOnly(r.NextDueDate)
	limit := DateOnly(horizon)
	for !next.After(limit) && r.Covers(next) && len(dates) < maxOccurrencesPerRun {
		dates = append(dates, next)
		next = r.NextAfter(next)
	}
	return dates, next
}

// NewBill builds the bill instance for one occurrence of the recurrence.
func (r BillRecurrence) NewBill(billID string, due time.Time, audit AuditFields) Bill {
	return Bill{
		BillID:       billID,
		UserID:       r.UserID,
		Type:         r.Type,
		Amount:       r.Amount,
		Category:     r.Category,
		Description:  r.Description,
		DueDate:      DateOnly(due),
		Status:       BillOpen,
		RecurrenceID: r.RecurrenceID,
		AuditFields:  audit,
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}
