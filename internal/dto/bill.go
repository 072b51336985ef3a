package dto

import (
	"time"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecurrenceRequest turns a new bill into the first occurrence of a recurrence.
type RecurrenceRequest struct {
	Frequency domain.Frequency `json:"frequency" binding:"required,oneof=weekly monthly yearly"`
	Interval  int              `json:"interval" binding:"omitempty,min=1,max=52"`
	EndDate   string           `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

// CreateBillRequest defines the data needed to create a bill.
type CreateBillRequest struct {
	Type        domain.BillType    `json:"type" binding:"required,oneof=payable receivable"`
	Amount      decimal.Decimal    `json:"amount" binding:"dgt0"`
	Category    string             `json:"category" binding:"required,max=60"`
	Description string             `json:"description" binding:"required,max=255"`
	DueDate     string             `json:"dueDate" binding:"required,datetime=2006-01-02"`
	Recurrence  *RecurrenceRequest `json:"recurrence"`
}

// UpdateBillRequest defines the data allowed for updating an open bill.
type UpdateBillRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,dgt0"`
	Category    *string          `json:"category" binding:"omitempty,min=1,max=60"`
	Description *string          `json:"description" binding:"omitempty,min=1,max=255"`
	DueDate     *string          `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
}

// PayBillRequest marks a bill paid, optionally recording the matching transaction.
type PayBillRequest struct {
	PaidAt            string `json:"paidAt" binding:"omitempty,datetime=2006-01-02"`
	CreateTransaction bool   `json:"createTransaction"`
}

// ListBillsParams defines query parameters for listing bills. "to" is inclusive.
type ListBillsParams struct {
	Status domain.BillStatus `form:"status" binding:"omitempty,oneof=open paid overdue canceled"`
	Type   domain.BillType   `form:"type" binding:"omitempty,oneof=payable receivable"`
	From   string            `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To     string            `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// BillResponse is a bill with its status derived for today.
type BillResponse struct {
	domain.Bill
	Status domain.BillStatus `json:"status"`
}

// ToBillResponse converts a domain.Bill, replacing the stored status with the effective one.
func ToBillResponse(b domain.Bill, now time.Time) BillResponse {
	return BillResponse{Bill: b, Status: b.EffectiveStatus(now)}
}

func ToListBillResponse(bills []domain.Bill, now time.Time) []BillResponse {
	res := make([]BillResponse, len(bills))
	for i, b := range bills {
		res[i] = ToBillResponse(b, now)
	}
	return res
}

// PayBillResponse is returned by POST /bills/:id/pay.
type PayBillResponse struct {
	Bill        BillResponse        `json:"bill"`
	Transaction *domain.Transaction `json:"transaction,omitempty"`
}

// GenerateBillsResponse reports how many bills a generation pass created.
type GenerateBillsResponse struct {
	Created int `json:"created"`
}
