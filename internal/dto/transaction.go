package dto

import (
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	Type        domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	Amount      decimal.Decimal        `json:"amount" binding:"dgt0"`
	Category    string                 `json:"category" binding:"required,max=60"`
	Description string                 `json:"description" binding:"max=255"`
	Date        string                 `json:"date" binding:"required,datetime=2006-01-02"`
	Tags        []string               `json:"tags" binding:"omitempty,max=20,dive,min=1,max=40"`
	Notes       string                 `json:"notes" binding:"max=1000"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
type UpdateTransactionRequest struct {
	Type        *domain.TransactionType `json:"type" binding:"omitempty,oneof=income expense"`
	Amount      *decimal.Decimal        `json:"amount" binding:"omitempty,dgt0"`
	Category    *string                 `json:"category" binding:"omitempty,min=1,max=60"`
	Description *string                 `json:"description" binding:"omitempty,max=255"`
	Date        *string                 `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Tags        *[]string               `json:"tags" binding:"omitempty,max=20,dive,min=1,max=40"`
	Notes       *string                 `json:"notes" binding:"omitempty,max=1000"`
}

// ListTransactionsParams defines query parameters for listing transactions. "to" is inclusive.
type ListTransactionsParams struct {
	Type     domain.TransactionType `form:"type" binding:"omitempty,oneof=income expense"`
	Category string                 `form:"category"`
	From     string                 `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string                 `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Search   string                 `form:"search" binding:"max=100"`
	Limit    int                    `form:"limit,default=50" binding:"min=0"`
	Offset   int                    `form:"offset,default=0" binding:"min=0"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	Total        int                  `json:"total"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
	NextOffset   *int                 `json:"nextOffset,omitempty"`
}
