package dto

import (
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	"github.com/SscSPs/personal_finance_app/internal/utils/statement"
	"github.com/shopspring/decimal"
)

// ImportPreviewResponse is the parse result shown to the user for review.
type ImportPreviewResponse struct {
	Format  statement.Format        `json:"format"`
	Drafts  []statement.Draft       `json:"drafts"`
	Skipped []statement.SkippedLine `json:"skipped"`
}

// ImportDraft is one reviewed draft sent back for commit.
type ImportDraft struct {
	Date        string                 `json:"date" binding:"required"`
	Description string                 `json:"description" binding:"max=255"`
	Amount      decimal.Decimal        `json:"amount"`
	Type        domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	Category    string                 `json:"category" binding:"max=60"`
	ExternalID  string                 `json:"externalId" binding:"max=255"`
}

// ImportCommitRequest carries the reviewed drafts.
type ImportCommitRequest struct {
	Drafts []ImportDraft `json:"drafts" binding:"required,min=1,max=5000,dive"`
}

// ImportCommitResponse reports how many drafts became transactions.
type ImportCommitResponse struct {
	Imported   int `json:"imported"`
	Duplicates int `json:"duplicates"`
}
