package services

import (
	"context"

	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/SscSPs/personal_finance_app/internal/utils/statement"
)

// ImportSvc turns bank statements into transactions in two steps.
type ImportSvc interface {
	// Preview parses a statement into drafts without touching the database.
	Preview(ctx context.Context, userID, filename string, content []byte, format statement.Format) (*statement.Result, error)
	// Commit stores reviewed drafts in one database transaction.
	Commit(ctx context.Context, userID string, req dto.ImportCommitRequest) (*dto.ImportCommitResponse, error)
}

// WhatsAppSvc answers chat commands on behalf of a user.
type WhatsAppSvc interface {
	HandleMessage(ctx context.Context, userID, message string) (*dto.WhatsAppMessageResponse, error)
}

// AdviceSvc produces financial advice from the user's recent history.
type AdviceSvc interface {
	GetAdvice(ctx context.Context, userID, question string) (string, error)
}

// Advisor is the outbound port to a language model.
type Advisor interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
