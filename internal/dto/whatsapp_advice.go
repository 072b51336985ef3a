package dto

import "github.com/SscSPs/personal_finance_app/internal/utils/whatsapp"

// WhatsAppMessageRequest is the body posted by the messaging gateway.
type WhatsAppMessageRequest struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// WhatsAppMessageResponse is the reply text together with how the message was classified.
type WhatsAppMessageResponse struct {
	Response string        `json:"response"`
	Kind     whatsapp.Kind `json:"kind"`
}

// AdviceRequest optionally narrows the question sent to the model.
type AdviceRequest struct {
	Question string `json:"question" binding:"max=500"`
}

// AdviceResponse carries the generated advice text.
type AdviceResponse struct {
	Advice string `json:"advice"`
}
