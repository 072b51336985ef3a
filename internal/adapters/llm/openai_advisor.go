// Package llm adapts OpenAI-compatible chat completion APIs to the Advisor port.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/sashabaranov/go-openai"
)

const (
	defaultModel       = "gpt-4o-mini"
	defaultTimeout     = 30 * time.Second
	defaultTemperature = 0.3
	defaultMaxTokens   = 800
)

// Config selects the endpoint and model. An empty BaseURL means api.openai.com.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIAdvisor sends one system and one user message per request.
type OpenAIAdvisor struct {
	client *openai.Client
	model  string
}

var _ portssvc.Advisor = (*OpenAIAdvisor)(nil)

// NewOpenAIAdvisor returns nil when no API key is configured so callers can treat
// advice as disabled.
func NewOpenAIAdvisor(cfg Config) *OpenAIAdvisor {
	if cfg.APIKey == "" {
		return nil
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &OpenAIAdvisor{client: openai.NewClientWithConfig(clientCfg), model: model}
}

// Complete returns the first choice's content. Every failure wraps apperrors.ErrUpstream.
func (a *OpenAIAdvisor) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("llm returned status %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, apperrors.ErrUpstream)
		}
		return "", fmt.Errorf("llm request failed: %v: %w", err, apperrors.ErrUpstream)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm returned no choices: %w", apperrors.ErrUpstream)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("llm returned an empty answer: %w", apperrors.ErrUpstream)
	}
	return content, nil
}
