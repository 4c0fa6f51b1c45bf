package llmclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider calls OpenAI's chat completion API (spec §6's LLM
// backend table).
type OpenAIProvider struct {
	BaseProvider
	client *openai.Client
	model  string
}

// NewOpenAIProvider builds a provider bound to model. An empty apiKey
// yields a provider whose Complete always fails fast, matching the
// teacher's "provider not configured" convention.
func NewOpenAIProvider(apiKey, model string, maxRetries int, retryDelay time.Duration) *OpenAIProvider {
	p := &OpenAIProvider{
		BaseProvider: NewBaseProvider(maxRetries, retryDelay),
		model:        model,
	}
	if apiKey != "" {
		p.client = openai.NewClient(apiKey)
	}
	return p
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string { return "openai" }

// Complete implements Provider.
func (p *OpenAIProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	if p.client == nil {
		return "", errors.New("openai: API key not configured")
	}

	var reply string
	err := p.Retry(ctx, isRetryableOpenAIError, func() error {
		resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: p.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return errors.New("openai: empty choices in response")
		}
		reply = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	return reply, nil
}

func isRetryableOpenAIError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}
	return true
}
