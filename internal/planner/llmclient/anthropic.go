package llmclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider calls Anthropic's Messages API.
type AnthropicProvider struct {
	BaseProvider
	client   *anthropic.Client
	model    string
	hasKey   bool
}

// NewAnthropicProvider builds a provider bound to model.
func NewAnthropicProvider(apiKey, model string, maxRetries int, retryDelay time.Duration) *AnthropicProvider {
	p := &AnthropicProvider{
		BaseProvider: NewBaseProvider(maxRetries, retryDelay),
		model:        model,
	}
	if apiKey != "" {
		client := anthropic.NewClient(option.WithAPIKey(apiKey))
		p.client = &client
		p.hasKey = true
	}
	return p
}

// Name implements Provider.
func (p *AnthropicProvider) Name() string { return "anthropic" }

// Complete implements Provider.
func (p *AnthropicProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	if !p.hasKey {
		return "", errors.New("anthropic: API key not configured")
	}

	var reply string
	err := p.Retry(ctx, func(error) bool { return true }, func() error {
		msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(p.model),
			MaxTokens: 1024,
			System: []anthropic.TextBlockParam{
				{Text: system},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
		if err != nil {
			return err
		}
		if len(msg.Content) == 0 {
			return errors.New("anthropic: empty content in response")
		}
		reply = msg.Content[0].Text
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("anthropic completion: %w", err)
	}
	return reply, nil
}
