// Package providers contains the LLM clients the engine's thought generator
// and the reply path call into. Every client implements engine.TextGenerator:
// one prompt in, one completion out.
package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// AnthropicClient implements engine.TextGenerator against the Anthropic
// Messages API.
type AnthropicClient struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicClient creates an Anthropic-backed generator.
func NewAnthropicClient(apiKey, modelName string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic: empty API key")
	}
	return &AnthropicClient{
		client:    anthropic.NewClient(apiKey),
		model:     modelName,
		maxTokens: defaultMaxTokens,
	}, nil
}

// Generate sends prompt as a single user turn and concatenates the text
// blocks of the reply.
func (c *AnthropicClient) Generate(ctx context.Context, prompt string) (string, error) {
	// Thinking text should vary between sessions, so run warm.
	temperature := float32(0.8)

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{
			{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(prompt)},
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			sb.WriteString(*block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("anthropic: completion contained no text")
	}
	return sb.String(), nil
}
