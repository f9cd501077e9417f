package providers

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/meguminnnnnnnnn/go-openai"
)

const defaultMaxTokens = 1024

// OpenAIClient implements engine.TextGenerator against the OpenAI chat
// completions API. A custom base URL makes it serve every OpenAI-compatible
// endpoint (Kimi, DeepSeek, Ollama, LM Studio, ...).
type OpenAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIClient creates an OpenAI-compatible generator. baseURL may be
// empty for the official endpoint.
func NewOpenAIClient(apiKey, modelName, baseURL string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai: empty API key")
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClient{
		client:    openai.NewClientWithConfig(config),
		model:     modelName,
		maxTokens: defaultMaxTokens,
	}, nil
}

// Generate sends prompt as a single user turn and returns the first choice.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	temperature := float32(0.8)
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("openai: completion contained no text")
	}
	return resp.Choices[0].Message.Content, nil
}
