package providers

import (
	"fmt"
	"os"

	"github.com/wellszhang/mcschat/internal/engine"
)

// NewTextGeneratorFromEnv creates a generator from environment variables.
// LLM_PROVIDER selects the backend; each backend reads its own key, model
// and base-URL variables. Returns the client and the resolved model name.
func NewTextGeneratorFromEnv() (engine.TextGenerator, string, error) {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	switch provider {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, "", fmt.Errorf("OPENAI_API_KEY not set")
		}
		modelName := os.Getenv("OPENAI_MODEL")
		if modelName == "" {
			modelName = "gpt-4o-mini"
		}
		baseURL := os.Getenv("OPENAI_BASE_URL")

		client, err := NewOpenAIClient(apiKey, modelName, baseURL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return client, modelName, nil

	case "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, "", fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
		modelName := os.Getenv("ANTHROPIC_MODEL")
		if modelName == "" {
			modelName = "claude-3-5-haiku-20241022"
		}

		client, err := NewAnthropicClient(apiKey, modelName)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create Anthropic client: %w", err)
		}
		return client, modelName, nil

	case "kimi":
		// Kimi uses an OpenAI-compatible API via BytePlus ModelArk.
		apiKey := os.Getenv("KIMI_API_KEY")
		if apiKey == "" {
			return nil, "", fmt.Errorf("KIMI_API_KEY not set")
		}
		modelName := os.Getenv("KIMI_MODEL")
		if modelName == "" {
			modelName = "kimi-k2-250711"
		}
		baseURL := os.Getenv("KIMI_BASE_URL")
		if baseURL == "" {
			baseURL = "https://ark.ap-southeast.bytepluses.com/api/v3"
		}

		client, err := NewOpenAIClient(apiKey, modelName, baseURL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create Kimi client: %w", err)
		}
		return client, modelName, nil

	case "deepseek":
		apiKey := os.Getenv("DEEPSEEK_API_KEY")
		if apiKey == "" {
			return nil, "", fmt.Errorf("DEEPSEEK_API_KEY not set")
		}
		modelName := os.Getenv("DEEPSEEK_MODEL")
		if modelName == "" {
			modelName = "deepseek-chat"
		}

		client, err := NewOpenAIClient(apiKey, modelName, "https://api.deepseek.com/v1")
		if err != nil {
			return nil, "", fmt.Errorf("failed to create DeepSeek client: %w", err)
		}
		return client, modelName, nil

	case "ollama":
		// Local server, OpenAI-compatible; the key is a placeholder.
		baseURL := os.Getenv("OLLAMA_BASE_URL")
		if baseURL == "" {
			baseURL = "http://localhost:11434/v1"
		}
		modelName := os.Getenv("OLLAMA_MODEL")
		if modelName == "" {
			modelName = "llama3.1"
		}
		apiKey := os.Getenv("OLLAMA_API_KEY")
		if apiKey == "" {
			apiKey = "ollama"
		}

		client, err := NewOpenAIClient(apiKey, modelName, baseURL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create Ollama client: %w", err)
		}
		return client, modelName, nil

	case "lmstudio":
		baseURL := os.Getenv("LMSTUDIO_BASE_URL")
		if baseURL == "" {
			baseURL = "http://localhost:1234/v1"
		}
		modelName := os.Getenv("LMSTUDIO_MODEL")
		if modelName == "" {
			modelName = "local-model"
		}
		apiKey := os.Getenv("LMSTUDIO_API_KEY")
		if apiKey == "" {
			apiKey = "lm-studio"
		}

		client, err := NewOpenAIClient(apiKey, modelName, baseURL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create LM Studio client: %w", err)
		}
		return client, modelName, nil

	default:
		return nil, "", fmt.Errorf("unknown LLM_PROVIDER: %s (supported: openai, anthropic, kimi, deepseek, ollama, lmstudio)", provider)
	}
}
