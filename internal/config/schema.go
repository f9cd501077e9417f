package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// configSchema constrains config.json before it is unmarshalled, so a typo
// in a pacing knob fails loudly instead of silently running with defaults.
const configSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"llm_provider": {
			"type": "string",
			"enum": ["openai", "anthropic", "kimi", "deepseek", "ollama", "lmstudio"]
		},
		"model":    {"type": "string"},
		"base_url": {"type": "string"},
		"thinking_enabled":      {"type": "boolean"},
		"char_delay_min_ms":     {"type": "integer", "minimum": 1, "maximum": 1000},
		"char_delay_max_ms":     {"type": "integer", "minimum": 1, "maximum": 1000},
		"initial_gap_ms":        {"type": "integer", "minimum": 1, "maximum": 10000},
		"continuous_gap_min_ms": {"type": "integer", "minimum": 1, "maximum": 60000},
		"continuous_gap_max_ms": {"type": "integer", "minimum": 1, "maximum": 60000},
		"max_thought_runes":     {"type": "integer", "minimum": 20, "maximum": 2000},
		"history_turns":         {"type": "integer", "minimum": 1, "maximum": 50}
	}
}`

// Validate checks raw JSON against the config schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var sb strings.Builder
	for i, desc := range result.Errors() {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(desc.String())
	}
	return errors.New(sb.String())
}
