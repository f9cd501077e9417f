package config

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{"empty object", `{}`, false},
		{"full valid", `{
			"llm_provider": "openai",
			"model": "gpt-4o-mini",
			"thinking_enabled": true,
			"char_delay_min_ms": 20,
			"char_delay_max_ms": 60,
			"continuous_gap_min_ms": 2000,
			"continuous_gap_max_ms": 5000,
			"history_turns": 5
		}`, false},
		{"unknown provider", `{"llm_provider": "telegraph"}`, true},
		{"wrong type", `{"char_delay_min_ms": "fast"}`, true},
		{"below minimum", `{"max_thought_runes": 5}`, true},
		{"unknown field", `{"thinking_speed": 3}`, true},
		{"not an object", `[1, 2, 3]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.json))
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%s) error = %v, wantErr %v", tt.json, err, tt.wantErr)
			}
		})
	}
}
