package engine

import (
	"errors"
	"fmt"
	"strings"
)

// GenerationError records a failed attempt of one generation strategy. It is
// recovered locally by the fallback chain and only ever surfaced to hooks.
type GenerationError struct {
	Strategy string // "contextual", "simple", "batch"
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("thought generation (%s) failed: %v", e.Strategy, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// SinkError wraps a display-sink failure. The controller treats it as an
// early, silent termination; the session still finalizes and resolves its
// completion signal.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("display sink failed: %v", e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

// errEmptyThought is returned when post-processing rejects a generated
// thought (empty after cleanup).
var errEmptyThought = errors.New("empty thought after post-processing")

// GenerationFailureClass is a coarse diagnostic classification of provider
// errors, used for log lines only. The engine never retries a provider call.
type GenerationFailureClass string

const (
	FailureRateLimit GenerationFailureClass = "rate_limit"
	FailureAuth      GenerationFailureClass = "auth"
	FailureNetwork   GenerationFailureClass = "network"
	FailureOther     GenerationFailureClass = "other"
)

// ClassifyGenerationFailure buckets a provider error for diagnostics.
func ClassifyGenerationFailure(err error) GenerationFailureClass {
	if err == nil {
		return FailureOther
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"), strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "too many requests"):
		return FailureRateLimit
	case strings.Contains(msg, "401"), strings.Contains(msg, "403"),
		strings.Contains(msg, "unauthorized"), strings.Contains(msg, "invalid api key"),
		strings.Contains(msg, "forbidden"):
		return FailureAuth
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "connection"),
		strings.Contains(msg, "no such host"), strings.Contains(msg, "network"):
		return FailureNetwork
	default:
		return FailureOther
	}
}
