package provider

import (
	"context"
	"errors"
	"time"
)

// Backend is the text-completion service boundary. A backend takes a single
// prompt string and returns generated text; any structure the caller wants
// must be parsed out of the free text afterwards.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
	HealthCheck(ctx context.Context) error
}

// Failure classes surfaced by a Backend. Callers dispatch on these with
// errors.Is; anything not wrapped in one of them is an ordinary transport
// error.
var (
	// ErrMissingCredential means no API key is configured or the backend
	// rejected it. Triggers run-wide demo mode, never retried.
	ErrMissingCredential = errors.New("completion credential missing or rejected")

	// ErrRateLimited means the backend refused the call for quota reasons.
	// Retried exactly once after a long cooldown.
	ErrRateLimited = errors.New("completion rate limited")

	// ErrOverloaded means the backend is degraded. Never retried; callers
	// fall back immediately.
	ErrOverloaded = errors.New("completion service overloaded")
)

// BackendConfig holds configuration for a backend instance.
type BackendConfig struct {
	Endpoint  string        `json:"endpoint"`
	APIKey    string        `json:"api_key"`
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens,omitempty"`
	Timeout   time.Duration `json:"timeout,omitempty"`
}
