package completion

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/HananB27/AiGENt/internal/provider"
	"go.uber.org/zap"
)

// Client wraps a completion backend with the process-wide rate gate and the
// retry policy: rate limits get one retry after a long cooldown, overload and
// credential failures propagate immediately.
type Client struct {
	backend provider.Backend
	gate    *Gate
	logger  *zap.Logger
}

// NewClient creates a completion client. The gate is injected so tests can
// substitute a zero-delay one.
func NewClient(backend provider.Backend, gate *Gate, logger *zap.Logger) *Client {
	return &Client{backend: backend, gate: gate, logger: logger}
}

// Complete issues a single completion call behind the rate gate.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.gate.Wait(ctx); err != nil {
		return "", err
	}

	out, err := c.backend.Complete(ctx, prompt)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, provider.ErrRateLimited) {
		return "", err
	}

	// Rate limited: wait out the cooldown and retry exactly once. A second
	// rate limit propagates like an overload would.
	c.logger.Warn("rate limited, retrying after cooldown", zap.Error(err))
	if serr := c.gate.Cooldown(ctx); serr != nil {
		return "", serr
	}
	if serr := c.gate.Wait(ctx); serr != nil {
		return "", serr
	}
	return c.backend.Complete(ctx, prompt)
}

// Structured is the result of a structured-mode completion. When the
// response carried no parsable JSON, Fallback is true and Raw holds the
// untouched text; structured-mode callers treat that as a valid degraded
// result, not an error.
type Structured struct {
	Value    json.RawMessage `json:"value,omitempty"`
	Raw      string          `json:"raw_response"`
	Fallback bool            `json:"fallback"`
	Error    string          `json:"error,omitempty"`
}

// Decode unmarshals the parsed JSON value into v.
func (s *Structured) Decode(v any) error {
	if s.Fallback {
		return errors.New("structured result is a fallback sentinel")
	}
	return json.Unmarshal(s.Value, v)
}

// CompleteStructured issues a completion and parses JSON out of the free-text
// response. The backend guarantees no structured output mode, so this first
// looks for a brace- or bracket-delimited substring, then tries the whole
// trimmed response; if both fail it returns the fallback sentinel. Only the
// completion call itself can return an error.
func (c *Client) CompleteStructured(ctx context.Context, prompt string) (*Structured, error) {
	raw, err := c.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if value, ok := extractJSON(raw); ok {
		return &Structured{Value: value, Raw: raw}, nil
	}

	c.logger.Warn("no parsable JSON in structured response",
		zap.Int("response_len", len(raw)))
	return &Structured{
		Raw:      raw,
		Fallback: true,
		Error:    "response contained no parsable JSON",
	}, nil
}

// extractJSON locates the first JSON object or array substring in free text.
func extractJSON(raw string) (json.RawMessage, bool) {
	for _, pair := range [][2]byte{{'{', '}'}, {'[', ']'}} {
		start := strings.IndexByte(raw, pair[0])
		end := strings.LastIndexByte(raw, pair[1])
		if start < 0 || end <= start {
			continue
		}
		candidate := raw[start : end+1]
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), true
		}
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), true
	}
	return nil, false
}
