package completion

import (
	"context"
	"errors"
	"testing"

	"github.com/HananB27/AiGENt/internal/provider"
	"go.uber.org/zap"
)

// scriptedBackend returns one queued response per call.
type scriptedBackend struct {
	responses []string
	errs      []error
	calls     int
}

func (s *scriptedBackend) Complete(_ context.Context, _ string) (string, error) {
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	var out string
	if i < len(s.responses) {
		out = s.responses[i]
	}
	return out, err
}

func (s *scriptedBackend) HealthCheck(_ context.Context) error { return nil }

func newTestClient(backend provider.Backend) *Client {
	return NewClient(backend, NewGate(0, 0), zap.NewNop())
}

func TestCompletePassesThrough(t *testing.T) {
	b := &scriptedBackend{responses: []string{"generated text"}}
	c := newTestClient(b)

	out, err := c.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "generated text" {
		t.Errorf("got %q, want %q", out, "generated text")
	}
	if b.calls != 1 {
		t.Errorf("backend called %d times, want 1", b.calls)
	}
}

func TestCompleteRetriesOnceOnRateLimit(t *testing.T) {
	b := &scriptedBackend{
		responses: []string{"", "second try"},
		errs:      []error{provider.ErrRateLimited, nil},
	}
	c := newTestClient(b)

	out, err := c.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "second try" {
		t.Errorf("got %q, want %q", out, "second try")
	}
	if b.calls != 2 {
		t.Errorf("backend called %d times, want 2", b.calls)
	}
}

func TestCompleteSecondRateLimitPropagates(t *testing.T) {
	b := &scriptedBackend{errs: []error{provider.ErrRateLimited, provider.ErrRateLimited}}
	c := newTestClient(b)

	_, err := c.Complete(context.Background(), "prompt")
	if !errors.Is(err, provider.ErrRateLimited) {
		t.Errorf("got %v, want ErrRateLimited", err)
	}
	if b.calls != 2 {
		t.Errorf("backend called %d times, want 2", b.calls)
	}
}

func TestCompleteOverloadedNotRetried(t *testing.T) {
	b := &scriptedBackend{errs: []error{provider.ErrOverloaded}}
	c := newTestClient(b)

	_, err := c.Complete(context.Background(), "prompt")
	if !errors.Is(err, provider.ErrOverloaded) {
		t.Errorf("got %v, want ErrOverloaded", err)
	}
	if b.calls != 1 {
		t.Errorf("backend called %d times, want 1", b.calls)
	}
}

func TestCompleteMissingCredentialNotRetried(t *testing.T) {
	b := &scriptedBackend{errs: []error{provider.ErrMissingCredential}}
	c := newTestClient(b)

	_, err := c.Complete(context.Background(), "prompt")
	if !errors.Is(err, provider.ErrMissingCredential) {
		t.Errorf("got %v, want ErrMissingCredential", err)
	}
	if b.calls != 1 {
		t.Errorf("backend called %d times, want 1", b.calls)
	}
}

func TestCompleteStructuredExtractsEmbeddedObject(t *testing.T) {
	b := &scriptedBackend{responses: []string{"Here is your analysis:\n{\"score\": 8}\nHope that helps."}}
	c := newTestClient(b)

	result, err := c.CompleteStructured(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Fallback {
		t.Fatal("expected parsed result, got fallback sentinel")
	}

	var parsed struct {
		Score int `json:"score"`
	}
	if err := result.Decode(&parsed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if parsed.Score != 8 {
		t.Errorf("score = %d, want 8", parsed.Score)
	}
}

func TestCompleteStructuredWholeBody(t *testing.T) {
	b := &scriptedBackend{responses: []string{"  [1, 2, 3]  "}}
	c := newTestClient(b)

	result, err := c.CompleteStructured(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Fallback {
		t.Fatal("expected parsed result, got fallback sentinel")
	}
}

func TestCompleteStructuredSentinelOnMalformed(t *testing.T) {
	b := &scriptedBackend{responses: []string{"I could not produce JSON, sorry {unclosed"}}
	c := newTestClient(b)

	result, err := c.CompleteStructured(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("malformed JSON must not be an error, got: %v", err)
	}
	if !result.Fallback {
		t.Error("expected fallback sentinel")
	}
	if result.Raw == "" {
		t.Error("sentinel must carry the raw response")
	}
}
