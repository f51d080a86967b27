package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// AnthropicBackend implements the Backend interface against the Claude
// messages API.
type AnthropicBackend struct {
	config BackendConfig
	client *http.Client
	logger *zap.Logger
}

// NewAnthropicBackend creates a new Anthropic completion backend.
func NewAnthropicBackend(cfg BackendConfig, logger *zap.Logger) *AnthropicBackend {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://api.anthropic.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "claude-3-5-haiku-20241022"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 4096
	}
	return &AnthropicBackend{
		config: cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Anthropic-specific request/response types
type anthropicRequest struct {
	Model     string         `json:"model"`
	Messages  []anthropicMsg `json:"messages"`
	MaxTokens int            `json:"max_tokens"`
}

type anthropicMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Error      struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a single-prompt completion request and returns the
// generated text.
func (b *AnthropicBackend) Complete(ctx context.Context, prompt string) (string, error) {
	if b.config.APIKey == "" {
		return "", fmt.Errorf("no api key configured: %w", ErrMissingCredential)
	}

	reqBody := anthropicRequest{
		Model:     b.config.Model,
		Messages:  []anthropicMsg{{Role: "user", Content: prompt}},
		MaxTokens: b.config.MaxTokens,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		b.config.Endpoint+"/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", b.config.APIKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", b.classify(resp.StatusCode, respBody)
	}

	var claudeResp anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&claudeResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	var content strings.Builder
	for _, c := range claudeResp.Content {
		if c.Type == "text" {
			content.WriteString(c.Text)
		}
	}
	return content.String(), nil
}

// classify maps an HTTP error status onto the backend failure taxonomy.
func (b *AnthropicBackend) classify(status int, body []byte) error {
	var parsed anthropicResponse
	_ = json.Unmarshal(body, &parsed)
	msg := parsed.Error.Message
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("API error %d: %s: %w", status, msg, ErrMissingCredential)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("API error %d: %s: %w", status, msg, ErrRateLimited)
	case status == 529 || status == http.StatusServiceUnavailable ||
		parsed.Error.Type == "overloaded_error":
		return fmt.Errorf("API error %d: %s: %w", status, msg, ErrOverloaded)
	default:
		return fmt.Errorf("API error %d: %s", status, msg)
	}
}

// HealthCheck verifies the backend is reachable with the configured
// credential. Used as the availability probe before an orchestration run.
func (b *AnthropicBackend) HealthCheck(ctx context.Context) error {
	if b.config.APIKey == "" {
		return ErrMissingCredential
	}

	reqBody := anthropicRequest{
		Model:     b.config.Model,
		Messages:  []anthropicMsg{{Role: "user", Content: "ping"}},
		MaxTokens: 1,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		b.config.Endpoint+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", b.config.APIKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return b.classify(resp.StatusCode, respBody)
	}
	return nil
}
