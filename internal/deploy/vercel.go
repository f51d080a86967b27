// Package deploy publishes a generated file set to the hosting backend.
package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/HananB27/AiGENt/internal/codegen"
	"go.uber.org/zap"
)

// Timeout is the hard wall-clock limit on one deployment call.
const Timeout = 120 * time.Second

var (
	// ErrNotConfigured means no deployment token is set; deployment is
	// simply unavailable, not broken.
	ErrNotConfigured = errors.New("deployment backend not configured")

	// ErrDeployment wraps every failure reported by the hosting backend.
	ErrDeployment = errors.New("deployment failed")
)

// Deployment is a successful publish result.
type Deployment struct {
	URL string `json:"url"`
	ID  string `json:"deployment_id"`
}

// ClientConfig holds deployment backend settings.
type ClientConfig struct {
	Endpoint string
	Token    string
	TeamID   string

	// WorkspaceRoot is where ephemeral deploy workspaces are created.
	// Empty means the system temp directory. Tests point this at a
	// directory they can inspect afterwards.
	WorkspaceRoot string
}

// Client talks to a Vercel-style deployment API.
type Client struct {
	config ClientConfig
	client *http.Client
	logger *zap.Logger
}

// NewClient creates a deployment client.
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://api.vercel.com"
	}
	return &Client{
		config: cfg,
		client: &http.Client{Timeout: Timeout},
		logger: logger,
	}
}

// Configured reports whether a deployment credential is present.
func (c *Client) Configured() bool { return c.config.Token != "" }

type deployFile struct {
	File string `json:"file"`
	Data string `json:"data"`
}

type deployRequest struct {
	Name   string       `json:"name"`
	Files  []deployFile `json:"files"`
	Target string       `json:"target"`
}

type deployResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Deploy publishes the file set under the given project name. The file set
// is materialized into an ephemeral workspace that is removed on every exit
// path, success or failure.
func (c *Client) Deploy(ctx context.Context, name string, files codegen.FileSet) (*Deployment, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	workspace, err := os.MkdirTemp(c.config.WorkspaceRoot, "deploy-*")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	defer os.RemoveAll(workspace)

	if err := materialize(workspace, files); err != nil {
		return nil, err
	}
	payload, err := collect(workspace, name)
	if err != nil {
		return nil, err
	}

	return c.send(ctx, payload)
}

// materialize writes the file set into the workspace.
func materialize(workspace string, files codegen.FileSet) error {
	for path, content := range files {
		full := filepath.Join(workspace, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return fmt.Errorf("create workspace dir for %s: %w", path, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write workspace file %s: %w", path, err)
		}
	}
	return nil
}

// collect reads the workspace back into an inline-file deployment request.
func collect(workspace, name string) (*deployRequest, error) {
	req := &deployRequest{Name: codegen.Slugify(name), Target: "production"}
	err := filepath.WalkDir(workspace, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read workspace file %s: %w", path, err)
		}
		rel, err := filepath.Rel(workspace, path)
		if err != nil {
			return err
		}
		req.Files = append(req.Files, deployFile{
			File: filepath.ToSlash(rel),
			Data: string(data),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (c *Client) send(ctx context.Context, payload *deployRequest) (*Deployment, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal deployment: %w", err)
	}

	endpoint := c.config.Endpoint + "/v13/deployments"
	if c.config.TeamID != "" {
		endpoint += "?teamId=" + url.QueryEscape(c.config.TeamID)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.Token)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeployment, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var parsed deployResponse
	_ = json.Unmarshal(respBody, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := parsed.Error.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", ErrDeployment, msg)
	}
	if parsed.URL == "" || parsed.ID == "" {
		return nil, fmt.Errorf("%w: backend returned no deployment url", ErrDeployment)
	}

	c.logger.Info("deployment created",
		zap.String("id", parsed.ID),
		zap.String("url", parsed.URL))
	return &Deployment{URL: "https://" + parsed.URL, ID: parsed.ID}, nil
}
