package api

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HananB27/AiGENt/internal/codegen"
	"github.com/HananB27/AiGENt/internal/completion"
	"github.com/HananB27/AiGENt/internal/deploy"
	"github.com/HananB27/AiGENt/internal/orchestrator"
	"github.com/HananB27/AiGENt/internal/pipeline"
	"github.com/HananB27/AiGENt/internal/provider"
	"go.uber.org/zap"
)

// stubBackend scripts probe and completion behavior for handler tests.
type stubBackend struct {
	probeErr    error
	completeErr error
	output      string
}

func (s *stubBackend) Complete(_ context.Context, _ string) (string, error) {
	if s.completeErr != nil {
		return "", s.completeErr
	}
	if s.output == "" {
		return "stage output", nil
	}
	return s.output, nil
}

func (s *stubBackend) HealthCheck(_ context.Context) error { return s.probeErr }

type stubDeployer struct {
	configured bool
	err        error
}

func (s *stubDeployer) Configured() bool { return s.configured }

func (s *stubDeployer) Deploy(_ context.Context, name string, _ codegen.FileSet) (*deploy.Deployment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &deploy.Deployment{URL: "https://" + codegen.Slugify(name) + ".vercel.app", ID: "dpl_test"}, nil
}

// newTestHandler wires a Handler with in-memory deps and a zero-delay gate.
func newTestHandler(t *testing.T, backend *stubBackend, deployer orchestrator.Deployer) (*Handler, http.Handler) {
	t.Helper()
	logger := zap.NewNop()

	client := completion.NewClient(backend, completion.NewGate(0, 0), logger)
	executor := pipeline.NewExecutor(client, logger)
	history := orchestrator.NewHistory()
	orch := orchestrator.New(backend, executor, deployer, history, logger)

	h := NewHandler(orch, history, client, deployer, logger)
	return h, h.Router()
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func getJSON(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// --- Tests ---

func TestHealthCheck(t *testing.T) {
	_, router := newTestHandler(t, &stubBackend{}, nil)
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp := getJSON(t, ts, "/api/health")
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body map[string]string
	decodeJSON(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
	if body["service"] != "aigent" {
		t.Errorf("expected service aigent, got %q", body["service"])
	}
}

func TestOrchestratorStatus(t *testing.T) {
	_, router := newTestHandler(t, &stubBackend{}, nil)
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp := getJSON(t, ts, "/api/orchestrator/status")
	var body map[string]any
	decodeJSON(t, resp, &body)
	if body["available"] != true {
		t.Errorf("available = %v, want true", body["available"])
	}
	if body["mode"] != "live" {
		t.Errorf("mode = %v, want live", body["mode"])
	}
}

func TestOrchestratorStatusWithoutCredential(t *testing.T) {
	_, router := newTestHandler(t, &stubBackend{probeErr: provider.ErrMissingCredential}, nil)
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp := getJSON(t, ts, "/api/orchestrator/status")
	if resp.StatusCode != 200 {
		t.Fatalf("missing credential must not break the endpoint, got %d", resp.StatusCode)
	}
	var body map[string]any
	decodeJSON(t, resp, &body)
	if body["available"] != false {
		t.Errorf("available = %v, want false", body["available"])
	}
	if body["mode"] != "demo" {
		t.Errorf("mode = %v, want demo", body["mode"])
	}
}

func TestRunOrchestrator(t *testing.T) {
	_, router := newTestHandler(t, &stubBackend{}, nil)
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp := postJSON(t, ts, "/api/orchestrator", map[string]string{
		"request": "build me a recipe assistant",
		"user_id": "user-1",
	})
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var run orchestrator.Run
	decodeJSON(t, resp, &run)
	if run.Status != orchestrator.StatusCompleted {
		t.Errorf("status = %q, want completed", run.Status)
	}
	if len(run.Log) != 10 {
		t.Errorf("workflow log has %d entries, want 10", len(run.Log))
	}
	if run.Transcript == "" {
		t.Error("empty transcript")
	}
	if run.Config == nil {
		t.Error("no agent configuration in response")
	}
}

func TestRunOrchestratorRequiresRequest(t *testing.T) {
	_, router := newTestHandler(t, &stubBackend{}, nil)
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp := postJSON(t, ts, "/api/orchestrator", map[string]string{})
	if resp.StatusCode != 400 {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRunHistoryEndpoints(t *testing.T) {
	_, router := newTestHandler(t, &stubBackend{}, nil)
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp := postJSON(t, ts, "/api/orchestrator", map[string]string{"request": "a bot"})
	var run orchestrator.Run
	decodeJSON(t, resp, &run)

	resp = getJSON(t, ts, "/api/orchestrator/runs")
	var runs []orchestrator.Run
	decodeJSON(t, resp, &runs)
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}

	resp = getJSON(t, ts, "/api/orchestrator/runs/"+run.ID)
	if resp.StatusCode != 200 {
		t.Errorf("get run: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = getJSON(t, ts, "/api/orchestrator/runs/nope")
	if resp.StatusCode != 404 {
		t.Errorf("unknown run: expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestExportWithoutDeploy(t *testing.T) {
	_, router := newTestHandler(t, &stubBackend{}, nil)
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp := postJSON(t, ts, "/api/export", map[string]any{
		"agent":   map[string]any{"name": "Export Bot"},
		"options": map[string]any{"deploy": false},
	})
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Files      map[string]string `json:"files"`
		Deployment map[string]string `json:"deployment"`
	}
	decodeJSON(t, resp, &body)
	if len(body.Files) != 4 {
		t.Errorf("got %d files, want 4", len(body.Files))
	}
	if body.Deployment != nil {
		t.Errorf("unexpected deployment section: %v", body.Deployment)
	}
}

func TestExportWithDeploy(t *testing.T) {
	_, router := newTestHandler(t, &stubBackend{}, &stubDeployer{configured: true})
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp := postJSON(t, ts, "/api/export", map[string]any{
		"agent":   map[string]any{"name": "Export Bot"},
		"options": map[string]any{"deploy": true},
	})
	var body struct {
		Deployment map[string]string `json:"deployment"`
	}
	decodeJSON(t, resp, &body)
	if body.Deployment["status"] != "deployed" {
		t.Errorf("deployment status = %q, want deployed", body.Deployment["status"])
	}
	if body.Deployment["url"] != "https://export-bot.vercel.app" {
		t.Errorf("deployment url = %q", body.Deployment["url"])
	}
}

func TestExportDeployUnconfigured(t *testing.T) {
	_, router := newTestHandler(t, &stubBackend{}, nil)
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp := postJSON(t, ts, "/api/export", map[string]any{
		"agent":   map[string]any{"name": "Export Bot"},
		"options": map[string]any{"deploy": true},
	})
	var body struct {
		Deployment map[string]string `json:"deployment"`
	}
	decodeJSON(t, resp, &body)
	if body.Deployment["status"] != "skipped" {
		t.Errorf("deployment status = %q, want skipped", body.Deployment["status"])
	}
}

func TestDownloadReturnsZip(t *testing.T) {
	_, router := newTestHandler(t, &stubBackend{}, nil)
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp := postJSON(t, ts, "/api/export/download", map[string]any{
		"agent": map[string]any{"name": "Zip Bot"},
	})
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/zip" {
		t.Errorf("content type = %q", ct)
	}

	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("response is not a zip archive: %v", err)
	}
	if len(r.File) != 4 {
		t.Errorf("archive has %d entries, want 4", len(r.File))
	}
}

func TestTestEndpointLive(t *testing.T) {
	backend := &stubBackend{output: `Sure, I can help! {"scores": {"relevance": 9, "tone_match": 8, "helpfulness": 9}, "summary": "On point."}`}
	_, router := newTestHandler(t, backend, nil)
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp := postJSON(t, ts, "/api/test", map[string]any{
		"agent":    map[string]any{"name": "Test Bot"},
		"scenario": "Where is my order?",
	})
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body testResponse
	decodeJSON(t, resp, &body)
	if body.Response == "" {
		t.Error("empty response")
	}
	if body.Analysis.Fallback {
		t.Error("expected parsed analysis, got fallback")
	}
	if body.Analysis.Scores["relevance"] != 9 {
		t.Errorf("relevance = %d, want 9", body.Analysis.Scores["relevance"])
	}
}

func TestTestEndpointDegradesOnFailure(t *testing.T) {
	backend := &stubBackend{completeErr: provider.ErrOverloaded}
	_, router := newTestHandler(t, backend, nil)
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp := postJSON(t, ts, "/api/test", map[string]any{
		"agent":    map[string]any{"name": "Test Bot"},
		"scenario": "Where is my order?",
	})
	if resp.StatusCode != 200 {
		t.Fatalf("failures must degrade, got %d", resp.StatusCode)
	}

	var body testResponse
	decodeJSON(t, resp, &body)
	if !body.Demo {
		t.Error("expected demo response")
	}
	if body.Response == "" {
		t.Error("empty response")
	}
	if !body.Analysis.Fallback {
		t.Error("expected fallback analysis")
	}
}

func TestTestEndpointRequiresScenario(t *testing.T) {
	_, router := newTestHandler(t, &stubBackend{}, nil)
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp := postJSON(t, ts, "/api/test", map[string]any{
		"agent": map[string]any{"name": "Test Bot"},
	})
	if resp.StatusCode != 400 {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}
