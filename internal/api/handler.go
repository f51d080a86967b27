package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/HananB27/AiGENt/internal/agent"
	"github.com/HananB27/AiGENt/internal/bundle"
	"github.com/HananB27/AiGENt/internal/codegen"
	"github.com/HananB27/AiGENt/internal/completion"
	"github.com/HananB27/AiGENt/internal/orchestrator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Completion is the slice of the completion client the test endpoint uses.
type Completion interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteStructured(ctx context.Context, prompt string) (*completion.Structured, error)
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	orch     *orchestrator.Orchestrator
	history  *orchestrator.History
	client   Completion
	deployer orchestrator.Deployer
	logger   *zap.Logger
}

// NewHandler creates a new API handler. deployer may be nil when no
// deployment backend is configured.
func NewHandler(
	orch *orchestrator.Orchestrator,
	history *orchestrator.History,
	client Completion,
	deployer orchestrator.Deployer,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		orch:     orch,
		history:  history,
		client:   client,
		deployer: deployer,
		logger:   logger,
	}
}

// Router builds the chi router with all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.healthCheck)

		r.Post("/orchestrator", h.runOrchestrator)
		r.Get("/orchestrator/status", h.orchestratorStatus)
		r.Get("/orchestrator/runs", h.listRuns)
		r.Get("/orchestrator/runs/{id}", h.getRun)

		r.Post("/export", h.exportAgent)
		r.Post("/export/download", h.downloadAgent)

		r.Post("/test", h.testAgent)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "aigent"})
}

type orchestratorRequest struct {
	Request string `json:"request"`
	UserID  string `json:"user_id,omitempty"`
}

func (h *Handler) runOrchestrator(w http.ResponseWriter, r *http.Request) {
	var req orchestratorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if req.Request == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "request is required"})
		return
	}

	run := h.orch.Execute(r.Context(), req.Request, req.UserID)
	writeJSON(w, http.StatusOK, run)
}

func (h *Handler) orchestratorStatus(w http.ResponseWriter, r *http.Request) {
	available := h.orch.Available(r.Context())
	mode := "demo"
	if available {
		mode = "live"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"available": available,
		"mode":      mode,
	})
}

func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.history.List())
}

func (h *Handler) getRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, ok := h.history.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "run not found"})
		return
	}
	writeJSON(w, http.StatusOK, run)
}

type exportRequest struct {
	Agent   agent.Configuration `json:"agent"`
	Options exportOptions       `json:"options"`
}

type exportOptions struct {
	Deploy      bool   `json:"deploy"`
	ProjectName string `json:"project_name,omitempty"`
	UserRequest string `json:"user_request,omitempty"`
}

func (h *Handler) exportAgent(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	req.Agent.ClampLevels()

	files, err := codegen.Generate(req.Options.UserRequest, &req.Agent)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	resp := map[string]any{"files": files}

	if req.Options.Deploy {
		if h.deployer == nil || !h.deployer.Configured() {
			resp["deployment"] = map[string]string{"status": "skipped", "reason": "no deployment backend configured"}
		} else {
			name := req.Options.ProjectName
			if name == "" {
				name = req.Agent.Name
			}
			d, err := h.deployer.Deploy(r.Context(), name, files)
			if err != nil {
				resp["deployment"] = map[string]string{"status": "failed", "error": err.Error()}
			} else {
				resp["deployment"] = map[string]string{
					"status":        "deployed",
					"url":           d.URL,
					"deployment_id": d.ID,
				}
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type downloadRequest struct {
	Agent       agent.Configuration `json:"agent"`
	ProjectName string              `json:"project_name,omitempty"`
	UserRequest string              `json:"user_request,omitempty"`
}

func (h *Handler) downloadAgent(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	req.Agent.ClampLevels()

	files, err := codegen.Generate(req.UserRequest, &req.Agent)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	archive, err := bundle.Zip(files)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	name := req.ProjectName
	if name == "" {
		name = req.Agent.Name
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+codegen.Slugify(name)+`.zip"`)
	w.WriteHeader(http.StatusOK)
	w.Write(archive)
}
