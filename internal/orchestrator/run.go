package orchestrator

import (
	"time"

	"github.com/HananB27/AiGENt/internal/agent"
	"github.com/HananB27/AiGENt/internal/pipeline"
)

// Status tracks an orchestration run's lifecycle.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Run is one end-to-end execution of the pipeline for a single user request.
// It is owned exclusively by the orchestrator while executing and becomes
// immutable once Status reaches completed or failed.
type Run struct {
	ID         string                 `json:"id"`
	UserID     string                 `json:"user_id,omitempty"`
	Request    string                 `json:"request"`
	CreatedAt  time.Time              `json:"created_at"`
	Log        []pipeline.StageResult `json:"workflow_log"`
	Config     *agent.Configuration   `json:"agent,omitempty"`
	Transcript string                 `json:"transcript"`
	Status     Status                 `json:"status"`
	Demo       bool                   `json:"demo"`
}

// specOutput returns the create-spec stage's output, the text configuration
// fields are extracted from. Falls back to the last stage output when the
// create-spec entry is somehow absent.
func (r *Run) specOutput() string {
	for _, result := range r.Log {
		if result.Stage == pipeline.StageCreateSpec {
			return result.Output
		}
	}
	if n := len(r.Log); n > 0 {
		return r.Log[n-1].Output
	}
	return ""
}
