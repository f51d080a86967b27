package orchestrator

import "sync"

// History retains completed runs in memory for later reference. Runs are
// never mutated after insertion; there is no persistence layer behind this.
type History struct {
	mu    sync.RWMutex
	runs  map[string]*Run
	order []string
}

// NewHistory creates an empty run history.
func NewHistory() *History {
	return &History{runs: make(map[string]*Run)}
}

// Add records a finished run.
func (h *History) Add(run *Run) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.runs[run.ID]; !exists {
		h.order = append(h.order, run.ID)
	}
	h.runs[run.ID] = run
}

// Get returns a run by ID.
func (h *History) Get(id string) (*Run, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	run, ok := h.runs[id]
	return run, ok
}

// List returns all retained runs, most recent first.
func (h *History) List() []*Run {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Run, 0, len(h.order))
	for i := len(h.order) - 1; i >= 0; i-- {
		out = append(out, h.runs[h.order[i]])
	}
	return out
}
