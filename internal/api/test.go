package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/HananB27/AiGENt/internal/agent"
)

// testRequest exercises an agent configuration against a scenario before
// exporting it.
type testRequest struct {
	Agent    agent.Configuration `json:"agent"`
	Scenario string              `json:"scenario"`
}

// testAnalysis is the scored breakdown of the agent's response.
type testAnalysis struct {
	Scores   map[string]int `json:"scores"`
	Summary  string         `json:"summary"`
	Fallback bool           `json:"fallback"`
}

type testResponse struct {
	Response string       `json:"response"`
	Analysis testAnalysis `json:"analysis"`
	Demo     bool         `json:"demo"`
}

func (h *Handler) testAgent(w http.ResponseWriter, r *http.Request) {
	var req testRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Scenario) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "scenario is required"})
		return
	}
	req.Agent.ClampLevels()

	// Test runs degrade like everything else: a failed completion yields a
	// canned demo response, never an error page.
	reply, err := h.client.Complete(r.Context(), responsePrompt(&req.Agent, req.Scenario))
	if err != nil || reply == "" {
		if err != nil {
			h.logger.Warn("test completion failed, using demo response")
		}
		writeJSON(w, http.StatusOK, testResponse{
			Response: demoTestResponse(&req.Agent),
			Analysis: defaultAnalysis(),
			Demo:     true,
		})
		return
	}

	analysis := defaultAnalysis()
	structured, err := h.client.CompleteStructured(r.Context(), analysisPrompt(&req.Agent, req.Scenario, reply))
	if err == nil && !structured.Fallback {
		var parsed testAnalysis
		if decodeErr := structured.Decode(&parsed); decodeErr == nil && len(parsed.Scores) > 0 {
			analysis = parsed
			analysis.Fallback = false
		}
	}

	writeJSON(w, http.StatusOK, testResponse{Response: reply, Analysis: analysis})
}

func responsePrompt(cfg *agent.Configuration, scenario string) string {
	return fmt.Sprintf(`You are %s. %s
Tone: %s. Style: %s.

Respond to this user message as the agent would:

%s`,
		cfg.Name, cfg.Description,
		cfg.Personality.Tone, cfg.Personality.Style,
		scenario)
}

func analysisPrompt(cfg *agent.Configuration, scenario, reply string) string {
	return fmt.Sprintf(`Score the following agent response from 1 to 10 on relevance,
tone_match and helpfulness, given the agent's configuration.

Agent: %s (%s, tone: %s)
Scenario: %s
Response: %s

Answer with a JSON object only:
{"scores": {"relevance": n, "tone_match": n, "helpfulness": n}, "summary": "one sentence"}`,
		cfg.Name, cfg.Description, cfg.Personality.Tone,
		scenario, reply)
}

func demoTestResponse(cfg *agent.Configuration) string {
	name := cfg.Name
	if name == "" {
		name = "your agent"
	}
	return fmt.Sprintf("This is a preview response from %s. Connect a completion API key to test against the live model.", name)
}

func defaultAnalysis() testAnalysis {
	return testAnalysis{
		Scores:   map[string]int{"relevance": 7, "tone_match": 7, "helpfulness": 7},
		Summary:  "Automated scoring was unavailable; default scores applied.",
		Fallback: true,
	}
}
