package pipeline

import "time"

// Stage identifies one step of the fixed generation chain. The ordering in
// Stages is load-bearing: each stage's prompt embeds the full output of the
// previous one, so no stage may be skipped or reordered.
type Stage string

const (
	StageStrategize          Stage = "strategize"
	StageAnalyzeRequirements Stage = "analyze-requirements"
	StageCreateSpec          Stage = "create-spec"
	StageTestSpec            Stage = "test-spec"
	StageValidateSpec        Stage = "validate-spec"
	StageOptimize            Stage = "optimize"
	StageDocument            Stage = "document"
	StageSecureReview        Stage = "secure-review"
	StagePerformanceReview   Stage = "performance-review"
	StageArchitectureSetup   Stage = "architecture-setup"
)

// Stages is the fixed execution order.
var Stages = []Stage{
	StageStrategize,
	StageAnalyzeRequirements,
	StageCreateSpec,
	StageTestSpec,
	StageValidateSpec,
	StageOptimize,
	StageDocument,
	StageSecureReview,
	StagePerformanceReview,
	StageArchitectureSetup,
}

// roles maps each stage to the agent persona presented in the transcript.
var roles = map[Stage]string{
	StageStrategize:          "Strategic Planner",
	StageAnalyzeRequirements: "Requirements Analyst",
	StageCreateSpec:          "Specification Author",
	StageTestSpec:            "Test Designer",
	StageValidateSpec:        "Validation Engineer",
	StageOptimize:            "Optimization Specialist",
	StageDocument:            "Documentation Writer",
	StageSecureReview:        "Security Reviewer",
	StagePerformanceReview:   "Performance Reviewer",
	StageArchitectureSetup:   "Architecture Engineer",
}

// displayNames maps each stage to its transcript heading.
var displayNames = map[Stage]string{
	StageStrategize:          "Strategic Planning",
	StageAnalyzeRequirements: "Requirements Analysis",
	StageCreateSpec:          "Specification Creation",
	StageTestSpec:            "Test Design",
	StageValidateSpec:        "Specification Validation",
	StageOptimize:            "Optimization",
	StageDocument:            "Documentation",
	StageSecureReview:        "Security Review",
	StagePerformanceReview:   "Performance Review",
	StageArchitectureSetup:   "Architecture Setup",
}

// Role returns the agent persona name for a stage.
func (s Stage) Role() string { return roles[s] }

// DisplayName returns the human-readable stage heading.
func (s Stage) DisplayName() string { return displayNames[s] }

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	_, ok := roles[s]
	return ok
}

// Outcome tags how a stage result was produced.
type Outcome string

const (
	OutcomeModelSucceeded Outcome = "model-succeeded"
	OutcomeFallbackUsed   Outcome = "model-failed-used-fallback"
)

// StageResult records one stage execution. Results are created once,
// appended to the run's workflow log and never mutated.
type StageResult struct {
	Stage    Stage         `json:"stage"`
	Role     string        `json:"role"`
	Input    string        `json:"input"`
	Output   string        `json:"output"`
	Outcome  Outcome       `json:"outcome"`
	Duration time.Duration `json:"duration"`
}
