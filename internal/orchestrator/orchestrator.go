// Package orchestrator drives the fixed stage chain that turns a free-text
// agent request into a configuration, a source bundle and (optionally) a live
// deployment. Every failure mode degrades: the caller always receives a run
// with a readable transcript, never a raw error.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/HananB27/AiGENt/internal/agent"
	"github.com/HananB27/AiGENt/internal/codegen"
	"github.com/HananB27/AiGENt/internal/deploy"
	"github.com/HananB27/AiGENt/internal/extract"
	"github.com/HananB27/AiGENt/internal/pipeline"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Prober is the availability check issued once per run.
type Prober interface {
	HealthCheck(ctx context.Context) error
}

// Deployer is the slice of the deployment adapter the orchestrator needs.
type Deployer interface {
	Configured() bool
	Deploy(ctx context.Context, name string, files codegen.FileSet) (*deploy.Deployment, error)
}

// demoStages is the short-circuit path taken when the backend is known
// unavailable up front: two placeholder agents instead of the full chain.
// This is deliberately distinct from the fallback-through-all-stages path
// taken when calls fail mid-run.
var demoStages = []pipeline.Stage{pipeline.StageStrategize, pipeline.StageCreateSpec}

// Orchestrator runs the pipeline end to end.
type Orchestrator struct {
	prober   Prober
	executor *pipeline.Executor
	deployer Deployer
	history  *History
	logger   *zap.Logger
}

// New creates an orchestrator. deployer may be nil when no deployment
// backend is configured.
func New(prober Prober, executor *pipeline.Executor, deployer Deployer, history *History, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		prober:   prober,
		executor: executor,
		deployer: deployer,
		history:  history,
		logger:   logger,
	}
}

// Available reports whether the completion backend answers the probe.
func (o *Orchestrator) Available(ctx context.Context) bool {
	return o.prober.HealthCheck(ctx) == nil
}

// Execute runs the pipeline for one user request. It never returns an error:
// stage failures substitute fallback text, deployment failures only mark the
// deployment status, and anything unexpected trips the outer catch-all that
// finishes the run as failed with a placeholder agent.
func (o *Orchestrator) Execute(ctx context.Context, request, userID string) (run *Run) {
	run = &Run{
		ID:        uuid.New().String(),
		UserID:    userID,
		Request:   request,
		CreatedAt: time.Now(),
		Status:    StatusProcessing,
	}

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("orchestration panicked",
				zap.String("run", run.ID),
				zap.Any("panic", r))
			run.Status = StatusFailed
			run.Config = placeholderConfig()
			run.Transcript += "\n=== Orchestration Error ===\nSomething went wrong while building your agent. A default agent configuration has been prepared instead.\n"
		}
		if o.history != nil {
			o.history.Add(run)
		}
	}()

	var transcript strings.Builder

	if o.Available(ctx) {
		o.runStages(ctx, run, &transcript)
	} else {
		o.runDemo(run, &transcript)
	}

	run.Config = o.extractConfig(run)

	files, err := codegen.Generate(run.Request, run.Config)
	if err != nil {
		// Generation is deterministic; a failure here is a template bug,
		// not user input. The run still completes without a bundle.
		o.logger.Error("code generation failed", zap.String("run", run.ID), zap.Error(err))
		transcript.WriteString("\n=== Code Generation ===\nfailed: " + err.Error() + "\n")
	} else {
		fmt.Fprintf(&transcript, "\n=== Code Generation ===\ngenerated %d files\n", len(files))
		o.deployBundle(ctx, run, files, &transcript)
	}

	run.Transcript = transcript.String()
	run.Status = StatusCompleted
	return run
}

// runStages executes the full chain, threading each stage's output into the
// next stage's input. Strictly sequential: a stage's prompt embeds the prior
// stage's full output.
func (o *Orchestrator) runStages(ctx context.Context, run *Run, transcript *strings.Builder) {
	input := run.Request
	for i, stage := range pipeline.Stages {
		result := o.executor.RunStage(ctx, stage, input)
		run.Log = append(run.Log, result)
		writeStageBlock(transcript, i+1, len(pipeline.Stages), result)
		input = result.Output
	}
}

// runDemo is the availability short-circuit: the chain is not executed,
// two placeholder agents are recorded and the run completes in demo mode.
func (o *Orchestrator) runDemo(run *Run, transcript *strings.Builder) {
	run.Demo = true
	transcript.WriteString("=== Demo Mode ===\nThe completion backend is unavailable, so this run used pre-written agent content. Configure an API key for live generation.\n")

	input := run.Request
	for i, stage := range demoStages {
		result := o.executor.RunFallback(stage, input)
		run.Log = append(run.Log, result)
		writeStageBlock(transcript, i+1, len(demoStages), result)
		input = result.Output
	}
}

func writeStageBlock(b *strings.Builder, n, total int, result pipeline.StageResult) {
	fmt.Fprintf(b, "\n=== Stage %d/%d: %s (%s) ===\n", n, total, result.Stage.DisplayName(), result.Role)
	fmt.Fprintf(b, "outcome: %s\n", result.Outcome)
	fmt.Fprintf(b, "--- input ---\n%s\n", result.Input)
	fmt.Fprintf(b, "--- output ---\n%s\n", result.Output)
}

// extractConfig pattern-matches configuration fields out of the create-spec
// stage output. Every field has a default; extraction cannot fail the run.
func (o *Orchestrator) extractConfig(run *Run) *agent.Configuration {
	text := run.specOutput()
	fields := extract.Apply(text)

	cfg := &agent.Configuration{
		Name:        fields["name"],
		Description: fields["description"],
		Personality: agent.Personality{
			Tone:           fields["tone"],
			Style:          "conversational",
			Expertise:      "general assistance",
			ResponseLength: "medium",
			Creativity:     70,
			Formality:      50,
		},
		Capabilities: agent.Capabilities{
			Skills:    extract.Capabilities(text),
			Languages: []string{"English"},
		},
		Design: agent.Design{
			Avatar: "default",
			Theme: agent.Theme{
				Primary:   fields["primary_color"],
				Secondary: fields["secondary_color"],
				Accent:    fields["secondary_color"],
			},
			Widget: agent.Widget{
				Greeting:    fields["greeting"],
				Placeholder: "Type a message...",
			},
		},
		Deployment: agent.Deployment{
			Platform: "vercel",
			Status:   agent.DeploymentPending,
		},
	}
	cfg.ClampLevels()
	return cfg
}

// deployBundle hands the generated files to the deployment backend. Failure
// surfaces only in the configuration's deployment status; the run itself
// still completes.
func (o *Orchestrator) deployBundle(ctx context.Context, run *Run, files codegen.FileSet, transcript *strings.Builder) {
	if o.deployer == nil || !o.deployer.Configured() {
		transcript.WriteString("\n=== Deployment ===\nskipped: no deployment backend configured\n")
		return
	}

	d, err := o.deployer.Deploy(ctx, run.Config.Name, files)
	if err != nil {
		o.logger.Warn("deployment failed", zap.String("run", run.ID), zap.Error(err))
		run.Config.Deployment.Status = agent.DeploymentFailed
		fmt.Fprintf(transcript, "\n=== Deployment ===\nfailed: %s\n", err)
		return
	}

	run.Config.Deployment.Status = agent.DeploymentDeployed
	run.Config.Deployment.URL = d.URL
	run.Config.Deployment.DeploymentID = d.ID
	fmt.Fprintf(transcript, "\n=== Deployment ===\nlive at %s\n", d.URL)
}

// placeholderConfig is the single fallback agent recorded by the outer
// catch-all.
func placeholderConfig() *agent.Configuration {
	cfg := &agent.Configuration{
		Name:        "AI Assistant",
		Description: "A helpful AI assistant that answers questions and solves problems.",
		Personality: agent.Personality{
			Tone:           "friendly",
			Style:          "conversational",
			Expertise:      "general assistance",
			ResponseLength: "medium",
			Creativity:     70,
			Formality:      50,
		},
		Capabilities: agent.Capabilities{
			Skills:    append([]string(nil), extract.DefaultCapabilities...),
			Languages: []string{"English"},
		},
		Design: agent.Design{
			Avatar: "default",
			Theme:  agent.Theme{Primary: "#6366f1", Secondary: "#8b5cf6", Accent: "#8b5cf6"},
			Widget: agent.Widget{
				Greeting:    "Hi! How can I help you today?",
				Placeholder: "Type a message...",
			},
		},
		Deployment: agent.Deployment{Platform: "vercel", Status: agent.DeploymentPending},
	}
	cfg.ClampLevels()
	return cfg
}
