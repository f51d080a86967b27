package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Completer is the slice of the completion client the executor needs.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Executor runs individual stages. It absorbs every completion failure by
// substituting the stage's fallback text; callers always get a usable
// StageResult and never see a raw error.
type Executor struct {
	client Completer
	logger *zap.Logger
}

// NewExecutor creates a stage executor.
func NewExecutor(client Completer, logger *zap.Logger) *Executor {
	return &Executor{client: client, logger: logger}
}

// RunStage executes one stage against the accumulated input. On completion
// failure the registered fallback text becomes the output and the result is
// tagged accordingly.
func (e *Executor) RunStage(ctx context.Context, stage Stage, input string) StageResult {
	start := time.Now()
	result := StageResult{
		Stage: stage,
		Role:  stage.Role(),
		Input: input,
	}

	prompt := BuildPrompt(stage, input)
	output, err := e.client.Complete(ctx, prompt)
	if err != nil || output == "" {
		if err != nil {
			e.logger.Warn("stage completion failed, using fallback",
				zap.String("stage", string(stage)),
				zap.Error(err))
		}
		result.Output = FallbackText(stage)
		result.Outcome = OutcomeFallbackUsed
		result.Duration = time.Since(start)
		return result
	}

	result.Output = output
	result.Outcome = OutcomeModelSucceeded
	result.Duration = time.Since(start)
	return result
}

// RunFallback produces the stage's result without attempting a completion
// call, used when the backend is already known to be unavailable for the run.
func (e *Executor) RunFallback(stage Stage, input string) StageResult {
	return StageResult{
		Stage:   stage,
		Role:    stage.Role(),
		Input:   input,
		Output:  FallbackText(stage),
		Outcome: OutcomeFallbackUsed,
	}
}
