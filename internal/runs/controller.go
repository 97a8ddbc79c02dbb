package runs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/inputs"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/workflow"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/memstore"
)

// Controller executes the incremental consumption loop for one run.
// It is independent of run persistence so the loop can be exercised
// directly against in-memory dependencies.
type Controller struct {
	runtime *workflow.Runtime
	logger  *slog.Logger
	now     func() time.Time
}

// Outcome summarizes what a controller pass did. Created and Updated
// count profile records across every input's reconciled batch.
type Outcome struct {
	NoOp      bool        `json:"no_op"`
	Processed []uuid.UUID `json:"processed"`
	Skipped   int         `json:"skipped"`
	Created   int         `json:"created"`
	Updated   int         `json:"updated"`
	Warnings  []string    `json:"warnings,omitempty"`
}

// NewController creates a run controller over the workflow runtime.
func NewController(rt *workflow.Runtime, logger *slog.Logger) *Controller {
	return NewControllerWithClock(rt, logger, time.Now)
}

// NewControllerWithClock creates a controller with an injected clock.
func NewControllerWithClock(rt *workflow.Runtime, logger *slog.Logger, now func() time.Time) *Controller {
	return &Controller{
		runtime: rt,
		logger:  logger.With("system", "runs"),
		now:     now,
	}
}

// Execute consumes the namespace's fresh inputs sequentially. An input
// whose workflow fails is marked failed and recorded as a warning; the
// run continues with the next input. A tracker write failure aborts
// the run, because continuing would risk reprocessing inputs whose
// profile effects already landed.
func (c *Controller) Execute(ctx context.Context, cmd StartCommand) (*Outcome, error) {
	namespace := cmd.Namespace
	if namespace == "" {
		return nil, ErrInvalidNamespace
	}

	fresh, skipped, err := c.freshInputs(ctx, namespace, cmd.ForceReprocess)
	if err != nil {
		return nil, err
	}

	if cmd.BatchSize > 0 && len(fresh) > cmd.BatchSize {
		fresh = fresh[:cmd.BatchSize]
	}

	outcome := &Outcome{Skipped: skipped}

	if len(fresh) == 0 {
		outcome.NoOp = true
		c.logger.InfoContext(ctx, "run is a no-op", "namespace", namespace, "skipped", skipped)
		return outcome, nil
	}

	for _, input := range fresh {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRunFailed, err)
		}

		result, err := workflow.Execute(ctx, c.runtime, input.ID)
		if err != nil {
			outcome.Warnings = append(outcome.Warnings,
				fmt.Sprintf("input %s: %v", input.ID, err))
			c.logger.WarnContext(ctx, "input workflow failed",
				"input_id", input.ID,
				"error", err,
			)
			if markErr := c.runtime.Inputs.MarkStatus(ctx, input.ID, inputs.StatusFailed); markErr != nil {
				outcome.Warnings = append(outcome.Warnings,
					fmt.Sprintf("input %s: mark failed: %v", input.ID, markErr))
			}
			continue
		}

		ids := []string{input.ID.String()}
		if err := memstore.MarkInputsConsumed(ctx, c.runtime.Store, namespace, ids, c.now()); err != nil {
			return nil, fmt.Errorf("%w: record consumed input %s: %w", ErrRunFailed, input.ID, err)
		}

		if err := c.runtime.Inputs.MarkStatus(ctx, input.ID, inputs.StatusProcessed); err != nil {
			outcome.Warnings = append(outcome.Warnings,
				fmt.Sprintf("input %s: mark processed: %v", input.ID, err))
		}

		outcome.Processed = append(outcome.Processed, input.ID)
		if result.Batch != nil {
			outcome.Created += result.Batch.Created
			outcome.Updated += result.Batch.Confirmed + result.Batch.Contradicted
		}

		c.logger.InfoContext(ctx, "input profiled",
			"input_id", input.ID,
			"namespace", namespace,
			"messages", result.MessageCount,
			"candidates", result.CandidateCount,
			"blocked", result.Blocked,
		)
	}

	return outcome, nil
}

// freshInputs returns the namespace's pending inputs that the tracker
// has not recorded yet, preserving arrival order. With force set the
// tracker is ignored and every pending input is returned.
func (c *Controller) freshInputs(ctx context.Context, namespace string, force bool) ([]inputs.Input, int, error) {
	pending, err := c.runtime.Inputs.Pending(ctx, namespace)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list pending inputs: %w", ErrRunFailed, err)
	}

	if force {
		return pending, 0, nil
	}

	consumed, err := memstore.ConsumedInputs(ctx, c.runtime.Store, namespace)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: load consumption tracker: %w", ErrRunFailed, err)
	}

	fresh := make([]inputs.Input, 0, len(pending))
	skipped := 0
	for _, input := range pending {
		if _, ok := consumed[input.ID.String()]; ok {
			skipped++
			continue
		}
		fresh = append(fresh, input)
	}

	return fresh, skipped, nil
}
