package workflow

import (
	"context"
	"log/slog"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

// Workflow executes steps in order. When a step fails, the steps already
// executed are compensated in reverse order, the failing one included.
type Workflow struct {
	steps []Step
}

func (w *Workflow) Execute(ctx context.Context) error {
	for idx, step := range w.steps {
		executionErr := step.Execute(ctx)
		if executionErr == nil {
			continue
		}

		executionErr = errors.Wrapf(executionErr, "step '%s' failed", step.Name())

		if compensationErrs := w.compensate(ctx, idx); compensationErrs != nil {
			return errors.WithStack(NewCompensationError(executionErr, compensationErrs...))
		}

		return executionErr
	}

	return nil
}

func (w *Workflow) compensate(ctx context.Context, fromIndex int) []error {
	var errs []error

	for idx := fromIndex; idx >= 0; idx-- {
		step := w.steps[idx]

		if err := step.Compensate(ctx); err != nil {
			err = errors.Wrapf(err, "could not compensate step '%s'", step.Name())
			slog.ErrorContext(ctx, "compensation failed", slogx.Error(err))
			errs = append(errs, err)
			continue
		}

		slog.DebugContext(ctx, "step compensated", slog.String("step", step.Name()))
	}

	return errs
}

func New(steps ...Step) *Workflow {
	return &Workflow{steps: steps}
}
