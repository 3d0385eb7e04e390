package workflow

import "context"

type Step interface {
	Name() string
	Execute(ctx context.Context) error
	// Compensate reverts the effects of Execute. It is also called on the
	// failing step and must tolerate a partial execution.
	Compensate(ctx context.Context) error
}

type step struct {
	name       string
	execute    func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

// Name implements Step.
func (s *step) Name() string {
	return s.name
}

// Compensate implements Step.
func (s *step) Compensate(ctx context.Context) error {
	if s.compensate == nil {
		return nil
	}

	return s.compensate(ctx)
}

// Execute implements Step.
func (s *step) Execute(ctx context.Context) error {
	if s.execute == nil {
		return nil
	}

	return s.execute(ctx)
}

var _ Step = &step{}

func StepFunc(name string, execute func(ctx context.Context) error, compensate func(ctx context.Context) error) Step {
	return &step{
		name:       name,
		execute:    execute,
		compensate: compensate,
	}
}
