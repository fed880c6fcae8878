package compose

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mmr-tortoise/stackctl/internal/model"
)

// Service is the lifecycle facade handed to callers. Each operation returns
// the tool's standard output on success. On failure it returns a
// *SpawnError (could not launch) or a *CommandError (ran and exited
// non-zero); err.Error() is the failure text in both cases.
type Service struct {
	executor *Executor
}

// NewService wraps an executor.
func NewService(executor *Executor) *Service {
	return &Service{executor: executor}
}

// New builds a Service that runs real processes in projectDir.
func New(projectDir string, logger zerolog.Logger) *Service {
	runner := ExecRunner{}
	resolver := NewResolver(runner, logger)
	return NewService(NewExecutor(resolver, runner, projectDir, logger))
}

// Start brings the project up in detached mode.
func (s *Service) Start(ctx context.Context) (string, error) {
	return s.Run(ctx, model.CommandStart)
}

// Stop tears the project down.
func (s *Service) Stop(ctx context.Context) (string, error) {
	return s.Run(ctx, model.CommandStop)
}

// Status lists the project's containers.
func (s *Service) Status(ctx context.Context) (string, error) {
	return s.Run(ctx, model.CommandStatus)
}

// Run executes cmd and flattens the outcome into text or an error.
func (s *Service) Run(ctx context.Context, cmd model.LifecycleCommand) (string, error) {
	outcome, err := s.executor.Execute(ctx, cmd)
	if err != nil {
		return "", err
	}
	if outcome.Success() {
		return outcome.Stdout, nil
	}
	return "", &CommandError{
		Command:  outcome.Command,
		ExitCode: outcome.ExitCode,
		Stderr:   outcome.Stderr,
	}
}
