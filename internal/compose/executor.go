package compose

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mmr-tortoise/stackctl/internal/model"
)

// ToolResolver chooses the compose tool for one call.
type ToolResolver interface {
	Resolve(ctx context.Context) model.ComposeTool
}

// Executor runs lifecycle commands in a fixed project root.
//
// It holds no mutable state, so concurrent Execute calls are independent;
// they are not coordinated against each other either.
type Executor struct {
	resolver ToolResolver
	runner   Runner
	dir      string
	logger   zerolog.Logger
}

// NewExecutor creates an Executor that runs commands in projectDir.
func NewExecutor(resolver ToolResolver, runner Runner, projectDir string, logger zerolog.Logger) *Executor {
	return &Executor{
		resolver: resolver,
		runner:   runner,
		dir:      projectDir,
		logger:   logger,
	}
}

// Dir returns the working directory commands run in.
func (e *Executor) Dir() string {
	return e.dir
}

// Execute resolves the tool, runs cmd to completion and normalizes the
// result. The returned error is a *SpawnError when the tool could not be
// launched; in every other case an outcome is returned, successful or not.
func (e *Executor) Execute(ctx context.Context, cmd model.LifecycleCommand) (*model.ExecutionOutcome, error) {
	if !cmd.IsValid() {
		return nil, fmt.Errorf("unknown lifecycle command %q", cmd)
	}

	tool := e.resolver.Resolve(ctx)
	args := cmd.Args()

	log := e.logger.With().
		Str("command", cmd.String()).
		Str("tool", tool.Binary()).
		Strs("args", args).
		Str("dir", e.dir).
		Logger()
	log.Debug().Msg("running lifecycle command")

	result, err := e.runner.Run(ctx, e.dir, tool.Binary(), args...)
	if err != nil {
		log.Debug().Err(err).Msg("lifecycle command could not be launched")
		return nil, &SpawnError{Binary: tool.Binary(), Command: cmd, Err: err}
	}

	if result.ExitCode == 0 {
		log.Debug().Msg("lifecycle command succeeded")
		return model.NewSuccessOutcome(cmd, DecodeOutput(result.Stdout)), nil
	}

	log.Debug().Int("exit_code", result.ExitCode).Msg("lifecycle command failed")
	return model.NewFailureOutcome(cmd, result.ExitCode, DecodeOutput(result.Stderr)), nil
}
