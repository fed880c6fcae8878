package compose

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mmr-tortoise/stackctl/internal/model"
)

// Resolver picks the compose-compatible binary to use for a call.
type Resolver struct {
	runner Runner
	logger zerolog.Logger
}

// NewResolver creates a Resolver that probes tools through runner.
func NewResolver(runner Runner, logger zerolog.Logger) *Resolver {
	return &Resolver{runner: runner, logger: logger}
}

// Resolve returns the tool to run. It never fails: when neither tool can be
// spawned it still returns the primary tool, so the following execution
// produces the OS-level "not found" error instead of a vaguer resolver error.
func (r *Resolver) Resolve(ctx context.Context) model.ComposeTool {
	tool, _ := r.Detect(ctx)
	return tool
}

// Detect is Resolve plus whether the returned tool was actually found.
// available is false only when the primary tool was returned by default.
func (r *Resolver) Detect(ctx context.Context) (tool model.ComposeTool, available bool) {
	for _, candidate := range []model.ComposeTool{model.PrimaryTool, model.FallbackTool} {
		if r.probe(ctx, candidate) {
			r.logger.Debug().Str("tool", candidate.Binary()).Msg("compose tool resolved")
			return candidate, true
		}
	}

	r.logger.Warn().
		Str("tool", model.PrimaryTool.Binary()).
		Msg("no compose tool could be spawned, defaulting to primary")
	return model.PrimaryTool, false
}

// probe reports whether the tool's version command could be spawned.
// The exit code and output are ignored.
func (r *Resolver) probe(ctx context.Context, tool model.ComposeTool) bool {
	_, err := r.runner.Run(ctx, "", tool.Binary(), tool.ProbeArgs()...)
	if err != nil {
		r.logger.Debug().Err(err).Str("tool", tool.Binary()).Msg("compose tool probe failed")
		return false
	}
	return true
}
