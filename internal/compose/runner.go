package compose

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// RunResult holds what a finished child process produced.
type RunResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner abstracts child process execution so the resolver and executor can
// be tested without real compose binaries.
//
// Run returns an error only when the process could not be started (or was
// killed because ctx was cancelled). A process that ran and exited non-zero
// is reported through RunResult.ExitCode with a nil error.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (RunResult, error)
}

// ExecRunner executes commands on the local host via os/exec.
type ExecRunner struct{}

// Run starts name with args in dir, waits for it to exit and captures
// stdout and stderr separately. An empty dir means the current directory.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (RunResult, error) {
	// #nosec G204 -- name is one of the fixed compose binaries
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := RunResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return result, nil
	}

	// A cancelled context kills the child; that is not the tool's verdict.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	return result, err
}
