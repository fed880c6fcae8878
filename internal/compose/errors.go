package compose

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/mmr-tortoise/stackctl/internal/model"
)

// ErrToolNotFound is matched by a SpawnError whose binary does not exist.
var ErrToolNotFound = errors.New("compose tool not found")

// SpawnError reports that the compose binary could not be launched at all:
// not installed, not executable, bad working directory, or a cancelled
// context. No ExecutionOutcome exists in that case.
type SpawnError struct {
	// Binary is the executable that was attempted.
	Binary string

	// Command is the lifecycle command that was being run.
	Command model.LifecycleCommand

	// Err is the underlying OS-level error.
	Err error
}

// Error returns the launch failure including the OS error text.
func (e *SpawnError) Error() string {
	return fmt.Sprintf("could not launch %s %s: %v",
		e.Binary, strings.Join(e.Command.Args(), " "), e.Err)
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrToolNotFound) true for missing binaries.
func (e *SpawnError) Is(target error) bool {
	if target != ErrToolNotFound {
		return false
	}
	return errors.Is(e.Err, exec.ErrNotFound) || errors.Is(e.Err, fs.ErrNotExist)
}

// CommandError reports that the compose tool ran and exited non-zero.
// Its message is the tool's standard error text.
type CommandError struct {
	Command  model.LifecycleCommand
	ExitCode int
	Stderr   string
}

// Error returns the captured standard error, or a generic exit status
// message when the tool wrote nothing to stderr.
func (e *CommandError) Error() string {
	if strings.TrimSpace(e.Stderr) == "" {
		return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	}
	return e.Stderr
}
