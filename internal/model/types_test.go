package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComposeTool_Binary verifies the canonical binary names of the closed
// tool set, since they are what gets looked up on PATH.
func TestComposeTool_Binary(t *testing.T) {
	tests := []struct {
		tool     ComposeTool
		expected string
	}{
		{ToolDockerCompose, "docker-compose"},
		{ToolPodmanCompose, "podman-compose"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.tool.Binary())
			assert.Equal(t, tt.expected, tt.tool.String())
			assert.Equal(t, []string{"version"}, tt.tool.ProbeArgs())
		})
	}
}

// TestComposeTool_Order checks that docker-compose is tried before podman-compose.
func TestComposeTool_Order(t *testing.T) {
	assert.Equal(t, ToolDockerCompose, PrimaryTool)
	assert.Equal(t, ToolPodmanCompose, FallbackTool)
	assert.True(t, PrimaryTool.IsValid())
	assert.True(t, FallbackTool.IsValid())
	assert.False(t, ComposeTool(42).IsValid())
}

// TestLifecycleCommand_Args verifies each command's fixed argument list.
func TestLifecycleCommand_Args(t *testing.T) {
	tests := []struct {
		cmd      LifecycleCommand
		expected []string
	}{
		{CommandStart, []string{"up", "-d"}},
		{CommandStop, []string{"down"}},
		{CommandStatus, []string{"ps"}},
		{LifecycleCommand("restart"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cmd.Args())
		})
	}
}

// TestLifecycleCommand_ArgsNotShared makes sure callers cannot corrupt the
// fixed argument list by appending to a returned slice.
func TestLifecycleCommand_ArgsNotShared(t *testing.T) {
	args := CommandStart.Args()
	args[0] = "down"
	assert.Equal(t, []string{"up", "-d"}, CommandStart.Args())
}

// TestParseLifecycleCommand verifies string-to-command conversion,
// including case normalization and error cases.
func TestParseLifecycleCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected LifecycleCommand
		hasError bool
	}{
		{"start", CommandStart, false},
		{"stop", CommandStop, false},
		{"status", CommandStatus, false},
		{"START", CommandStart, false}, // case insensitive
		{" status ", CommandStatus, false},
		{"up", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseLifecycleCommand(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

// TestExecutionOutcome verifies that exactly one payload is populated
// depending on the outcome kind.
func TestExecutionOutcome(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		o := NewSuccessOutcome(CommandStatus, "NAME   STATE\n")
		assert.True(t, o.Success())
		assert.Equal(t, OutcomeSuccess, o.Kind)
		assert.Equal(t, 0, o.ExitCode)
		assert.Equal(t, "NAME   STATE\n", o.Payload())
		assert.Empty(t, o.Stderr)
	})

	t.Run("non-zero exit", func(t *testing.T) {
		o := NewFailureOutcome(CommandStart, 14, "no such file")
		assert.False(t, o.Success())
		assert.Equal(t, OutcomeNonZeroExit, o.Kind)
		assert.Equal(t, 14, o.ExitCode)
		assert.Equal(t, "no such file", o.Payload())
		assert.Empty(t, o.Stdout)
	})
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitDockerNotRunning, "Docker daemon is not running")
		assert.Equal(t, ExitDockerNotRunning, err.Code)
		assert.Equal(t, "Docker daemon is not running", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("connection refused")
		err := WrapCLIError(ExitDockerNotRunning, "Docker daemon is not running", inner)
		assert.Equal(t, ExitDockerNotRunning, err.Code)
		assert.Contains(t, err.Error(), "connection refused")
		assert.Equal(t, inner, err.Unwrap())
	})

	t.Run("errors.Is chain", func(t *testing.T) {
		inner := errors.New("connection refused")
		err := WrapCLIError(ExitToolNotFound, "could not launch docker-compose", inner)
		assert.True(t, errors.Is(err, inner))
	})
}
