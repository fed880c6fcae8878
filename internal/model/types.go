package model

import (
	"fmt"
	"strings"
)

// ComposeTool identifies a compose-compatible executable. The set is closed:
// a primary tool that is tried first and a fallback tool that is tried when
// the primary cannot be spawned.
type ComposeTool int

const (
	// ToolDockerCompose is the primary tool, the standalone docker-compose binary.
	ToolDockerCompose ComposeTool = iota

	// ToolPodmanCompose is the fallback tool.
	ToolPodmanCompose
)

// PrimaryTool and FallbackTool name the resolution order.
const (
	PrimaryTool  = ToolDockerCompose
	FallbackTool = ToolPodmanCompose
)

// Binary returns the canonical executable name looked up on PATH.
func (t ComposeTool) Binary() string {
	switch t {
	case ToolPodmanCompose:
		return "podman-compose"
	default:
		return "docker-compose"
	}
}

// ProbeArgs returns the arguments of the availability probe. Only whether
// the probe process could be spawned matters, not what it prints.
func (t ComposeTool) ProbeArgs() []string {
	return []string{"version"}
}

// String returns the binary name, which doubles as the display name.
func (t ComposeTool) String() string {
	return t.Binary()
}

// IsValid checks whether the ComposeTool value is one of the known tools.
func (t ComposeTool) IsValid() bool {
	return t == ToolDockerCompose || t == ToolPodmanCompose
}

// LifecycleCommand is one of the fixed lifecycle operations exposed to callers.
// Each command is bound to a fixed compose argument list.
type LifecycleCommand string

const (
	// CommandStart brings the project up in detached mode ("up -d").
	CommandStart LifecycleCommand = "start"

	// CommandStop tears the project down ("down").
	CommandStop LifecycleCommand = "stop"

	// CommandStatus lists the project's containers ("ps").
	CommandStatus LifecycleCommand = "status"
)

// String returns the string representation of LifecycleCommand.
func (c LifecycleCommand) String() string {
	return string(c)
}

// IsValid checks whether the command is one of the predefined commands.
func (c LifecycleCommand) IsValid() bool {
	switch c {
	case CommandStart, CommandStop, CommandStatus:
		return true
	default:
		return false
	}
}

// Args returns the compose subcommand and flags for the lifecycle command.
// A fresh slice is returned on every call so callers may append to it.
func (c LifecycleCommand) Args() []string {
	switch c {
	case CommandStart:
		return []string{"up", "-d"}
	case CommandStop:
		return []string{"down"}
	case CommandStatus:
		return []string{"ps"}
	default:
		return nil
	}
}

// ParseLifecycleCommand converts a string to a LifecycleCommand.
// Returns an error if the string does not match any known command.
func ParseLifecycleCommand(s string) (LifecycleCommand, error) {
	cmd := LifecycleCommand(strings.ToLower(strings.TrimSpace(s)))
	if !cmd.IsValid() {
		return "", fmt.Errorf("invalid lifecycle command: %q (valid: start, stop, status)", s)
	}
	return cmd, nil
}

// OutcomeKind tags how a lifecycle command that actually ran has finished.
// A command that could not be launched has no outcome at all; it is
// reported as a spawn error instead.
type OutcomeKind string

const (
	// OutcomeSuccess means the tool exited with status zero.
	OutcomeSuccess OutcomeKind = "success"

	// OutcomeNonZeroExit means the tool ran but reported failure.
	OutcomeNonZeroExit OutcomeKind = "non-zero-exit"
)

// String returns the string representation of OutcomeKind.
func (k OutcomeKind) String() string {
	return string(k)
}

// ExecutionOutcome is the normalized result of one lifecycle command.
//
// Exactly one of Stdout and Stderr is meaningful: a successful outcome never
// carries error text and a failed one never carries output text. Use
// NewSuccessOutcome and NewFailureOutcome to keep that invariant.
type ExecutionOutcome struct {
	// Command is the lifecycle command that produced this outcome.
	Command LifecycleCommand `json:"command"`

	// Kind tells success from non-zero exit.
	Kind OutcomeKind `json:"kind"`

	// ExitCode is the child process exit status.
	ExitCode int `json:"exitCode"`

	// Stdout is the decoded standard output. Set only on success.
	Stdout string `json:"stdout,omitempty"`

	// Stderr is the decoded standard error. Set only on failure.
	Stderr string `json:"stderr,omitempty"`
}

// NewSuccessOutcome builds a success outcome carrying standard output.
func NewSuccessOutcome(cmd LifecycleCommand, stdout string) *ExecutionOutcome {
	return &ExecutionOutcome{Command: cmd, Kind: OutcomeSuccess, Stdout: stdout}
}

// NewFailureOutcome builds a non-zero-exit outcome carrying standard error.
func NewFailureOutcome(cmd LifecycleCommand, exitCode int, stderr string) *ExecutionOutcome {
	return &ExecutionOutcome{Command: cmd, Kind: OutcomeNonZeroExit, ExitCode: exitCode, Stderr: stderr}
}

// Success reports whether the tool exited with status zero.
func (o *ExecutionOutcome) Success() bool {
	return o.Kind == OutcomeSuccess
}

// Payload returns the meaningful text: stdout on success, stderr on failure.
func (o *ExecutionOutcome) Payload() string {
	if o.Success() {
		return o.Stdout
	}
	return o.Stderr
}

// ServiceContainer is the engine-side view of one container that belongs to
// a compose project. It is fetched on demand and never persisted.
type ServiceContainer struct {
	// ID is the Docker container identifier.
	ID string `json:"id"`

	// Name is the container name without the API's leading slash.
	Name string `json:"name"`

	// Service is the compose service name from the
	// com.docker.compose.service label.
	Service string `json:"service,omitempty"`

	// State is the short container state, e.g. "running" or "exited".
	State string `json:"state"`
}

// PortBinding is a host port a compose service publishes.
type PortBinding struct {
	// Service is the compose service that publishes the port.
	Service string `json:"service"`

	// HostIP is the host address the port is bound to. Empty means all
	// interfaces.
	HostIP string `json:"hostIp,omitempty"`

	// Published is the host port number.
	Published int `json:"published"`

	// Protocol is "tcp" or "udp".
	Protocol string `json:"protocol"`
}

// ExitCode defines the process exit codes of the CLI so scripts can tell
// the failure classes apart.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitCommandFailed indicates the compose tool ran and exited non-zero.
	ExitCommandFailed ExitCode = 2

	// ExitToolNotFound indicates the compose tool could not be launched.
	ExitToolNotFound ExitCode = 3

	// ExitDockerNotRunning indicates the Docker daemon is not accessible.
	ExitDockerNotRunning ExitCode = 4

	// ExitProjectNotFound indicates the configured project root is unusable.
	ExitProjectNotFound ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
