package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/stackctl/internal/compose"
	"github.com/mmr-tortoise/stackctl/internal/model"
)

// NewStartCommand creates the "start" cobra command.
func NewStartCommand() *cobra.Command {
	return newLifecycleCommand(model.CommandStart,
		"Start the project's services in the background",
		`Run "up -d" in the project root and print the compose tool's output.

Examples:
  stackctl start
  stackctl start --project-dir ~/src/app --json`)
}

// NewStopCommand creates the "stop" cobra command.
func NewStopCommand() *cobra.Command {
	return newLifecycleCommand(model.CommandStop,
		"Stop and remove the project's services",
		`Run "down" in the project root and print the compose tool's output.
Stopping a project that is not running succeeds.

Examples:
  stackctl stop`)
}

// NewStatusCommand creates the "status" cobra command.
func NewStatusCommand() *cobra.Command {
	return newLifecycleCommand(model.CommandStatus,
		"Show the project's containers",
		`Run "ps" in the project root and print the compose tool's output.

Examples:
  stackctl status
  stackctl status --json`)
}

func newLifecycleCommand(lc model.LifecycleCommand, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   lc.String(),
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLifecycle(cmd, lc)
		},
	}
}

// runLifecycle resolves the project, runs lc through the compose facade
// and prints the tool's output. The call blocks until the tool exits.
func runLifecycle(cmd *cobra.Command, lc model.LifecycleCommand) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	svc := compose.New(env.project.Root, env.logger)
	out, err := svc.Run(cmd.Context(), lc)
	if err != nil {
		return lifecycleError(err)
	}

	if jsonOutput {
		return writeJSON(cmd, lifecycleResult{
			Operation: lc.String(),
			Success:   true,
			Output:    out,
		})
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

// lifecycleResult is the --json form of a successful lifecycle command.
type lifecycleResult struct {
	Operation string `json:"operation"`
	Success   bool   `json:"success"`
	Output    string `json:"output"`
}

// lifecycleError maps facade errors to exit codes. The message is the
// failure text itself: the OS error for a launch failure, the tool's
// stderr for a non-zero exit.
func lifecycleError(err error) error {
	message := strings.TrimRight(err.Error(), "\r\n")

	var spawnErr *compose.SpawnError
	if errors.As(err, &spawnErr) {
		return model.NewCLIError(model.ExitToolNotFound, message)
	}

	var cmdErr *compose.CommandError
	if errors.As(err, &cmdErr) {
		return model.NewCLIError(model.ExitCommandFailed, message)
	}

	return model.WrapCLIError(model.ExitGeneralError, "lifecycle command failed", err)
}
