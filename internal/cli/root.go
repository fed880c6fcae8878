// Package cli implements the cobra-based CLI commands for stackctl.
//
// The lifecycle subcommands (start, stop, status) are defined in
// lifecycle.go and the diagnostic doctor command in doctor.go. This file
// defines the root command, the global flags and the error-to-exit-code
// translation.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/stackctl/internal/config"
	"github.com/mmr-tortoise/stackctl/internal/logging"
	"github.com/mmr-tortoise/stackctl/internal/model"
	"github.com/mmr-tortoise/stackctl/internal/project"
)

// Global flag variables shared across all subcommands. They are bound to
// persistent flags on the root command and reset every time
// NewRootCommand runs.
var (
	// jsonOutput switches command output to structured JSON.
	jsonOutput bool

	// verbose lowers the log level to debug.
	verbose bool

	// configFile is an explicit config file path.
	configFile string
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command with all
// subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stackctl",
		Short: "Start, stop and inspect a local compose project",
		Long: `stackctl runs the lifecycle of a local Docker Compose project with whichever
compose tool is installed: docker-compose is preferred, podman-compose is used
when docker-compose cannot be run.

The project root is taken from --project-dir, STACKCTL_PROJECT_DIR or the
config file; without any of those it is discovered by walking up from the
current directory to the nearest compose file.`,

		// Errors and usage are printed by Execute in text or JSON form.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	flags.StringVar(&configFile, "config", "", "Config file (default: ./.stackctl.yaml)")
	flags.String("project-dir", "", "Compose project root (default: discovered)")
	flags.String("log-level", "warn", "Log level: trace, debug, info, warn, error, disabled")
	flags.String("log-format", "console", "Log format: console, json")

	rootCmd.AddCommand(NewStartCommand())
	rootCmd.AddCommand(NewStopCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewDoctorCommand())

	return rootCmd
}

// Execute runs the root command and exits with the code carried by a
// CLIError, or 1 for any other error.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(cliErr.Message, cliErr.Code, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), model.ExitGeneralError, nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError writes an error to stderr as text or, with --json, as a JSON
// object. stdout stays reserved for successful command output.
func printError(message string, code model.ExitCode, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"message": message,
			"code":    int(code),
		}
		if underlying != nil {
			errObj["detail"] = underlying.Error()
		}
		data, _ := json.MarshalIndent(map[string]interface{}{"error": errObj}, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
}

// environment is what every subcommand needs before doing its work.
type environment struct {
	cfg     *config.Config
	logger  zerolog.Logger
	project *project.Project
}

// loadEnvironment reads the configuration, builds the logger and resolves
// the project root for cmd.
func loadEnvironment(cmd *cobra.Command) (*environment, error) {
	cfg, err := config.Load(cmd.Flags(), configFile)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "invalid configuration", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger := logging.New(cmd.ErrOrStderr(), level, cfg.LogFormat)

	wd, err := os.Getwd()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "cannot determine working directory", err)
	}

	proj, err := project.Resolve(cfg.ProjectDir, wd)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("root", proj.Root).
		Str("compose_file", proj.ComposeFile).
		Bool("discovered", proj.Discovered).
		Msg("project resolved")

	return &environment{cfg: cfg, logger: logger, project: proj}, nil
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
