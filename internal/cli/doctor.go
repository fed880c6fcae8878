package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/stackctl/internal/compose"
	"github.com/mmr-tortoise/stackctl/internal/docker"
	"github.com/mmr-tortoise/stackctl/internal/model"
	"github.com/mmr-tortoise/stackctl/internal/port"
	"github.com/mmr-tortoise/stackctl/internal/project"
)

// NewDoctorCommand creates the "doctor" cobra command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the project root, compose tool and container engine",
		Long: `Report which project root and compose file stackctl would use, which
compose tool it would run, and whether the container engine is reachable.

Unlike start, stop and status, doctor tells whether docker-compose was really
found or only assumed because no compose tool could be spawned. It exits with
code 3 in that case.

Examples:
  stackctl doctor
  stackctl doctor --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd)
		},
	}
}

// doctorReport is everything doctor found out. It is printed as text or JSON.
type doctorReport struct {
	ProjectRoot      string              `json:"projectRoot"`
	Discovered       bool                `json:"discovered"`
	ComposeFile      string              `json:"composeFile,omitempty"`
	ComposeFileError string              `json:"composeFileError,omitempty"`
	ProjectName      string              `json:"projectName"`
	Services         []string            `json:"services,omitempty"`
	Ports            []model.PortBinding `json:"ports,omitempty"`
	PortConflicts    []model.PortBinding `json:"portConflicts,omitempty"`
	Tool             string              `json:"tool"`
	ToolAvailable    bool                `json:"toolAvailable"`
	Engine           engineReport        `json:"engine"`
}

// engineReport describes the container engine as seen through its API.
type engineReport struct {
	Host       string                   `json:"host,omitempty"`
	Reachable  bool                     `json:"reachable"`
	APIVersion string                   `json:"apiVersion,omitempty"`
	Error      string                   `json:"error,omitempty"`
	Containers []model.ServiceContainer `json:"containers,omitempty"`
	Running    int                      `json:"running"`
}

func runDoctor(cmd *cobra.Command) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	report := projectReport(env.project)

	resolver := compose.NewResolver(compose.ExecRunner{}, env.logger)
	tool, available := resolver.Detect(ctx)
	report.Tool = tool.Binary()
	report.ToolAvailable = available

	report.Engine = inspectEngine(ctx, report.ProjectName)

	// A running project holds its own ports, so only a stopped one is checked.
	if report.Engine.Running == 0 {
		report.PortConflicts = port.NewScanner().Conflicts(report.Ports)
	}

	if jsonOutput {
		if err := writeJSON(cmd, report); err != nil {
			return err
		}
	} else {
		printDoctorReport(cmd.OutOrStdout(), report)
	}

	if !report.ToolAvailable {
		return model.NewCLIError(model.ExitToolNotFound,
			fmt.Sprintf("neither %s nor %s could be run",
				model.PrimaryTool.Binary(), model.FallbackTool.Binary()))
	}
	return nil
}

// projectReport fills in the project part of the report from p. The
// compose file is parsed once and shared by the name, service and port
// lookups.
func projectReport(p *project.Project) doctorReport {
	report := doctorReport{
		ProjectRoot: p.Root,
		Discovered:  p.Discovered,
		ComposeFile: p.ComposeFile,
		ProjectName: p.NameFor(nil),
	}

	if p.ComposeFile == "" {
		report.ComposeFileError = "no compose file found in project root"
		return report
	}
	cf, err := project.LoadComposeFile(p.ComposeFile)
	if err != nil {
		report.ComposeFileError = err.Error()
		return report
	}
	report.ProjectName = p.NameFor(cf)
	report.Services = cf.ServiceNames()

	ports, err := cf.PublishedPorts()
	if err != nil {
		report.ComposeFileError = err.Error()
		return report
	}
	report.Ports = ports
	return report
}

// inspectEngine pings the engine and lists the project's containers.
// Failures are recorded in the report rather than returned.
func inspectEngine(ctx context.Context, projectName string) engineReport {
	var report engineReport

	cli, err := docker.NewClient()
	if err != nil {
		report.Error = err.Error()
		return report
	}
	defer func() { _ = cli.Close() }()
	report.Host = cli.Host()

	version, err := cli.Ping(ctx)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Reachable = true
	report.APIVersion = version

	containers, err := docker.ProjectContainers(ctx, cli, projectName)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Containers = containers
	report.Running = docker.CountRunning(containers)
	return report
}

// printDoctorReport writes the human-readable report.
func printDoctorReport(w io.Writer, r doctorReport) {
	root := r.ProjectRoot
	if r.Discovered {
		root += " (discovered)"
	}
	fmt.Fprintf(w, "Project root:  %s\n", root)

	if r.ComposeFileError != "" {
		fmt.Fprintf(w, "Compose file:  %s\n", r.ComposeFileError)
	} else {
		fmt.Fprintf(w, "Compose file:  %s\n", r.ComposeFile)
	}
	fmt.Fprintf(w, "Project name:  %s\n", r.ProjectName)
	if len(r.Services) > 0 {
		fmt.Fprintf(w, "Services:      %s\n", strings.Join(r.Services, ", "))
	}

	for _, b := range r.PortConflicts {
		fmt.Fprintf(w, "Port conflict: %s publishes %d/%s, already in use\n", b.Service, b.Published, b.Protocol)
	}

	if r.ToolAvailable {
		fmt.Fprintf(w, "Compose tool:  %s\n", r.Tool)
	} else {
		fmt.Fprintf(w, "Compose tool:  %s (not found, assumed)\n", r.Tool)
	}

	switch {
	case r.Engine.Reachable:
		fmt.Fprintf(w, "Engine:        %s (API %s)\n", r.Engine.Host, r.Engine.APIVersion)
	case r.Engine.Host != "":
		fmt.Fprintf(w, "Engine:        %s unreachable: %s\n", r.Engine.Host, r.Engine.Error)
	default:
		fmt.Fprintf(w, "Engine:        unavailable: %s\n", r.Engine.Error)
	}

	if !r.Engine.Reachable {
		return
	}
	fmt.Fprintf(w, "Containers:    %d running / %d total\n", r.Engine.Running, len(r.Engine.Containers))
	for _, c := range r.Engine.Containers {
		fmt.Fprintf(w, "  %-12s %-30s %s\n", c.Service, c.Name, c.State)
	}
}
