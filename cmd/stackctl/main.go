// Package main is the entry point for the stackctl CLI.
//
// stackctl starts, stops and reports the status of a local compose project
// with whichever compose tool is installed. All functionality lives in the
// internal/cli package, which defines the cobra commands.
//
// Build-time variables (version, commit, date) are injected via ldflags by
// GoReleaser. During development they default to "dev", "none" and
// "unknown".
package main

import (
	"github.com/mmr-tortoise/stackctl/internal/cli"
)

// version, commit, and date are set by GoReleaser at build time
// via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewRootCommand())
}
