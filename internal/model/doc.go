// Package model defines the domain types and value objects for the
// stackctl CLI.
//
// This package contains pure data structures with no external dependencies.
// Every value here is transient: a ComposeTool is chosen per call, an
// ExecutionOutcome describes one finished child process, and nothing is
// persisted between invocations.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
