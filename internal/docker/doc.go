// Package docker provides a thin Docker Engine API wrapper used by the
// stackctl doctor command.
//
// This package handles:
//   - Docker client initialization with automatic socket detection
//     (Linux, macOS, Windows)
//   - Daemon reachability checks
//   - Listing the containers that belong to a compose project, identified
//     by the com.docker.compose.project label
//
// Lifecycle commands never go through this package; they run the compose
// binary directly (see internal/compose).
package docker
