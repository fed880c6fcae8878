// Package compose runs lifecycle commands against a local
// Docker-Compose-compatible tool.
//
// This package handles:
//   - Tool resolution: probing docker-compose, then podman-compose, and
//     defaulting to docker-compose when neither can be spawned
//   - Command execution: running "up -d", "down" or "ps" in the project
//     root and waiting for the child process to exit
//   - Result normalization: decoding output as lossy UTF-8 and telling
//     "could not launch" (SpawnError) from "ran and failed" (CommandError)
//
// Nothing is cached. Every call resolves the tool again, so a tool that is
// installed or removed mid-session is picked up by the next call. There is
// no internal timeout either: a call blocks for as long as the child runs,
// unless the caller cancels its context.
package compose
