// Package port checks whether the host ports a compose project publishes
// are already taken by another process.
//
// The check binds each port briefly with net.Listen or net.ListenPacket.
// A port that cannot be bound is reported as a conflict; "up -d" would fail
// on it with an "address already in use" error from the engine.
package port
