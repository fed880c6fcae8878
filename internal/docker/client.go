package docker

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/docker/docker/client"

	"github.com/mmr-tortoise/stackctl/internal/model"
)

// defaultPingTimeout bounds a daemon reachability check. Docker Desktop on
// macOS can take a few seconds to answer.
const defaultPingTimeout = 5 * time.Second

// Client wraps the Docker Engine SDK client.
//
// Usage:
//
//	c, err := docker.NewClient()
//	if err != nil { /* handle */ }
//	defer c.Close()
//	if _, err := c.Ping(ctx); err != nil { /* engine not running */ }
type Client struct {
	inner *client.Client
	host  string
}

// NewClient creates a client for the local container engine.
//
// DOCKER_HOST wins when set. Otherwise the first existing socket among the
// platform defaults is used; on Linux and macOS that includes the rootless
// Podman socket, since podman-compose projects run against Podman.
//
// Returns a model.CLIError with ExitDockerNotRunning if no socket is found
// or the client cannot be created.
func NewClient() (*Client, error) {
	if host := os.Getenv("DOCKER_HOST"); host != "" {
		return newClientWithHost(host)
	}

	home, _ := os.UserHomeDir()
	host, err := detectEngineHost(runtime.GOOS, home, os.Getenv("XDG_RUNTIME_DIR"))
	if err != nil {
		return nil, model.WrapCLIError(model.ExitDockerNotRunning, "container engine socket not found", err)
	}
	return newClientWithHost(host)
}

func newClientWithHost(host string) (*Client, error) {
	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitDockerNotRunning,
			fmt.Sprintf("failed to create Docker client for host %q", host), err)
	}
	return &Client{inner: c, host: host}, nil
}

// detectEngineHost returns the engine URI for the given platform.
//
// On Linux and macOS the engine listens on a Unix socket whose location
// depends on the installation: the system Docker daemon, Docker Desktop's
// per-user socket, or a Podman socket (rootless under XDG_RUNTIME_DIR, or
// rootful under /run/podman). On Windows Docker Desktop exposes a named pipe.
//
// goos, home and runtimeDir are parameters rather than looked up here so
// tests can exercise every platform branch.
func detectEngineHost(goos, home, runtimeDir string) (string, error) {
	switch goos {
	case "linux", "darwin":
		return detectUnixSocket(socketCandidates(goos, home, runtimeDir))

	case "windows":
		// os.Stat does not work on named pipes, so dial briefly instead.
		pipePath := `//./pipe/docker_engine`
		conn, err := net.DialTimeout("pipe", pipePath, 1*time.Second)
		if err == nil {
			conn.Close()
			return "npipe://" + pipePath, nil
		}
		return "", fmt.Errorf("Docker named pipe not found at %s: %w", pipePath, err)

	default:
		return "", fmt.Errorf("unsupported platform: %s", goos)
	}
}

// socketCandidates lists Unix socket paths from most to least preferred.
//
// The Docker sockets come first: when both engines are installed,
// docker-compose is also the preferred compose tool, so its engine is the
// one whose containers doctor should show.
func socketCandidates(goos, home, runtimeDir string) []string {
	paths := []string{"/var/run/docker.sock"}
	if goos == "darwin" && home != "" {
		paths = append(paths, filepath.Join(home, ".docker", "run", "docker.sock"))
	}
	if runtimeDir != "" {
		paths = append(paths, filepath.Join(runtimeDir, "podman", "podman.sock"))
	}
	if goos == "linux" {
		paths = append(paths, "/run/podman/podman.sock")
	}
	return paths
}

// detectUnixSocket returns the URI of the first path that exists. Existence
// does not prove the daemon is listening; Ping does that.
func detectUnixSocket(paths []string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf("no engine socket found at any of: %v (is Docker or Podman running?)", paths)
}

// Host returns the engine address the client talks to.
func (c *Client) Host() string {
	return c.host
}

// Ping checks that the engine answers within defaultPingTimeout and returns
// the negotiated API version.
//
// A socket file can exist while the daemon behind it is stopped, so this is
// the real reachability test. The timeout is applied on top of ctx; a
// caller deadline that is shorter still wins.
//
// Returns a model.CLIError with ExitDockerNotRunning when the engine does
// not answer.
func (c *Client) Ping(ctx context.Context) (string, error) {
	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	ping, err := c.inner.Ping(pingCtx)
	if err != nil {
		return "", model.WrapCLIError(model.ExitDockerNotRunning,
			"container engine is not responding", err)
	}
	return ping.APIVersion, nil
}

// Close releases the client's resources. Safe to call more than once.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}
