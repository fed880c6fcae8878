package port

import (
	"net"
	"strconv"

	"github.com/mmr-tortoise/stackctl/internal/model"
)

// Scanner checks whether host ports are free.
//
// It asks the operating system directly by binding the port, rather than
// parsing /proc/net/* or running lsof, which may need elevated permissions.
//
// A port held by a container of the same project also shows up as taken,
// so callers only scan a project whose containers are not running.
//
// The struct is stateless; it exists so the check can grow options such as
// a bind timeout without changing callers.
type Scanner struct{}

// NewScanner creates a new Scanner instance.
func NewScanner() *Scanner {
	return &Scanner{}
}

// IsPortAvailable reports whether port can be bound on hostIP for protocol.
//
// For TCP it attempts net.Listen, for UDP net.ListenPacket. If the bind
// succeeds the port is free and the listener is closed again right away.
//
// An empty hostIP binds all interfaces, which is where the engine publishes
// ports unless the compose file names a host_ip. Binding the same address
// the engine would use keeps the answer accurate: a port bound only on
// 127.0.0.1 does not block a publish on 192.168.1.10.
//
// Parameters:
//   - hostIP: the address to bind, "" for all interfaces
//   - port: the port number to check (1-65535)
//   - protocol: "tcp" or "udp"
//
// Returns true if the port is free, false if it is in use, the address
// cannot be bound, or the protocol is unknown.
func (s *Scanner) IsPortAvailable(hostIP string, port int, protocol string) bool {
	addr := net.JoinHostPort(hostIP, strconv.Itoa(port))

	switch protocol {
	case "tcp":
		listener, err := net.Listen("tcp", addr)
		if err != nil {
			return false
		}
		defer func() { _ = listener.Close() }()
		return true

	case "udp":
		conn, err := net.ListenPacket("udp", addr)
		if err != nil {
			return false
		}
		defer func() { _ = conn.Close() }()
		return true

	default:
		return false
	}
}

// Conflicts returns the bindings whose host port is already in use, in the
// order given. Each binding is checked independently with IsPortAvailable;
// a nil result means every port could be bound.
func (s *Scanner) Conflicts(bindings []model.PortBinding) []model.PortBinding {
	var conflicts []model.PortBinding
	for _, b := range bindings {
		if !s.IsPortAvailable(b.HostIP, b.Published, b.Protocol) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}
