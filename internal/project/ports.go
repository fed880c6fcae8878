package project

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/stackctl/internal/model"
)

// servicePorts is the "ports" part of a service definition. Entries are
// either short strings ("8080:80/tcp") or long-syntax mappings.
type servicePorts struct {
	Ports []yaml.Node `yaml:"ports"`
}

// longPort is the long syntax of a ports entry.
type longPort struct {
	Published string `yaml:"published"`
	HostIP    string `yaml:"host_ip"`
	Protocol  string `yaml:"protocol"`
}

// PublishedPorts returns the host ports the compose file publishes, ordered
// by service and port. Entries without a host port, whose host port is an
// unresolved variable, or whose protocol is neither tcp nor udp are
// skipped.
func (c *ComposeFile) PublishedPorts() ([]model.PortBinding, error) {
	var bindings []model.PortBinding
	for _, name := range c.ServiceNames() {
		node := c.Services[name]
		var sp servicePorts
		if err := node.Decode(&sp); err != nil {
			return nil, fmt.Errorf("service %s: invalid ports: %w", name, err)
		}

		for i := range sp.Ports {
			entry := &sp.Ports[i]
			var (
				found []model.PortBinding
				err   error
			)
			switch entry.Kind {
			case yaml.ScalarNode:
				found, err = parseShortPort(name, entry.Value)
			case yaml.MappingNode:
				var lp longPort
				if err = entry.Decode(&lp); err == nil {
					found, err = longPortBindings(name, lp)
				}
			default:
				err = fmt.Errorf("unexpected YAML node at line %d", entry.Line)
			}
			if err != nil {
				return nil, fmt.Errorf("service %s: invalid ports entry: %w", name, err)
			}
			bindings = append(bindings, found...)
		}
	}

	sort.SliceStable(bindings, func(i, j int) bool {
		if bindings[i].Service != bindings[j].Service {
			return bindings[i].Service < bindings[j].Service
		}
		return bindings[i].Published < bindings[j].Published
	})
	return bindings, nil
}

// parseShortPort parses "[[ip:]host:]container[/protocol]". The host part
// may be a range such as "8000-8002".
func parseShortPort(service, entry string) ([]model.PortBinding, error) {
	if strings.Contains(entry, "$") {
		// Interpolated by the compose tool; the value is not known here.
		return nil, nil
	}
	protocol := "tcp"
	if idx := strings.LastIndex(entry, "/"); idx >= 0 {
		protocol = entry[idx+1:]
		entry = entry[:idx]
	}

	// Split from the right so a bracketed IPv6 host address stays intact.
	idx := strings.LastIndex(entry, ":")
	if idx < 0 {
		// Container port only; the engine picks the host port.
		return nil, nil
	}
	rest := entry[:idx]

	hostIP := ""
	host := rest
	if idx := strings.LastIndex(rest, ":"); idx >= 0 {
		hostIP = strings.Trim(rest[:idx], "[]")
		host = rest[idx+1:]
	}
	if host == "" {
		return nil, nil
	}

	return portRange(service, hostIP, host, protocol)
}

func longPortBindings(service string, lp longPort) ([]model.PortBinding, error) {
	if lp.Published == "" {
		return nil, nil
	}
	protocol := lp.Protocol
	if protocol == "" {
		protocol = "tcp"
	}
	return portRange(service, lp.HostIP, lp.Published, protocol)
}

// portRange expands "8080" or "8080-8082" into bindings.
func portRange(service, hostIP, ports, protocol string) ([]model.PortBinding, error) {
	if strings.Contains(ports, "$") {
		return nil, nil
	}
	if protocol != "tcp" && protocol != "udp" {
		// sctp and friends cannot be checked with a plain bind.
		return nil, nil
	}

	first, last, isRange := strings.Cut(ports, "-")
	start, err := parsePortNumber(first)
	if err != nil {
		return nil, err
	}
	end := start
	if isRange {
		if end, err = parsePortNumber(last); err != nil {
			return nil, err
		}
		if end < start {
			return nil, fmt.Errorf("invalid port range %q", ports)
		}
	}

	bindings := make([]model.PortBinding, 0, end-start+1)
	for p := start; p <= end; p++ {
		bindings = append(bindings, model.PortBinding{
			Service:   service,
			HostIP:    hostIP,
			Published: p,
			Protocol:  protocol,
		})
	}
	return bindings, nil
}

func parsePortNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return 0, fmt.Errorf("invalid port %q", s)
	}
	return n, nil
}
