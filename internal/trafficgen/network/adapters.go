package network

import (
	"strings"

	"trafficgen/pkg/errors"
)

// AdapterState is the administrative state reported by the kernel
type AdapterState string

const (
	AdapterUp   AdapterState = "UP"
	AdapterDown AdapterState = "DOWN"
)

// Adapter describes one usable physical network interface
type Adapter struct {
	Name         string
	HardwareAddr string
	State        AdapterState
}

// skipPrefixes are loopback and virtual/bridge interface name prefixes that
// are never rotation targets.
var skipPrefixes = []string{"lo", "docker", "veth", "br-", "virbr"}

// IsValidAdapterName reports whether a name is a plausible Linux interface
// name: non-empty, at most 15 characters, alphanumeric plus '-', '_', '.'.
// Anything else is rejected before it can reach a command line.
func IsValidAdapterName(name string) bool {
	if name == "" || len(name) > 15 {
		return false
	}
	for _, r := range name {
		if !((r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') ||
			r == '-' || r == '_' || r == '.') {
			return false
		}
	}
	return true
}

// parseAdapterList parses `ip link show` output. Each numbered header line
// carries the interface name and state; the hardware address comes from the
// immediately following link/ether line. Adapters without one are dropped.
func parseAdapterList(output string) []Adapter {
	var adapters []Adapter
	lines := strings.Split(output, "\n")

	for i, line := range lines {
		parts := strings.SplitN(line, ":", 3)
		if len(parts) < 3 {
			continue
		}

		name := strings.TrimSpace(parts[1])
		// veth pairs show up as "veth123@if6"
		if at := strings.Index(name, "@"); at >= 0 {
			name = name[:at]
		}

		if name == "" || !IsValidAdapterName(name) {
			continue
		}
		if hasSkipPrefix(name) {
			continue
		}

		state := AdapterDown
		if strings.Contains(line, "state UP") {
			state = AdapterUp
		}

		var hwAddr string
		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if strings.HasPrefix(next, "link/ether") {
				fields := strings.Fields(next)
				if len(fields) >= 2 {
					hwAddr = fields[1]
				}
			}
		}

		if hwAddr == "" {
			continue
		}

		adapters = append(adapters, Adapter{
			Name:         name,
			HardwareAddr: hwAddr,
			State:        state,
		})
	}

	return adapters
}

func hasSkipPrefix(name string) bool {
	for _, p := range skipPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// ListAdapters queries the OS for usable network interfaces. An empty result
// or an error means there is no rotation target and the run cannot proceed.
func (m *Manager) ListAdapters() ([]Adapter, error) {
	output, err := m.runner.Run("ip", "link", "show")
	if err != nil {
		return nil, errors.WrapNetworkError("", "list", err)
	}

	adapters := parseAdapterList(output)
	if len(adapters) == 0 {
		return nil, errors.ErrNoAdapters
	}
	return adapters, nil
}

// FindAdapter returns the descriptor for a configured adapter name, or
// ErrAdapterNotFound when it is not among the usable adapters.
func (m *Manager) FindAdapter(name string) (*Adapter, error) {
	adapters, err := m.ListAdapters()
	if err != nil {
		return nil, err
	}
	for i := range adapters {
		if adapters[i].Name == name {
			return &adapters[i], nil
		}
	}
	return nil, errors.WrapNetworkError(name, "find", errors.ErrAdapterNotFound)
}
