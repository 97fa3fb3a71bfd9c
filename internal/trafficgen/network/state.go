package network

import (
	"strings"

	"trafficgen/pkg/errors"
	"trafficgen/pkg/logger"
)

// OriginalState is the adapter configuration captured before the first
// mutation and re-applied at shutdown. Empty fields could not be determined
// and are skipped during restoration.
type OriginalState struct {
	Adapter      string
	HardwareAddr string
	IPAddr       string // CIDR form, e.g. "10.0.0.5/24"
	Gateway      string
	ResolvConf   []byte
}

// CaptureOriginalState records the adapter's current configuration. It must
// run exactly once, before any mutation: without a snapshot the shutdown
// restoration cannot be guaranteed, so failure here is fatal to the run.
// Individual queries that fail only leave their field absent; the one hard
// requirement is that the adapter itself answers.
func (m *Manager) CaptureOriginalState(adapter string) (*OriginalState, error) {
	output, err := m.runner.Run("ip", "addr", "show", "dev", adapter)
	if err != nil {
		return nil, errors.WrapNetworkError(adapter, "capture", err)
	}

	state := &OriginalState{Adapter: adapter}

	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if state.IPAddr == "" && strings.HasPrefix(trimmed, "inet ") && !strings.Contains(trimmed, "inet6") {
			if fields := strings.Fields(trimmed); len(fields) >= 2 {
				state.IPAddr = fields[1]
			}
		}
		if state.HardwareAddr == "" && strings.HasPrefix(trimmed, "link/ether") {
			if fields := strings.Fields(trimmed); len(fields) >= 2 {
				state.HardwareAddr = fields[1]
			}
		}
	}

	if routes, err := m.runner.Run("ip", "route", "show", "default"); err == nil {
		state.Gateway = parseDefaultGateway(routes)
	} else {
		m.logger.Warn("could not determine default gateway", "error", err)
	}

	if resolv, err := m.platform.ReadFile(m.ResolvConfPath); err == nil {
		state.ResolvConf = resolv
	} else {
		m.logger.Warn("could not read resolver file", "path", m.ResolvConfPath, "error", err)
	}

	return state, nil
}

// parseDefaultGateway extracts the gateway from the first default route line
func parseDefaultGateway(output string) string {
	lines := strings.Split(output, "\n")
	if len(lines) == 0 {
		return ""
	}
	fields := strings.Fields(lines[0])
	for i, f := range fields {
		if f == "via" && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return ""
}

// RestoreOriginalState re-applies every present field of the snapshot. Each
// step is independent and best-effort: failures are logged, never returned,
// so shutdown always completes.
func (m *Manager) RestoreOriginalState(state *OriginalState) {
	log := m.logger.WithField("adapter", state.Adapter)

	if state.HardwareAddr != "" {
		m.restoreStep(log, "ip", "link", "set", "dev", state.Adapter, "down")
		m.restoreStep(log, "ip", "link", "set", "dev", state.Adapter, "address", state.HardwareAddr)
		m.restoreStep(log, "ip", "link", "set", "dev", state.Adapter, "up")
	}

	if state.IPAddr != "" {
		m.restoreStep(log, "ip", "addr", "flush", "dev", state.Adapter)
		m.restoreStep(log, "ip", "addr", "add", state.IPAddr, "dev", state.Adapter)
	}

	if state.Gateway != "" {
		m.restoreStep(log, "ip", "route", "add", "default", "via", state.Gateway, "dev", state.Adapter)
	}

	if state.ResolvConf != nil {
		if err := m.platform.WriteFile(m.ResolvConfPath, state.ResolvConf, 0644); err != nil {
			log.Error("failed to restore resolver file", "path", m.ResolvConfPath, "error", err)
		}
	}

	log.Info("original network state restored")
}

// restoreStep runs one restoration command, logging failure and moving on
func (m *Manager) restoreStep(log *logger.Logger, name string, args ...string) {
	if _, err := m.runner.Run(name, args...); err != nil {
		log.Warn("restoration step failed", "error", err)
	}
}
