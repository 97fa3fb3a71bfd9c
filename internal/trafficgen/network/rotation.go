package network

import (
	"fmt"
	"strings"
	"time"

	"trafficgen/internal/trafficgen/identity"
	"trafficgen/pkg/errors"
)

// RotationPlan is the ordered command sequence that moves an adapter to a new
// identity. Steps are argv slices for the iproute2 tooling.
type RotationPlan [][]string

// tolerated substrings in command failure output. "No such process" appears
// when flushing routes that are already gone, "File exists" when re-adding an
// address or route that survived the flush. Either way the adapter ends up in
// the desired state.
var toleratedFailures = []string{"No such process", "File exists"}

// BuildRotationPlan produces the six-step sequence for applying a new
// identity: take the link down, change the MAC, bring it up, flush stale
// addresses, add the new address, install the default route.
func BuildRotationPlan(adapter, hwAddr, ip string, prefixLen int, gateway string) RotationPlan {
	addr := fmt.Sprintf("%s/%d", ip, prefixLen)
	return RotationPlan{
		{"ip", "link", "set", "dev", adapter, "down"},
		{"ip", "link", "set", "dev", adapter, "address", hwAddr},
		{"ip", "link", "set", "dev", adapter, "up"},
		{"ip", "addr", "flush", "dev", adapter},
		{"ip", "addr", "add", addr, "dev", adapter},
		{"ip", "route", "add", "default", "via", gateway, "dev", adapter},
	}
}

// ExecutePlan runs every step of the plan in order, applies the DNS servers,
// then waits LinkSettle for the interface to stabilize. Tolerated failures
// are logged and skipped. A failed route installation whose output mentions
// an invalid gateway is retried once with the onlink flag, which covers
// gateways outside the adapter's own subnet.
func (m *Manager) ExecutePlan(plan RotationPlan, dns []string) error {
	for _, step := range plan {
		output, err := m.runner.Run(step[0], step[1:]...)
		if err == nil {
			continue
		}

		if isTolerated(output) {
			m.logger.Debug("tolerated rotation step failure",
				"command", strings.Join(step, " "), "output", strings.TrimSpace(output))
			continue
		}

		if isRouteStep(step) && strings.Contains(output, "invalid gateway") {
			retry := append(append([]string{}, step...), "onlink")
			m.logger.Debug("retrying route with onlink", "command", strings.Join(retry, " "))
			if _, rerr := m.runner.Run(retry[0], retry[1:]...); rerr == nil {
				continue
			}
		}

		return errors.WrapNetworkError("", "rotate", err)
	}

	if err := m.ApplyDNS(dns); err != nil {
		return err
	}

	time.Sleep(m.LinkSettle)
	return nil
}

// ApplyIdentity builds and executes the rotation plan for a generated identity
func (m *Manager) ApplyIdentity(adapter string, id *identity.NetworkIdentity) error {
	m.logger.Info("applying network identity",
		"adapter", adapter,
		"mac", id.HardwareAddr,
		"vendor", id.Vendor,
		"ip", id.IP.String(),
		"gateway", id.Gateway.String())

	plan := BuildRotationPlan(adapter, id.HardwareAddr, id.IP.String(), id.PrefixLen, id.Gateway.String())
	return m.ExecutePlan(plan, []string{id.DNS.String()})
}

// ApplyDNS writes the nameserver list to the resolver file. The content is
// written to a temporary sibling first and renamed into place so a reader
// never observes a partially written file.
func (m *Manager) ApplyDNS(servers []string) error {
	var b strings.Builder
	b.WriteString("# generated by trafficgen\n")
	for _, s := range servers {
		b.WriteString("nameserver ")
		b.WriteString(s)
		b.WriteString("\n")
	}

	tmpPath := m.ResolvConfPath + ".trafficgen.tmp"
	if err := m.platform.WriteFile(tmpPath, []byte(b.String()), 0644); err != nil {
		return errors.WrapNetworkError("", "dns", err)
	}
	if err := m.platform.Rename(tmpPath, m.ResolvConfPath); err != nil {
		return errors.WrapNetworkError("", "dns", err)
	}
	return nil
}

func isTolerated(output string) bool {
	for _, t := range toleratedFailures {
		if strings.Contains(output, t) {
			return true
		}
	}
	return false
}

func isRouteStep(step []string) bool {
	return len(step) > 1 && step[1] == "route"
}
