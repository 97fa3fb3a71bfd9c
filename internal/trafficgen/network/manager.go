// Package network captures, mutates and restores the network identity of a
// Linux adapter by shelling out to the iproute2 tooling.
package network

import (
	"bytes"
	"strings"
	"time"

	"trafficgen/pkg/errors"
	"trafficgen/pkg/logger"
	"trafficgen/pkg/platform"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// CommandRunner runs a system network-configuration command and reports its
// captured output. Kept narrow so rotation and restoration logic can be
// tested against a fake without mutating a real interface.
//
//counterfeiter:generate . CommandRunner
type CommandRunner interface {
	Run(name string, args ...string) (string, error)
}

// Manager handles adapter enumeration, identity application and restoration
type Manager struct {
	platform platform.Platform
	runner   CommandRunner
	logger   *logger.Logger

	// ResolvConfPath is the resolver file the DNS identity is written to.
	// Overridable so tests never touch /etc.
	ResolvConfPath string

	// LinkSettle is the stabilization wait after a rotation plan has been
	// applied, giving the interface time to come back up.
	LinkSettle time.Duration
}

// NewManager creates a manager that executes commands through the platform
func NewManager(p platform.Platform) *Manager {
	return &Manager{
		platform:       p,
		runner:         &platformRunner{platform: p},
		logger:         logger.WithField("component", "network"),
		ResolvConfPath: "/etc/resolv.conf",
		LinkSettle:     2 * time.Second,
	}
}

// NewManagerWithRunner creates a manager with a custom command runner
func NewManagerWithRunner(p platform.Platform, runner CommandRunner) *Manager {
	m := NewManager(p)
	m.runner = runner
	return m
}

// platformRunner executes commands through the platform abstraction,
// capturing stdout and stderr together for error reporting.
type platformRunner struct {
	platform platform.Platform
}

func (r *platformRunner) Run(name string, args ...string) (string, error) {
	cmd := r.platform.CreateCommand(name, args...)
	var output bytes.Buffer
	cmd.SetStdout(&output)
	cmd.SetStderr(&output)
	if err := cmd.Run(); err != nil {
		full := name + " " + strings.Join(args, " ")
		return output.String(), errors.WrapCommandError(full, strings.TrimSpace(output.String()), err)
	}
	return output.String(), nil
}
