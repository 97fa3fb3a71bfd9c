package network

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestBuildRotationPlan(t *testing.T) {
	plan := BuildRotationPlan("eth0", "00:14:22:AB:CD:EF", "192.168.1.50", 24, "192.168.1.1")

	want := RotationPlan{
		{"ip", "link", "set", "dev", "eth0", "down"},
		{"ip", "link", "set", "dev", "eth0", "address", "00:14:22:AB:CD:EF"},
		{"ip", "link", "set", "dev", "eth0", "up"},
		{"ip", "addr", "flush", "dev", "eth0"},
		{"ip", "addr", "add", "192.168.1.50/24", "dev", "eth0"},
		{"ip", "route", "add", "default", "via", "192.168.1.1", "dev", "eth0"},
	}

	if !reflect.DeepEqual(plan, want) {
		t.Errorf("unexpected plan:\ngot  %v\nwant %v", plan, want)
	}
}

func TestExecutePlanRunsAllSteps(t *testing.T) {
	runner := newStubRunner()
	m := newTestManager(runner)
	m.ResolvConfPath = filepath.Join(t.TempDir(), "resolv.conf")

	plan := BuildRotationPlan("eth0", "00:14:22:AB:CD:EF", "192.168.1.50", 24, "192.168.1.1")
	if err := m.ExecutePlan(plan, []string{"8.8.8.8"}); err != nil {
		t.Fatalf("ExecutePlan failed: %v", err)
	}

	if len(runner.calls) != len(plan) {
		t.Fatalf("expected %d commands, got %d: %v", len(plan), len(runner.calls), runner.calls)
	}
	for i, step := range plan {
		want := strings.Join(step, " ")
		if runner.calls[i] != want {
			t.Errorf("step %d: got %q, want %q", i, runner.calls[i], want)
		}
	}
}

func TestExecutePlanToleratedFailures(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{"route already gone", "RTNETLINK answers: No such process"},
		{"address already present", "RTNETLINK answers: File exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newStubRunner()
			runner.on("ip addr flush dev eth0", tt.output, fmt.Errorf("exit status 2"))
			m := newTestManager(runner)
			m.ResolvConfPath = filepath.Join(t.TempDir(), "resolv.conf")

			plan := BuildRotationPlan("eth0", "00:14:22:AB:CD:EF", "192.168.1.50", 24, "192.168.1.1")
			if err := m.ExecutePlan(plan, nil); err != nil {
				t.Errorf("tolerated failure should not abort the plan: %v", err)
			}
			if len(runner.calls) != len(plan) {
				t.Errorf("expected all %d steps to run, got %d", len(plan), len(runner.calls))
			}
		})
	}
}

func TestExecutePlanAbortsOnRealFailure(t *testing.T) {
	runner := newStubRunner()
	runner.on("ip link set dev eth0 address 00:14:22:AB:CD:EF",
		"RTNETLINK answers: Operation not permitted", fmt.Errorf("exit status 2"))
	m := newTestManager(runner)

	plan := BuildRotationPlan("eth0", "00:14:22:AB:CD:EF", "192.168.1.50", 24, "192.168.1.1")
	if err := m.ExecutePlan(plan, nil); err == nil {
		t.Fatal("expected error on unrecognized failure")
	}

	// plan aborts at the failing step
	if len(runner.calls) != 2 {
		t.Errorf("expected 2 commands before abort, got %d: %v", len(runner.calls), runner.calls)
	}
}

func TestExecutePlanRetriesRouteWithOnlink(t *testing.T) {
	runner := newStubRunner()
	runner.on("ip route add default via 10.99.0.1 dev eth0",
		"Error: Nexthop has invalid gateway.", fmt.Errorf("exit status 2"))
	m := newTestManager(runner)
	m.ResolvConfPath = filepath.Join(t.TempDir(), "resolv.conf")

	plan := BuildRotationPlan("eth0", "00:14:22:AB:CD:EF", "192.168.1.50", 24, "10.99.0.1")
	if err := m.ExecutePlan(plan, nil); err != nil {
		t.Fatalf("ExecutePlan failed: %v", err)
	}

	last := runner.calls[len(runner.calls)-1]
	want := "ip route add default via 10.99.0.1 dev eth0 onlink"
	if last != want {
		t.Errorf("expected onlink retry %q, got %q", want, last)
	}
}

func TestExecutePlanOnlinkRetryFailure(t *testing.T) {
	runner := newStubRunner()
	runner.on("ip route add default via 10.99.0.1 dev eth0",
		"Error: Nexthop has invalid gateway.", fmt.Errorf("exit status 2"))
	runner.on("ip route add default via 10.99.0.1 dev eth0 onlink",
		"Error: Nexthop has invalid gateway.", fmt.Errorf("exit status 2"))
	m := newTestManager(runner)

	plan := BuildRotationPlan("eth0", "00:14:22:AB:CD:EF", "192.168.1.50", 24, "10.99.0.1")
	if err := m.ExecutePlan(plan, nil); err == nil {
		t.Fatal("expected error when onlink retry also fails")
	}
}

func TestApplyDNS(t *testing.T) {
	runner := newStubRunner()
	m := newTestManager(runner)
	dir := t.TempDir()
	m.ResolvConfPath = filepath.Join(dir, "resolv.conf")

	if err := m.ApplyDNS([]string{"8.8.8.8", "1.1.1.1"}); err != nil {
		t.Fatalf("ApplyDNS failed: %v", err)
	}

	data, err := os.ReadFile(m.ResolvConfPath)
	if err != nil {
		t.Fatalf("resolver file not written: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "nameserver 8.8.8.8\n") ||
		!strings.Contains(content, "nameserver 1.1.1.1\n") {
		t.Errorf("unexpected resolver content:\n%s", content)
	}

	// temp sibling must be renamed away
	if _, err := os.Stat(m.ResolvConfPath + ".trafficgen.tmp"); !os.IsNotExist(err) {
		t.Error("temporary resolver file left behind")
	}
}
