package reporter

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"trafficgen/internal/trafficgen/user"
	"trafficgen/pkg/logger"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short unchanged", "http://a.com/", "http://a.com/"},
		{"exactly at limit", strings.Repeat("x", 60), strings.Repeat("x", 60)},
		{"long truncated", strings.Repeat("x", 70), strings.Repeat("x", 60) + "..."},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, 60); got != tt.want {
				t.Errorf("truncate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestReportLogsEveryUser(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stdout)

	s1 := user.NewStatus(1)
	s1.SetPosition("http://intranet.range/wiki", 2)
	s2 := user.NewStatus(2)

	r := New([]*user.Status{s1, s2}, time.Hour)
	r.report()

	out := buf.String()
	if !strings.Contains(out, "user_id=1") || !strings.Contains(out, "user_id=2") {
		t.Errorf("missing user lines in output:\n%s", out)
	}
	if !strings.Contains(out, "http://intranet.range/wiki") {
		t.Errorf("missing URL in output:\n%s", out)
	}
	if !strings.Contains(out, "state=starting") {
		t.Errorf("missing idle user state in output:\n%s", out)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	r := New([]*user.Status{user.NewStatus(1)}, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reporter did not stop after cancel")
	}
}
