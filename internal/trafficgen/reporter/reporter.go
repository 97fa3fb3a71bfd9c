// Package reporter periodically logs where every virtual user is, giving an
// operator a live view of the generated traffic.
package reporter

import (
	"context"
	"time"

	"trafficgen/internal/trafficgen/user"
	"trafficgen/pkg/logger"
)

// urlDisplayLimit keeps status lines readable when pages have long URLs
const urlDisplayLimit = 60

// Reporter logs a status line per user on a fixed interval
type Reporter struct {
	statuses []*user.Status
	interval time.Duration
	logger   *logger.Logger
}

// New creates a reporter over the given user status cells
func New(statuses []*user.Status, interval time.Duration) *Reporter {
	return &Reporter{
		statuses: statuses,
		interval: interval,
		logger:   logger.WithField("component", "status"),
	}
}

// Run logs until the context ends
func (r *Reporter) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.report()
		}
	}
}

func (r *Reporter) report() {
	for _, s := range r.statuses {
		snap := s.Snapshot()
		r.logger.Info("user status",
			"user_id", snap.UserID,
			"state", string(snap.State),
			"depth", snap.Depth,
			"url", truncate(snap.CurrentURL, urlDisplayLimit))
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
