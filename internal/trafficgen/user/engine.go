package user

import (
	"context"
	"math/rand"
	"net/url"
	"time"

	"trafficgen/internal/trafficgen/browser"
	"trafficgen/internal/trafficgen/crawler"
	"trafficgen/internal/trafficgen/pause"
	"trafficgen/pkg/config"
	"trafficgen/pkg/logger"
)

// clientBuildRetry is how long a user sleeps after failing to construct an
// HTTP client before trying again.
const clientBuildRetry = 10 * time.Second

// Engine drives one virtual user through endless browsing sessions
type Engine struct {
	id     int
	cfg    *config.Config
	sites  []*url.URL
	signal *pause.Signal
	status *Status
	rng    *rand.Rand
	logger *logger.Logger
}

// NewEngine creates a virtual user. Each engine owns its random source; the
// engines must not share one because rand.Rand is not safe for concurrent
// use.
func NewEngine(id int, cfg *config.Config, sites []*url.URL, signal *pause.Signal, rng *rand.Rand) *Engine {
	return &Engine{
		id:     id,
		cfg:    cfg,
		sites:  sites,
		signal: signal,
		status: NewStatus(id),
		rng:    rng,
		logger: logger.WithFields("component", "user", "user_id", id),
	}
}

// Status returns the user's observable status cell
func (e *Engine) Status() *Status {
	return e.status
}

// Run browses until the context ends. Each outer iteration picks a random
// site, builds a fresh browser client, and walks the site repeatedly until
// the site switch deadline passes.
func (e *Engine) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		site := e.sites[e.rng.Intn(len(e.sites))]

		client, err := browser.NewClient(e.cfg.Browser, e.rng)
		if err != nil {
			e.logger.Error("failed to build HTTP client", "error", err)
			if !e.sleep(ctx, clientBuildRetry) {
				return
			}
			continue
		}

		e.logger.Info("switching site", "site", site.String(), "user_agent", client.UserAgent())
		deadline := time.Now().Add(e.cfg.Browsing.SiteSwitchInterval)

		for time.Now().Before(deadline) {
			if err := e.waitIfPaused(ctx); err != nil {
				return
			}
			if !e.walk(ctx, client, site) {
				return
			}
		}
	}
}

// walk follows links from the site root until max depth, a dead end, or a
// fetch failure. Returns false only when the context ended.
func (e *Engine) walk(ctx context.Context, client *browser.Client, site *url.URL) bool {
	visited := map[string]bool{site.String(): true}
	current := site

	for depth := 0; depth < e.cfg.Browsing.MaxDepth; depth++ {
		e.status.SetPosition(current.String(), depth)

		body, err := client.Fetch(current)
		if err != nil {
			e.logger.Warn("fetch failed", "url", current.String(), "error", err)
			return true
		}

		e.status.SetState(StateWaiting)
		if !e.sleep(ctx, e.jitteredDelay()) {
			return false
		}
		if err := e.waitIfPaused(ctx); err != nil {
			return false
		}

		links, err := crawler.ExtractLinks(body, current)
		if err != nil {
			e.logger.Warn("could not parse page", "url", current.String(), "error", err)
			return true
		}
		sameDomain := crawler.FilterSameDomain(links, site)
		candidates := crawler.PickUnvisited(sameDomain, 1, visited, e.rng)
		if len(candidates) == 0 {
			return true
		}

		current = candidates[0]
		visited[current.String()] = true
	}

	return true
}

// jitteredDelay scales the configured request delay by a uniform factor in
// [0.7, 1.3) so users do not tick in lockstep.
func (e *Engine) jitteredDelay() time.Duration {
	factor := 0.7 + e.rng.Float64()*0.6
	return time.Duration(float64(e.cfg.Browsing.RequestDelay) * factor)
}

// waitIfPaused blocks while an identity rotation is in progress
func (e *Engine) waitIfPaused(ctx context.Context) error {
	if !e.signal.Paused() {
		return nil
	}
	e.status.SetState(StatePaused)
	return e.signal.Wait(ctx)
}

// sleep waits for the duration or the context, reporting false on cancel
func (e *Engine) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
