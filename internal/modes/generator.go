package modes

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"trafficgen/internal/trafficgen/identity"
	"trafficgen/internal/trafficgen/network"
	"trafficgen/internal/trafficgen/pause"
	"trafficgen/internal/trafficgen/reporter"
	"trafficgen/internal/trafficgen/scheduler"
	"trafficgen/internal/trafficgen/user"
	"trafficgen/pkg/config"
	"trafficgen/pkg/logger"
	"trafficgen/pkg/platform"
)

// RunGenerator starts the traffic generator with the provided configuration:
// verifies the target adapter, captures its original state, rotates to a
// first spoofed identity, then runs the virtual users and the rotation
// schedule until a termination signal arrives. The original network state is
// restored on the way out no matter how the run ends.
func RunGenerator(cfg *config.Config) error {
	log := logger.WithField("mode", "generator")

	log.Info("starting traffic generator",
		"adapter", cfg.Network.Adapter,
		"cidr", cfg.Network.CIDR,
		"users", cfg.Browsing.Users,
		"rotationInterval", cfg.Rotation.Interval)

	platformInstance := platform.NewPlatform()
	if platformInstance.Geteuid() != 0 {
		return fmt.Errorf("must run as root: network adapter changes require root privileges")
	}

	manager := network.NewManager(platformInstance)
	manager.LinkSettle = cfg.Rotation.LinkSettle

	if !cfg.GatewayInsideCIDR() {
		log.Warn("gateway is outside the rotation block, routes will fall back to onlink",
			"gateway", cfg.Network.Gateway, "cidr", cfg.Network.CIDR)
	}

	sites, err := config.LoadSites(cfg.Browsing.SitesFile)
	if err != nil {
		return fmt.Errorf("failed to load sites: %w", err)
	}
	log.Info("loaded browsing sites", "count", len(sites), "file", cfg.Browsing.SitesFile)

	adapter, err := resolveAdapter(manager, cfg.Network.Adapter)
	if err != nil {
		return err
	}
	log.Info("using adapter", "name", adapter.Name, "mac", adapter.HardwareAddr, "state", string(adapter.State))

	original, err := manager.CaptureOriginalState(adapter.Name)
	if err != nil {
		return fmt.Errorf("failed to capture original network state: %w", err)
	}
	defer manager.RestoreOriginalState(original)

	_, block, err := net.ParseCIDR(cfg.Network.CIDR)
	if err != nil {
		return fmt.Errorf("invalid network.cidr: %w", err)
	}
	gateway := net.ParseIP(cfg.Network.Gateway)
	dns := net.ParseIP(cfg.Network.DNS)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pauseSignal := pause.NewSignal()
	spoofer := identity.NewSpoofer(rand.New(rand.NewSource(time.Now().UnixNano())))
	sched := scheduler.New(adapter.Name, block, gateway, dns,
		cfg.Rotation.Interval, cfg.Rotation.PauseSettle, spoofer, manager, pauseSignal)

	// first identity before any traffic flows
	if err := sched.RotateOnce(ctx); err != nil {
		log.Error("initial rotation failed, continuing with current identity", "error", err)
	}

	var wg sync.WaitGroup
	statuses := make([]*user.Status, 0, cfg.Browsing.Users)
	for i := 1; i <= cfg.Browsing.Users; i++ {
		engine := user.NewEngine(i, cfg, sites, pauseSignal,
			rand.New(rand.NewSource(time.Now().UnixNano()+int64(i))))
		statuses = append(statuses, engine.Status())

		wg.Add(1)
		go func() {
			defer wg.Done()
			engine.Run(ctx)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		sched.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		reporter.New(statuses, cfg.Browsing.StatusInterval).Run(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("received shutdown signal, stopping traffic generator", "signal", sig.String())

	cancel()
	wg.Wait()

	log.Info("traffic generator stopped")
	return nil
}

// resolveAdapter checks the configured adapter against the enumerated list,
// or picks the first usable adapter when none is configured.
func resolveAdapter(manager *network.Manager, name string) (*network.Adapter, error) {
	if name != "" {
		adapter, err := manager.FindAdapter(name)
		if err != nil {
			return nil, fmt.Errorf("configured adapter unusable: %w", err)
		}
		return adapter, nil
	}

	adapters, err := manager.ListAdapters()
	if err != nil {
		return nil, fmt.Errorf("no usable network adapter: %w", err)
	}
	return &adapters[0], nil
}
