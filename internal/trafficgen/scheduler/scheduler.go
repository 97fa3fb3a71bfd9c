// Package scheduler runs the periodic identity rotation cycle: pause the
// browsing workers, swap the adapter identity, resume.
package scheduler

import (
	"context"
	"net"
	"time"

	"trafficgen/internal/trafficgen/identity"
	"trafficgen/internal/trafficgen/pause"
	"trafficgen/pkg/errors"
	"trafficgen/pkg/logger"
)

// IdentityApplier is the slice of the network manager the scheduler needs
type IdentityApplier interface {
	ApplyIdentity(adapter string, id *identity.NetworkIdentity) error
}

// Scheduler rotates the adapter identity on a fixed interval
type Scheduler struct {
	adapter     string
	block       *net.IPNet
	gateway     net.IP
	dns         net.IP
	interval    time.Duration
	pauseSettle time.Duration

	spoofer *identity.Spoofer
	applier IdentityApplier
	signal  *pause.Signal
	logger  *logger.Logger
}

// New creates a scheduler for the given adapter and address space
func New(adapter string, block *net.IPNet, gateway, dns net.IP,
	interval, pauseSettle time.Duration,
	spoofer *identity.Spoofer, applier IdentityApplier, signal *pause.Signal) *Scheduler {
	return &Scheduler{
		adapter:     adapter,
		block:       block,
		gateway:     gateway,
		dns:         dns,
		interval:    interval,
		pauseSettle: pauseSettle,
		spoofer:     spoofer,
		applier:     applier,
		signal:      signal,
		logger:      logger.WithField("component", "scheduler"),
	}
}

// Run rotates on every tick until the context ends. Failed cycles are
// logged and the schedule continues; the next tick gets a fresh attempt.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RotateOnce(ctx); err != nil {
				s.logger.Error("rotation cycle failed", "error", err)
			}
		}
	}
}

// RotateOnce performs a single rotation cycle. Workers are paused for the
// whole cycle and always resumed, even when the rotation fails partway.
// An exhausted address block skips the cycle without error; the block will
// not refill, but the operator may fix the config between restarts and the
// running identity is still valid.
func (s *Scheduler) RotateOnce(ctx context.Context) error {
	s.signal.Set(true)
	defer s.signal.Set(false)

	// give in-flight requests a moment to finish before the link drops
	select {
	case <-time.After(s.pauseSettle):
	case <-ctx.Done():
		return ctx.Err()
	}

	id, err := s.spoofer.Generate(s.block, s.gateway, s.dns)
	if err != nil {
		if errors.Is(err, errors.ErrAddressExhausted) {
			s.logger.Warn("address block exhausted, skipping rotation", "block", s.block.String())
			return nil
		}
		return err
	}

	if err := s.applier.ApplyIdentity(s.adapter, id); err != nil {
		return err
	}

	s.logger.Info("identity rotated",
		"mac", id.HardwareAddr,
		"vendor", id.Vendor,
		"ip", id.IP.String())
	return nil
}
