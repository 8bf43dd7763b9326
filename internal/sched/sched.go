// Package sched runs the periodic notification pass at the cadence the user
// configured. The frequency is re-read from settings every tick so edits
// take effect without a restart.
package sched

import (
	"context"
	"log"
	"time"

	"flipwatch/internal/domain"
	"flipwatch/internal/notify"
	"flipwatch/internal/services"
)

// Interval maps an update frequency to a tick duration. Unknown values fall
// back to daily.
func Interval(frequency string) time.Duration {
	switch frequency {
	case "hourly":
		return time.Hour
	case "twice_daily":
		return 12 * time.Hour
	case "weekly":
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

type Scheduler struct {
	Catalog  *services.CatalogService
	Notifier *notify.Notifier
}

// Run blocks until ctx is canceled, firing one notification pass per
// interval. The first pass waits a full interval rather than firing at boot.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		cfg, err := s.Catalog.Settings()
		if err != nil {
			log.Printf("[sched] settings read failed: %v", err)
			cfg = domain.DefaultSettings()
		}
		interval := Interval(cfg.UpdateFrequency)

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}

		if err := s.runOnce(); err != nil {
			log.Printf("[sched] notification pass failed: %v", err)
		}
	}
}

func (s *Scheduler) runOnce() error {
	cfg, err := s.Catalog.Settings()
	if err != nil {
		return err
	}
	items, err := s.Catalog.Items()
	if err != nil {
		return err
	}
	digest := notify.Digest(items, cfg, s.Catalog.Locations())
	if len(digest) == 0 {
		return nil
	}
	log.Printf("[sched] %d listings above threshold, notifying", len(digest))
	return s.Notifier.Send(cfg, digest)
}
