package infra

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"stocksim/internal/service"
)

// Scheduler drives the periodic quote refresh that emulates a live
// market feed.
type Scheduler struct {
	cron     *cron.Cron
	quotes   *service.QuoteEngine
	interval time.Duration
}

// NewScheduler creates a new Scheduler
func NewScheduler(quotes *service.QuoteEngine, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		cron:     cron.New(),
		quotes:   quotes,
		interval: interval,
	}
}

// Start begins refreshing quotes on the configured interval
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("@every "+s.interval.String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.quotes.RefreshAll(ctx); err != nil {
			log.Printf("ERROR: Scheduled quote refresh failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("[OK] Quote scheduler started (every %s)", s.interval)
	return nil
}

// Stop stops the scheduler gracefully
func (s *Scheduler) Stop() {
	log.Println("Stopping quote scheduler...")
	s.cron.Stop()
	log.Println("[OK] Quote scheduler stopped")
}
