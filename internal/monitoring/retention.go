package monitoring

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/isdelr/taskflow-be/internal/services"
)

// RetentionSweeper prunes old activity events on a cron schedule.
type RetentionSweeper struct {
	eventSvc  services.EventServiceProvider
	schedule  cron.Schedule
	retention time.Duration
	ticker    *time.Ticker
	done      chan bool
}

// NewRetentionSweeper creates a sweeper that runs per the cron expression
// and keeps events younger than the retention window.
func NewRetentionSweeper(eventSvc services.EventServiceProvider, cronExpr string, retention time.Duration) (*RetentionSweeper, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid retention cron expression: %w", err)
	}
	return &RetentionSweeper{
		eventSvc:  eventSvc,
		schedule:  schedule,
		retention: retention,
		done:      make(chan bool),
	}, nil
}

// Run starts the sweeper's ticking loop.
func (s *RetentionSweeper) Run() {
	log.Println("Starting event retention sweeper...")
	s.ticker = time.NewTicker(1 * time.Minute)
	defer s.ticker.Stop()

	nextRun := s.schedule.Next(time.Now())

	for {
		select {
		case <-s.done:
			log.Println("Stopping event retention sweeper.")
			return
		case now := <-s.ticker.C:
			if now.After(nextRun) {
				s.sweep()
				nextRun = s.schedule.Next(now)
			}
		}
	}
}

// Stop halts the sweeper.
func (s *RetentionSweeper) Stop() {
	s.done <- true
}

func (s *RetentionSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-s.retention)
	n, err := s.eventSvc.PruneEventsBefore(ctx, cutoff)
	if err != nil {
		log.Printf("Retention sweeper: failed to prune events: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Retention sweeper: pruned %d events older than %s", n, cutoff.Format(time.RFC3339))
	}
}
