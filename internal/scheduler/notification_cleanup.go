// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookclub/internal/config"
)

// NotificationPurger deletes old read notifications.
type NotificationPurger interface {
	PurgeReadOlderThan(cutoff time.Time) (int64, error)
}

// NotificationCleanupScheduler periodically purges read notifications
// older than the configured retention window. Unread notifications are
// left alone.
type NotificationCleanupScheduler struct {
	purger NotificationPurger
	config config.Notifications

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewNotificationCleanupScheduler creates a new scheduler instance.
func NewNotificationCleanupScheduler(purger NotificationPurger, cfg config.Notifications) *NotificationCleanupScheduler {
	return &NotificationCleanupScheduler{
		purger: purger,
		config: cfg,
		cron:   cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if cleanup is enabled.
func (s *NotificationCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if !s.config.CleanupEnabled {
		log.Printf("Notification cleanup scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.config.CleanupSchedule, func() {
		s.runCleanup()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup job with '%s': %w", s.config.CleanupSchedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Notification cleanup scheduler: started with schedule '%s', retention %s",
		s.config.CleanupSchedule, s.config.Retention)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job.
func (s *NotificationCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Notification cleanup scheduler: stopped")
}

// RunNow triggers an immediate cleanup.
func (s *NotificationCleanupScheduler) RunNow() {
	s.runCleanup()
}

// IsRunning returns whether the scheduler is active.
func (s *NotificationCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *NotificationCleanupScheduler) runCleanup() {
	cutoff := time.Now().Add(-s.config.Retention)
	purged, err := s.purger.PurgeReadOlderThan(cutoff)
	if err != nil {
		log.Printf("Notification cleanup failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("Notification cleanup: purged %d read notifications older than %v", purged, cutoff.Format(time.RFC3339))
	}
}
