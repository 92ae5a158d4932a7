package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/backoff"
	"github.com/snehalbaghel/badgr-server/internal/auth/store"
)

// Pruner drops expired backoff records. Only the in-memory backoff store
// needs it; Redis expires keys on its own.
type Pruner interface {
	Prune(now time.Time, p backoff.Policy) int
}

// HousekeepingService periodically cleans up expired database records
// to prevent unbounded growth of codes, access tokens and refresh tokens.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Backoff, when set, is pruned with BackoffPolicy on every run.
	Backoff       Pruner
	BackoffPolicy backoff.Policy

	Now func() time.Time

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		Now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup deletes expired records once. Each step is independent; a failure
// in one does not stop the others. It returns the number of steps that
// succeeded.
func (s *HousekeepingService) Cleanup(ctx context.Context) int {
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}
	s.Logger.Info("starting housekeeping cleanup")

	steps := []struct {
		name string
		fn   func(context.Context, time.Time) error
	}{
		{"authorization codes", s.Store.AuthorizationCodes().DeleteExpiredAuthorizationCodes},
		{"refresh tokens", s.Store.RefreshTokens().DeleteExpiredRefreshTokens},
		{"access tokens", s.Store.AccessTokens().DeleteExpiredAccessTokens},
	}

	var ok int
	for _, step := range steps {
		if err := step.fn(ctx, now); err != nil {
			s.Logger.Error("failed to delete expired "+step.name, "error", err)
			continue
		}
		s.Logger.Debug("deleted expired " + step.name)
		ok++
	}

	if s.Backoff != nil {
		n := s.Backoff.Prune(now, s.BackoffPolicy)
		s.Logger.Debug("pruned backoff records", "count", n)
	}

	s.Logger.Info("housekeeping cleanup completed", "successful_cleanups", ok)
	return ok
}
