// Package scheduler runs the background maintenance jobs: rate limiter
// bucket pruning, gauge refresh and reference health monitoring.
package scheduler

import (
	"fmt"
	"time"

	"github.com/giygas/clinpharm-api/interfaces"
	"github.com/giygas/clinpharm-api/logging"
	"github.com/giygas/clinpharm-api/metrics"
	"github.com/go-co-op/gocron"
)

const (
	defaultCleanupInterval = 1 * time.Minute
	defaultMonitorInterval = 5 * time.Minute
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler owns a gocron scheduler with two jobs
type Scheduler struct {
	store   interfaces.ReferenceStore
	limiter interfaces.RateLimiter
	health  interfaces.HealthChecker

	cleanupInterval time.Duration
	monitorInterval time.Duration

	scheduler *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies.
// limiter and health may be nil, which disables the matching work.
func NewScheduler(store interfaces.ReferenceStore, limiter interfaces.RateLimiter, health interfaces.HealthChecker) *Scheduler {
	s := gocron.NewScheduler(time.Local)
	s.SingletonModeAll()

	return &Scheduler{
		store:           store,
		limiter:         limiter,
		health:          health,
		cleanupInterval: defaultCleanupInterval,
		monitorInterval: defaultMonitorInterval,
		scheduler:       s,
	}
}

// Start registers the jobs and starts the scheduler. Both jobs also run
// once immediately.
func (s *Scheduler) Start() error {
	if s.limiter != nil {
		if _, err := s.scheduler.Every(s.cleanupInterval).Do(s.pruneRateLimiter); err != nil {
			logging.Error("Failed to schedule rate limiter cleanup", "error", err)
			return fmt.Errorf("failed to schedule rate limiter cleanup: %w", err)
		}
	}

	if _, err := s.scheduler.Every(s.monitorInterval).Do(s.monitorReference); err != nil {
		logging.Error("Failed to schedule reference monitoring", "error", err)
		return fmt.Errorf("failed to schedule reference monitoring: %w", err)
	}

	s.scheduler.StartAsync()
	logging.Info("Maintenance scheduler started",
		"cleanup_interval", s.cleanupInterval.String(),
		"monitor_interval", s.monitorInterval.String(),
	)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// pruneRateLimiter drops idle client buckets and refreshes the bucket gauge
func (s *Scheduler) pruneRateLimiter() {
	removed := s.limiter.Cleanup()
	size := s.limiter.Size()
	metrics.RateLimiterBucketsTotal.Set(float64(size))

	if removed > 0 {
		logging.Debug("Pruned rate limiter buckets", "removed", removed, "remaining", size)
	}
}

// monitorReference refreshes the table gauges and warns when unhealthy
func (s *Scheduler) monitorReference() {
	tables := s.store.GetTables()
	if tables == nil {
		logging.Warn("Reference tables not published")
		return
	}
	metrics.SetReferenceCounts(tables.Counts())

	if s.health == nil {
		return
	}
	if status, details, _ := s.health.HealthCheck(); status != "healthy" {
		logging.Warn("Reference data health check failed", "status", status, "details", details)
	}
}
