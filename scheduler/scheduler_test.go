package scheduler

import (
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/giygas/clinpharm-api/metrics"
	"github.com/giygas/clinpharm-api/reference"
	dto "github.com/prometheus/client_model/go"
)

type mockStore struct {
	tables *reference.Tables
}

func (m *mockStore) GetTables() *reference.Tables  { return m.tables }
func (m *mockStore) GetLoadedAt() time.Time        { return time.Now() }
func (m *mockStore) GetSource() string             { return "builtin" }
func (m *mockStore) GetServerStartTime() time.Time { return time.Now() }

type mockLimiter struct {
	cleanups atomic.Int32
	size     int
}

func (m *mockLimiter) Cleanup() int {
	m.cleanups.Add(1)
	return 2
}

func (m *mockLimiter) Size() int { return m.size }

type mockHealth struct {
	calls  atomic.Int32
	status string
}

func (m *mockHealth) HealthCheck() (string, map[string]any, int) {
	m.calls.Add(1)
	return m.status, map[string]any{}, http.StatusOK
}

func gaugeValue(t *testing.T, write func(*dto.Metric) error) float64 {
	t.Helper()
	var m dto.Metric
	if err := write(&m); err != nil {
		t.Fatalf("Failed to read gauge: %v", err)
	}
	return m.GetGauge().GetValue()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestNewScheduler(t *testing.T) {
	s := NewScheduler(&mockStore{}, &mockLimiter{}, nil)

	if s == nil {
		t.Fatal("NewScheduler returned nil")
	}
	if s.cleanupInterval != defaultCleanupInterval || s.monitorInterval != defaultMonitorInterval {
		t.Errorf("Unexpected intervals: %v, %v", s.cleanupInterval, s.monitorInterval)
	}
}

func TestStartRunsJobsImmediately(t *testing.T) {
	limiter := &mockLimiter{size: 3}
	health := &mockHealth{status: "healthy"}
	s := NewScheduler(&mockStore{tables: reference.Default()}, limiter, health)

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	waitFor(t, func() bool { return limiter.cleanups.Load() > 0 && health.calls.Load() > 0 })
}

func TestStartWithoutLimiter(t *testing.T) {
	health := &mockHealth{status: "healthy"}
	s := NewScheduler(&mockStore{tables: reference.Default()}, nil, health)

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	waitFor(t, func() bool { return health.calls.Load() > 0 })
}

func TestPruneRateLimiterUpdatesGauge(t *testing.T) {
	limiter := &mockLimiter{size: 7}
	s := NewScheduler(&mockStore{}, limiter, nil)

	s.pruneRateLimiter()

	if limiter.cleanups.Load() != 1 {
		t.Errorf("Expected one cleanup, got %d", limiter.cleanups.Load())
	}
	if got := gaugeValue(t, metrics.RateLimiterBucketsTotal.Write); got != 7 {
		t.Errorf("Expected bucket gauge 7, got %v", got)
	}
}

func TestMonitorReferenceRefreshesCounts(t *testing.T) {
	health := &mockHealth{status: "degraded"}
	s := NewScheduler(&mockStore{tables: reference.Default()}, nil, health)

	s.monitorReference()

	if health.calls.Load() != 1 {
		t.Errorf("Expected one health check, got %d", health.calls.Load())
	}
	if got := gaugeValue(t, metrics.ReferenceTableEntries.WithLabelValues("pregnancy").Write); got != 6 {
		t.Errorf("Expected 6 pregnancy entries, got %v", got)
	}
}

func TestMonitorReferenceUnpublished(t *testing.T) {
	health := &mockHealth{status: "healthy"}
	s := NewScheduler(&mockStore{}, nil, health)

	s.monitorReference()

	if health.calls.Load() != 0 {
		t.Error("Expected no health check before tables are published")
	}
}
