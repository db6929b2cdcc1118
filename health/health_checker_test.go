package health

import (
	"net/http"
	"testing"
	"time"

	"github.com/giygas/clinpharm-api/reference"
)

// MockReferenceStore for testing
type MockReferenceStore struct {
	tables    *reference.Tables
	loadedAt  time.Time
	source    string
	startTime time.Time
}

func (m *MockReferenceStore) GetTables() *reference.Tables  { return m.tables }
func (m *MockReferenceStore) GetLoadedAt() time.Time        { return m.loadedAt }
func (m *MockReferenceStore) GetSource() string             { return m.source }
func (m *MockReferenceStore) GetServerStartTime() time.Time { return m.startTime }

func TestHealthCheckHealthy(t *testing.T) {
	store := &MockReferenceStore{
		tables:    reference.Default(),
		loadedAt:  time.Now(),
		source:    "builtin",
		startTime: time.Now().Add(-time.Hour),
	}

	status, data, httpStatus := NewHealthChecker(store).HealthCheck()

	if status != "healthy" {
		t.Errorf("Expected healthy, got %s", status)
	}
	if httpStatus != http.StatusOK {
		t.Errorf("Expected 200, got %d", httpStatus)
	}
	if data["source"] != "builtin" {
		t.Errorf("Expected source builtin, got %v", data["source"])
	}

	counts, ok := data["tables"].(map[string]int)
	if !ok {
		t.Fatalf("Expected tables map, got %T", data["tables"])
	}
	if counts["high_risk"] != 5 {
		t.Errorf("Expected 5 high-risk entries, got %d", counts["high_risk"])
	}

	uptime, ok := data["uptime_seconds"].(float64)
	if !ok || uptime < 3599 {
		t.Errorf("Expected uptime around one hour, got %v", data["uptime_seconds"])
	}
}

func TestHealthCheckUnpublished(t *testing.T) {
	status, data, httpStatus := NewHealthChecker(&MockReferenceStore{}).HealthCheck()

	if status != "unhealthy" {
		t.Errorf("Expected unhealthy, got %s", status)
	}
	if httpStatus != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", httpStatus)
	}
	if _, ok := data["uptime_seconds"]; ok {
		t.Error("Expected no uptime before the server started")
	}
}

func TestHealthCheckDegradedOnEmptyCoreTable(t *testing.T) {
	tables := reference.Default()
	tables.LASA = nil

	status, data, httpStatus := NewHealthChecker(&MockReferenceStore{tables: tables, source: "custom.json"}).HealthCheck()

	if status != "degraded" {
		t.Errorf("Expected degraded, got %s", status)
	}
	if httpStatus != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", httpStatus)
	}

	empty, ok := data["empty_tables"].([]string)
	if !ok || len(empty) != 1 || empty[0] != "lasa" {
		t.Errorf("Expected empty_tables [lasa], got %v", data["empty_tables"])
	}
}

func TestHealthCheckIgnoresOptionalTables(t *testing.T) {
	tables := reference.Default()
	tables.Monographs = nil
	tables.CrashCart = nil

	status, _, _ := NewHealthChecker(&MockReferenceStore{tables: tables}).HealthCheck()

	if status != "healthy" {
		t.Errorf("Expected healthy without optional tables, got %s", status)
	}
}
