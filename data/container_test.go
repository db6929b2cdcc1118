package data

import (
	"sync"
	"testing"
	"time"

	"github.com/giygas/clinpharm-api/reference"
)

func TestNewDataContainer(t *testing.T) {
	dc := NewDataContainer()

	if dc == nil {
		t.Fatal("NewDataContainer returned nil")
	}

	if dc.GetTables() != nil {
		t.Error("NewDataContainer should have no tables")
	}

	if !dc.GetLoadedAt().IsZero() {
		t.Error("NewDataContainer should have zero loadedAt time")
	}

	if dc.GetSource() != "" {
		t.Errorf("NewDataContainer should have empty source, got %q", dc.GetSource())
	}
}

func TestPublish(t *testing.T) {
	dc := NewDataContainer()
	tables := reference.Default()

	before := time.Now()
	if !dc.Publish(tables, "builtin") {
		t.Fatal("First Publish should succeed")
	}

	if dc.GetTables() != tables {
		t.Error("GetTables should return the published tables")
	}
	if dc.GetSource() != "builtin" {
		t.Errorf("Expected source builtin, got %q", dc.GetSource())
	}
	if dc.GetLoadedAt().Before(before) {
		t.Error("loadedAt should be set at publish time")
	}
}

func TestPublishOnlyOnce(t *testing.T) {
	dc := NewDataContainer()
	first := reference.Default()
	second := reference.Default()

	dc.Publish(first, "builtin")
	if dc.Publish(second, "/etc/clinpharm/reference.json") {
		t.Error("Second Publish should be refused")
	}

	if dc.GetTables() != first {
		t.Error("Tables should not change after the first publish")
	}
	if dc.GetSource() != "builtin" {
		t.Errorf("Source should not change, got %q", dc.GetSource())
	}
}

func TestPublishNil(t *testing.T) {
	dc := NewDataContainer()

	if dc.Publish(nil, "builtin") {
		t.Error("Publishing nil tables should fail")
	}

	// a failed publish must not consume the slot
	if !dc.Publish(reference.Default(), "builtin") {
		t.Error("Publish after a nil attempt should succeed")
	}
}

func TestServerStartTime(t *testing.T) {
	dc := NewDataContainer()

	if !dc.GetServerStartTime().IsZero() {
		t.Error("Server start time should be zero before set")
	}

	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	dc.SetServerStartTime(start)

	if !dc.GetServerStartTime().Equal(start) {
		t.Errorf("Expected %v, got %v", start, dc.GetServerStartTime())
	}
}

func TestConcurrentPublishAndRead(t *testing.T) {
	dc := NewDataContainer()

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if dc.Publish(reference.Default(), "builtin") {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tables := dc.GetTables(); tables != nil && len(tables.HighRisk) == 0 {
				t.Error("Published tables should never be observed half-built")
			}
			_ = dc.GetSource()
			_ = dc.GetLoadedAt()
		}()
	}

	wg.Wait()

	if successes != 1 {
		t.Errorf("Expected exactly one successful publish, got %d", successes)
	}
}
