// Package health reports whether the reference tables are published and usable.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/giygas/clinpharm-api/interfaces"
)

// coreTables back the alert evaluators; any of them empty degrades the service
var coreTables = []string{"high_risk", "lasa", "iv_incompatibilities", "pregnancy", "antibiotics"}

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	store interfaces.ReferenceStore
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(store interfaces.ReferenceStore) interfaces.HealthChecker {
	return &HealthCheckerImpl{
		store: store,
	}
}

// HealthCheck returns the status string, response details and HTTP status
// for the /health endpoint
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	data = map[string]any{}

	if start := h.store.GetServerStartTime(); !start.IsZero() {
		data["uptime_seconds"] = math.Round(time.Since(start).Seconds())
	}

	tables := h.store.GetTables()
	if tables == nil {
		data["tables"] = map[string]int{}
		return "unhealthy", data, http.StatusServiceUnavailable
	}

	counts := tables.Counts()
	data["tables"] = counts
	data["source"] = h.store.GetSource()
	data["loaded_at"] = h.store.GetLoadedAt().Format(time.RFC3339)

	var empty []string
	for _, name := range coreTables {
		if counts[name] == 0 {
			empty = append(empty, name)
		}
	}

	if len(empty) > 0 {
		data["empty_tables"] = empty
		return "degraded", data, http.StatusServiceUnavailable
	}

	return "healthy", data, http.StatusOK
}
