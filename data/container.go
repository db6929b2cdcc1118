// Package data provides thread-safe storage for the clinical reference tables.
// Tables are published once with atomic operations and then only read.
package data

import (
	"sync/atomic"
	"time"

	"github.com/giygas/clinpharm-api/interfaces"
	"github.com/giygas/clinpharm-api/logging"
	"github.com/giygas/clinpharm-api/reference"
)

// Compile-time check to ensure DataContainer implements ReferenceStore
var _ interfaces.ReferenceStore = (*DataContainer)(nil)

// DataContainer holds the reference tables and load metadata
type DataContainer struct {
	tables          atomic.Pointer[reference.Tables]
	loadedAt        atomic.Value // time.Time
	source          atomic.Value // string
	published       atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates an empty DataContainer
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.loadedAt.Store(time.Time{})
	dc.source.Store("")
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// Publish stores the tables. Only the first call succeeds; the tables are
// immutable for the life of the process.
func (dc *DataContainer) Publish(tables *reference.Tables, source string) bool {
	if tables == nil {
		logging.Warn("Refusing to publish nil reference tables", "source", source)
		return false
	}
	if !dc.published.CompareAndSwap(false, true) {
		logging.Warn("Reference tables already published, ignoring", "source", source)
		return false
	}

	dc.tables.Store(tables)
	dc.source.Store(source)
	dc.loadedAt.Store(time.Now())
	return true
}

// GetTables returns the published tables, or nil before Publish
func (dc *DataContainer) GetTables() *reference.Tables {
	t := dc.tables.Load()
	if t == nil {
		logging.Warn("Reference tables requested before publish")
	}
	return t
}

// GetLoadedAt returns when the tables were published
func (dc *DataContainer) GetLoadedAt() time.Time {
	if v := dc.loadedAt.Load(); v != nil {
		if loadedAt, ok := v.(time.Time); ok {
			return loadedAt
		}
	}
	return time.Time{}
}

// GetSource returns "builtin" or the path the tables were loaded from
func (dc *DataContainer) GetSource() string {
	if v := dc.source.Load(); v != nil {
		if source, ok := v.(string); ok {
			return source
		}
	}
	return ""
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}
