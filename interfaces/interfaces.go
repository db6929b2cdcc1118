// Package interfaces defines core abstractions for the clinical reference API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"net/http"
	"time"

	"github.com/giygas/clinpharm-api/reference"
)

// ReferenceStore defines the contract for reference data storage.
// Tables are published once at startup and read concurrently afterwards.
type ReferenceStore interface {
	GetTables() *reference.Tables
	GetLoadedAt() time.Time
	GetSource() string
	GetServerStartTime() time.Time
}

// HTTPHandler defines the contract for HTTP request handlers.
// It provides a consistent interface for all API endpoints.
type HTTPHandler interface {
	// Medication list checks
	CheckHighRisk(w http.ResponseWriter, r *http.Request)
	CheckLASA(w http.ResponseWriter, r *http.Request)
	ScreenMedications(w http.ResponseWriter, r *http.Request)

	// Single-answer checks
	CheckIVCompatibility(w http.ResponseWriter, r *http.Request)
	CheckPregnancyRisk(w http.ResponseWriter, r *http.Request)
	SuggestAntibiotic(w http.ResponseWriter, r *http.Request)

	// Numeric checks and calculators
	EvaluateLabPanel(w http.ResponseWriter, r *http.Request)
	CheckDose(w http.ResponseWriter, r *http.Request)
	CreatinineClearance(w http.ResponseWriter, r *http.Request)

	// Reference data
	LookupDrug(w http.ResponseWriter, r *http.Request)
	ServeCrashCart(w http.ResponseWriter, r *http.Request)

	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// Scheduler defines the contract for background maintenance jobs.
type Scheduler interface {
	// Lifecycle management
	Start() error
	Stop()
}

// RateLimiter is the maintenance side of the per-client rate limiter.
type RateLimiter interface {
	// Cleanup drops buckets idle long enough to be full again and returns
	// how many were removed
	Cleanup() int

	// Size returns the number of tracked clients
	Size() int
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns current system health status, details and HTTP status
	HealthCheck() (status string, details map[string]any, httpStatus int)
}

// InputValidator defines the contract for user input validation.
// It runs before any input reaches the clinical evaluators.
type InputValidator interface {
	// ValidateDrugName checks a single drug name
	ValidateDrugName(input string) error

	// ValidateFreeText checks free-text input such as a medication list
	ValidateFreeText(input string) error

	// ValidateMeasurement checks that a numeric input is finite and within range
	ValidateMeasurement(name string, value, min, max float64) error
}
