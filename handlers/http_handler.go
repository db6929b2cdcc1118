// Package handlers provides the HTTP handlers for the clinical check API.
// Handlers validate input, run the checks against the published reference
// tables and render reports at the response boundary.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/giygas/clinpharm-api/clinical"
	"github.com/giygas/clinpharm-api/interfaces"
	"github.com/giygas/clinpharm-api/logging"
	"github.com/google/uuid"
)

// Compile-time check to ensure HTTPHandlerImpl implements HTTPHandler
var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	store          interfaces.ReferenceStore
	validator      interfaces.InputValidator
	healthChecker  interfaces.HealthChecker
	maxRequestBody int64
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(
	store interfaces.ReferenceStore,
	validator interfaces.InputValidator,
	healthChecker interfaces.HealthChecker,
	maxRequestBody int64,
) interfaces.HTTPHandler {
	return &HTTPHandlerImpl{
		store:          store,
		validator:      validator,
		healthChecker:  healthChecker,
		maxRequestBody: maxRequestBody,
	}
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status string         `json:"status"`
	Uptime string         `json:"uptime,omitempty"`
	Data   map[string]any `json:"data"`
	System map[string]any `json:"system"`
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// engine binds the checks to the published tables. It writes a 503 and
// returns nil when nothing has been published yet.
func (h *HTTPHandlerImpl) engine(w http.ResponseWriter) *clinical.Engine {
	tables := h.store.GetTables()
	if tables == nil {
		h.RespondWithError(w, http.StatusServiceUnavailable, "Reference data not loaded")
		return nil
	}
	return clinical.NewEngine(tables)
}

// decodeJSON reads a single JSON object from the body into dst. It writes
// the error response itself and reports whether decoding succeeded.
func (h *HTTPHandlerImpl) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := r.Body
	if h.maxRequestBody > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxRequestBody)
	}

	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			h.RespondWithError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Request body too large. Maximum allowed size is %d bytes", maxBytesErr.Limit))
		case errors.Is(err, io.EOF):
			h.RespondWithError(w, http.StatusBadRequest, "Request body is empty")
		default:
			logging.Warn("Invalid JSON body", "path", r.URL.Path, "error", err)
			h.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		}
		return false
	}

	if decoder.More() {
		h.RespondWithError(w, http.StatusBadRequest, "Request body must contain a single JSON object")
		return false
	}

	return true
}

// badInput logs rejected user input and answers 400
func (h *HTTPHandlerImpl) badInput(w http.ResponseWriter, r *http.Request, err error) {
	logging.Warn("Unusual user input", "path", r.URL.Path, "error", err)
	h.RespondWithError(w, http.StatusBadRequest, err.Error())
}

// newReportID returns the identifier attached to every check response
func newReportID() string {
	return uuid.NewString()
}

// formatUptimeHuman formats duration into a human-readable string
func formatUptimeHuman(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}

// HealthCheck returns reference data status plus runtime statistics
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, details, httpStatus := h.healthChecker.HealthCheck()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status: status,
		Data:   details,
		System: map[string]any{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb": int(m.Alloc / 1024 / 1024),
				"sys_mb":   int(m.Sys / 1024 / 1024),
				"num_gc":   m.NumGC,
			},
		},
	}

	if start := h.store.GetServerStartTime(); !start.IsZero() {
		response.Uptime = formatUptimeHuman(time.Since(start))
	}

	h.RespondWithJSON(w, httpStatus, response)
}
