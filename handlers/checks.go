package handlers

import (
	"net/http"

	"github.com/giygas/clinpharm-api/clinical"
	"github.com/giygas/clinpharm-api/logging"
	"github.com/giygas/clinpharm-api/metrics"
	"github.com/go-chi/chi/v5"
)

// MedicationsRequest carries a free-text medication list
type MedicationsRequest struct {
	Medications string `json:"medications"`
}

// AntibioticRequest carries a free-text infection description
type AntibioticRequest struct {
	Infection string `json:"infection"`
}

// AlertResponse is one alert in a check response
type AlertResponse struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     string `json:"line"`
}

// ReportResponse is returned by the list checks
type ReportResponse struct {
	ReportID string          `json:"report_id"`
	Check    string          `json:"check"`
	Report   string          `json:"report"`
	Alerts   []AlertResponse `json:"alerts"`
}

// LookupResponse is returned by the single-answer checks
type LookupResponse struct {
	ReportID string          `json:"report_id"`
	Check    string          `json:"check"`
	Found    bool            `json:"found"`
	Report   string          `json:"report"`
	Alerts   []AlertResponse `json:"alerts"`
}

// SectionResponse is one titled part of the combined screen
type SectionResponse struct {
	Title  string          `json:"title"`
	Report string          `json:"report"`
	Alerts []AlertResponse `json:"alerts"`
}

// ScreenResponse is returned by the combined medication screen
type ScreenResponse struct {
	ReportID string            `json:"report_id"`
	Check    string            `json:"check"`
	Report   string            `json:"report"`
	Sections []SectionResponse `json:"sections"`
}

func toAlertResponses(alerts []clinical.Alert) []AlertResponse {
	out := make([]AlertResponse, len(alerts))
	for i, a := range alerts {
		out[i] = AlertResponse{
			Severity: a.Severity.String(),
			Message:  a.Message,
			Line:     a.String(),
		}
	}
	return out
}

func lookupAlerts(l clinical.Lookup) []clinical.Alert {
	if l.Alert == nil {
		return nil
	}
	return []clinical.Alert{*l.Alert}
}

// respondReport records metrics and writes a list-check response
func (h *HTTPHandlerImpl) respondReport(w http.ResponseWriter, check string, report clinical.Report) {
	alerts := report.Alerts()
	metrics.RecordEvaluation(check, alerts...)

	id := newReportID()
	logging.Debug("Check evaluated", "report_id", id, "check", check, "alerts", len(alerts))

	h.RespondWithJSON(w, http.StatusOK, ReportResponse{
		ReportID: id,
		Check:    check,
		Report:   report.Render(),
		Alerts:   toAlertResponses(alerts),
	})
}

// respondLookup records metrics and writes a single-answer response
func (h *HTTPHandlerImpl) respondLookup(w http.ResponseWriter, check string, result clinical.Lookup) {
	alerts := lookupAlerts(result)
	metrics.RecordEvaluation(check, alerts...)

	id := newReportID()
	logging.Debug("Check evaluated", "report_id", id, "check", check, "found", result.Found)

	h.RespondWithJSON(w, http.StatusOK, LookupResponse{
		ReportID: id,
		Check:    check,
		Found:    result.Found,
		Report:   result.Render(),
		Alerts:   toAlertResponses(alerts),
	})
}

// readMedications decodes and validates a medication list body
func (h *HTTPHandlerImpl) readMedications(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req MedicationsRequest
	if !h.decodeJSON(w, r, &req) {
		return "", false
	}
	if err := h.validator.ValidateFreeText(req.Medications); err != nil {
		h.badInput(w, r, err)
		return "", false
	}
	return req.Medications, true
}

// CheckHighRisk flags high-alert medications in a medication list
func (h *HTTPHandlerImpl) CheckHighRisk(w http.ResponseWriter, r *http.Request) {
	medications, ok := h.readMedications(w, r)
	if !ok {
		return
	}
	engine := h.engine(w)
	if engine == nil {
		return
	}

	h.respondReport(w, "high_risk", engine.CheckHighRisk(medications))
}

// CheckLASA flags look-alike/sound-alike pairs in a medication list
func (h *HTTPHandlerImpl) CheckLASA(w http.ResponseWriter, r *http.Request) {
	medications, ok := h.readMedications(w, r)
	if !ok {
		return
	}
	engine := h.engine(w)
	if engine == nil {
		return
	}

	h.respondReport(w, "lasa", engine.CheckLASA(medications))
}

// ScreenMedications runs every medication list check and aggregates the
// results into one titled report
func (h *HTTPHandlerImpl) ScreenMedications(w http.ResponseWriter, r *http.Request) {
	medications, ok := h.readMedications(w, r)
	if !ok {
		return
	}
	engine := h.engine(w)
	if engine == nil {
		return
	}

	sections := engine.ScreenMedications(medications)

	response := ScreenResponse{
		ReportID: newReportID(),
		Check:    "medication_screen",
		Report:   clinical.RenderSections(sections),
		Sections: make([]SectionResponse, len(sections)),
	}

	var screened []clinical.Alert
	for i, s := range sections {
		alerts := s.Report.Alerts()
		screened = append(screened, alerts...)
		response.Sections[i] = SectionResponse{
			Title:  s.Title,
			Report: s.Report.Render(),
			Alerts: toAlertResponses(alerts),
		}
	}
	metrics.RecordEvaluation("medication_screen", screened...)

	h.RespondWithJSON(w, http.StatusOK, response)
}

// CheckIVCompatibility looks up a drug pair given as drug_a and drug_b
func (h *HTTPHandlerImpl) CheckIVCompatibility(w http.ResponseWriter, r *http.Request) {
	drugA := r.URL.Query().Get("drug_a")
	drugB := r.URL.Query().Get("drug_b")

	for _, drug := range []string{drugA, drugB} {
		if err := h.validator.ValidateDrugName(drug); err != nil {
			h.badInput(w, r, err)
			return
		}
	}

	engine := h.engine(w)
	if engine == nil {
		return
	}

	h.respondLookup(w, "iv_compatibility", engine.CheckIVCompatibility(drugA, drugB))
}

// CheckPregnancyRisk returns the pregnancy category of {drug}
func (h *HTTPHandlerImpl) CheckPregnancyRisk(w http.ResponseWriter, r *http.Request) {
	drug := chi.URLParam(r, "drug")
	if err := h.validator.ValidateDrugName(drug); err != nil {
		h.badInput(w, r, err)
		return
	}

	engine := h.engine(w)
	if engine == nil {
		return
	}

	h.respondLookup(w, "pregnancy", engine.CheckPregnancyRisk(drug))
}

// SuggestAntibiotic returns the empirical regimen for an infection description
func (h *HTTPHandlerImpl) SuggestAntibiotic(w http.ResponseWriter, r *http.Request) {
	var req AntibioticRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := h.validator.ValidateFreeText(req.Infection); err != nil {
		h.badInput(w, r, err)
		return
	}

	engine := h.engine(w)
	if engine == nil {
		return
	}

	h.respondLookup(w, "antibiotic", engine.SuggestAntibiotic(req.Infection))
}
