package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/giygas/clinpharm-api/clinical"
	"github.com/giygas/clinpharm-api/logging"
	"github.com/giygas/clinpharm-api/metrics"
)

// measurement bounds accepted at the API edge; the calculators enforce
// their own domain rules on top
type bounds struct {
	min, max float64
}

var (
	ageBounds        = bounds{0, 150}
	weightBounds     = bounds{0, 500}
	creatinineBounds = bounds{0, 30}
	potassiumBounds  = bounds{0, 15}
	inrBounds        = bounds{0, 20}
	doseBounds       = bounds{0, 1000000}
)

// LabPanelRequest carries the three lab values; all are required
type LabPanelRequest struct {
	Potassium  *float64 `json:"potassium"`
	INR        *float64 `json:"inr"`
	Creatinine *float64 `json:"creatinine"`
}

// DoseRequest carries one proposed dose
type DoseRequest struct {
	Drug   string   `json:"drug"`
	DoseMg *float64 `json:"dose_mg"`
}

// CrClRequest carries the Cockcroft-Gault inputs
type CrClRequest struct {
	Age             *float64 `json:"age"`
	WeightKg        *float64 `json:"weight_kg"`
	SerumCreatinine *float64 `json:"serum_creatinine"`
	Sex             string   `json:"sex"`
}

// CrClResponse is the creatinine clearance result
type CrClResponse struct {
	ReportID            string  `json:"report_id"`
	CreatinineClearance float64 `json:"creatinine_clearance"`
	Unit                string  `json:"unit"`
	Sex                 string  `json:"sex"`
}

type measurement struct {
	name   string
	value  *float64
	bounds bounds
}

// readMeasurements checks that every measurement is present and in bounds
func (h *HTTPHandlerImpl) readMeasurements(w http.ResponseWriter, r *http.Request, ms ...measurement) bool {
	for _, m := range ms {
		if m.value == nil {
			h.badInput(w, r, fmt.Errorf("%s is required", m.name))
			return false
		}
		if err := h.validator.ValidateMeasurement(m.name, *m.value, m.bounds.min, m.bounds.max); err != nil {
			h.badInput(w, r, err)
			return false
		}
	}
	return true
}

// calculatorError maps a calculator error to a response
func (h *HTTPHandlerImpl) calculatorError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, clinical.ErrInvalidInput) {
		h.badInput(w, r, err)
		return
	}
	logging.Error("Calculator failed", "path", r.URL.Path, "error", err)
	h.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
}

// EvaluateLabPanel flags critical potassium, INR and creatinine values
func (h *HTTPHandlerImpl) EvaluateLabPanel(w http.ResponseWriter, r *http.Request) {
	var req LabPanelRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if !h.readMeasurements(w, r,
		measurement{"potassium", req.Potassium, potassiumBounds},
		measurement{"inr", req.INR, inrBounds},
		measurement{"creatinine", req.Creatinine, creatinineBounds},
	) {
		return
	}

	engine := h.engine(w)
	if engine == nil {
		return
	}

	report, err := engine.EvaluateLabPanel(clinical.LabPanel{
		Potassium:  *req.Potassium,
		INR:        *req.INR,
		Creatinine: *req.Creatinine,
	})
	if err != nil {
		h.calculatorError(w, r, err)
		return
	}

	h.respondReport(w, "lab_panel", report)
}

// CheckDose compares a proposed single dose with the drug's ceiling
func (h *HTTPHandlerImpl) CheckDose(w http.ResponseWriter, r *http.Request) {
	var req DoseRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := h.validator.ValidateDrugName(req.Drug); err != nil {
		h.badInput(w, r, err)
		return
	}
	if !h.readMeasurements(w, r, measurement{"dose_mg", req.DoseMg, doseBounds}) {
		return
	}

	engine := h.engine(w)
	if engine == nil {
		return
	}

	result, err := engine.CheckDose(req.Drug, *req.DoseMg)
	if err != nil {
		h.calculatorError(w, r, err)
		return
	}

	h.respondLookup(w, "dose", result)
}

// CreatinineClearance computes the Cockcroft-Gault estimate in mL/min
func (h *HTTPHandlerImpl) CreatinineClearance(w http.ResponseWriter, r *http.Request) {
	var req CrClRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if !h.readMeasurements(w, r,
		measurement{"age", req.Age, ageBounds},
		measurement{"weight_kg", req.WeightKg, weightBounds},
		measurement{"serum_creatinine", req.SerumCreatinine, creatinineBounds},
	) {
		return
	}

	engine := h.engine(w)
	if engine == nil {
		return
	}

	sex := clinical.ParseSex(req.Sex)
	crcl, err := engine.CreatinineClearance(clinical.CrClInput{
		Age:             *req.Age,
		WeightKg:        *req.WeightKg,
		SerumCreatinine: *req.SerumCreatinine,
		Sex:             sex,
	})
	if err != nil {
		h.calculatorError(w, r, err)
		return
	}

	metrics.RecordEvaluation("creatinine_clearance")

	h.RespondWithJSON(w, http.StatusOK, CrClResponse{
		ReportID:            newReportID(),
		CreatinineClearance: crcl,
		Unit:                "mL/min",
		Sex:                 sex.String(),
	})
}
