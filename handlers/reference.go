package handlers

import (
	"net/http"

	"github.com/giygas/clinpharm-api/clinical"
	"github.com/giygas/clinpharm-api/metrics"
	"github.com/giygas/clinpharm-api/reference"
	"github.com/go-chi/chi/v5"
)

// DrugResponse is a drug monograph
type DrugResponse struct {
	Drug    string `json:"drug"`
	Summary string `json:"summary"`
}

// CrashCartItemResponse is one emergency drug
type CrashCartItemResponse struct {
	Drug       string `json:"drug"`
	Indication string `json:"indication"`
}

// LookupDrug returns the monograph for {name}
func (h *HTTPHandlerImpl) LookupDrug(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.validator.ValidateDrugName(name); err != nil {
		h.badInput(w, r, err)
		return
	}

	engine := h.engine(w)
	if engine == nil {
		return
	}

	result := engine.LookupDrug(name)
	metrics.RecordEvaluation("drug_lookup")

	if !result.Found {
		h.RespondWithError(w, http.StatusNotFound, clinical.DrugNotFoundMessage)
		return
	}

	h.RespondWithJSON(w, http.StatusOK, DrugResponse{
		Drug:    reference.NewDrugName(name).Display(),
		Summary: result.Text,
	})
}

// ServeCrashCart returns the emergency drug list in reference order
func (h *HTTPHandlerImpl) ServeCrashCart(w http.ResponseWriter, r *http.Request) {
	engine := h.engine(w)
	if engine == nil {
		return
	}

	items := engine.CrashCart()
	response := make([]CrashCartItemResponse, len(items))
	for i, item := range items {
		response[i] = CrashCartItemResponse{
			Drug:       item.Drug.Display(),
			Indication: item.Indication,
		}
	}

	h.RespondWithJSON(w, http.StatusOK, response)
}
