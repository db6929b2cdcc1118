// Package reference holds the static clinical reference tables used by the
// decision-support evaluators. Tables are ordered slices so that evaluation
// order always follows definition order, and they are never mutated once
// constructed.
package reference

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DrugName is the normalized (case-folded, trimmed) key of a substance.
type DrugName string

// NewDrugName normalizes a raw name into a DrugName
func NewDrugName(raw string) DrugName {
	return DrugName(Normalize(raw))
}

// Display returns the canonical title-cased form used in alert messages
func (d DrugName) Display() string {
	return cases.Title(language.English).String(string(d))
}

// Normalize case-folds and trims user input before matching.
// A Caser is stateful, so a new one is created on every call.
func Normalize(s string) string {
	return strings.TrimSpace(cases.Fold().String(s))
}

type (
	IncompatibilityNote string
	PregnancyCategory   string
	InfectionKeyword    string
	Regimen             string
)

// HighRiskTable lists high-alert drug classes
type HighRiskTable []DrugName

// LASAPair is a look-alike/sound-alike pair
type LASAPair struct {
	A DrugName `json:"a"`
	B DrugName `json:"b"`
}

// LASATable lists confusable drug pairs
type LASATable []LASAPair

// IVIncompatibility describes an unordered pair that must not share a line
type IVIncompatibility struct {
	A    DrugName            `json:"a"`
	B    DrugName            `json:"b"`
	Note IncompatibilityNote `json:"note"`
}

// Matches reports whether the pair (x, y) matches this entry in either order
func (iv IVIncompatibility) Matches(x, y DrugName) bool {
	return (iv.A == x && iv.B == y) || (iv.A == y && iv.B == x)
}

// IVTable lists known IV incompatibilities
type IVTable []IVIncompatibility

// PregnancyEntry maps a drug to its pregnancy risk category
type PregnancyEntry struct {
	Drug     DrugName          `json:"drug"`
	Category PregnancyCategory `json:"category"`
}

// PregnancyTable is an exact-match lookup table
type PregnancyTable []PregnancyEntry

// Lookup returns the category for an exact drug name
func (t PregnancyTable) Lookup(drug DrugName) (PregnancyCategory, bool) {
	for _, e := range t {
		if e.Drug == drug {
			return e.Category, true
		}
	}
	return "", false
}

// AntibioticRule maps an infection keyword to an empiric regimen
type AntibioticRule struct {
	Keyword InfectionKeyword `json:"keyword"`
	Regimen Regimen          `json:"regimen"`
}

// AntibioticTable is checked in priority order, first match wins
type AntibioticTable []AntibioticRule

// CrashCartItem is an emergency drug kept on the resuscitation cart
type CrashCartItem struct {
	Drug       DrugName `json:"drug"`
	Indication string   `json:"indication"`
}

// CrashCartTable lists crash-cart contents in stocking order
type CrashCartTable []CrashCartItem

// DoseLimit overrides the default single-dose ceiling for one drug
type DoseLimit struct {
	Drug            DrugName `json:"drug"`
	MaxSingleDoseMg float64  `json:"max_single_dose_mg"`
}

// DoseLimitTable holds the default single-dose ceiling and per-drug overrides
type DoseLimitTable struct {
	DefaultMg float64     `json:"default_mg"`
	PerDrug   []DoseLimit `json:"per_drug"`
}

// LimitFor returns the ceiling for a drug, falling back to the default
func (t DoseLimitTable) LimitFor(drug DrugName) float64 {
	for _, l := range t.PerDrug {
		if l.Drug == drug {
			return l.MaxSingleDoseMg
		}
	}
	return t.DefaultMg
}

// Monograph is a short drug information summary
type Monograph struct {
	Drug    DrugName `json:"drug"`
	Summary string   `json:"summary"`
}

// MonographTable is an exact-match drug information table
type MonographTable []Monograph

// Lookup returns the monograph for an exact drug name
func (t MonographTable) Lookup(drug DrugName) (Monograph, bool) {
	for _, m := range t {
		if m.Drug == drug {
			return m, true
		}
	}
	return Monograph{}, false
}

// Tables groups every reference table. A *Tables is shared read-only
// between all evaluators once constructed.
type Tables struct {
	HighRisk    HighRiskTable   `json:"high_risk"`
	LASA        LASATable       `json:"lasa"`
	IV          IVTable         `json:"iv_incompatibilities"`
	Pregnancy   PregnancyTable  `json:"pregnancy"`
	Antibiotics AntibioticTable `json:"antibiotics"`
	CrashCart   CrashCartTable  `json:"crash_cart"`
	DoseLimits  DoseLimitTable  `json:"dose_limits"`
	Monographs  MonographTable  `json:"monographs"`
}

// Counts returns the number of entries per table
func (t *Tables) Counts() map[string]int {
	return map[string]int{
		"high_risk":            len(t.HighRisk),
		"lasa":                 len(t.LASA),
		"iv_incompatibilities": len(t.IV),
		"pregnancy":            len(t.Pregnancy),
		"antibiotics":          len(t.Antibiotics),
		"crash_cart":           len(t.CrashCart),
		"dose_limits":          len(t.DoseLimits.PerDrug),
		"monographs":           len(t.Monographs),
	}
}
