package clinical

import (
	"fmt"
	"strings"

	"github.com/giygas/clinpharm-api/reference"
)

const (
	NoHighRiskMessage        = "No high-risk medications detected."
	NoLASAMessage            = "No LASA risks detected."
	IVDataUnavailable        = "Compatibility data not available."
	PregnancyDataUnavailable = "Pregnancy risk data not available."
	AntibioticFallback       = "Consult institutional antibiotic policy."
	DrugNotFoundMessage      = "Drug not found in database."
)

// EvaluateHighRisk flags every high-risk drug whose name appears anywhere in
// the medication text.
func EvaluateHighRisk(medications string, table reference.HighRiskTable) Report {
	text := reference.Normalize(medications)

	var alerts []Alert
	for _, drug := range table {
		if strings.Contains(text, string(drug)) {
			alerts = append(alerts, Alert{
				Severity: SeverityWarning,
				Message:  "High-risk medication detected: " + drug.Display(),
			})
		}
	}

	return newReport(alerts, NoHighRiskMessage)
}

// EvaluateLASA raises the full pair alert when either member of a
// look-alike/sound-alike pair appears in the medication text.
func EvaluateLASA(medications string, table reference.LASATable) Report {
	text := reference.Normalize(medications)

	var alerts []Alert
	for _, pair := range table {
		if strings.Contains(text, string(pair.A)) || strings.Contains(text, string(pair.B)) {
			alerts = append(alerts, Alert{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("LASA alert: %s ↔ %s", pair.A.Display(), pair.B.Display()),
			})
		}
	}

	return newReport(alerts, NoLASAMessage)
}

// CheckIVCompatibility looks up an exact, unordered drug pair
func CheckIVCompatibility(drugA, drugB string, table reference.IVTable) Lookup {
	a := reference.NewDrugName(drugA)
	b := reference.NewDrugName(drugB)

	for _, entry := range table {
		if entry.Matches(a, b) {
			alert := Alert{
				Severity: SeverityCritical,
				Message:  fmt.Sprintf("Incompatible: %s + %s (%s)", entry.A.Display(), entry.B.Display(), entry.Note),
			}
			return Lookup{Found: true, Alert: &alert}
		}
	}

	return Lookup{Text: IVDataUnavailable}
}

// CheckPregnancyRisk returns the pregnancy category for an exact drug name
func CheckPregnancyRisk(drug string, table reference.PregnancyTable) Lookup {
	category, ok := table.Lookup(reference.NewDrugName(drug))
	if !ok {
		return Lookup{Text: PregnancyDataUnavailable}
	}
	return Lookup{Found: true, Text: string(category)}
}

// SuggestAntibiotic returns the regimen of the first keyword found in the
// infection description.
func SuggestAntibiotic(infection string, table reference.AntibioticTable) Lookup {
	text := reference.Normalize(infection)

	for _, rule := range table {
		if strings.Contains(text, string(rule.Keyword)) {
			return Lookup{Found: true, Text: string(rule.Regimen)}
		}
	}

	return Lookup{Text: AntibioticFallback}
}

// LookupDrug returns the monograph summary for an exact drug name
func LookupDrug(name string, table reference.MonographTable) Lookup {
	m, ok := table.Lookup(reference.NewDrugName(name))
	if !ok {
		return Lookup{Text: DrugNotFoundMessage}
	}
	return Lookup{Found: true, Text: m.Summary}
}

// ScreenMedications runs the medication-list evaluators in a fixed order
func ScreenMedications(medications string, tables *reference.Tables) []Section {
	return []Section{
		{Title: "High-risk medications", Report: EvaluateHighRisk(medications, tables.HighRisk)},
		{Title: "Look-alike/sound-alike", Report: EvaluateLASA(medications, tables.LASA)},
	}
}
