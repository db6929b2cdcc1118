package clinical

import "github.com/giygas/clinpharm-api/reference"

// Engine binds the evaluators to one shared, read-only set of tables.
// It is safe for concurrent use.
type Engine struct {
	tables *reference.Tables
}

// NewEngine creates an engine over tables; nil selects the built-in defaults
func NewEngine(tables *reference.Tables) *Engine {
	if tables == nil {
		tables = reference.Default()
	}
	return &Engine{tables: tables}
}

// Tables returns the tables the engine evaluates against
func (e *Engine) Tables() *reference.Tables {
	return e.tables
}

func (e *Engine) CheckHighRisk(medications string) Report {
	return EvaluateHighRisk(medications, e.tables.HighRisk)
}

func (e *Engine) CheckLASA(medications string) Report {
	return EvaluateLASA(medications, e.tables.LASA)
}

func (e *Engine) ScreenMedications(medications string) []Section {
	return ScreenMedications(medications, e.tables)
}

func (e *Engine) CheckIVCompatibility(drugA, drugB string) Lookup {
	return CheckIVCompatibility(drugA, drugB, e.tables.IV)
}

func (e *Engine) CheckPregnancyRisk(drug string) Lookup {
	return CheckPregnancyRisk(drug, e.tables.Pregnancy)
}

func (e *Engine) SuggestAntibiotic(infection string) Lookup {
	return SuggestAntibiotic(infection, e.tables.Antibiotics)
}

func (e *Engine) LookupDrug(name string) Lookup {
	return LookupDrug(name, e.tables.Monographs)
}

// CrashCart returns a copy of the crash-cart list
func (e *Engine) CrashCart() reference.CrashCartTable {
	out := make(reference.CrashCartTable, len(e.tables.CrashCart))
	copy(out, e.tables.CrashCart)
	return out
}

func (e *Engine) CheckDose(drug string, doseMg float64) (Lookup, error) {
	return CheckDose(drug, doseMg, e.tables.DoseLimits)
}

// CreatinineClearance and EvaluateLabPanel need no tables; the methods exist
// so callers can depend on the engine alone.

func (e *Engine) CreatinineClearance(in CrClInput) (float64, error) {
	return CreatinineClearance(in)
}

func (e *Engine) EvaluateLabPanel(panel LabPanel) (Report, error) {
	return EvaluateLabPanel(panel)
}
