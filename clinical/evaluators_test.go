package clinical

import (
	"strings"
	"sync"
	"testing"

	"github.com/giygas/clinpharm-api/reference"
)

func TestEvaluateHighRisk(t *testing.T) {
	table := reference.Default().HighRisk

	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single drug", "Warfarin 5mg daily", []string{"⚠️ High-risk medication detected: Warfarin"}},
		{"case insensitive", "patient on INSULIN glargine", []string{"⚠️ High-risk medication detected: Insulin"}},
		{"table order not input order", "digoxin, heparin", []string{
			"⚠️ High-risk medication detected: Heparin",
			"⚠️ High-risk medication detected: Digoxin",
		}},
		{"substring match", "morphinesulfate", []string{"⚠️ High-risk medication detected: Morphine"}},
		{"none", "paracetamol, amoxicillin", []string{NoHighRiskMessage}},
		{"empty", "", []string{NoHighRiskMessage}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			report := EvaluateHighRisk(tc.input, table)
			lines := report.Lines()
			if len(lines) != len(tc.expected) {
				t.Fatalf("Expected %d lines, got %d: %v", len(tc.expected), len(lines), lines)
			}
			for i := range lines {
				if lines[i] != tc.expected[i] {
					t.Errorf("Line %d: expected %q, got %q", i, tc.expected[i], lines[i])
				}
			}
		})
	}
}

func TestEvaluateHighRiskEveryDrugDetected(t *testing.T) {
	table := reference.Default().HighRisk

	for _, drug := range table {
		report := EvaluateHighRisk("Current meds: "+strings.ToUpper(string(drug))+" bid", table)
		if report.Empty() {
			t.Errorf("Expected alert for %s", drug)
			continue
		}
		if !strings.Contains(report.Render(), "High-risk medication detected: "+drug.Display()) {
			t.Errorf("Expected alert line for %s, got %q", drug, report.Render())
		}
		if strings.Contains(report.Render(), NoHighRiskMessage) {
			t.Errorf("Sentinel must not coexist with alerts for %s", drug)
		}
	}
}

func TestEvaluateHighRiskNoDeduplication(t *testing.T) {
	table := reference.HighRiskTable{"insulin", "insulin glargine"}

	report := EvaluateHighRisk("insulin glargine", table)
	if got := len(report.Alerts()); got != 2 {
		t.Errorf("Expected 2 alerts for overlapping keys, got %d", got)
	}
}

func TestEvaluateLASA(t *testing.T) {
	table := reference.Default().LASA

	report := EvaluateLASA("patient on dopamine", table)
	if report.Render() != "⚠️ LASA alert: Dopamine ↔ Dobutamine" {
		t.Errorf("Unexpected report: %q", report.Render())
	}

	// either side triggers the full pair alert
	report = EvaluateLASA("Dobutamine infusion", table)
	if report.Render() != "⚠️ LASA alert: Dopamine ↔ Dobutamine" {
		t.Errorf("Unexpected report for B side: %q", report.Render())
	}

	report = EvaluateLASA("hydroxyzine and celexa", table)
	if got := len(report.Alerts()); got != 2 {
		t.Errorf("Expected 2 alerts, got %d", got)
	}

	report = EvaluateLASA("", table)
	if !report.Empty() || report.Render() != NoLASAMessage {
		t.Errorf("Expected sentinel, got %q", report.Render())
	}
}

func TestCheckIVCompatibility(t *testing.T) {
	table := reference.Default().IV
	expected := "🚨 Incompatible: Ceftriaxone + Calcium (Precipitation risk)"

	forward := CheckIVCompatibility("Ceftriaxone", "Calcium", table)
	reverse := CheckIVCompatibility("Calcium", "Ceftriaxone", table)

	if !forward.Found || forward.Render() != expected {
		t.Errorf("Forward: expected %q, got %q", expected, forward.Render())
	}
	if !reverse.Found || reverse.Render() != expected {
		t.Errorf("Reverse: expected %q, got %q", expected, reverse.Render())
	}

	unknown := CheckIVCompatibility("Paracetamol", "Water", table)
	if unknown.Found || unknown.Render() != IVDataUnavailable {
		t.Errorf("Expected unavailable default, got %q", unknown.Render())
	}

	// exact equality, not substring
	partial := CheckIVCompatibility("Ceftriaxone 1g", "Calcium", table)
	if partial.Found {
		t.Error("Expected no match for non-exact drug name")
	}

	empty := CheckIVCompatibility("", "", table)
	if empty.Found {
		t.Error("Expected no match for empty input")
	}
}

func TestCheckPregnancyRisk(t *testing.T) {
	table := reference.Default().Pregnancy

	result := CheckPregnancyRisk("Warfarin", table)
	if !result.Found || !strings.HasPrefix(result.Render(), "Category X") || !strings.Contains(result.Render(), "Teratogenic") {
		t.Errorf("Expected Category X teratogenic message, got %q", result.Render())
	}

	result = CheckPregnancyRisk("unobtainium", table)
	if result.Found || result.Render() != PregnancyDataUnavailable {
		t.Errorf("Expected unavailable default, got %q", result.Render())
	}

	// exact lookup, not substring
	result = CheckPregnancyRisk("warfarin sodium", table)
	if result.Found {
		t.Error("Expected exact lookup to miss on extended name")
	}

	result = CheckPregnancyRisk("", table)
	if result.Render() != PregnancyDataUnavailable {
		t.Errorf("Expected unavailable default for empty input, got %q", result.Render())
	}
}

func TestSuggestAntibiotic(t *testing.T) {
	table := reference.Default().Antibiotics

	testCases := []struct {
		input    string
		expected string
	}{
		{"Suspected UTI with dysuria", string(table[0].Regimen)},
		{"community acquired pneumonia", string(table[1].Regimen)},
		{"Sepsis of unknown origin", string(table[2].Regimen)},
		{"urosepsis from uti", string(table[0].Regimen)}, // priority order, first match wins
		{"cellulitis", AntibioticFallback},
		{"", AntibioticFallback},
	}

	for _, tc := range testCases {
		if got := SuggestAntibiotic(tc.input, table).Render(); got != tc.expected {
			t.Errorf("SuggestAntibiotic(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestLookupDrug(t *testing.T) {
	table := reference.Default().Monographs

	result := LookupDrug("Paracetamol", table)
	if !result.Found || !strings.Contains(result.Text, "Max: 4g/day") {
		t.Errorf("Expected paracetamol monograph, got %q", result.Text)
	}

	result = LookupDrug("aspirin", table)
	if result.Found || result.Text != DrugNotFoundMessage {
		t.Errorf("Expected not found, got %q", result.Text)
	}
}

func TestScreenMedications(t *testing.T) {
	sections := ScreenMedications("warfarin and dopamine", reference.Default())
	if len(sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(sections))
	}

	rendered := RenderSections(sections)
	expected := "High-risk medications:\n⚠️ High-risk medication detected: Warfarin\n\n" +
		"Look-alike/sound-alike:\n⚠️ LASA alert: Dopamine ↔ Dobutamine"
	if rendered != expected {
		t.Errorf("Expected:\n%s\ngot:\n%s", expected, rendered)
	}
}

func TestEvaluatorsAreIdempotentAndConcurrent(t *testing.T) {
	engine := NewEngine(nil)
	input := "warfarin, dopamine, insulin"
	first := engine.CheckHighRisk(input).Render() + engine.CheckLASA(input).Render()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := engine.CheckHighRisk(input).Render() + engine.CheckLASA(input).Render()
			if got != first {
				t.Errorf("Expected identical output, got %q", got)
			}
		}()
	}
	wg.Wait()
}
