package clinical

import (
	"fmt"
	"math"

	"github.com/giygas/clinpharm-api/reference"
)

// Lab thresholds; a value strictly above the threshold fires the alert.
const (
	PotassiumThreshold  = 5.5
	INRThreshold        = 3.0
	CreatinineThreshold = 2.0

	femaleCrClFactor = 0.85
)

const (
	NoLabAlertsMessage = "No critical lab alerts."
	DoseSafeMessage    = "Dose within safe range."
)

// Sex as recorded for the Cockcroft-Gault correction
type Sex int

const (
	SexMale Sex = iota
	SexFemale
)

// ParseSex maps "female"/"f" (any case) to SexFemale and everything else to SexMale
func ParseSex(s string) Sex {
	switch reference.Normalize(s) {
	case "female", "f":
		return SexFemale
	default:
		return SexMale
	}
}

func (s Sex) String() string {
	if s == SexFemale {
		return "female"
	}
	return "male"
}

// CrClInput holds the Cockcroft-Gault inputs
type CrClInput struct {
	Age             float64
	WeightKg        float64
	SerumCreatinine float64 // mg/dL
	Sex             Sex
}

// CreatinineClearance estimates CrCl in mL/min with the Cockcroft-Gault
// equation, rounded to 2 decimals. No clinical category is attached.
func CreatinineClearance(in CrClInput) (float64, error) {
	if !finite(in.Age) || !finite(in.WeightKg) || !finite(in.SerumCreatinine) {
		return 0, fmt.Errorf("%w: inputs must be finite numbers", ErrInvalidInput)
	}
	if in.Age < 1 || in.Age >= 140 {
		return 0, fmt.Errorf("%w: age must be between 1 and 139, got %v", ErrInvalidInput, in.Age)
	}
	if in.WeightKg <= 0 {
		return 0, fmt.Errorf("%w: weight must be positive, got %v", ErrInvalidInput, in.WeightKg)
	}
	if in.SerumCreatinine <= 0 {
		return 0, fmt.Errorf("%w: serum creatinine must be positive, got %v", ErrInvalidInput, in.SerumCreatinine)
	}

	crcl := ((140 - in.Age) * in.WeightKg) / (72 * in.SerumCreatinine)
	if in.Sex == SexFemale {
		crcl *= femaleCrClFactor
	}

	return math.Round(crcl*100) / 100, nil
}

// LabPanel is the set of labs screened for critical values
type LabPanel struct {
	Potassium  float64 // mmol/L
	INR        float64
	Creatinine float64 // mg/dL
}

// EvaluateLabPanel checks each lab independently against its threshold.
// Alerts follow potassium, INR, creatinine order.
func EvaluateLabPanel(panel LabPanel) (Report, error) {
	values := []struct {
		name  string
		value float64
	}{
		{"potassium", panel.Potassium},
		{"inr", panel.INR},
		{"creatinine", panel.Creatinine},
	}
	for _, v := range values {
		if !finite(v.value) || v.value < 0 {
			return Report{}, fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidInput, v.name, v.value)
		}
	}

	var alerts []Alert
	if panel.Potassium > PotassiumThreshold {
		alerts = append(alerts, Alert{
			Severity: SeverityCritical,
			Message:  fmt.Sprintf("Hyperkalemia alert: potassium %g mmol/L (> %g)", panel.Potassium, PotassiumThreshold),
		})
	}
	if panel.INR > INRThreshold {
		alerts = append(alerts, Alert{
			Severity: SeverityCritical,
			Message:  fmt.Sprintf("Bleeding risk: INR %g (> %g)", panel.INR, INRThreshold),
		})
	}
	if panel.Creatinine > CreatinineThreshold {
		alerts = append(alerts, Alert{
			Severity: SeverityCritical,
			Message:  fmt.Sprintf("Renal impairment: creatinine %g mg/dL (> %g)", panel.Creatinine, CreatinineThreshold),
		})
	}

	return newReport(alerts, NoLabAlertsMessage), nil
}

// CheckDose flags a single dose above the drug's ceiling. Drugs without a
// specific limit use the table default.
func CheckDose(drug string, doseMg float64, limits reference.DoseLimitTable) (Lookup, error) {
	if !finite(doseMg) || doseMg < 0 {
		return Lookup{}, fmt.Errorf("%w: dose must be a non-negative number, got %v", ErrInvalidInput, doseMg)
	}

	name := reference.NewDrugName(drug)
	limit := limits.LimitFor(name)

	if doseMg > limit {
		subject := "dose"
		if name != "" {
			subject = name.Display() + " dose"
		}
		alert := Alert{
			Severity: SeverityCritical,
			Message:  fmt.Sprintf("Possible overdose: %s of %g mg exceeds %g mg", subject, doseMg, limit),
		}
		return Lookup{Found: true, Alert: &alert}, nil
	}

	return Lookup{Text: DoseSafeMessage}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
