package reference

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
)

// LoadFile reads reference tables from a JSON file. Sections missing from the
// file keep their built-in defaults; sections present replace them entirely.
func LoadFile(path string) (*Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference data file %s: %w", path, err)
	}
	defer f.Close()

	tables, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data from %s: %w", path, err)
	}

	return tables, nil
}

// Decode reads reference tables from r on top of the built-in defaults
func Decode(r io.Reader) (*Tables, error) {
	tables := Default()

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(tables); err != nil {
		return nil, fmt.Errorf("invalid reference data: %w", err)
	}

	tables.normalize()

	if err := tables.Validate(); err != nil {
		return nil, err
	}

	return tables, nil
}

// normalize case-folds every key so lookups compare like with like
func (t *Tables) normalize() {
	for i := range t.HighRisk {
		t.HighRisk[i] = NewDrugName(string(t.HighRisk[i]))
	}
	for i := range t.LASA {
		t.LASA[i].A = NewDrugName(string(t.LASA[i].A))
		t.LASA[i].B = NewDrugName(string(t.LASA[i].B))
	}
	for i := range t.IV {
		t.IV[i].A = NewDrugName(string(t.IV[i].A))
		t.IV[i].B = NewDrugName(string(t.IV[i].B))
	}
	for i := range t.Pregnancy {
		t.Pregnancy[i].Drug = NewDrugName(string(t.Pregnancy[i].Drug))
	}
	for i := range t.Antibiotics {
		t.Antibiotics[i].Keyword = InfectionKeyword(Normalize(string(t.Antibiotics[i].Keyword)))
	}
	for i := range t.CrashCart {
		t.CrashCart[i].Drug = NewDrugName(string(t.CrashCart[i].Drug))
	}
	for i := range t.DoseLimits.PerDrug {
		t.DoseLimits.PerDrug[i].Drug = NewDrugName(string(t.DoseLimits.PerDrug[i].Drug))
	}
	for i := range t.Monographs {
		t.Monographs[i].Drug = NewDrugName(string(t.Monographs[i].Drug))
	}
}

// Validate checks that no table has empty or duplicate keys and that dose
// limits are positive.
func (t *Tables) Validate() error {
	seen := make(map[DrugName]bool)
	for _, d := range t.HighRisk {
		if err := checkKey("high_risk", d, seen); err != nil {
			return err
		}
	}

	seen = make(map[DrugName]bool)
	for _, p := range t.LASA {
		if p.A == "" || p.B == "" {
			return fmt.Errorf("lasa: empty drug name in pair %q/%q", p.A, p.B)
		}
		if p.A == p.B {
			return fmt.Errorf("lasa: pair %q pairs a drug with itself", p.A)
		}
		if err := checkKey("lasa", p.A+"|"+p.B, seen); err != nil {
			return err
		}
	}

	seen = make(map[DrugName]bool)
	for _, iv := range t.IV {
		if iv.A == "" || iv.B == "" {
			return fmt.Errorf("iv_incompatibilities: empty drug name in pair %q/%q", iv.A, iv.B)
		}
		if err := checkKey("iv_incompatibilities", iv.A+"|"+iv.B, seen); err != nil {
			return err
		}
		// unordered pair, so the reverse is a duplicate too
		seen[iv.B+"|"+iv.A] = true
	}

	seen = make(map[DrugName]bool)
	for _, e := range t.Pregnancy {
		if err := checkKey("pregnancy", e.Drug, seen); err != nil {
			return err
		}
	}

	seen = make(map[DrugName]bool)
	for _, r := range t.Antibiotics {
		if err := checkKey("antibiotics", DrugName(r.Keyword), seen); err != nil {
			return err
		}
	}

	seen = make(map[DrugName]bool)
	for _, c := range t.CrashCart {
		if err := checkKey("crash_cart", c.Drug, seen); err != nil {
			return err
		}
	}

	if !validLimit(t.DoseLimits.DefaultMg) {
		return fmt.Errorf("dose_limits: default_mg must be positive, got %v", t.DoseLimits.DefaultMg)
	}
	seen = make(map[DrugName]bool)
	for _, l := range t.DoseLimits.PerDrug {
		if err := checkKey("dose_limits", l.Drug, seen); err != nil {
			return err
		}
		if !validLimit(l.MaxSingleDoseMg) {
			return fmt.Errorf("dose_limits: limit for %q must be positive, got %v", l.Drug, l.MaxSingleDoseMg)
		}
	}

	seen = make(map[DrugName]bool)
	for _, m := range t.Monographs {
		if err := checkKey("monographs", m.Drug, seen); err != nil {
			return err
		}
	}

	return nil
}

func checkKey(table string, key DrugName, seen map[DrugName]bool) error {
	if key == "" {
		return fmt.Errorf("%s: empty key", table)
	}
	if seen[key] {
		return fmt.Errorf("%s: duplicate key %q", table, key)
	}
	seen[key] = true
	return nil
}

func validLimit(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
