package reference

// DefaultMaxSingleDoseMg is the generic single-dose ceiling used when a drug
// has no specific limit.
const DefaultMaxSingleDoseMg = 1000

// Default returns a freshly built copy of the built-in reference tables.
func Default() *Tables {
	return &Tables{
		HighRisk: HighRiskTable{
			"warfarin",
			"insulin",
			"heparin",
			"morphine",
			"digoxin",
		},
		LASA: LASATable{
			{A: "dopamine", B: "dobutamine"},
			{A: "hydralazine", B: "hydroxyzine"},
			{A: "celebrex", B: "celexa"},
			{A: "clonidine", B: "klonopin"},
		},
		IV: IVTable{
			{A: "ceftriaxone", B: "calcium", Note: "Precipitation risk"},
			{A: "phenytoin", B: "dextrose", Note: "Phenytoin precipitates in dextrose solutions"},
			{A: "amphotericin b", B: "normal saline", Note: "Amphotericin B precipitates in saline"},
		},
		Pregnancy: PregnancyTable{
			{Drug: "warfarin", Category: "Category X: Teratogenic, contraindicated in pregnancy"},
			{Drug: "isotretinoin", Category: "Category X: Teratogenic, contraindicated in pregnancy"},
			{Drug: "methotrexate", Category: "Category X: Contraindicated in pregnancy"},
			{Drug: "lisinopril", Category: "Category D: Fetal renal toxicity, avoid in pregnancy"},
			{Drug: "paracetamol", Category: "Category B: Generally considered safe"},
			{Drug: "amoxicillin", Category: "Category B: Generally considered safe"},
		},
		Antibiotics: AntibioticTable{
			{Keyword: "uti", Regimen: "Nitrofurantoin or Cephalexin (check local antibiogram)"},
			{Keyword: "pneumonia", Regimen: "Amoxicillin-clavulanate or Azithromycin"},
			{Keyword: "sepsis", Regimen: "Piperacillin-tazobactam or Meropenem (obtain cultures first)"},
		},
		CrashCart: CrashCartTable{
			{Drug: "adrenaline", Indication: "Cardiac arrest, anaphylaxis"},
			{Drug: "atropine", Indication: "Symptomatic bradycardia"},
			{Drug: "amiodarone", Indication: "VF/pulseless VT"},
			{Drug: "adenosine", Indication: "Stable SVT"},
			{Drug: "sodium bicarbonate", Indication: "Severe metabolic acidosis, hyperkalemia"},
			{Drug: "calcium chloride", Indication: "Hyperkalemia, calcium channel blocker toxicity"},
			{Drug: "naloxone", Indication: "Opioid overdose"},
			{Drug: "dextrose 50%", Indication: "Hypoglycemia"},
			{Drug: "magnesium sulfate", Indication: "Torsades de pointes"},
		},
		DoseLimits: DoseLimitTable{
			DefaultMg: DefaultMaxSingleDoseMg,
		},
		Monographs: MonographTable{
			{Drug: "paracetamol", Summary: "Paracetamol is used for fever and mild to moderate pain. Adult dose: 500-1000 mg every 6 hours. Max: 4g/day."},
			{Drug: "ibuprofen", Summary: "Ibuprofen is an NSAID used for pain and inflammation. Adult dose: 200-400 mg every 6-8 hours."},
			{Drug: "amoxicillin", Summary: "Amoxicillin is a penicillin antibiotic used for bacterial infections."},
			{Drug: "metformin", Summary: "Metformin is used in Type 2 Diabetes. Starting dose: 500 mg once or twice daily with meals."},
		},
	}
}
