package aria

// FlairSeverity gradúa la hiperintensidad FLAIR en ARIA-E.
type FlairSeverity string

const (
	FlairNone     FlairSeverity = "None"
	FlairMild     FlairSeverity = "Mild"
	FlairModerate FlairSeverity = "Moderate"
	FlairSevere   FlairSeverity = "Severe"
)

// ClinicalSeverity gradúa el cuadro clínico global en ARIA-E.
type ClinicalSeverity string

const (
	ClinicalAsymptomatic ClinicalSeverity = "Asymptomatic"
	ClinicalMild         ClinicalSeverity = "Mild"
	ClinicalModerate     ClinicalSeverity = "Moderate"
	ClinicalSevere       ClinicalSeverity = "Severe"
)

// Microhemorrhages gradúa las microhemorragias en ARIA-H.
// Las etiquetas llevan el conteo entre paréntesis, igual que el formulario.
type Microhemorrhages string

const (
	MicrohemorrhagesNone     Microhemorrhages = "None"
	MicrohemorrhagesMild     Microhemorrhages = "Mild (≤4)"
	MicrohemorrhagesModerate Microhemorrhages = "Moderate (5-9)"
	MicrohemorrhagesSevere   Microhemorrhages = "Severe (≥10)"
)

// Siderosis gradúa la siderosis superficial en ARIA-H.
type Siderosis string

const (
	SiderosisNone     Siderosis = "None"
	SiderosisMild     Siderosis = "Mild (1 area)"
	SiderosisModerate Siderosis = "Moderate (2 areas)"
	SiderosisSevere   Siderosis = "Severe (>2 areas)"
)

// Symptom es un síntoma reportado en la evaluación.
type Symptom string

const (
	SymptomWeakness      Symptom = "Weakness"
	SymptomDizziness     Symptom = "Dizziness"
	SymptomVisualChanges Symptom = "Visual Changes"
	SymptomNausea        Symptom = "Nausea"
	SymptomConfusion     Symptom = "Confusion"
	SymptomHeadache      Symptom = "Headache"
)
