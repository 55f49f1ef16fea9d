package aria

import "time"

// AriaE es la sub-evaluación de edema/efusión (ARIA-E).
type AriaE struct {
	FlairSeverity    FlairSeverity
	ClinicalSeverity ClinicalSeverity
}

// AriaH es la sub-evaluación de hemorragia/siderosis (ARIA-H).
type AriaH struct {
	Microhemorrhages Microhemorrhages
	Siderosis        Siderosis
}

// Assessment es una evaluación ARIA completa asociada a un estudio de MRI.
type Assessment struct {
	ID        int
	SessionID string

	Date time.Time // solo fecha (YYYY-MM-DD)

	AriaE AriaE
	AriaH AriaH

	// Symptoms es un conjunto (sin duplicados) de síntomas presentes.
	Symptoms []Symptom

	RecordedAt time.Time
}
