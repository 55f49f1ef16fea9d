package mri

import "time"

// ScanType clasifica el estudio de resonancia.
// @Enum Baseline, Follow-up, Safety
type ScanType string

const (
	TypeBaseline ScanType = "Baseline"
	TypeFollowUp ScanType = "Follow-up"
	TypeSafety   ScanType = "Safety"
)

// Record es un estudio de MRI del seguimiento de seguridad.
type Record struct {
	ID        int
	SessionID string

	Date time.Time // solo fecha (YYYY-MM-DD)
	Type ScanType

	// Notes son las notas del radiólogo, texto libre.
	Notes string

	RecordedAt time.Time
}

// ScheduleReminder es el recordatorio del protocolo de vigilancia que se
// muestra junto al historial de estudios.
type ScheduleReminder struct {
	Required  string `json:"required"`
	Vigilance string `json:"vigilance"`
}

// Reminder devuelve el recordatorio fijo del protocolo Kisunla.
func Reminder() ScheduleReminder {
	return ScheduleReminder{
		Required:  "Baseline + before infusions 2, 3, 4, and 7",
		Vigilance: "Enhanced vigilance during first 24 weeks",
	}
}
