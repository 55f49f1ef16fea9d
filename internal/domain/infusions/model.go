package infusions

import "time"

// Status de una infusión registrada.
// @Enum completed
type Status string

const (
	StatusCompleted Status = "completed"
)

// Infusion es una administración de Kisunla registrada en la hoja de flujo.
// El ID es entero por colección y lo asigna el store (max existente + 1).
type Infusion struct {
	ID        int
	SessionID string

	// Number es la posición en la secuencia de tratamiento (>= 1).
	// De ella se deriva la dosis según el esquema de titulación.
	Number int

	Date time.Time // solo fecha (YYYY-MM-DD)

	DoseMg   float64
	VolumeMl float64

	Status Status
	Notes  string

	RecordedAt time.Time
}
