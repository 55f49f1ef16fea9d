package dosing

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Concentración fija de Kisunla: 350 mg por vial de 20 mL.
const (
	VialDoseMg   = 350.0
	VialVolumeMl = 20.0

	MaintenanceDoseMg = 1400.0
)

// DoseForInfusionNumber devuelve la dosis en mg según el esquema de
// titulación gradual: 350 / 700 / 1050, y mantenimiento desde la cuarta
// infusión en adelante (sin tope superior).
func DoseForInfusionNumber(n int) (float64, error) {
	switch {
	case n < 1:
		return 0, ErrInvalidInput
	case n == 1:
		return 350, nil
	case n == 2:
		return 700, nil
	case n == 3:
		return 1050, nil
	default:
		return MaintenanceDoseMg, nil
	}
}

// VolumeForDose deriva el volumen de infusión en mL a partir de la dosis.
// Sin redondeo: el valor crudo es el que se muestra (20.0, 40.0, 80.0...).
func VolumeForDose(doseMg float64) (float64, error) {
	if doseMg <= 0 {
		return 0, ErrInvalidInput
	}
	return doseMg / VialDoseMg * VialVolumeMl, nil
}

// Step es una fila del esquema de dosificación que ve el clínico.
type Step struct {
	Label  string
	DoseMg float64
}

// Schedule devuelve el esquema completo de titulación, tal como se muestra
// en la tarjeta "Dosing Schedule" del resumen.
func Schedule() []Step {
	return []Step{
		{Label: "Dose 1", DoseMg: 350},
		{Label: "Dose 2", DoseMg: 700},
		{Label: "Dose 3", DoseMg: 1050},
		{Label: "Maintenance (Q4W)", DoseMg: MaintenanceDoseMg},
	}
}
