package sessions

import (
	"time"

	"kisunla-flowsheet/internal/domain/aria"
	"kisunla-flowsheet/internal/domain/infusions"
	"kisunla-flowsheet/internal/domain/mri"
	"kisunla-flowsheet/internal/domain/profile"
)

// Historia demo del paciente de ejemplo, tal cual la planilla original.
// Se carga vía Seed (sin pasar por la validación de alta): son entradas
// históricas manuales y se preservan al pie de la letra, incluyendo el
// volumen de 30.0 mL de la infusión 17 (la calculadora daría 60.0 para
// 1050 mg) y el grado "Mild (2-4)" de la evaluación 2, que no coincide
// con la etiqueta actual del formulario.

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func demoInfusions(sessionID string) []infusions.Infusion {
	return []infusions.Infusion{
		{ID: 21, SessionID: sessionID, Number: 21, Date: d(2025, 8, 27), DoseMg: 1400, VolumeMl: 40.0, Status: infusions.StatusCompleted, Notes: "Maintenance dose - patient tolerated well"},
		{ID: 20, SessionID: sessionID, Number: 20, Date: d(2025, 8, 13), DoseMg: 1400, VolumeMl: 40.0, Status: infusions.StatusCompleted},
		{ID: 19, SessionID: sessionID, Number: 19, Date: d(2025, 7, 28), DoseMg: 1400, VolumeMl: 40.0, Status: infusions.StatusCompleted},
		{ID: 18, SessionID: sessionID, Number: 18, Date: d(2025, 5, 12), DoseMg: 1400, VolumeMl: 40.0, Status: infusions.StatusCompleted},
		{ID: 17, SessionID: sessionID, Number: 17, Date: d(2025, 5, 5), DoseMg: 1050, VolumeMl: 30.0, Status: infusions.StatusCompleted, Notes: "Third dose - titration phase"},
	}
}

func demoMRIRecords(sessionID string) []mri.Record {
	return []mri.Record{
		{ID: 5, SessionID: sessionID, Date: d(2025, 8, 27), Type: mri.TypeBaseline, Notes: "Stable - no new ARIA findings"},
		{ID: 4, SessionID: sessionID, Date: d(2025, 8, 13), Type: mri.TypeBaseline, Notes: "N/A"},
		{ID: 3, SessionID: sessionID, Date: d(2025, 7, 30), Type: mri.TypeBaseline, Notes: "Mild FLAIR changes noted"},
		{ID: 2, SessionID: sessionID, Date: d(2025, 7, 15), Type: mri.TypeBaseline, Notes: "Baseline study"},
		{ID: 1, SessionID: sessionID, Date: d(2025, 6, 5), Type: mri.TypeBaseline, Notes: "Pre-treatment baseline"},
	}
}

func demoAssessments(sessionID string) []aria.Assessment {
	return []aria.Assessment{
		{
			ID: 4, SessionID: sessionID, Date: d(2025, 8, 27),
			AriaE:    aria.AriaE{FlairSeverity: aria.FlairNone, ClinicalSeverity: aria.ClinicalAsymptomatic},
			AriaH:    aria.AriaH{Microhemorrhages: aria.MicrohemorrhagesNone, Siderosis: aria.SiderosisNone},
			Symptoms: []aria.Symptom{},
		},
		{
			ID: 3, SessionID: sessionID, Date: d(2025, 8, 13),
			AriaE:    aria.AriaE{FlairSeverity: aria.FlairNone, ClinicalSeverity: aria.ClinicalAsymptomatic},
			AriaH:    aria.AriaH{Microhemorrhages: aria.MicrohemorrhagesNone, Siderosis: aria.SiderosisNone},
			Symptoms: []aria.Symptom{},
		},
		{
			ID: 2, SessionID: sessionID, Date: d(2025, 7, 30),
			AriaE:    aria.AriaE{FlairSeverity: aria.FlairMild, ClinicalSeverity: aria.ClinicalAsymptomatic},
			AriaH:    aria.AriaH{Microhemorrhages: "Mild (2-4)", Siderosis: aria.SiderosisNone},
			Symptoms: []aria.Symptom{},
		},
	}
}

func demoProfile(sessionID string) profile.Profile {
	return profile.Profile{
		SessionID:           sessionID,
		CMSRegistryID:       "123445",
		ApoE4Status:         profile.ApoE4Homozygote,
		OverallAriaRisk:     "45%",
		SymptomaticAriaRate: "9%",
		SeriousEventRate:    "3%",
	}
}
