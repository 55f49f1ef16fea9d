package summary

import (
	"encoding/json"
	"net/http"
	"strings"

	"kisunla-flowsheet/internal/domain/aria"
	"kisunla-flowsheet/internal/domain/mri"
	"kisunla-flowsheet/internal/domain/profile"
	"kisunla-flowsheet/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/sessions/{sessionID}/summary", getSummaryHandler(svc))
}

type scheduleStepPayload struct {
	Label  string  `json:"label"`
	DoseMg float64 `json:"dose_mg"`
}

type currentInfusionPayload struct {
	Number   int     `json:"number"`
	Date     string  `json:"date"`
	DoseMg   float64 `json:"dose_mg"`
	VolumeMl float64 `json:"volume_ml"`
}

type latestMRIPayload struct {
	Date  string       `json:"date"`
	Type  mri.ScanType `json:"type"`
	Notes string       `json:"notes"`
}

type latestAssessmentPayload struct {
	Date             string                `json:"date"`
	FlairSeverity    aria.FlairSeverity    `json:"flair_severity"`
	ClinicalSeverity aria.ClinicalSeverity `json:"clinical_severity"`
	Microhemorrhages aria.Microhemorrhages `json:"microhemorrhages"`
	Siderosis        aria.Siderosis        `json:"siderosis"`
	Symptoms         []aria.Symptom        `json:"symptoms"`
}

type profilePayload struct {
	CMSRegistryID       string              `json:"cms_registry_id"`
	ApoE4Status         profile.ApoE4Status `json:"apoe4_status"`
	HighRisk            bool                `json:"high_risk"`
	OverallAriaRisk     string              `json:"overall_aria_risk"`
	SymptomaticAriaRate string              `json:"symptomatic_aria_rate"`
	SeriousEventRate    string              `json:"serious_event_rate"`
}

// summaryResponse es la pestaña Summary completa en una sola respuesta.
// current_infusion / latest_mri / latest_assessment vienen en null mientras
// la colección correspondiente esté vacía.
type summaryResponse struct {
	CurrentInfusion  *currentInfusionPayload  `json:"current_infusion"`
	DosingSchedule   []scheduleStepPayload    `json:"dosing_schedule"`
	LatestMRI        *latestMRIPayload        `json:"latest_mri"`
	MRIReminder      mri.ScheduleReminder     `json:"mri_reminder"`
	LatestAssessment *latestAssessmentPayload `json:"latest_assessment"`
	Profile          profilePayload           `json:"profile"`
}

// getSummaryHandler godoc
// @Summary Resumen de la sesión
// @Description Vista agregada de la hoja de flujo: infusión actual, esquema de dosificación, último MRI, última evaluación ARIA, recordatorio de vigilancia y perfil del paciente. Colecciones vacías se devuelven como null, nunca como error.
// @Tags summary
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} summaryResponse
// @Failure 401 {string} string "unauthorized"
// @Router /sessions/{sessionID}/summary [get]
func getSummaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		s, err := svc.Build(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := summaryResponse{
			DosingSchedule: make([]scheduleStepPayload, 0, len(s.DosingSchedule)),
			MRIReminder:    s.MRIReminder,
			Profile: profilePayload{
				CMSRegistryID:       s.Profile.CMSRegistryID,
				ApoE4Status:         s.Profile.ApoE4Status,
				HighRisk:            profile.HighRisk(s.Profile),
				OverallAriaRisk:     s.Profile.OverallAriaRisk,
				SymptomaticAriaRate: s.Profile.SymptomaticAriaRate,
				SeriousEventRate:    s.Profile.SeriousEventRate,
			},
		}
		for _, step := range s.DosingSchedule {
			out.DosingSchedule = append(out.DosingSchedule, scheduleStepPayload{
				Label:  step.Label,
				DoseMg: step.DoseMg,
			})
		}
		if s.CurrentInfusion != nil {
			out.CurrentInfusion = &currentInfusionPayload{
				Number:   s.CurrentInfusion.Number,
				Date:     s.CurrentInfusion.Date.Format("2006-01-02"),
				DoseMg:   s.CurrentInfusion.DoseMg,
				VolumeMl: s.CurrentInfusion.VolumeMl,
			}
		}
		if s.LatestMRI != nil {
			out.LatestMRI = &latestMRIPayload{
				Date:  s.LatestMRI.Date.Format("2006-01-02"),
				Type:  s.LatestMRI.Type,
				Notes: s.LatestMRI.Notes,
			}
		}
		if s.LatestAssessment != nil {
			symptoms := s.LatestAssessment.Symptoms
			if symptoms == nil {
				symptoms = []aria.Symptom{}
			}
			out.LatestAssessment = &latestAssessmentPayload{
				Date:             s.LatestAssessment.Date.Format("2006-01-02"),
				FlairSeverity:    s.LatestAssessment.AriaE.FlairSeverity,
				ClinicalSeverity: s.LatestAssessment.AriaE.ClinicalSeverity,
				Microhemorrhages: s.LatestAssessment.AriaH.Microhemorrhages,
				Siderosis:        s.LatestAssessment.AriaH.Siderosis,
				Symptoms:         symptoms,
			}
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
