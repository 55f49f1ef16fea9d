package aria

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"kisunla-flowsheet/internal/middleware"
	"kisunla-flowsheet/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/sessions/{sessionID}/aria", func(ar chi.Router) {
		ar.Post("/", appendAssessmentHandler(svc))
		ar.Get("/", listAssessmentsHandler(svc))
		ar.Get("/latest", latestAssessmentHandler(svc))
	})
}

// appendAssessmentRequest es el cuerpo para registrar una evaluación ARIA.
type appendAssessmentRequest struct {
	Date     string       `json:"date"` // YYYY-MM-DD
	AriaE    ariaEPayload `json:"aria_e"`
	AriaH    ariaHPayload `json:"aria_h"`
	Symptoms []Symptom    `json:"symptoms"`
}

type ariaEPayload struct {
	FlairSeverity    FlairSeverity    `json:"flair_severity" enums:"None,Mild,Moderate,Severe"`
	ClinicalSeverity ClinicalSeverity `json:"clinical_severity" enums:"Asymptomatic,Mild,Moderate,Severe"`
}

type ariaHPayload struct {
	Microhemorrhages Microhemorrhages `json:"microhemorrhages"`
	Siderosis        Siderosis        `json:"siderosis"`
}

// assessmentResponse representa una evaluación ARIA devuelta por la API.
type assessmentResponse struct {
	ID       int          `json:"id"`
	Date     string       `json:"date"`
	AriaE    ariaEPayload `json:"aria_e"`
	AriaH    ariaHPayload `json:"aria_h"`
	Symptoms []Symptom    `json:"symptoms"`
}

// appendAssessmentHandler godoc
// @Summary Registrar evaluación ARIA
// @Description Agrega una evaluación ARIA (ARIA-E + ARIA-H + síntomas) a la sesión. Severidades y síntomas se validan estrictos contra el catálogo del formulario.
// @Tags aria
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param payload body appendAssessmentRequest true "Evaluación; date en formato YYYY-MM-DD"
// @Success 201 {object} assessmentResponse
// @Failure 400 {string} string "invalid json / date inválida / severidad o síntoma desconocido"
// @Failure 401 {string} string "unauthorized"
// @Router /sessions/{sessionID}/aria [post]
func appendAssessmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req appendAssessmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		a, err := svc.Append(r.Context(), chi.URLParam(r, "sessionID"), AppendInput{
			Date: d,
			AriaE: AriaE{
				FlairSeverity:    req.AriaE.FlairSeverity,
				ClinicalSeverity: req.AriaE.ClinicalSeverity,
			},
			AriaH: AriaH{
				Microhemorrhages: req.AriaH.Microhemorrhages,
				Siderosis:        req.AriaH.Siderosis,
			},
			Symptoms: req.Symptoms,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		metrics.RecordAppended("aria")
		writeJSON(w, http.StatusCreated, toAssessmentResponse(a))
	}
}

// listAssessmentsHandler godoc
// @Summary Historial de evaluaciones ARIA
// @Description Lista las evaluaciones ARIA de la sesión, la más reciente primero.
// @Tags aria
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {array} assessmentResponse
// @Failure 401 {string} string "unauthorized"
// @Router /sessions/{sessionID}/aria [get]
func listAssessmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]assessmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAssessmentResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// latestAssessmentHandler godoc
// @Summary Última evaluación ARIA
// @Description Devuelve la evaluación más reciente, o 204 si todavía no hay registros.
// @Tags aria
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} assessmentResponse
// @Success 204 {string} string "sin registros"
// @Failure 401 {string} string "unauthorized"
// @Router /sessions/{sessionID}/aria/latest [get]
func latestAssessmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, found, err := svc.Latest(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !found {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, toAssessmentResponse(a))
	}
}

func toAssessmentResponse(a Assessment) assessmentResponse {
	symptoms := a.Symptoms
	if symptoms == nil {
		symptoms = []Symptom{}
	}
	return assessmentResponse{
		ID:   a.ID,
		Date: a.Date.Format("2006-01-02"),
		AriaE: ariaEPayload{
			FlairSeverity:    a.AriaE.FlairSeverity,
			ClinicalSeverity: a.AriaE.ClinicalSeverity,
		},
		AriaH: ariaHPayload{
			Microhemorrhages: a.AriaH.Microhemorrhages,
			Siderosis:        a.AriaH.Siderosis,
		},
		Symptoms: symptoms,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
