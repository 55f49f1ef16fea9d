package profile

import (
	"encoding/json"
	"net/http"
	"strings"

	"kisunla-flowsheet/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/sessions/{sessionID}/profile", func(pr chi.Router) {
		pr.Get("/", getProfileHandler(svc))
		pr.Patch("/", patchProfileHandler(svc))
	})
}

// patchProfileRequest usa punteros para distinguir "no enviado" de "vacío".
type patchProfileRequest struct {
	CMSRegistryID *string      `json:"cms_registry_id"`
	ApoE4Status   *ApoE4Status `json:"apoe4_status"`

	OverallAriaRisk     *string `json:"overall_aria_risk"`
	SymptomaticAriaRate *string `json:"symptomatic_aria_rate"`
	SeriousEventRate    *string `json:"serious_event_rate"`
}

// profileResponse representa el perfil del paciente devuelto por la API.
type profileResponse struct {
	CMSRegistryID string      `json:"cms_registry_id"`
	ApoE4Status   ApoE4Status `json:"apoe4_status"`
	HighRisk      bool        `json:"high_risk"`

	OverallAriaRisk     string `json:"overall_aria_risk"`
	SymptomaticAriaRate string `json:"symptomatic_aria_rate"`
	SeriousEventRate    string `json:"serious_event_rate"`
}

// getProfileHandler godoc
// @Summary Perfil del paciente
// @Description Devuelve los escalares del paciente de la sesión. En el primer acceso arranca con "Not Tested" / "Not Assessed".
// @Tags profile
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} profileResponse
// @Failure 401 {string} string "unauthorized"
// @Router /sessions/{sessionID}/profile [get]
func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Get(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// patchProfileHandler godoc
// @Summary Actualizar perfil del paciente
// @Description Actualización parcial: solo se tocan los campos presentes en el payload. Los porcentajes de riesgo son texto opaco del operador.
// @Tags profile
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param payload body patchProfileRequest true "Campos a actualizar"
// @Success 200 {object} profileResponse
// @Failure 400 {string} string "invalid json / estado ApoE desconocido"
// @Failure 401 {string} string "unauthorized"
// @Router /sessions/{sessionID}/profile [patch]
func patchProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req patchProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Patch(r.Context(), chi.URLParam(r, "sessionID"), PatchInput{
			CMSRegistryID:       req.CMSRegistryID,
			ApoE4Status:         req.ApoE4Status,
			OverallAriaRisk:     req.OverallAriaRisk,
			SymptomaticAriaRate: req.SymptomaticAriaRate,
			SeriousEventRate:    req.SeriousEventRate,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func toProfileResponse(p Profile) profileResponse {
	return profileResponse{
		CMSRegistryID:       p.CMSRegistryID,
		ApoE4Status:         p.ApoE4Status,
		HighRisk:            HighRisk(p),
		OverallAriaRisk:     p.OverallAriaRisk,
		SymptomaticAriaRate: p.SymptomaticAriaRate,
		SeriousEventRate:    p.SeriousEventRate,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
