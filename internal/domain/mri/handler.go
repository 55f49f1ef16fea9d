package mri

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
	r.Route("/sessions/{sessionID}/mri", func(mr chi.Router) {
		mr.Post("/", appendRecordHandler(svc))
		mr.Get("/", listRecordsHandler(svc))
		mr.Get("/latest", latestRecordHandler(svc))
	})
}

// appendRecordRequest es el cuerpo para registrar un nuevo estudio de MRI.
type appendRecordRequest struct {
	Date  string   `json:"date"` // YYYY-MM-DD
	Type  ScanType `json:"type" enums:"Baseline,Follow-up,Safety"`
	Notes string   `json:"notes"`
}

// recordResponse representa un estudio de MRI devuelto por la API.
type recordResponse struct {
	ID    int      `json:"id"`
	Date  string   `json:"date"`
	Type  ScanType `json:"type"`
	Notes string   `json:"notes"`
}

type listRecordsResponse struct {
	Reminder ScheduleReminder `json:"reminder"`
	Records  []recordResponse `json:"records"`
}

// appendRecordHandler godoc
// @Summary Registrar estudio de MRI
// @Description Agrega un estudio al seguimiento de MRI de la sesión. El tipo se valida estricto (Baseline, Follow-up, Safety).
// @Tags mri
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param payload body appendRecordRequest true "Datos del estudio; date en formato YYYY-MM-DD"
// @Success 201 {object} recordResponse
// @Failure 400 {string} string "invalid json / date inválida / tipo desconocido"
// @Failure 401 {string} string "unauthorized"
// @Router /sessions/{sessionID}/mri [post]
func appendRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req appendRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		rec, err := svc.Append(r.Context(), chi.URLParam(r, "sessionID"), AppendInput{
			Date:  d,
			Type:  req.Type,
			Notes: req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		metrics.RecordAppended("mri")
		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// listRecordsHandler godoc
// @Summary Seguimiento de MRI
// @Description Lista los estudios de MRI de la sesión (más reciente primero) junto con el recordatorio del protocolo de vigilancia.
// @Tags mri
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} listRecordsResponse
// @Failure 401 {string} string "unauthorized"
// @Router /sessions/{sessionID}/mri [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
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

		out := listRecordsResponse{
			Reminder: Reminder(),
			Records:  make([]recordResponse, 0, len(items)),
		}
		for _, rec := range items {
			out.Records = append(out.Records, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// latestRecordHandler godoc
// @Summary Último estudio de MRI
// @Description Devuelve el estudio más reciente, o 204 si todavía no hay registros.
// @Tags mri
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} recordResponse
// @Success 204 {string} string "sin registros"
// @Failure 401 {string} string "unauthorized"
// @Router /sessions/{sessionID}/mri/latest [get]
func latestRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rec, found, err := svc.Latest(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !found {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func toRecordResponse(rec Record) recordResponse {
	return recordResponse{
		ID:    rec.ID,
		Date:  rec.Date.Format("2006-01-02"),
		Type:  rec.Type,
		Notes: rec.Notes,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
