package infusions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kisunla-flowsheet/internal/middleware"
	"kisunla-flowsheet/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/sessions/{sessionID}/infusions", func(ir chi.Router) {
		ir.Post("/", appendInfusionHandler(svc))
		ir.Get("/", listInfusionsHandler(svc))
		ir.Get("/latest", latestInfusionHandler(svc))

		// Edición: reemplaza el registro por ID (el lápiz de la tarjeta).
		ir.Put("/{infusionID}", updateInfusionHandler(svc))
	})
}

// appendInfusionRequest es el cuerpo para registrar una nueva infusión.
// dose_mg es opcional; si falta, la dosis se calcula por titulación.
type appendInfusionRequest struct {
	Number int     `json:"number"`
	Date   string  `json:"date"` // YYYY-MM-DD
	DoseMg float64 `json:"dose_mg,omitempty"`
	Notes  string  `json:"notes"`
}

// infusionResponse representa una infusión devuelta por la API.
type infusionResponse struct {
	ID       int     `json:"id"`
	Number   int     `json:"number"`
	Date     string  `json:"date"`
	DoseMg   float64 `json:"dose_mg"`
	VolumeMl float64 `json:"volume_ml"`
	Status   Status  `json:"status"`
	Notes    string  `json:"notes"`
}

// appendInfusionHandler godoc
// @Summary Registrar infusión
// @Description Agrega una infusión al historial de la sesión. La dosis se calcula por el esquema de titulación salvo override manual (dose_mg). El volumen siempre se deriva de la dosis efectiva (350mg/20mL). Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags infusions
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param payload body appendInfusionRequest true "Datos de la infusión; date en formato YYYY-MM-DD"
// @Success 201 {object} infusionResponse
// @Failure 400 {string} string "invalid json / date inválida / number < 1"
// @Failure 401 {string} string "unauthorized"
// @Router /sessions/{sessionID}/infusions [post]
func appendInfusionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sessionID := chi.URLParam(r, "sessionID")

		var req appendInfusionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		rec, err := svc.Append(r.Context(), sessionID, AppendInput{
			Number: req.Number,
			Date:   d,
			DoseMg: req.DoseMg,
			Notes:  req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		metrics.RecordAppended("infusions")
		writeJSON(w, http.StatusCreated, toInfusionResponse(rec))
	}
}

// listInfusionsHandler godoc
// @Summary Historial de infusiones
// @Description Lista las infusiones de la sesión, la más reciente primero. Una lista vacía es un estado válido (200 con []).
// @Tags infusions
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {array} infusionResponse
// @Failure 401 {string} string "unauthorized"
// @Router /sessions/{sessionID}/infusions [get]
func listInfusionsHandler(svc *Service) http.HandlerFunc {
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

		out := make([]infusionResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toInfusionResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// latestInfusionHandler godoc
// @Summary Última infusión
// @Description Devuelve la infusión más reciente, o 204 si todavía no hay registros (no es error).
// @Tags infusions
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} infusionResponse
// @Success 204 {string} string "sin registros"
// @Failure 401 {string} string "unauthorized"
// @Router /sessions/{sessionID}/infusions/latest [get]
func latestInfusionHandler(svc *Service) http.HandlerFunc {
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
		writeJSON(w, http.StatusOK, toInfusionResponse(rec))
	}
}

// updateInfusionHandler godoc
// @Summary Editar infusión
// @Description Reemplaza una infusión existente por ID con las mismas reglas de cálculo que el alta.
// @Tags infusions
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param infusionID path int true "ID de la infusión"
// @Param payload body appendInfusionRequest true "Datos nuevos del registro"
// @Success 200 {object} infusionResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "infusion not found"
// @Router /sessions/{sessionID}/infusions/{infusionID} [put]
func updateInfusionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sessionID := chi.URLParam(r, "sessionID")
		id, err := strconv.Atoi(chi.URLParam(r, "infusionID"))
		if err != nil || id < 1 {
			http.Error(w, "invalid infusion id", http.StatusBadRequest)
			return
		}

		var req appendInfusionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		rec, err := svc.Update(r.Context(), sessionID, id, AppendInput{
			Number: req.Number,
			Date:   d,
			DoseMg: req.DoseMg,
			Notes:  req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "infusion not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, toInfusionResponse(rec))
	}
}

func toInfusionResponse(rec Infusion) infusionResponse {
	return infusionResponse{
		ID:       rec.ID,
		Number:   rec.Number,
		Date:     rec.Date.Format("2006-01-02"),
		DoseMg:   rec.DoseMg,
		VolumeMl: rec.VolumeMl,
		Status:   rec.Status,
		Notes:    rec.Notes,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
