package sessions

import (
	"encoding/json"
	"net/http"
	"strings"

	"kisunla-flowsheet/internal/middleware"
	"kisunla-flowsheet/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/sessions", createSessionHandler(svc))
}

// sessionResponse devuelve el ID acuñado para la sesión nueva.
type sessionResponse struct {
	ID     string `json:"id"`
	Seeded bool   `json:"seeded"`
}

// createSessionHandler godoc
// @Summary Abrir sesión
// @Description Acuña el ID de una sesión de hoja de flujo nueva. Con ?seed=1 se carga la historia demo del paciente de ejemplo.
// @Tags sessions
// @Produce json
// @Param seed query string false "1 para cargar la historia demo"
// @Success 201 {object} sessionResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /sessions [post]
func createSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		seed := r.URL.Query().Get("seed") == "1"

		var (
			id  string
			err error
		)
		if seed {
			id, err = svc.CreateSeeded(r.Context())
		} else {
			id, err = svc.Create(r.Context())
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		metrics.SessionCreated()
		writeJSON(w, http.StatusCreated, sessionResponse{ID: id, Seeded: seed})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
