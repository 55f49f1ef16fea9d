package dosing

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Los endpoints de dosificación son tabla fija del rótulo del fármaco, sin
// datos de paciente, por eso no exigen usuario autenticado.
func RegisterRoutes(r chi.Router) {
	r.Get("/dosing/schedule", scheduleHandler())
	r.Get("/dosing/calc", calcHandler())
}

type scheduleStepResponse struct {
	Label  string  `json:"label"`
	DoseMg float64 `json:"dose_mg"`
}

type calcResponse struct {
	Number   int     `json:"number"`
	DoseMg   float64 `json:"dose_mg"`
	VolumeMl float64 `json:"volume_ml"`
}

// scheduleHandler godoc
// @Summary Esquema de dosificación
// @Description Devuelve la tabla fija de titulación de Kisunla (350/700/1050 y mantenimiento 1400 Q4W).
// @Tags dosing
// @Produce json
// @Success 200 {array} scheduleStepResponse
// @Router /dosing/schedule [get]
func scheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		steps := Schedule()
		out := make([]scheduleStepResponse, 0, len(steps))
		for _, s := range steps {
			out = append(out, scheduleStepResponse{Label: s.Label, DoseMg: s.DoseMg})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// calcHandler godoc
// @Summary Calcular dosis y volumen
// @Description Calcula la dosis por número de infusión y el volumen derivado (350mg/20mL). Es la vista previa que muestra el formulario de alta.
// @Tags dosing
// @Produce json
// @Param number query int true "Número de infusión (>= 1)"
// @Success 200 {object} calcResponse
// @Failure 400 {string} string "number inválido"
// @Router /dosing/calc [get]
func calcHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := strconv.Atoi(r.URL.Query().Get("number"))
		if err != nil {
			http.Error(w, "number must be an integer", http.StatusBadRequest)
			return
		}

		doseMg, err := DoseForInfusionNumber(n)
		if err != nil {
			http.Error(w, "number must be >= 1", http.StatusBadRequest)
			return
		}
		volumeMl, err := VolumeForDose(doseMg)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, calcResponse{
			Number:   n,
			DoseMg:   doseMg,
			VolumeMl: volumeMl,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
