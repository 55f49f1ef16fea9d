// Package metrics expone las métricas Prometheus del servicio: HTTP
// genéricas vía middleware y contadores de negocio (altas por colección,
// sesiones abiertas).
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	recordsAppended = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowsheet_records_appended_total",
			Help: "Total number of records appended, by collection",
		},
		[]string{"collection"},
	)

	sessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flowsheet_sessions_created_total",
			Help: "Total number of flowsheet sessions opened",
		},
	)
)

// RecordAppended registra un alta en una de las tres colecciones
// (infusions, mri, aria).
func RecordAppended(collection string) {
	recordsAppended.WithLabelValues(collection).Inc()
}

func SessionCreated() {
	sessionsCreated.Inc()
}

// Handler expone /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware mide método, status y duración de cada request.
// No etiqueta por path para no explotar la cardinalidad con los IDs
// de sesión en la URL.
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		httpRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}
