package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics métricas del visor registradas en un registry propio.
type Metrics struct {
	Registry *prometheus.Registry

	BusyOperations   prometheus.Gauge
	Notifications    *prometheus.CounterVec
	APIRequests      *prometheus.HistogramVec
	ImportsCompleted *prometheus.CounterVec
	StaleResponses   prometheus.Counter
}

// New crea y registra todas las métricas.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		BusyOperations: f.NewGauge(prometheus.GaugeOpts{
			Name: "cfdi_visor_busy_operations",
			Help: "Operaciones en curso según el indicador de carga",
		}),
		Notifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cfdi_visor_notifications_total",
			Help: "Notificaciones mostradas por nivel",
		}, []string{"level"}),
		APIRequests: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cfdi_visor_api_request_duration_seconds",
			Help:    "Duración de las peticiones a cfdi-api",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "route", "status"}),
		ImportsCompleted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cfdi_visor_imports_total",
			Help: "Lotes importados por tipo y desenlace",
		}, []string{"kind", "outcome"}),
		StaleResponses: f.NewCounter(prometheus.CounterOpts{
			Name: "cfdi_visor_stale_responses_total",
			Help: "Respuestas de listados descartadas por existir una lectura más reciente",
		}),
	}
}

// SetBusy publica el contador del indicador de carga.
func (m *Metrics) SetBusy(n int) {
	m.BusyOperations.Set(float64(n))
}

// IncrementNotification cuenta una notificación mostrada.
func (m *Metrics) IncrementNotification(level string) {
	m.Notifications.WithLabelValues(level).Inc()
}

// ObserveRequest registra una petición a cfdi-api; status 0 es fallo de transporte.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.APIRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// IncrementImport cuenta un lote terminado (outcome: ok, error).
func (m *Metrics) IncrementImport(kind, outcome string) {
	m.ImportsCompleted.WithLabelValues(kind, outcome).Inc()
}

// IncrementStale cuenta una respuesta obsoleta descartada.
func (m *Metrics) IncrementStale() {
	m.StaleResponses.Inc()
}
