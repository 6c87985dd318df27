// Package metrics registra los contadores Prometheus del servicio.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Se registran una sola vez por proceso (el router puede construirse varias veces en tests).
var (
	VaccinationRecordsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pets_vaccination_records_created_total",
		Help: "Total number of vaccination records created",
	})

	VaccinationAlerts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pets_vaccination_alerts_total",
		Help: "Vaccination alerts emitted, by kind",
	}, []string{"kind"})

	AlertComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pets_vaccination_alert_compute_duration_seconds",
		Help:    "Duration of alert computation for one pet, including record lookup",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
