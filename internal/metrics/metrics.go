package metrics

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "breakeven_submissions_total",
			Help: "Total number of accepted mini-website submissions",
		},
		[]string{"type"},
	)

	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "breakeven_login_attempts_total",
			Help: "Total number of customer login attempts",
		},
		[]string{"outcome"},
	)

	enrichmentFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "breakeven_enrichment_failures_total",
			Help: "Total number of failed best-effort enrichment writes",
		},
		[]string{"stage"},
	)
)

func RecordSubmission(submissionType string) {
	submissionsTotal.WithLabelValues(submissionType).Inc()
}

func RecordLogin(outcome string) {
	loginAttempts.WithLabelValues(outcome).Inc()
}

func RecordEnrichmentFailure(stage string) {
	enrichmentFailures.WithLabelValues(stage).Inc()
}

// Handler exposes the prometheus registry as a fiber handler.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
