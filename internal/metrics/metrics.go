package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "show_registrations_total",
			Help: "Total number of dogs registered into shows",
		},
		[]string{"dog_class"},
	)

	DescriptionsFinalizedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "descriptions_finalized_total",
			Help: "Total number of finalized judge descriptions",
		},
	)
)
