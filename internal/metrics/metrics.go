package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for ResolutionsTotal.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeRejected = "rejected"
)

type Metrics struct {
	ResolutionsTotal *prometheus.CounterVec
	StageHits        *prometheus.CounterVec
	StageFailures    *prometheus.CounterVec
	RequestSeconds   *prometheus.HistogramVec
	ActiveWorkers    prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		ResolutionsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "maps2waze_resolutions_total",
			Help: "Total number of URL resolutions by outcome.",
		}, []string{"outcome"}),
		StageHits: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "maps2waze_stage_hits_total",
			Help: "Number of resolutions answered by each pipeline stage.",
		}, []string{"stage"}),
		StageFailures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "maps2waze_stage_failures_total",
			Help: "Number of pipeline stages that failed with an error or panic.",
		}, []string{"stage"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "maps2waze_request_duration_seconds",
			Help:    "Duration of outbound requests made while resolving.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "maps2waze_active_workers",
			Help: "Current number of active workers resolving batch URLs.",
		}),
	}
}
