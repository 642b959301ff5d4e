package tx

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "txpipe"

// Metrics records pipeline outcomes. A nil *Metrics records nothing.
type Metrics struct {
	pipelineRuns     *prometheus.CounterVec
	gasEstimated     prometheus.Histogram
	broadcastLatency *prometheus.HistogramVec
}

// NewMetrics registers the pipeline collectors with registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		pipelineRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pipeline_runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		gasEstimated: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "estimated_gas",
			Help:      "Gas limit chosen for signed transactions.",
			Buckets:   prometheus.ExponentialBuckets(50_000, 2, 10),
		}),
		broadcastLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "broadcast_duration_seconds",
			Help:      "Time spent in broadcast calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
	}
}

func (m *Metrics) recordRun(err error) {
	if m == nil {
		return
	}
	m.pipelineRuns.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) recordEstimate(estimate *GasEstimate) {
	if m == nil || estimate == nil {
		return
	}
	m.gasEstimated.Observe(float64(estimate.GasLimit))
}

func (m *Metrics) observeBroadcast(mode string, started time.Time) {
	if m == nil {
		return
	}
	m.broadcastLatency.WithLabelValues(mode).Observe(time.Since(started).Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrTransport):
		return "transport_error"
	case errors.Is(err, ErrResolution):
		return "resolution_error"
	case errors.Is(err, ErrSigning):
		return "signing_error"
	case errors.Is(err, ErrEstimation):
		return "estimation_error"
	case errors.Is(err, ErrBroadcast):
		return "broadcast_error"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return "unknown_error"
	}
}
