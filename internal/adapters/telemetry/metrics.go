package telemetry

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "flutterweb"

// PrometheusRecorder counts telemetry events in a Prometheus registry.
type PrometheusRecorder struct {
	buildEvents   *prom.CounterVec
	timingEvents  *prom.CounterVec
	timingSeconds *prom.HistogramVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &PrometheusRecorder{
		buildEvents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "build_events_total",
			Help:      "Build-info events sent after successful builds",
		}, []string{"label", "category"}),
		timingEvents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "timing_events_total",
			Help:      "Timing events by workflow and variable",
		}, []string{"workflow", "variable"}),
		timingSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "timing_seconds",
			Help:      "Durations reported by timing events",
			Buckets:   prom.ExponentialBuckets(0.5, 2, 10),
		}, []string{"workflow", "variable"}),
	}
	reg.MustRegister(r.buildEvents, r.timingEvents, r.timingSeconds)
	return r
}

// IncBuildEvent counts a build-info event.
func (r *PrometheusRecorder) IncBuildEvent(label, category string) {
	if r == nil {
		return
	}
	r.buildEvents.WithLabelValues(label, category).Inc()
}

// ObserveTiming counts a timing event and records its duration.
func (r *PrometheusRecorder) ObserveTiming(workflow, variable string, d time.Duration) {
	if r == nil {
		return
	}
	r.timingEvents.WithLabelValues(workflow, variable).Inc()
	r.timingSeconds.WithLabelValues(workflow, variable).Observe(d.Seconds())
}
