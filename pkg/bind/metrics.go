package bind

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors updated by a Root. A nil *Metrics
// records nothing.
type Metrics struct {
	Passes         prometheus.Counter
	PassDuration   prometheus.Histogram
	BindingUpdates prometheus.Counter
	BindingErrors  *prometheus.CounterVec
	LiveNodes      prometheus.Gauge
	HookErrors     *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// uses prometheus.DefaultRegisterer. An empty namespace defaults to "weave".
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "weave"
	}
	factory := promauto.With(reg)

	return &Metrics{
		Passes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "update_passes_total",
			Help:      "Total number of update passes run",
		}),
		PassDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "update_pass_duration_seconds",
			Help:      "Update pass duration in seconds",
			Buckets:   []float64{.0001, .0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
		BindingUpdates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "binding_updates_total",
			Help:      "Total number of binding updates attempted",
		}),
		BindingErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "binding_failures_total",
			Help:      "Total number of failed binding updates",
		}, []string{"kind"}),
		LiveNodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_nodes",
			Help:      "Number of bound nodes currently registered",
		}),
		HookErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hook_failures_total",
			Help:      "Total number of failed lifecycle hooks and listeners",
		}, []string{"hook"}),
	}
}

func (m *Metrics) passDone(start time.Time) {
	if m == nil {
		return
	}
	m.Passes.Inc()
	m.PassDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) bindingUpdated() {
	if m == nil {
		return
	}
	m.BindingUpdates.Inc()
}

func (m *Metrics) bindingFailed(k Kind) {
	if m == nil {
		return
	}
	m.BindingErrors.WithLabelValues(k.String()).Inc()
}

func (m *Metrics) liveDelta(d int) {
	if m == nil {
		return
	}
	m.LiveNodes.Add(float64(d))
}

func (m *Metrics) hookFailed(hook string) {
	if m == nil {
		return
	}
	m.HookErrors.WithLabelValues(hook).Inc()
}
