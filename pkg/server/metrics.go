package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the live server's Prometheus collectors.
type Metrics struct {
	Connections  prometheus.Gauge
	FramesSent   prometheus.Counter
	BytesSent    prometheus.Counter
	Inputs       *prometheus.CounterVec
	Resyncs      *prometheus.CounterVec
	DroppedConns prometheus.Counter
}

// NewMetrics registers the server collectors with reg.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if namespace == "" {
		namespace = "weave"
	}
	f := promauto.With(reg)
	return &Metrics{
		Connections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "connections",
			Help:      "Open live connections.",
		}),
		FramesSent: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "frames_sent_total",
			Help:      "Patch frames written to live connections.",
		}),
		BytesSent: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "bytes_sent_total",
			Help:      "Bytes written to live connections.",
		}),
		Inputs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "inputs_total",
			Help:      "Input frames received, by result.",
		}, []string{"result"}),
		Resyncs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "resyncs_total",
			Help:      "Connections that resumed behind the current sequence, by outcome.",
		}, []string{"outcome"}),
		DroppedConns: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "dropped_connections_total",
			Help:      "Connections closed because they could not keep up.",
		}),
	}
}

func (m *Metrics) connOpened() {
	if m != nil {
		m.Connections.Inc()
	}
}

func (m *Metrics) connClosed() {
	if m != nil {
		m.Connections.Dec()
	}
}

func (m *Metrics) sent(frames, bytes int) {
	if m != nil {
		m.FramesSent.Add(float64(frames))
		m.BytesSent.Add(float64(bytes))
	}
}

func (m *Metrics) input(result string) {
	if m != nil {
		m.Inputs.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) resync(outcome string) {
	if m != nil {
		m.Resyncs.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) dropped() {
	if m != nil {
		m.DroppedConns.Inc()
	}
}
