package masking

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "customer_service"

// Direction names the interception point of a masking pass.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Pass outcomes used as metric label values.
const (
	passOK      = "ok"
	passPartial = "partial"
	passFailed  = "failed"
)

// Metrics counts masking passes and fields. A nil *Metrics records nothing.
type Metrics struct {
	Passes *prometheus.CounterVec
	Fields *prometheus.CounterVec
}

// NewMetrics creates the masking counters and registers them with reg.
// A nil reg leaves the counters unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "masking",
				Name:      "passes_total",
				Help:      "Masking passes by direction and outcome",
			},
			[]string{"direction", "outcome"},
		),
		Fields: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "masking",
				Name:      "fields_total",
				Help:      "Marked fields processed by direction, kind and outcome",
			},
			[]string{"direction", "kind", "outcome"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Passes, m.Fields)
	}
	return m
}

func (m *Metrics) observe(dir Direction, rep *Report) {
	if m == nil {
		return
	}
	outcome := passOK
	switch {
	case rep.Err != nil:
		outcome = passFailed
	case rep.Failed > 0:
		outcome = passPartial
	}
	m.Passes.WithLabelValues(string(dir), outcome).Inc()
	for _, f := range rep.Fields {
		m.Fields.WithLabelValues(string(dir), f.Kind.String(), string(f.Outcome)).Inc()
	}
}
