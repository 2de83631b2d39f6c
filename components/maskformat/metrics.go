package maskformat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels recorded on format requests.
const (
	OutcomeComplete   = "complete"
	OutcomeIncomplete = "incomplete"
	OutcomeRejected   = "rejected"
	OutcomeUnknown    = "unknown_preset"
)

// Metrics counts format requests and rejected characters per preset. A nil
// *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewMetrics registers the counters with registry, falling back to the
// default registerer when registry is nil.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formmask",
			Name:      "format_requests_total",
			Help:      "Format requests served, by preset and outcome",
		}, []string{"preset", "outcome"}),
		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formmask",
			Name:      "rejected_chars_total",
			Help:      "Input characters rejected by a preset",
		}, []string{"preset"}),
	}
}

func (m *Metrics) observe(preset, outcome string, rejected int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(preset, outcome).Inc()
	if rejected > 0 {
		m.rejected.WithLabelValues(preset).Add(float64(rejected))
	}
}
