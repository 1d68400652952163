package metrics

import (
	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus"
)

var _ output.MetricsPort = (*Prometheus)(nil)

type Prometheus struct {
	fills    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	acks     *prometheus.CounterVec
}

func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	m := &Prometheus{
		fills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "askai",
			Name:      "fill_attempts_total",
			Help:      "Fill attempts by outcome and match source.",
		}, []string{"status", "source"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "askai",
			Name:      "fill_duration_seconds",
			Help:      "Time from search start to fill outcome.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
		}, []string{"status"}),
		acks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "askai",
			Name:      "trigger_acks_total",
			Help:      "Fill trigger acknowledgements by status.",
		}, []string{"status"}),
	}

	for _, c := range []prometheus.Collector{m.fills, m.duration, m.acks} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Prometheus) RecordFill(outcome entity.FillOutcome) {
	source := string(outcome.Source)
	if source == "" {
		source = "none"
	}
	m.fills.WithLabelValues(string(outcome.Status), source).Inc()
	m.duration.WithLabelValues(string(outcome.Status)).Observe(outcome.Duration.Seconds())
}

func (m *Prometheus) RecordAck(status entity.AckStatus) {
	m.acks.WithLabelValues(string(status)).Inc()
}
