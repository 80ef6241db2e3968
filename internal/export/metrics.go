package export

import (
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records export outcomes in a private registry.
type Metrics struct {
	registry *prometheus.Registry

	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the export counters and histograms.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	total := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tiaki",
			Name:      "export_total",
			Help:      "Total exports by format and status.",
		},
		[]string{"format", "status"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tiaki",
			Name:      "export_duration_seconds",
			Help:      "Export duration in seconds by format.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"format"},
	)

	registry.MustRegister(total, duration)

	return &Metrics{
		registry: registry,
		total:    total,
		duration: duration,
	}
}

func (m *Metrics) observe(format Format, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.total.WithLabelValues(string(format), status).Inc()
	m.duration.WithLabelValues(string(format)).Observe(elapsed.Seconds())
}

// Sample is one flattened metric value.
type Sample struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels,omitempty"`
	Value  float64           `json:"value"`
}

// Snapshot gathers counters, and histogram counts and sums, sorted by name.
func (m *Metrics) Snapshot() ([]Sample, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			labels := make(map[string]string, len(metric.GetLabel()))
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if c := metric.GetCounter(); c != nil {
				out = append(out, Sample{Name: mf.GetName(), Labels: labels, Value: c.GetValue()})
			}
			if h := metric.GetHistogram(); h != nil {
				out = append(out,
					Sample{Name: mf.GetName() + "_count", Labels: labels, Value: float64(h.GetSampleCount())},
					Sample{Name: mf.GetName() + "_sum", Labels: labels, Value: h.GetSampleSum()},
				)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
