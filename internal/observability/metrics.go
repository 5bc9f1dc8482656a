package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for a summary run.
type Metrics struct {
	LinesRead           prometheus.Counter
	RecordsParsed       prometheus.Counter
	LinesSkipped        *prometheus.CounterVec // labels: reason={field_count,timestamp,temperature}
	TemperaturesInvalid prometheus.Counter
	DaysSummarized      prometheus.Gauge
	RunDuration         prometheus.Histogram
	SummariesPublished  prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics creates and registers all run metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return newMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	reg := prometheus.NewRegistry()
	return newMetrics(reg, reg)
}

func newMetrics(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		LinesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tempsummary",
			Name:      "lines_read_total",
			Help:      "Total lines read from the input file.",
		}),
		RecordsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tempsummary",
			Name:      "records_parsed_total",
			Help:      "Total lines accepted as temperature records.",
		}),
		LinesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tempsummary",
			Name:      "lines_skipped_total",
			Help:      "Lines dropped by the parser, by reason.",
		}, []string{"reason"}),
		TemperaturesInvalid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tempsummary",
			Name:      "temperatures_invalid_total",
			Help:      "Accepted records whose temperature text was not numeric.",
		}),
		DaysSummarized: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tempsummary",
			Name:      "days_summarized",
			Help:      "Distinct days in the last report.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tempsummary",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete read-parse-aggregate-write run.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}),
		SummariesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tempsummary",
			Name:      "summaries_published_total",
			Help:      "Daily summaries published to Kafka.",
		}),
		gatherer: gatherer,
	}

	reg.MustRegister(
		m.LinesRead,
		m.RecordsParsed,
		m.LinesSkipped,
		m.TemperaturesInvalid,
		m.DaysSummarized,
		m.RunDuration,
		m.SummariesPublished,
	)

	return m
}

// WriteTextfile writes every gathered metric to path in the text exposition
// format read by the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
