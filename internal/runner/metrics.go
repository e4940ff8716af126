package runner

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects counters for one run, for node_exporter's textfile
// collector or any other consumer of the Prometheus text format.
type Metrics struct {
	registry     *prometheus.Registry
	files        prometheus.Counter
	syntaxErrors prometheus.Counter
	findings     *prometheus.CounterVec
	config       prometheus.Counter
	duration     prometheus.Gauge
}

// NewMetrics creates a Metrics with its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		files: factory.NewCounter(prometheus.CounterOpts{
			Name: "ktstyle_files_analyzed_total",
			Help: "Kotlin files analyzed.",
		}),
		syntaxErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "ktstyle_files_with_syntax_errors_total",
			Help: "Analyzed files that contained syntax errors.",
		}),
		findings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ktstyle_findings_total",
			Help: "Rule findings by rule and severity.",
		}, []string{"rule_set", "rule", "severity"}),
		config: factory.NewCounter(prometheus.CounterOpts{
			Name: "ktstyle_config_warnings_total",
			Help: "Configuration validation warnings.",
		}),
		duration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ktstyle_analysis_duration_seconds",
			Help: "Wall time spent parsing and linting.",
		}),
	}
}

// Observe records a run result.
func (m *Metrics) Observe(res *Result) {
	m.files.Add(float64(len(res.Files)))
	for _, f := range res.Files {
		if f.SyntaxErrors {
			m.syntaxErrors.Inc()
		}
		for _, n := range f.Findings {
			m.findings.WithLabelValues(n.RuleSet, n.Rule, n.Level.String()).Inc()
		}
	}
	m.config.Add(float64(len(res.Validation)))
	m.duration.Set(res.Duration.Seconds())
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteFile writes the metrics to path in the text exposition format.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}
