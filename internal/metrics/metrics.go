package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// Resolution metrics
	resolveAttempts  *prometheus.CounterVec
	resolveOutcomes  *prometheus.CounterVec
	resolveDuration  prometheus.Histogram
	dispatchTotal    *prometheus.CounterVec
	overviewSections *prometheus.CounterVec
	scriptCalls      *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		resolveAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finquery_resolve_attempts_total",
				Help: "Total candidate invocations attempted during resolution",
			},
			[]string{"operation"},
		),

		resolveOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finquery_resolve_outcomes_total",
				Help: "Resolution outcomes by winning operation and status",
			},
			[]string{"operation", "status"},
		),

		resolveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "finquery_resolve_duration_seconds",
				Help:    "Full candidate-chain resolution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		dispatchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finquery_dispatch_total",
				Help: "Dispatched queries by intent and status",
			},
			[]string{"intent", "status"},
		),

		overviewSections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finquery_overview_sections_total",
				Help: "Overview section outcomes",
			},
			[]string{"section", "status"},
		),

		scriptCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finquery_script_calls_total",
				Help: "External script invocations by script and status",
			},
			[]string{"script", "status"},
		),
	}

	reg.MustRegister(r.resolveAttempts)
	reg.MustRegister(r.resolveOutcomes)
	reg.MustRegister(r.resolveDuration)
	reg.MustRegister(r.dispatchTotal)
	reg.MustRegister(r.overviewSections)
	reg.MustRegister(r.scriptCalls)

	return r
}

// RecordAttempt records one candidate invocation.
func (r *Registry) RecordAttempt(operation string) {
	r.resolveAttempts.WithLabelValues(operation).Inc()
}

// RecordOutcome records the terminal outcome of one resolution.
func (r *Registry) RecordOutcome(operation, status string, duration float64) {
	r.resolveOutcomes.WithLabelValues(operation, status).Inc()
	r.resolveDuration.Observe(duration)
}

// RecordDispatch records a dispatched query.
func (r *Registry) RecordDispatch(intent, status string) {
	r.dispatchTotal.WithLabelValues(intent, status).Inc()
}

// RecordOverviewSection records one overview section outcome.
func (r *Registry) RecordOverviewSection(section, status string) {
	r.overviewSections.WithLabelValues(section, status).Inc()
}

// RecordScriptCall records an external script invocation.
func (r *Registry) RecordScriptCall(script, status string) {
	r.scriptCalls.WithLabelValues(script, status).Inc()
}
