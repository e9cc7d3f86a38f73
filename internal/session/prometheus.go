package session

import "github.com/prometheus/client_golang/prometheus"

// PrometheusReporter exports invocation accounting as counters
// registered against a caller-supplied registerer. Registration is
// optional: a Tracker works standalone without one.
type PrometheusReporter struct {
	invocations *prometheus.CounterVec
	tokensIn    *prometheus.CounterVec
	tokensOut   *prometheus.CounterVec
	tokensSaved *prometheus.CounterVec
	errors      *prometheus.CounterVec
}

// NewPrometheusReporter creates and registers the Session Tracker's
// Prometheus metrics against reg.
func NewPrometheusReporter(reg prometheus.Registerer) (*PrometheusReporter, error) {
	r := &PrometheusReporter{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invocations_total",
			Help: "Total tool invocations recorded by the session tracker.",
		}, []string{"tool"}),
		tokensIn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tokens_in_total",
			Help: "Total input tokens recorded by the session tracker.",
		}, []string{"tool"}),
		tokensOut: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tokens_out_total",
			Help: "Total output tokens recorded by the session tracker.",
		}, []string{"tool"}),
		tokensSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tokens_saved_total",
			Help: "Total tokens saved by compression, recorded by the session tracker.",
		}, []string{"tool"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tool_errors_total",
			Help: "Total tool invocation errors recorded by the session tracker.",
		}, []string{"tool"}),
	}
	for _, c := range []prometheus.Collector{r.invocations, r.tokensIn, r.tokensOut, r.tokensSaved, r.errors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Observe implements Reporter.
func (r *PrometheusReporter) Observe(toolName string, tokensIn, tokensOut, tokensSaved int, isError bool) {
	r.invocations.WithLabelValues(toolName).Inc()
	r.tokensIn.WithLabelValues(toolName).Add(float64(tokensIn))
	r.tokensOut.WithLabelValues(toolName).Add(float64(tokensOut))
	r.tokensSaved.WithLabelValues(toolName).Add(float64(tokensSaved))
	if isError {
		r.errors.WithLabelValues(toolName).Inc()
	}
}
