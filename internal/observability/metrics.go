package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters for sample selection and weather lookups.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	SampleResolutions *prometheus.CounterVec // labels: outcome={ok,unknown_set,unknown_hour}
	EffectResolutions *prometheus.CounterVec // labels: effect={none,drizzle,rain,thunderstorm}
	WeatherFetches    *prometheus.CounterVec // labels: provider, outcome={success,error}
	WeatherFallbacks  prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SampleResolutions,
		m.EffectResolutions,
		m.WeatherFetches,
		m.WeatherFallbacks,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SampleResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_sample",
			Name:      "sample_resolutions_total",
			Help:      "Sample lookups by outcome.",
		}, []string{"outcome"}),
		EffectResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_sample",
			Name:      "effect_resolutions_total",
			Help:      "Weather effect lookups by selected effect.",
		}, []string{"effect"}),
		WeatherFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_sample",
			Name:      "weather_fetches_total",
			Help:      "Weather provider calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		WeatherFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_sample",
			Name:      "weather_fallbacks_total",
			Help:      "Requests served with the zero reading because weather was unavailable.",
		}),
	}
}

func (m *Metrics) SampleResolved(outcome string) {
	if m == nil {
		return
	}
	m.SampleResolutions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) EffectResolved(effect string) {
	if m == nil {
		return
	}
	m.EffectResolutions.WithLabelValues(effect).Inc()
}

func (m *Metrics) WeatherFetch(provider string, ok bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "error"
	}
	m.WeatherFetches.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) WeatherFallback() {
	if m == nil {
		return
	}
	m.WeatherFallbacks.Inc()
}
