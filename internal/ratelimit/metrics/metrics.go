package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RateLimitDecisions   *prometheus.CounterVec
	RateLimitStoreErrors prometheus.Counter
	RateLimitDegraded    prometheus.Gauge
}

func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RateLimitDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_ratelimit_decisions_total",
			Help: "Rate limit decisions by endpoint class and result",
		}, []string{"class", "result"}),
		RateLimitStoreErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "kyc_ratelimit_store_errors_total",
			Help: "Total number of primary bucket store errors",
		}),
		RateLimitDegraded: f.NewGauge(prometheus.GaugeOpts{
			Name: "kyc_ratelimit_degraded",
			Help: "1 while rate limiting runs on the in-memory fallback",
		}),
	}
}

func (m *Metrics) IncrementDecision(class string, allowed bool) {
	if m == nil {
		return
	}
	result := "allowed"
	if !allowed {
		result = "denied"
	}
	m.RateLimitDecisions.WithLabelValues(class, result).Inc()
}

func (m *Metrics) IncrementStoreErrors() {
	if m == nil {
		return
	}
	m.RateLimitStoreErrors.Inc()
}

func (m *Metrics) SetDegraded(degraded bool) {
	if m == nil {
		return
	}
	if degraded {
		m.RateLimitDegraded.Set(1)
		return
	}
	m.RateLimitDegraded.Set(0)
}
