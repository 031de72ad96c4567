package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification pipeline.
type Metrics struct {
	// Adapter call latencies by adapter and outcome
	AdapterLatency *prometheus.HistogramVec

	// Completed verifications by verified/unverified, failures by category
	Outcomes *prometheus.CounterVec

	// Signals that vetoed a verification
	Vetoes *prometheus.CounterVec

	// Face confidence distribution
	FaceConfidence prometheus.Histogram

	// Full pipeline latency
	VerifyLatency prometheus.Histogram
}

// New registers the verification metrics on the default registerer.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the verification metrics on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AdapterLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kyc_verification_adapter_duration_seconds",
			Help:    "Duration of signal adapter calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"adapter", "result"}), // adapter: "ocr_front", "ocr_back", "face", "phone"

		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_verification_outcomes_total",
			Help: "Verification outcomes by status and result",
		}, []string{"status", "result"}),

		Vetoes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_verification_vetoes_total",
			Help: "Signals that prevented verification",
		}, []string{"signal"}),

		FaceConfidence: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "kyc_verification_face_confidence",
			Help:    "Face match confidence on completed verifications",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),

		VerifyLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "kyc_verification_duration_seconds",
			Help:    "Duration of a full verification including all adapter calls",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
}

func (m *Metrics) ObserveAdapterLatency(adapter, result string, d time.Duration) {
	if m != nil {
		m.AdapterLatency.WithLabelValues(adapter, result).Observe(d.Seconds())
	}
}

// IncrementOutcome records a pipeline outcome. result is "verified",
// "unverified" or the failure category.
func (m *Metrics) IncrementOutcome(status, result string) {
	if m != nil {
		m.Outcomes.WithLabelValues(status, result).Inc()
	}
}

func (m *Metrics) IncrementVeto(signal string) {
	if m != nil {
		m.Vetoes.WithLabelValues(signal).Inc()
	}
}

func (m *Metrics) ObserveFaceConfidence(c float64) {
	if m != nil {
		m.FaceConfidence.Observe(c)
	}
}

func (m *Metrics) ObserveVerifyLatency(d time.Duration) {
	if m != nil {
		m.VerifyLatency.Observe(d.Seconds())
	}
}
