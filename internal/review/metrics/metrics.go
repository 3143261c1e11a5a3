package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Approved     *prometheus.CounterVec
	Rejected     *prometheus.CounterVec
	LoadFailures *prometheus.CounterVec
	LoadDuration prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		Approved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kycdesk_submissions_approved_total",
			Help: "Total number of submissions approved",
		}, []string{"document"}),
		Rejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kycdesk_submissions_rejected_total",
			Help: "Total number of submissions rejected",
		}, []string{"document"}),
		LoadFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kycdesk_screen_load_failures_total",
			Help: "Total number of failed screen loads",
		}, []string{"document"}),
		LoadDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kycdesk_screen_load_duration_seconds",
			Help:    "Duration of screen loads including media resolution",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

func (m *Metrics) IncrementApproved(document string) {
	m.Approved.WithLabelValues(document).Inc()
}

func (m *Metrics) IncrementRejected(document string) {
	m.Rejected.WithLabelValues(document).Inc()
}

func (m *Metrics) IncrementLoadFailure(document string) {
	m.LoadFailures.WithLabelValues(document).Inc()
}

func (m *Metrics) ObserveLoad(start time.Time) {
	m.LoadDuration.Observe(time.Since(start).Seconds())
}
