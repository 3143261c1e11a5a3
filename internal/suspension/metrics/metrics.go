package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Suspended   prometheus.Counter
	Unsuspended prometheus.Counter
	Failures    *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		Suspended: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kycdesk_users_suspended_total",
			Help: "Total number of users suspended",
		}),
		Unsuspended: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kycdesk_users_unsuspended_total",
			Help: "Total number of users unsuspended",
		}),
		Failures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kycdesk_suspension_failures_total",
			Help: "Total number of failed suspension operations",
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementSuspended() {
	m.Suspended.Inc()
}

func (m *Metrics) IncrementUnsuspended() {
	m.Unsuspended.Inc()
}

func (m *Metrics) IncrementFailure(operation string) {
	m.Failures.WithLabelValues(operation).Inc()
}
