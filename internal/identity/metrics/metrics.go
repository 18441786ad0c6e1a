package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the identity module.
type Metrics struct {
	RegistrationsApproved *prometheus.CounterVec
	RegistrationsDeleted  prometheus.Counter
	Logins                *prometheus.CounterVec
}

// New creates and registers the identity metrics.
func New() *Metrics {
	return &Metrics{
		RegistrationsApproved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "careerhub_registrations_approved_total",
			Help: "Registrations approved by an admin, by role.",
		}, []string{"role"}),
		RegistrationsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "careerhub_registrations_deleted_total",
			Help: "Registration records deleted by an admin.",
		}),
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "careerhub_logins_total",
			Help: "Login attempts, by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncApproved(role string) {
	if m != nil {
		m.RegistrationsApproved.WithLabelValues(role).Inc()
	}
}

func (m *Metrics) IncDeleted() {
	if m != nil {
		m.RegistrationsDeleted.Inc()
	}
}

func (m *Metrics) IncLogin(outcome string) {
	if m != nil {
		m.Logins.WithLabelValues(outcome).Inc()
	}
}
