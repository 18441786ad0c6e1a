package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the admissions module.
type Metrics struct {
	ApplicationsSubmitted prometheus.Counter
	ApplicationsRejected  *prometheus.CounterVec
	ReviewsCompleted      *prometheus.CounterVec
	AdmissionsPublished   prometheus.Counter
}

// New creates and registers the admissions metrics.
func New() *Metrics {
	return &Metrics{
		ApplicationsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "careerhub_applications_submitted_total",
			Help: "Course applications accepted by the apply guard.",
		}),
		ApplicationsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "careerhub_applications_rejected_total",
			Help: "Course applications rejected by a guard, by reason.",
		}, []string{"reason"}),
		ReviewsCompleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "careerhub_application_reviews_total",
			Help: "Application review transitions, by resulting status.",
		}, []string{"status"}),
		AdmissionsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "careerhub_admissions_published_total",
			Help: "Admissions accepted by the exclusivity guard.",
		}),
	}
}

func (m *Metrics) IncSubmitted() {
	if m != nil {
		m.ApplicationsSubmitted.Inc()
	}
}

func (m *Metrics) IncRejected(reason string) {
	if m != nil {
		m.ApplicationsRejected.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) IncReviewed(status string) {
	if m != nil {
		m.ReviewsCompleted.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) IncPublished() {
	if m != nil {
		m.AdmissionsPublished.Inc()
	}
}
