package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the recruiting module.
type Metrics struct {
	JobsPosted         prometheus.Counter
	ApplicantsScored   *prometheus.CounterVec
	JobApplications    prometheus.Counter
	FeedFanoutFailures prometheus.Counter
}

// New creates and registers the recruiting metrics.
func New() *Metrics {
	return &Metrics{
		JobsPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "careerhub_jobs_posted_total",
			Help: "Job postings created by companies.",
		}),
		ApplicantsScored: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "careerhub_applicants_scored_total",
			Help: "Scored job applications, by verdict.",
		}, []string{"verdict"}),
		JobApplications: promauto.NewCounter(prometheus.CounterOpts{
			Name: "careerhub_job_applications_total",
			Help: "Plain job applications accepted by the dedup guard.",
		}),
		FeedFanoutFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "careerhub_feed_fanout_failures_total",
			Help: "Per-student feed writes that failed during job fan-out.",
		}),
	}
}

func (m *Metrics) IncPosted() {
	if m != nil {
		m.JobsPosted.Inc()
	}
}

func (m *Metrics) IncScored(verdict string) {
	if m != nil {
		m.ApplicantsScored.WithLabelValues(verdict).Inc()
	}
}

func (m *Metrics) IncJobApplications() {
	if m != nil {
		m.JobApplications.Inc()
	}
}

func (m *Metrics) IncFanoutFailures() {
	if m != nil {
		m.FeedFanoutFailures.Inc()
	}
}
