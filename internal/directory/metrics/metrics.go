package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the directory module.
type Metrics struct {
	ProfileUpserts    *prometheus.CounterVec
	DocumentsUploaded prometheus.Counter
}

// New creates and registers the directory metrics.
func New() *Metrics {
	return &Metrics{
		ProfileUpserts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "careerhub_profile_upserts_total",
			Help: "Directory profile merge-upserts, by role.",
		}, []string{"role"}),
		DocumentsUploaded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "careerhub_documents_uploaded_total",
			Help: "Student document metadata records created.",
		}),
	}
}

func (m *Metrics) IncUpserts(role string) {
	if m != nil {
		m.ProfileUpserts.WithLabelValues(role).Inc()
	}
}

func (m *Metrics) IncDocuments() {
	if m != nil {
		m.DocumentsUploaded.Inc()
	}
}
