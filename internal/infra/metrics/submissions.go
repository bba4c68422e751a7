package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		submissionsTotal,
		uploadsRejectedTotal,
	)
}

var (
	submissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_total",
			Help: "Public suggestion/inquiry submissions by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	uploadsRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uploads_rejected_total",
			Help: "Screenshot uploads rejected before business logic ran.",
		},
		[]string{"reason"}, // 'mime', 'size'
	)
)

func IncSubmission(kind, outcome string) {
	submissionsTotal.WithLabelValues(kind, outcome).Inc()
}

func IncUploadRejected(reason string) {
	uploadsRejectedTotal.WithLabelValues(reason).Inc()
}
