package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(notificationsTotal)
}

var notificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "Outbound chat notifications by result.",
	},
	[]string{"result"}, // 'sent', 'failed', 'dropped'
)

func IncNotification(result string) {
	notificationsTotal.WithLabelValues(result).Inc()
}
