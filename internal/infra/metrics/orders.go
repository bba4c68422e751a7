package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		ordersSubmittedTotal,
		orderStatusUpdatesTotal,
	)
}

var (
	ordersSubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_submitted_total",
			Help: "Order submissions by outcome.",
		},
		[]string{"outcome"}, // 'accepted', 'rejected', 'error'
	)

	orderStatusUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_updates_total",
			Help: "Admin order status updates by resulting status.",
		},
		[]string{"status"},
	)
)

func IncOrderSubmitted(outcome string) {
	ordersSubmittedTotal.WithLabelValues(outcome).Inc()
}

func IncOrderStatusUpdate(status string) {
	orderStatusUpdatesTotal.WithLabelValues(status).Inc()
}
