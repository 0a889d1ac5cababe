package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		subscriptionsTotal,
		invoicesTotal,
	)
}

var (
	subscriptionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscriptions_total",
			Help: "Subscription lifecycle transitions by resulting status.",
		},
		[]string{"status"},
	)

	invoicesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoices_total",
			Help: "Invoices by status (draft/paid/cancelled).",
		},
		[]string{"status"},
	)
)

func IncSubscription(status string) {
	subscriptionsTotal.WithLabelValues(norm(status)).Inc()
}

func IncInvoice(status string) {
	invoicesTotal.WithLabelValues(norm(status)).Inc()
}
