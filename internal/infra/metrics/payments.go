package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		paymentsTotal,
		paymentsRevenueTotal,
	)
}

var (
	paymentsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_total",
			Help: "Payments recorded.",
		},
	)

	paymentsRevenueTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_revenue_total",
			Help: "The total monetary value of recorded payments.",
		},
	)
)

func IncPayment() { paymentsTotal.Inc() }

func AddPaymentRevenue(amount int64) { paymentsRevenueTotal.Add(float64(amount)) }
