package public

import (
	"github.com/minishop/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_checkouts_total",
		Help: "Total number of completed checkouts",
	})

	checkoutAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "shop_checkout_amount",
		Help:    "Order total per checkout",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
)

func recordCheckout(order *models.Order) {
	checkoutsTotal.Inc()
	amount, _ := order.TotalPrice.Float64()
	checkoutAmount.Observe(amount)
}
