package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuoteTotal counts priced basket breakdowns by entry point and outcome.
	QuoteTotal *prometheus.CounterVec
	// DiscountAppliedTotal counts quotes where the offer produced a nonzero discount.
	DiscountAppliedTotal prometheus.Counter
	// DeliveryFeeSelected counts tier selections by the fee charged, in minor units.
	DeliveryFeeSelected *prometheus.CounterVec
	// BasketsLive tracks the number of server-side baskets currently held.
	BasketsLive prometheus.Gauge
	// BasketsExpiredTotal counts baskets dropped by TTL pruning.
	BasketsExpiredTotal prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuoteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_total",
			Help:      "Count of basket pricing computations by source and result.",
		}, []string{"source", "result"})
		DiscountAppliedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discount_applied_total",
			Help:      "Number of quotes where a promotional discount applied.",
		})
		DeliveryFeeSelected = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delivery_fee_selected_total",
			Help:      "Count of delivery tier selections by charged fee in minor units.",
		}, []string{"fee"})
		BasketsLive = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "baskets_live",
			Help:      "Number of server-side baskets currently in memory.",
		})
		BasketsExpiredTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "baskets_expired_total",
			Help:      "Number of idle baskets removed by TTL pruning.",
		})

		reg.MustRegister(QuoteTotal, DiscountAppliedTotal, DeliveryFeeSelected, BasketsLive, BasketsExpiredTotal)
	})
}
