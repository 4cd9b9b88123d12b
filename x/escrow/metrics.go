package escrow

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeInitiated = "initiated"
	outcomeConfirmed = "confirmed"
	outcomeAborted   = "aborted"
	outcomeApproved  = "approved"
	outcomeCancelled = "cancelled"
	outcomeTimedOut  = "timed_out"
	outcomeRefunded  = "refunded"
)

var (
	metricsOnce sync.Once
	purchases   *prometheus.CounterVec
)

// countPurchase records a lifecycle transition of a purchase.
func countPurchase(outcome string) {
	metricsOnce.Do(func() {
		purchases = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "escrowd",
			Subsystem: "escrow",
			Name:      "purchases_total",
			Help:      "Escrow purchase lifecycle transitions, by outcome.",
		}, []string{"outcome"})
		prometheus.MustRegister(purchases)
	})
	purchases.WithLabelValues(outcome).Inc()
}
