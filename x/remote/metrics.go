package remote

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type dispatchMetrics struct {
	calls  *prometheus.CounterVec
	queued prometheus.Gauge
}

var (
	metricsOnce sync.Once
	metrics     *dispatchMetrics
)

func defaultMetrics() *dispatchMetrics {
	metricsOnce.Do(func() {
		metrics = &dispatchMetrics{
			calls: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "escrowd",
				Subsystem: "remote",
				Name:      "calls_total",
				Help:      "Total remote calls executed by the dispatcher, by outcome.",
			}, []string{"outcome"}),
			queued: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "escrowd",
				Subsystem: "remote",
				Name:      "calls_postponed",
				Help:      "Remote calls left in the queue at the end of the last block.",
			}),
		}
		prometheus.MustRegister(metrics.calls, metrics.queued)
	})
	return metrics
}
