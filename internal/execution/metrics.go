package execution

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrderAttemptsTotal tracks order placement attempts by result.
	OrderAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sniper_execution_order_attempts_total",
			Help: "Total number of order placement attempts",
		},
		[]string{"result"},
	)

	// StatusPollErrorsTotal tracks transient order status poll failures.
	StatusPollErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sniper_execution_status_poll_errors_total",
		Help: "Total number of transient order status poll failures",
	})

	// CancelsIssuedTotal tracks cancel requests that the exchange accepted.
	CancelsIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sniper_execution_cancels_issued_total",
		Help: "Total number of accepted cancel requests",
	})

	// FillLatencySeconds tracks time from submission to a confirmed fill.
	FillLatencySeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sniper_execution_fill_latency_seconds",
		Help:    "Time from order submission to confirmed fill",
		Buckets: prometheus.DefBuckets,
	})
)
