package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Trades
	TradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trades_total",
			Help: "Total completed trades",
		},
		[]string{"action"}, // buy|sell
	)
	TradesRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trades_rejected_total",
			Help: "Total trades rejected by business rules",
		},
	)

	// Price oracle
	QuoteLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_lookups_total",
			Help: "Total price oracle lookups",
		},
		[]string{"outcome"}, // ok|miss|error
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(TradesTotal)
	prometheus.MustRegister(TradesRejected)
	prometheus.MustRegister(QuoteLookups)
	prometheus.MustRegister(WorkerQueueDepth)
}
