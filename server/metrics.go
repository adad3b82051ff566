package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	computations *prometheus.CounterVec
	transactions prometheus.Counter
	cache        *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cgt_http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cgt_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cgt_computations_total",
			Help: "Ledger replays by outcome (ok, parse_error, compute_error).",
		}, []string{"outcome"}),
		transactions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cgt_transactions_replayed_total",
			Help: "Transactions replayed by the FIFO engine.",
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cgt_result_cache_lookups_total",
			Help: "Result cache lookups by result (hit, miss, shared).",
		}, []string{"result"}),
	}
	reg.MustRegister(m.requests, m.duration, m.computations, m.transactions, m.cache)
	return m
}
