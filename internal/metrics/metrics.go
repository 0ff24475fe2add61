package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActionsDispatchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entitlementsupport_actions_dispatched_total",
		Help: "Total number of actions reduced by the state store.",
	},
		[]string{"type"},
	)

	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entitlementsupport_api_requests_total",
		Help: "Total number of requests sent to the entitlement API.",
	},
		[]string{"method", "code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "entitlementsupport_api_request_duration_seconds",
		Help:    "Duration of requests sent to the entitlement API.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"method"},
	)

	ThunksInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "entitlementsupport_thunks_in_flight",
		Help: "Current number of asynchronous actions waiting on the entitlement API.",
	})

	JournalErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "entitlementsupport_journal_errors_total",
		Help: "Total number of support journal writes that failed.",
	})
)
