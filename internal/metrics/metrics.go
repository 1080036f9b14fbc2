// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agribot",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "agribot",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agribot",
		Name:      "login_attempts_total",
		Help:      "Login attempts by portal and outcome.",
	}, []string{"portal", "outcome"})

	AccountTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agribot",
		Name:      "account_transitions_total",
		Help:      "Applied account status transitions by target status.",
	}, []string{"to"})

	AssistantRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agribot",
		Name:      "assistant_requests_total",
		Help:      "Chat assistant requests by outcome.",
	}, []string{"outcome"})
)
