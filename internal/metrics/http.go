package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameRateLimitedRequests = "rate_limited_requests_total"
)

var RateLimitedRequests = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameRateLimitedRequests,
		Help:      "Total requests rejected by the rate limiter",
		Namespace: Namespace,
	},
)
