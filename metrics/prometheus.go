// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var HttpRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests received",
	},
	[]string{"endpoint", "status", "method"},
)

var HttpRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"endpoint", "method"},
)

var HttpErrorsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_errors_total",
		Help: "Total number of failed HTTP requests (4xx/5xx)",
	},
	[]string{"endpoint", "status", "method"},
)

// SubmissionsTotal counts pipeline outcomes: "accepted" or a rejection kind
var SubmissionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "submissions_total",
		Help: "Total number of submission attempts by outcome",
	},
	[]string{"outcome"},
)

var ExternalAPISuccessTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "external_api_success_total",
		Help: "Total number of successful external API calls",
	},
	[]string{"provider", "service"},
)

var ExternalAPIFailureTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "external_api_failure_total",
		Help: "Total number of failed external API calls",
	},
	[]string{"provider", "service"},
)

var ExternalAPIDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "external_api_duration_seconds",
		Help:    "Duration of external API calls in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"provider", "service"},
)

var registerOnce sync.Once

// Init registers all collectors with the default registry. Safe to call
// more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HttpRequestsTotal)
		prometheus.MustRegister(HttpRequestDuration)
		prometheus.MustRegister(HttpErrorsTotal)
		prometheus.MustRegister(SubmissionsTotal)
		prometheus.MustRegister(ExternalAPISuccessTotal)
		prometheus.MustRegister(ExternalAPIFailureTotal)
		prometheus.MustRegister(ExternalAPIDuration)
	})
}
