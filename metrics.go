package vcloud

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vcloud_client_requests_total",
		Help: "Number of vCloud API requests.",
	}, []string{"method", "op"})
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vcloud_client_request_duration_seconds",
		Help:    "Duration of vCloud API requests.",
		Buckets: prometheus.LinearBuckets(.01, .1, 10),
	}, []string{"method", "op"})
	requestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vcloud_client_request_errors_total",
		Help: "Number of vCloud API requests that failed.",
	}, []string{"method", "op"})
)
