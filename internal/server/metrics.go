package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// jobsTotal counts path jobs by final status
	jobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridstar_http_jobs_total",
		Help: "Path jobs submitted over HTTP by final status",
	}, []string{"status"})

	// pendingRequests tracks requests still queued in the pathfinder
	pendingRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gridstar_pending_requests",
		Help: "Path requests queued or being searched",
	})

	// tickDuration tracks the time spent in one Calculate call
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridstar_tick_duration_seconds",
		Help:    "Duration of one scheduler tick in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12), // 50us to ~100ms
	})
)
