package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	batchesIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chroma",
			Subsystem: "server",
			Name:      "batches_issued_total",
			Help:      "Total number of commitment batches issued",
		},
	)

	roundsGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chroma",
			Subsystem: "server",
			Name:      "rounds_generated_total",
			Help:      "Total number of proof rounds generated",
		},
	)

	revealsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chroma",
			Subsystem: "server",
			Name:      "reveals_total",
			Help:      "Total number of reveal requests",
		},
		// status: ok/malformed/unknown_session/no_pending_batch/...
		[]string{"status"},
	)

	sessionsClosedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chroma",
			Subsystem: "server",
			Name:      "sessions_closed_total",
			Help:      "Total proving sessions removed: completed, expired or displaced",
		},
	)

	activeSessionsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "chroma",
			Subsystem: "server",
			Name:      "active_sessions",
			Help:      "Number of live proving sessions",
		},
	)
)
