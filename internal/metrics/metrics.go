package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scheduler metrics
var (
	// SchedulerTicksTotal tracks tick firings by task and status
	SchedulerTicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_ticks_total",
			Help: "Total scheduler tick firings by task and status",
		},
		[]string{"task", "status"},
	)

	// SchedulerTickDuration tracks tick execution time in seconds
	SchedulerTickDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scheduler_tick_duration_seconds",
			Help:    "Scheduler tick duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"task"},
	)

	// SchedulerTickPanicsTotal tracks panics recovered inside tick bodies
	SchedulerTickPanicsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_tick_panics_total",
			Help: "Total panics recovered inside scheduler ticks",
		},
		[]string{"task"},
	)
)

// Hub metrics
var (
	// HubConnectedClients tracks the number of registered subscriber connections
	HubConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_connected_clients",
			Help: "Current number of registered subscriber connections",
		},
	)

	// HubBroadcastsTotal tracks broadcasts by message type
	HubBroadcastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_broadcasts_total",
			Help: "Total broadcasts by message type",
		},
		[]string{"type"},
	)

	// HubDeliveriesTotal tracks per-connection delivery attempts by outcome
	HubDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_deliveries_total",
			Help: "Per-connection delivery attempts by outcome (sent/dropped/failed)",
		},
		[]string{"outcome"},
	)

	// HubSlowClientsEvicted tracks connections evicted for full send buffers
	HubSlowClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_slow_clients_evicted_total",
			Help: "Total connections evicted because their send buffer was full",
		},
	)

	// HubPingFailures tracks failed keepalive pings
	HubPingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_ping_failures_total",
			Help: "Total failed websocket keepalive pings",
		},
	)
)

// Store metrics
var (
	// StoreActiveTrends tracks the number of active trends
	StoreActiveTrends = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "store_active_trends",
			Help: "Current number of active trends",
		},
	)

	// StoreTrendsCreatedTotal tracks trend creations
	StoreTrendsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "store_trends_created_total",
			Help: "Total trends created",
		},
	)
)

// Summarizer metrics
var (
	// SummarizerRequestsTotal tracks summarizer calls by outcome
	SummarizerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizer_requests_total",
			Help: "Total summarizer requests by outcome (ok/fallback)",
		},
		[]string{"outcome"},
	)

	// SummarizerBreakerState tracks the circuit breaker state (0=closed, 1=half-open, 2=open)
	SummarizerBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "summarizer_breaker_state",
			Help: "Summarizer circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)
