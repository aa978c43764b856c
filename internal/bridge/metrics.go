// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package bridge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments the dispatch pipeline. A nil *Metrics disables
// instrumentation; every call site nil-checks.
type Metrics struct {
	PollTicks       prometheus.Counter
	TasksQueued     *prometheus.CounterVec
	TasksDispatched *prometheus.CounterVec
	TasksDropped    prometheus.Counter
	ListenerErrors  prometheus.Counter
	CallsInFlight   prometheus.Gauge
}

// NewMetrics registers the bridge metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PollTicks: factory.NewCounter(prometheus.CounterOpts{
			Name: "steamlua_poll_ticks_total",
			Help: "Number of host poll cycles executed.",
		}),
		TasksQueued: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "steamlua_tasks_queued_total",
			Help: "Dispatch tasks enqueued, by event name.",
		}, []string{"event"}),
		TasksDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "steamlua_tasks_dispatched_total",
			Help: "Dispatch tasks delivered to listeners, by event name.",
		}, []string{"event"}),
		TasksDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "steamlua_tasks_dropped_total",
			Help: "Dispatch tasks dropped at context teardown.",
		}),
		ListenerErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "steamlua_listener_errors_total",
			Help: "Lua listener invocations that raised an error.",
		}),
		CallsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "steamlua_call_results_in_flight",
			Help: "Asynchronous Steam requests awaiting completion.",
		}),
	}
}
