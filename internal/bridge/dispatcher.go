// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

// Package bridge is the event dispatch and call-result layer between the
// Steam client and a gopher-lua runtime. It owns the pending-task queue,
// the leaderboard handle cache, the avatar fetch chain and the designated
// goroutine registry; the Lua-facing function surface lives in
// pkg/steamlua.
package bridge

import (
	"log/slog"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"
)

// Dispatcher is a per-runtime registry of named-event listener lists.
//
// Listeners are either Lua functions, called as f(event), or tables, called
// as t[event.name](t, event). Listeners for one event fire in registration
// order; a failing listener is logged and skipped, it never stops the rest.
type Dispatcher struct {
	L         *lua.LState
	log       *slog.Logger
	metrics   *Metrics
	listeners map[string][]lua.LValue
}

// NewDispatcher creates a dispatcher bound to a Lua state.
func NewDispatcher(L *lua.LState, log *slog.Logger, metrics *Metrics) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		L:         L,
		log:       log,
		metrics:   metrics,
		listeners: make(map[string][]lua.LValue),
	}
}

// AddListener subscribes a Lua function or table to a named event.
func (d *Dispatcher) AddListener(event string, listener lua.LValue) bool {
	if event == "" || !callable(listener) {
		return false
	}
	d.listeners[event] = append(d.listeners[event], listener)
	return true
}

// RemoveListener drops the first registration of listener for the event.
func (d *Dispatcher) RemoveListener(event string, listener lua.LValue) bool {
	regs := d.listeners[event]
	for i, reg := range regs {
		if reg == listener {
			d.listeners[event] = append(regs[:i:i], regs[i+1:]...)
			return true
		}
	}
	return false
}

// HasListeners reports whether any listener is subscribed to the event.
func (d *Dispatcher) HasListeners(event string) bool {
	return len(d.listeners[event]) > 0
}

// RemoveAll drops every registration. Used at context teardown.
func (d *Dispatcher) RemoveAll() {
	d.listeners = make(map[string][]lua.LValue)
}

// Dispatch serializes the task once and delivers it to every listener
// subscribed to its event name.
func (d *Dispatcher) Dispatch(task Task) {
	regs := d.listeners[task.EventName()]
	if len(regs) == 0 {
		return
	}
	event := d.serialize(task)
	for _, listener := range regs {
		d.invoke(task.EventName(), listener, event)
	}
	if d.metrics != nil {
		d.metrics.TasksDispatched.WithLabelValues(task.EventName()).Inc()
	}
}

// DispatchTo delivers the task to a single listener, bypassing the
// registry. Call-result continuations use this to answer exactly the
// listener that issued the request.
func (d *Dispatcher) DispatchTo(listener lua.LValue, task Task) {
	if !callable(listener) {
		return
	}
	d.invoke(task.EventName(), listener, d.serialize(task))
	if d.metrics != nil {
		d.metrics.TasksDispatched.WithLabelValues(task.EventName()).Inc()
	}
}

func (d *Dispatcher) serialize(task Task) *lua.LTable {
	tbl := d.L.NewTable()
	tbl.RawSetString("name", lua.LString(task.EventName()))
	tbl.RawSetString("isError", lua.LBool(task.failed()))
	task.fill(d.L, tbl)
	return tbl
}

func (d *Dispatcher) invoke(event string, listener lua.LValue, record *lua.LTable) {
	fn, args := resolveListener(d.L, event, listener, record)
	if fn == nil {
		return
	}
	if err := d.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		if d.metrics != nil {
			d.metrics.ListenerErrors.Inc()
		}
		wrapped := oops.In("bridge").With("event", event).Hint("listener raised an error").Wrap(err)
		d.log.Error("event listener failed", "event", event, "error", wrapped)
	}
}

// resolveListener maps a registered listener onto a callable: functions
// receive (event), tables receive (self, event) via the method named
// after the event.
func resolveListener(L *lua.LState, event string, listener lua.LValue, record *lua.LTable) (*lua.LFunction, []lua.LValue) {
	switch v := listener.(type) {
	case *lua.LFunction:
		return v, []lua.LValue{record}
	case *lua.LTable:
		method := L.GetField(v, event)
		if fn, ok := method.(*lua.LFunction); ok {
			return fn, []lua.LValue{v, record}
		}
	}
	return nil, nil
}

func callable(v lua.LValue) bool {
	switch v.(type) {
	case *lua.LFunction, *lua.LTable:
		return true
	default:
		return false
	}
}
