// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package bridge

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"

	"github.com/samber/oops"
)

// Registry tracks every live Context in the process and pins them all to
// one designated goroutine. The Steam client is not safe for concurrent use
// across independent polling loops, so the first context to register claims
// the goroutine and later registrations from any other goroutine are
// rejected at load time.
type Registry struct {
	mu       sync.Mutex
	goid     uint64
	contexts map[*Context]struct{}
}

// DefaultRegistry is the process-wide registry used when none is injected.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty registry. Separate registries exist for
// tests; production embeddings share DefaultRegistry.
func NewRegistry() *Registry {
	return &Registry{contexts: make(map[*Context]struct{})}
}

// Register adds a context. The first registration captures the calling
// goroutine as the designated one.
func (r *Registry) Register(ctx *Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := goid()
	if len(r.contexts) == 0 {
		r.goid = id
	} else if id != r.goid {
		return oops.In("bridge").
			With("designated_goroutine", r.goid).
			With("calling_goroutine", id).
			Hint("load every runtime from the same goroutine that polls").
			New("runtime loaded from a second goroutine")
	}
	r.contexts[ctx] = struct{}{}
	return nil
}

// Release removes a context and reports whether it was the last one. The
// caller shuts the Steam client down only on the last release.
func (r *Registry) Release(ctx *Context) (last bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contexts, ctx)
	return len(r.contexts) == 0
}

// Check verifies the calling goroutine is the designated one.
func (r *Registry) Check() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.contexts) == 0 {
		return nil
	}
	if id := goid(); id != r.goid {
		return oops.In("bridge").
			With("designated_goroutine", r.goid).
			With("calling_goroutine", id).
			New("call from a non-designated goroutine")
	}
	return nil
}

// goid returns the current goroutine's id, parsed from the stack header
// "goroutine N [...". There is no API for this; the header format has been
// stable since Go 1.4.
func goid() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if i := bytes.IndexByte(buf, ' '); i > 0 {
		buf = buf[:i]
	}
	id, _ := strconv.ParseUint(string(buf), 10, 64)
	return id
}
