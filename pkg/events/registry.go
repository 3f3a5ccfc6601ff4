// Package events implements the transport-agnostic event dispatch engine
// from spec §4.2: a registry of named events, each holding an ordered list
// of listeners with optional finite lifetimes, plus synchronous and
// asynchronous emission.
//
// Grounded on original_source/event_emitter/src/event_manager.rs and
// listener.rs for the map-of-slices registry shape and the
// reverse-iteration/at-limit-removal emission algorithm, adapted into
// idiomatic concurrent Go: a single sync.RWMutex guards the registry's map
// (the sole contended resource per spec §5), rather than a lock-free
// concurrent map, since the critical sections are short and no third-party
// concurrent-map dependency is warranted for this contract.
package events

import (
	"sync"

	"github.com/greenj84/engineio/internal/workerpool"
)

// DefaultMaxListeners is the cap applied to a freshly constructed
// [Registry], per spec §4.2.1.
const DefaultMaxListeners = 10

// Registry is a generic event registry whose listeners all accept payloads
// of type T. The payload type is fixed at construction, so callbacks are
// statically typed rather than type-erased (spec §9).
//
// A Registry is safe for concurrent use by multiple goroutines.
type Registry[T any] struct {
	mu           sync.RWMutex
	maxListeners int
	listeners    map[string][]*listenerEntry[T]

	pool *workerpool.Pool
}

// NewRegistry returns an empty Registry with [DefaultMaxListeners] and its
// own dedicated worker pool for parallel async emission.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		maxListeners: DefaultMaxListeners,
		listeners:    make(map[string][]*listenerEntry[T]),
		pool:         workerpool.New(workerpool.DefaultSize),
	}
}

// Close releases the registry's dedicated worker pool. It does not affect
// already-scheduled or cooperative-goroutine emissions.
func (r *Registry[T]) Close() {
	r.pool.Close()
}

// EventNames returns the names of events that currently have at least one
// registered listener, in no guaranteed order.
func (r *Registry[T]) EventNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.listeners))
	for name, entries := range r.listeners {
		if len(entries) > 0 {
			names = append(names, name)
		}
	}
	return names
}

// ListenerCount reports how many listeners are currently registered for
// name, or zero if the event has no entry.
func (r *Registry[T]) ListenerCount(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners[name])
}

// HasListener reports whether name has at least one registered listener.
func (r *Registry[T]) HasListener(name string) bool {
	return r.ListenerCount(name) > 0
}

// SetMaxListeners sets the global per-event cap applied at insertion time.
// It does not retroactively trim events already at or above the new cap.
func (r *Registry[T]) SetMaxListeners(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maxListeners = n
}

// MaxListeners returns the current per-event cap.
func (r *Registry[T]) MaxListeners() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maxListeners
}

// AddListener registers cb against name with an infinite lifetime. It
// fails with [OverloadedEvent] if name already has max_listeners entries.
func (r *Registry[T]) AddListener(name string, cb Callback[T]) (Handle[T], error) {
	return r.addListener(name, cb, infiniteLifetime)
}

// AddLimitedListener registers cb against name with a finite invocation
// limit. A limit of 0 is treated as infinite, per spec §4.2.1.
func (r *Registry[T]) AddLimitedListener(name string, cb Callback[T], limit uint64) (Handle[T], error) {
	remaining := infiniteLifetime
	if limit != 0 {
		remaining = int64(limit)
	}
	return r.addListener(name, cb, remaining)
}

// AddOnce registers cb against name to be invoked exactly once.
func (r *Registry[T]) AddOnce(name string, cb Callback[T]) (Handle[T], error) {
	return r.AddLimitedListener(name, cb, 1)
}

func (r *Registry[T]) addListener(name string, cb Callback[T], remaining int64) (Handle[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.listeners[name]
	if len(entries) >= r.maxListeners {
		return Handle[T]{}, newError(OverloadedEvent)
	}

	e := &listenerEntry[T]{callback: cb}
	e.remaining.Store(remaining)
	r.listeners[name] = append(entries, e)
	return Handle[T]{entry: e}, nil
}

// RemoveListener removes the listener identified by h from name. It fails
// with [EventNotFound] if name has no entry, or [ListenerNotFound] if h
// isn't currently registered against it.
func (r *Registry[T]) RemoveListener(name string, h Handle[T]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, ok := r.listeners[name]
	if !ok {
		return newError(EventNotFound)
	}

	for i, e := range entries {
		if e == h.entry {
			r.listeners[name] = append(entries[:i:i], entries[i+1:]...)
			return nil
		}
	}
	return newError(ListenerNotFound)
}

// RemoveAllListeners drops the entire entry for name. It fails with
// [EventNotFound] if name has no entry.
func (r *Registry[T]) RemoveAllListeners(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listeners[name]; !ok {
		return newError(EventNotFound)
	}
	delete(r.listeners, name)
	return nil
}

// snapshot returns a stable copy of name's current listener slice (so
// emission observes the set as it stood at emission start, per spec §5)
// and whether the event has an entry at all.
func (r *Registry[T]) snapshot(name string) ([]*listenerEntry[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, ok := r.listeners[name]
	if !ok {
		return nil, false
	}
	return append([]*listenerEntry[T](nil), entries...), true
}

func (r *Registry[T]) removeEntries(name string, retired []*listenerEntry[T]) {
	if len(retired) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, ok := r.listeners[name]
	if !ok {
		return
	}
	kept := entries[:0:0]
	for _, e := range entries {
		drop := false
		for _, d := range retired {
			if e == d {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, e)
		}
	}
	r.listeners[name] = kept
}
