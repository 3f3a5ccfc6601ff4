package events

import (
	"context"
	"sync/atomic"

	"github.com/greenj84/engineio/internal/logger"
)

// Callback is the type of function invoked for each emission delivered to
// a listener registered with element type T.
type Callback[T any] func(payload T)

// infiniteLifetime marks a listener with no invocation limit.
const infiniteLifetime int64 = -1

// listenerEntry is the registry's internal record for one registered
// callback. It is always referenced through a pointer so that a [Handle]
// retains identity across slice mutation, mirroring the Arc<Callback>
// pointer-identity equality used by the original Rust Listener type.
type listenerEntry[T any] struct {
	callback  Callback[T]
	remaining atomic.Int64 // infiniteLifetime, or a nonnegative remaining count
}

// call invokes the listener's callback and decrements its remaining
// lifetime if finite. It reports whether the listener has now retired
// (reached a lifetime of zero) and should be removed from the registry.
//
// A panicking callback is isolated: it is recovered and logged rather
// than propagated, so it cannot abort the rest of an emission's
// iteration or crash the goroutine dispatching it, per spec §4.2.4/§7.
func (e *listenerEntry[T]) call(name string, payload T) (retired bool) {
	e.invoke(name, payload)
	if e.remaining.Load() == infiniteLifetime {
		return false
	}
	return e.remaining.Add(-1) <= 0
}

func (e *listenerEntry[T]) invoke(name string, payload T) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(context.Background()).Error().
				Str("event", name).
				Interface("panic", r).
				Msg("listener callback panicked; isolating fault")
		}
	}()
	e.callback(payload)
}

// Handle identifies a previously-registered listener for later removal.
// Handle equality is pointer identity of the underlying listener entry,
// not structural equality of the callback value, matching spec §9's
// "Callback identity" design note.
type Handle[T any] struct {
	entry *listenerEntry[T]
}

// Valid reports whether h refers to a real listener entry (the zero
// Handle is never valid).
func (h Handle[T]) Valid() bool {
	return h.entry != nil
}
