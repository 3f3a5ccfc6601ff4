package events

// Emit synchronously invokes name's listeners, in reverse insertion order,
// against the listener set as it stood when Emit was called. Any listener
// whose finite lifetime reaches zero is removed in place. It returns
// [EventNotFound] if name has no entry.
func (r *Registry[T]) Emit(name string, payload T) error {
	snapshot, ok := r.snapshot(name)
	if !ok {
		return newError(EventNotFound)
	}

	var retired []*listenerEntry[T]
	for i := len(snapshot) - 1; i >= 0; i-- {
		if snapshot[i].call(name, payload) {
			retired = append(retired, snapshot[i])
		}
	}
	r.removeEntries(name, retired)
	return nil
}

// EmitFinal behaves like Emit, then drops the entire entry for name (no
// per-listener lifetime bookkeeping is needed since the whole entry goes
// away regardless).
func (r *Registry[T]) EmitFinal(name string, payload T) error {
	snapshot, ok := r.snapshot(name)
	if !ok {
		return newError(EventNotFound)
	}

	for i := len(snapshot) - 1; i >= 0; i-- {
		snapshot[i].call(name, payload)
	}

	r.mu.Lock()
	delete(r.listeners, name)
	r.mu.Unlock()
	return nil
}

// EmitAsync schedules name's listeners for later, non-blocking execution
// and returns immediately. When parallel is false, each callback runs on
// its own cooperative goroutine (sharing OS threads with other work, the
// Go analogue of spawning a task on an async runtime). When parallel is
// true, callbacks are handed to the registry's dedicated worker pool, for
// blocking or CPU-heavy work that shouldn't fan out unboundedly.
//
// Listener lifetime decrement and at-limit removal happen as each task
// retires, not before EmitAsync returns.
func (r *Registry[T]) EmitAsync(name string, payload T, parallel bool) error {
	snapshot, ok := r.snapshot(name)
	if !ok {
		return newError(EventNotFound)
	}

	for _, e := range snapshot {
		e := e
		task := func() {
			if e.call(name, payload) {
				r.removeEntries(name, []*listenerEntry[T]{e})
			}
		}
		if parallel {
			r.pool.Submit(task)
		} else {
			go task()
		}
	}
	return nil
}

// EmitFinalAsync behaves like EmitAsync, then drops the entire entry for
// name immediately after scheduling (not after the scheduled tasks run).
func (r *Registry[T]) EmitFinalAsync(name string, payload T, parallel bool) error {
	snapshot, ok := r.snapshot(name)
	if !ok {
		return newError(EventNotFound)
	}

	for _, e := range snapshot {
		e := e
		task := func() { e.call(name, payload) }
		if parallel {
			r.pool.Submit(task)
		} else {
			go task()
		}
	}

	r.mu.Lock()
	delete(r.listeners, name)
	r.mu.Unlock()
	return nil
}
