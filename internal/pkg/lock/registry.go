// Package lock provides per-key mutual exclusion for serializing work on a
// single aggregate. Commands that mutate an order acquire the order's lock
// before opening a transaction, so a read-validate-write-cascade cycle is a
// single critical section while actions on different orders run in parallel.
package lock

import "sync"

// Registry hands out a mutex per key. Mutexes are created on first use and
// retained for the lifetime of the registry; the key space (order ids) is
// bounded by the working set, so no eviction is performed.
type Registry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRegistry creates an empty lock registry.
func NewRegistry() *Registry {
	return &Registry{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for the given key, blocking until it is available.
// The returned function releases the lock.
//
// Example:
//
//	unlock := registry.Lock(orderID.String())
//	defer unlock()
func (r *Registry) Lock(key string) func() {
	r.mu.Lock()
	m, ok := r.locks[key]
	if !ok {
		m = &sync.Mutex{}
		r.locks[key] = m
	}
	r.mu.Unlock()

	m.Lock()
	return m.Unlock
}
