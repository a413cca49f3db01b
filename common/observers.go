package common

import "sync"

type observer[T comparable] struct {
	value   T
	removed bool
}

// Observers is an ordered listener registry that tolerates Add and Remove while it is
// being iterated. Each dispatch sees the registrations present when it started, minus any
// removed during the dispatch. Listener values must be comparable at runtime.
type Observers[T comparable] struct {
	mu      sync.Mutex
	entries []*observer[T]
}

// Add registers l.
//
// Returns:
//   - bool: false if l was already registered
func (o *Observers[T]) Add(l T) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, e := range o.entries {
		if e.value == l {
			return false
		}
	}
	o.entries = append(o.entries, &observer[T]{value: l})
	return true
}

// Remove unregisters l. A dispatch in progress will not call l again.
//
// Returns:
//   - bool: true if l was registered
func (o *Observers[T]) Remove(l T) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, e := range o.entries {
		if e.value == l {
			e.removed = true
			o.entries = append(o.entries[:i:i], o.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered listeners.
func (o *Observers[T]) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.entries)
}

// Each calls fn for every registered listener in registration order.
func (o *Observers[T]) Each(fn func(l T)) {
	o.mu.Lock()
	snapshot := make([]*observer[T], len(o.entries))
	copy(snapshot, o.entries)
	o.mu.Unlock()

	for _, e := range snapshot {
		o.mu.Lock()
		removed := e.removed
		o.mu.Unlock()
		if removed {
			continue
		}
		fn(e.value)
	}
}
