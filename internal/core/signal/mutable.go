package signal

import (
	"slices"
	"sync"
)

// Mutable holds a value and broadcasts every change to its subscribers.
// Subscribers first receive the current value.
type Mutable[T any] struct {
	mu     sync.RWMutex
	value  T
	nextID uint64
	sinks  map[uint64]Sink[T]
}

// NewMutable creates a Mutable holding initial.
func NewMutable[T any](initial T) *Mutable[T] {
	return &Mutable[T]{value: initial, sinks: make(map[uint64]Sink[T])}
}

// Get returns the current value.
func (m *Mutable[T]) Get() T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value
}

// Set stores v and notifies subscribers.
func (m *Mutable[T]) Set(v T) {
	m.mu.Lock()
	m.value = v
	sinks := m.snapshot()
	m.mu.Unlock()

	for _, sink := range sinks {
		sink(v)
	}
}

// Replace stores v and returns the previous value.
func (m *Mutable[T]) Replace(v T) T {
	m.mu.Lock()
	old := m.value
	m.value = v
	sinks := m.snapshot()
	m.mu.Unlock()

	for _, sink := range sinks {
		sink(v)
	}
	return old
}

// Update applies f to the current value and stores the result.
func (m *Mutable[T]) Update(f func(T) T) {
	m.mu.Lock()
	m.value = f(m.value)
	v := m.value
	sinks := m.snapshot()
	m.mu.Unlock()

	for _, sink := range sinks {
		sink(v)
	}
}

// Subscribers returns the number of live subscriptions.
func (m *Mutable[T]) Subscribers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sinks)
}

// Signal returns a stream of the current value followed by every change.
func (m *Mutable[T]) Signal() Signal[T] {
	return New(func(sink Sink[T]) func() {
		m.mu.Lock()
		id := m.nextID
		m.nextID++
		m.sinks[id] = sink
		current := m.value
		m.mu.Unlock()

		sink(current)

		return func() {
			m.mu.Lock()
			delete(m.sinks, id)
			m.mu.Unlock()
		}
	})
}

func (m *Mutable[T]) snapshot() []Sink[T] {
	ids := make([]uint64, 0, len(m.sinks))
	for id := range m.sinks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Sink[T], 0, len(ids))
	for _, id := range ids {
		out = append(out, m.sinks[id])
	}
	return out
}
