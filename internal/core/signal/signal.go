// Package signal provides cancellable value streams delivered through a
// cooperative Scheduler.
package signal

import (
	"context"
	"sync"
)

// Sink receives values pushed by a source. It may be called from any goroutine.
type Sink[T any] func(T)

// Signal is a single-consumer stream. Subscribing starts the source and
// returns a function that stops it.
type Signal[T any] struct {
	subscribe func(sink Sink[T]) (stop func())
}

// New builds a Signal from a subscribe function.
func New[T any](subscribe func(sink Sink[T]) (stop func())) Signal[T] {
	return Signal[T]{subscribe: subscribe}
}

// Constant emits v once.
func Constant[T any](v T) Signal[T] {
	return New(func(sink Sink[T]) func() {
		sink(v)
		return func() {}
	})
}

// FromChannel forwards every value received on ch until ch is closed or the
// subscription is cancelled.
func FromChannel[T any](ch <-chan T) Signal[T] {
	return New(func(sink Sink[T]) func() {
		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-done:
					return
				case v, ok := <-ch:
					if !ok {
						return
					}
					sink(v)
				}
			}
		}()
		var once sync.Once
		return func() { once.Do(func() { close(done) }) }
	})
}

// Map transforms every value of sig with f.
func Map[A, B any](sig Signal[A], f func(A) B) Signal[B] {
	return New(func(sink Sink[B]) func() {
		return sig.subscribe(func(a A) { sink(f(a)) })
	})
}

// Dedupe drops values equal to the previous one.
func Dedupe[T comparable](sig Signal[T]) Signal[T] {
	return New(func(sink Sink[T]) func() {
		var (
			mu   sync.Mutex
			last T
			seen bool
		)
		return sig.subscribe(func(v T) {
			mu.Lock()
			if seen && v == last {
				mu.Unlock()
				return
			}
			last, seen = v, true
			mu.Unlock()
			sink(v)
		})
	})
}

// ForEach subscribes fn to sig. Every value becomes a task on s, so fn always
// runs on the scheduler goroutine. Values still queued when the handle is
// cancelled are dropped.
func (sig Signal[T]) ForEach(s *Scheduler, fn func(T)) *Handle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{ctx: ctx, cancel: cancel}
	h.stop = sig.subscribe(func(v T) {
		if ctx.Err() != nil {
			return
		}
		s.Post(func() {
			if ctx.Err() != nil {
				return
			}
			fn(v)
		})
	})
	return h
}

// Handle owns a subscription. Cancel is idempotent.
type Handle struct {
	ctx    context.Context
	cancel context.CancelFunc
	stop   func()
	once   sync.Once
}

// Cancel stops the source and drops undelivered values.
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		h.cancel()
		if h.stop != nil {
			h.stop()
		}
	})
}

// Cancelled reports whether Cancel has been called.
func (h *Handle) Cancelled() bool {
	return h == nil || h.ctx.Err() != nil
}

// Handles is a collection of subscriptions cancelled together.
type Handles []*Handle

// CancelAll cancels every handle in the collection.
func (hs Handles) CancelAll() {
	for _, h := range hs {
		h.Cancel()
	}
}
