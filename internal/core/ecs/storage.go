package ecs

import (
	"reflect"
	"slices"

	"github.com/zeusync/zeusui/internal/core/observability/log"
)

// Hooks are invoked with the storage that fired them. OnAdded and OnModified
// run when the last mutable guard of the storage is released; OnRemoved runs
// immediately with the value that was removed.
type Hooks[T any] struct {
	OnAdded    func(s *Storage[T], e Entity)
	OnModified func(s *Storage[T], e Entity)
	OnRemoved  func(s *Storage[T], e Entity, prior T)
}

type pendingKind uint8

const (
	pendingModified pendingKind = iota + 1
	pendingAdded
)

// Storage holds every value of component type T, keyed by entity.
type Storage[T any] struct {
	world *World
	typ   reflect.Type
	name  string
	data  map[Entity]*T

	hooks          Hooks[T]
	hooksInstalled bool

	pending      map[Entity]pendingKind
	pendingOrder []Entity
	flushing     bool

	added    map[Entity]struct{}
	modified map[Entity]struct{}
	removed  map[Entity]struct{}

	borrows borrowState
}

func newStorage[T any](w *World, typ reflect.Type) *Storage[T] {
	return &Storage[T]{
		world:    w,
		typ:      typ,
		name:     typ.String(),
		data:     make(map[Entity]*T),
		pending:  make(map[Entity]pendingKind),
		added:    make(map[Entity]struct{}),
		modified: make(map[Entity]struct{}),
		removed:  make(map[Entity]struct{}),
	}
}

// World returns the world the storage belongs to.
func (s *Storage[T]) World() *World { return s.world }

// Name is the Go type name of T.
func (s *Storage[T]) Name() string { return s.name }

// SetHooks replaces the hooks of the storage.
func (s *Storage[T]) SetHooks(h Hooks[T]) {
	s.hooks = h
	s.hooksInstalled = true
}

// InstallHooksOnce sets the hooks produced by build unless hooks were already installed.
func (s *Storage[T]) InstallHooksOnce(build func() Hooks[T]) {
	if s.hooksInstalled {
		return
	}
	s.SetHooks(build())
}

// Borrow takes an immutable guard. It panics with a *BorrowError while a mutable guard is live.
func (s *Storage[T]) Borrow() *Ref[T] {
	id := s.borrows.acquire(s.name, false, callerLocation())
	return &Ref[T]{s: s, id: id}
}

// BorrowMut takes the exclusive guard. It panics with a *BorrowError while any guard is live.
func (s *Storage[T]) BorrowMut() *RefMut[T] {
	id := s.borrows.acquire(s.name, true, callerLocation())
	return &RefMut[T]{Ref: Ref[T]{s: s, id: id}, touched: make(map[Entity]struct{})}
}

func (s *Storage[T]) schedule(e Entity, kind pendingKind) {
	prev, ok := s.pending[e]
	if !ok {
		s.pendingOrder = append(s.pendingOrder, e)
	}
	if kind > prev {
		s.pending[e] = kind
	}
}

// flush runs the pending OnAdded/OnModified hooks in first-touch order. Hooks
// may borrow this storage again; anything they schedule is handled by the same
// flush loop. Entities removed meanwhile are skipped.
func (s *Storage[T]) flush() {
	if s.flushing {
		return
	}
	s.flushing = true
	defer func() { s.flushing = false }()

	for len(s.pendingOrder) > 0 {
		order, pending := s.pendingOrder, s.pending
		s.pendingOrder = nil
		s.pending = make(map[Entity]pendingKind)

		for _, e := range order {
			if s.world.IsDead(e) {
				continue
			}
			if _, ok := s.data[e]; !ok {
				continue
			}
			switch pending[e] {
			case pendingAdded:
				if s.hooks.OnAdded != nil {
					s.hooks.OnAdded(s, e)
				}
			case pendingModified:
				if s.hooks.OnModified != nil {
					s.hooks.OnModified(s, e)
				}
			}
		}
	}
}

func (s *Storage[T]) componentType() reflect.Type { return s.typ }

func (s *Storage[T]) componentName() string { return s.name }

func (s *Storage[T]) has(e Entity) bool {
	_, ok := s.data[e]
	return ok
}

func (s *Storage[T]) entities() []Entity {
	return sortedKeys(s.data)
}

func (s *Storage[T]) removeEntity(e Entity) {
	if !s.has(e) {
		s.world.disown(e, s.typ)
		return
	}
	m := s.BorrowMut()
	defer m.Release()
	m.Remove(e)
}

func (s *Storage[T]) wasAdded(e Entity) bool    { return inSet(s.added, e) }
func (s *Storage[T]) wasModified(e Entity) bool { return inSet(s.modified, e) }
func (s *Storage[T]) wasRemoved(e Entity) bool  { return inSet(s.removed, e) }

func (s *Storage[T]) addedEntities() []Entity    { return sortedKeys(s.added) }
func (s *Storage[T]) modifiedEntities() []Entity { return sortedKeys(s.modified) }
func (s *Storage[T]) removedEntities() []Entity  { return sortedKeys(s.removed) }

func (s *Storage[T]) clearTrackers() {
	clear(s.added)
	clear(s.modified)
	clear(s.removed)
}

// Ref is an immutable guard onto a storage. Release must be called exactly once.
type Ref[T any] struct {
	s        *Storage[T]
	id       uint64
	released bool
}

// Get returns the component of e, panicking with *MissingComponentError when absent.
func (r *Ref[T]) Get(e Entity) *T {
	v, ok := r.s.data[e]
	if !ok {
		panic(&MissingComponentError{Component: r.s.name, Entity: e})
	}
	return v
}

// TryGet returns the component of e if present.
func (r *Ref[T]) TryGet(e Entity) (*T, bool) {
	v, ok := r.s.data[e]
	return v, ok
}

func (r *Ref[T]) Has(e Entity) bool {
	return r.s.has(e)
}

// Entities lists owners of T in ascending id order.
func (r *Ref[T]) Entities() []Entity {
	return r.s.entities()
}

func (r *Ref[T]) Len() int {
	return len(r.s.data)
}

func (r *Ref[T]) Release() {
	if r.released {
		return
	}
	r.released = true
	r.s.borrows.release(r.id)
}

// RefMut is the exclusive guard onto a storage. Releasing the last RefMut
// flushes pending notifications.
type RefMut[T any] struct {
	Ref[T]
	touched map[Entity]struct{}
}

// Add stores v for e. Replacing an existing value schedules OnModified,
// otherwise OnAdded is scheduled and T joins e's ownership set.
func (m *RefMut[T]) Add(e Entity, v T) {
	s := m.s
	if old, ok := s.data[e]; ok {
		*old = v
		s.world.log.Debug("component overwritten", log.String("component", s.name), log.Entity(uint64(e)))
		m.markModified(e)
		return
	}
	val := v
	s.data[e] = &val
	s.world.own(e, s.typ)
	delete(s.removed, e)
	s.added[e] = struct{}{}
	s.schedule(e, pendingAdded)
}

// GetMut returns the component of e for writing and records e as modified.
func (m *RefMut[T]) GetMut(e Entity) *T {
	v := m.Get(e)
	m.markModified(e)
	return v
}

func (m *RefMut[T]) TryGetMut(e Entity) (*T, bool) {
	v, ok := m.s.data[e]
	if ok {
		m.markModified(e)
	}
	return v, ok
}

// GetMutOr returns the component of e for writing, adding factory() first when absent.
func (m *RefMut[T]) GetMutOr(e Entity, factory func() T) *T {
	if v, ok := m.TryGetMut(e); ok {
		return v
	}
	m.Add(e, factory())
	return m.s.data[e]
}

// Remove extracts the component of e and fires OnRemoved with it.
func (m *RefMut[T]) Remove(e Entity) (T, bool) {
	s := m.s
	ptr, ok := s.data[e]
	if !ok {
		var zero T
		return zero, false
	}
	delete(s.data, e)
	s.world.disown(e, s.typ)
	delete(s.added, e)
	delete(s.modified, e)
	s.removed[e] = struct{}{}
	if _, ok := s.pending[e]; ok {
		delete(s.pending, e)
		s.pendingOrder = slices.DeleteFunc(s.pendingOrder, func(x Entity) bool { return x == e })
	}
	prior := *ptr
	if s.hooks.OnRemoved != nil {
		s.hooks.OnRemoved(s, e, prior)
	}
	return prior, true
}

func (m *RefMut[T]) markModified(e Entity) {
	if _, ok := m.touched[e]; ok {
		return
	}
	m.touched[e] = struct{}{}
	m.s.modified[e] = struct{}{}
	m.s.schedule(e, pendingModified)
}

func (m *RefMut[T]) Release() {
	if m.released {
		return
	}
	m.released = true
	if m.s.borrows.release(m.id) {
		m.s.flush()
	}
}

func inSet(set map[Entity]struct{}, e Entity) bool {
	_, ok := set[e]
	return ok
}

func sortedKeys[V any](m map[Entity]V) []Entity {
	out := make([]Entity, 0, len(m))
	for e := range m {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}
