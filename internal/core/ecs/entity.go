package ecs

import (
	"fmt"
	"reflect"
)

// Entity is a process-unique identity. Ids are never recycled.
type Entity uint64

// Root is reserved for resources.
const Root Entity = 0

func (e Entity) String() string {
	return fmt.Sprintf("entity#%d", uint64(e))
}

// ownership is the set of component types an entity owns. A live entity always
// has an entry, possibly empty.
type ownership map[reflect.Type]struct{}

// NewEntity allocates a fresh id and registers an empty ownership set.
func (w *World) NewEntity() Entity {
	e := w.next
	w.next++
	w.owners[e] = make(ownership)
	return e
}

// IsDead reports whether e has no ownership entry, i.e. it was removed or never allocated.
func (w *World) IsDead(e Entity) bool {
	_, ok := w.owners[e]
	return !ok
}

// Len returns the number of live entities, the root included.
func (w *World) Len() int {
	return len(w.owners)
}

func (w *World) own(e Entity, typ reflect.Type) {
	if set, ok := w.owners[e]; ok {
		set[typ] = struct{}{}
	}
}

func (w *World) disown(e Entity, typ reflect.Type) {
	if set, ok := w.owners[e]; ok {
		delete(set, typ)
	}
}

// Owned lists the component types e owns, in storage registration order.
func (w *World) Owned(e Entity) []reflect.Type {
	set := w.owners[e]
	out := make([]reflect.Type, 0, len(set))
	for _, typ := range w.order {
		if _, ok := set[typ]; ok {
			out = append(out, typ)
		}
	}
	return out
}
