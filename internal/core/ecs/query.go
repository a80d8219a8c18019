package ecs

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/zeusync/zeusui/pkg/sequence"
)

// Term is one filter of a query. candidates narrows the search space; a term
// that cannot enumerate its matches returns restricted == false.
type Term interface {
	candidates(w *World) (list []Entity, restricted bool)
	matches(w *World, e Entity) bool
}

// Key names a component type without a value of it.
type Key struct {
	typ reflect.Type
}

func KeyOf[T any]() Key {
	return Key{typ: reflect.TypeFor[T]()}
}

func (k Key) String() string { return k.typ.String() }

type trackerKind uint8

const (
	trackPresent trackerKind = iota
	trackAdded
	trackModified
)

type componentTerm struct {
	key  Key
	kind trackerKind
	neg  bool
}

// With matches entities owning T.
func With[T any]() Term { return componentTerm{key: KeyOf[T]()} }

// Without matches entities not owning T.
func Without[T any]() Term { return componentTerm{key: KeyOf[T](), neg: true} }

// Added matches entities whose T was added since the last ClearTrackers.
func Added[T any]() Term { return componentTerm{key: KeyOf[T](), kind: trackAdded} }

// Modified matches entities whose T was written since the last ClearTrackers.
func Modified[T any]() Term { return componentTerm{key: KeyOf[T](), kind: trackModified} }

func (t componentTerm) candidates(w *World) ([]Entity, bool) {
	if t.neg {
		return nil, false
	}
	s, ok := w.storageByType(t.key.typ)
	if !ok {
		return nil, true
	}
	switch t.kind {
	case trackAdded:
		return s.addedEntities(), true
	case trackModified:
		return s.modifiedEntities(), true
	default:
		return s.entities(), true
	}
}

func (t componentTerm) matches(w *World, e Entity) bool {
	s, ok := w.storageByType(t.key.typ)
	var hit bool
	if ok {
		switch t.kind {
		case trackAdded:
			hit = s.has(e) && s.wasAdded(e)
		case trackModified:
			hit = s.has(e) && s.wasModified(e)
		default:
			hit = s.has(e)
		}
	}
	return hit != t.neg
}

type removedTerm struct {
	keys []Key
}

// Removed matches entities where at least one of keys was removed since the
// last ClearTrackers and every key that was not removed is still present.
func Removed(keys ...Key) Term { return removedTerm{keys: keys} }

func (t removedTerm) candidates(w *World) ([]Entity, bool) {
	var iters []*sequence.Iterator[Entity]
	for _, k := range t.keys {
		if s, ok := w.storageByType(k.typ); ok {
			iters = append(iters, sequence.From(s.removedEntities()))
		}
	}
	out := sequence.Distinct(sequence.Chain(iters...)).Collect()
	slices.Sort(out)
	return out, true
}

func (t removedTerm) matches(w *World, e Entity) bool {
	var mask uint64
	for i, k := range t.keys {
		s, ok := w.storageByType(k.typ)
		if !ok {
			return false
		}
		switch {
		case s.wasRemoved(e) && !s.has(e):
			mask |= 1 << i
		case !s.has(e):
			return false
		}
	}
	return mask != 0
}

type andTerm struct{ terms []Term }

// And intersects terms.
func And(terms ...Term) Term { return andTerm{terms: terms} }

func (t andTerm) candidates(w *World) ([]Entity, bool) {
	var (
		best  []Entity
		found bool
	)
	for _, term := range t.terms {
		list, restricted := term.candidates(w)
		if restricted && (!found || len(list) < len(best)) {
			best, found = list, true
		}
	}
	if !found {
		return nil, false
	}
	return sequence.From(best).Filter(func(e Entity) bool { return t.matches(w, e) }).Collect(), true
}

func (t andTerm) matches(w *World, e Entity) bool {
	return sequence.From(t.terms).All(func(term Term) bool { return term.matches(w, e) })
}

type orTerm struct{ left, right Term }

// Or unions the matches of left and right.
func Or(left, right Term) Term { return orTerm{left: left, right: right} }

func (t orTerm) candidates(w *World) ([]Entity, bool) {
	l, lr := t.left.candidates(w)
	r, rr := t.right.candidates(w)
	if !lr || !rr {
		return nil, false
	}
	out := sequence.Distinct(sequence.Chain(sequence.From(l), sequence.From(r))).
		Filter(func(e Entity) bool { return t.matches(w, e) }).
		Collect()
	slices.Sort(out)
	return out, true
}

func (t orTerm) matches(w *World, e Entity) bool {
	return t.left.matches(w, e) || t.right.matches(w, e)
}

// Query is a conjunction of terms evaluated against a world.
type Query struct {
	term Term
}

func NewQuery(terms ...Term) Query {
	if len(terms) == 1 {
		return Query{term: terms[0]}
	}
	return Query{term: And(terms...)}
}

// Matches reports whether e is alive and satisfies the query.
func (q Query) Matches(w *World, e Entity) bool {
	return !w.IsDead(e) && q.term.matches(w, e)
}

// Find returns every match in ascending id order. Removed entities only match
// through Removed terms, since they no longer own anything.
func (q Query) Find(w *World) []Entity {
	list, restricted := q.term.candidates(w)
	if !restricted {
		list = sortedKeys(w.owners)
	}
	return sequence.From(list).Filter(func(e Entity) bool { return q.term.matches(w, e) }).Collect()
}

// TryFindOne returns the first match.
func (q Query) TryFindOne(w *World) (Entity, bool) {
	return sequence.From(q.Find(w)).First()
}

// FindOne returns the first match and panics when there is none.
func (q Query) FindOne(w *World) Entity {
	return must(q.TryFindOne(w))
}

func (q Query) within(w *World, scope []Entity) []Entity {
	return sequence.From(scope).Filter(func(e Entity) bool { return q.Matches(w, e) }).Collect()
}

func (q Query) FindInChildren(w *World, root Entity) []Entity {
	return q.within(w, w.Children(root))
}

func (q Query) TryFindInChildren(w *World, root Entity) (Entity, bool) {
	return sequence.From(q.FindInChildren(w, root)).First()
}

func (q Query) MustFindInChildren(w *World, root Entity) Entity {
	return must(q.TryFindInChildren(w, root))
}

func (q Query) FindInDescendants(w *World, root Entity) []Entity {
	return q.within(w, w.Descendants(root))
}

func (q Query) TryFindInDescendants(w *World, root Entity) (Entity, bool) {
	return sequence.From(q.FindInDescendants(w, root)).First()
}

func (q Query) MustFindInDescendants(w *World, root Entity) Entity {
	return must(q.TryFindInDescendants(w, root))
}

// FindInAncestors searches bottom-up, nearest ancestor first.
func (q Query) FindInAncestors(w *World, root Entity) []Entity {
	return q.within(w, w.Ancestors(root))
}

func (q Query) TryFindInAncestors(w *World, root Entity) (Entity, bool) {
	return sequence.From(q.FindInAncestors(w, root)).First()
}

func (q Query) MustFindInAncestors(w *World, root Entity) Entity {
	return must(q.TryFindInAncestors(w, root))
}

func must(e Entity, ok bool) Entity {
	if !ok {
		panic(fmt.Errorf("ecs: %w", ErrNoMatch))
	}
	return e
}

// Each runs fn for every match of q with e's T borrowed immutably.
// Matches that do not own T are skipped.
func Each[T any](w *World, q Query, fn func(e Entity, v *T)) {
	matches := q.Find(w)
	Read(w, func(r *Ref[T]) {
		for _, e := range matches {
			if v, ok := r.TryGet(e); ok {
				fn(e, v)
			}
		}
	})
}

// EachMut runs fn for every match of q with e's T borrowed mutably.
func EachMut[T any](w *World, q Query, fn func(e Entity, v *T)) {
	matches := q.Find(w)
	Write(w, func(m *RefMut[T]) {
		for _, e := range matches {
			if v, ok := m.TryGetMut(e); ok {
				fn(e, v)
			}
		}
	})
}
