package ecs

import (
	"reflect"

	"github.com/zeusync/zeusui/internal/core/observability/log"
)

// anyStorage is the type-erased view of a Storage used for cascading removal and queries.
type anyStorage interface {
	componentType() reflect.Type
	componentName() string
	has(e Entity) bool
	entities() []Entity
	removeEntity(e Entity)
	wasAdded(e Entity) bool
	wasModified(e Entity) bool
	wasRemoved(e Entity) bool
	addedEntities() []Entity
	modifiedEntities() []Entity
	removedEntities() []Entity
	clearTrackers()
}

// World owns every storage, the ownership sets of live entities, and the id counter.
type World struct {
	log      log.Log
	next     Entity
	owners   map[Entity]ownership
	storages map[reflect.Type]anyStorage
	order    []reflect.Type
	tree     TreeSync
}

// NewWorld creates an empty world whose root entity is alive.
func NewWorld(logger log.Log) *World {
	if logger == nil {
		logger = log.NewNop()
	}
	w := &World{
		log:      logger.Named("ecs"),
		next:     Root + 1,
		owners:   map[Entity]ownership{Root: make(ownership)},
		storages: make(map[reflect.Type]anyStorage),
	}
	return w
}

// Logger is the logger the world reports through.
func (w *World) Logger() log.Log {
	return w.log
}

// StorageOf returns the storage of T, creating an empty one on first access.
func StorageOf[T any](w *World) *Storage[T] {
	typ := reflect.TypeFor[T]()
	if s, ok := w.storages[typ]; ok {
		return s.(*Storage[T])
	}
	s := newStorage[T](w, typ)
	w.storages[typ] = s
	w.order = append(w.order, typ)
	return s
}

func (w *World) storageByType(typ reflect.Type) (anyStorage, bool) {
	s, ok := w.storages[typ]
	return s, ok
}

// RemoveEntity destroys e: descendants first, then e leaves its parent, then
// every owned component is removed (firing OnRemoved hooks). Removing a dead
// entity or the root logs a warning and does nothing.
func (w *World) RemoveEntity(e Entity) {
	if w.IsDead(e) {
		w.warnDead("remove_entity", e)
		return
	}
	if e == Root {
		w.log.Warn("the root entity cannot be removed")
		return
	}

	for _, child := range w.Children(e) {
		w.RemoveEntity(child)
	}
	w.detach(e, false)

	for {
		owned := w.Owned(e)
		if len(owned) == 0 {
			break
		}
		typ := owned[0]
		w.storages[typ].removeEntity(e)
		w.disown(e, typ)
	}
	delete(w.owners, e)
}

// ClearTrackers forgets the added, modified and removed sets of every storage.
func (w *World) ClearTrackers() {
	for _, typ := range w.order {
		w.storages[typ].clearTrackers()
	}
}

func (w *World) warnDead(op string, e Entity) {
	w.log.Warn("operation on dead entity", log.String("op", op), log.Entity(uint64(e)))
}

// CheckAlive logs a warning and returns false when e is dead.
func (w *World) CheckAlive(op string, e Entity) bool {
	if w.IsDead(e) {
		w.warnDead(op, e)
		return false
	}
	return true
}
