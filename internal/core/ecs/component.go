package ecs

// Read runs fn with an immutable guard on the storage of T.
func Read[T any](w *World, fn func(r *Ref[T])) {
	r := StorageOf[T](w).Borrow()
	defer r.Release()
	fn(r)
}

// Write runs fn with the exclusive guard on the storage of T. Pending hooks
// fire when fn returns.
func Write[T any](w *World, fn func(m *RefMut[T])) {
	m := StorageOf[T](w).BorrowMut()
	defer m.Release()
	fn(m)
}

// AddComponent attaches v to e, replacing any previous value.
func AddComponent[T any](w *World, e Entity, v T) {
	Write(w, func(m *RefMut[T]) { m.Add(e, v) })
}

// Component returns a copy of e's T. It panics with *MissingComponentError when absent.
func Component[T any](w *World, e Entity) T {
	var out T
	Read(w, func(r *Ref[T]) { out = *r.Get(e) })
	return out
}

// TryComponent returns a copy of e's T if present.
func TryComponent[T any](w *World, e Entity) (T, bool) {
	var (
		out T
		ok  bool
	)
	Read(w, func(r *Ref[T]) {
		var v *T
		if v, ok = r.TryGet(e); ok {
			out = *v
		}
	})
	return out, ok
}

func HasComponent[T any](w *World, e Entity) bool {
	return StorageOf[T](w).has(e)
}

// ModifyComponent mutates e's T in place. It panics with *MissingComponentError when absent.
func ModifyComponent[T any](w *World, e Entity, fn func(v *T)) {
	Write(w, func(m *RefMut[T]) { fn(m.GetMut(e)) })
}

// TryModifyComponent mutates e's T if present and reports whether it was.
func TryModifyComponent[T any](w *World, e Entity, fn func(v *T)) bool {
	var ok bool
	Write(w, func(m *RefMut[T]) {
		var v *T
		if v, ok = m.TryGetMut(e); ok {
			fn(v)
		}
	})
	return ok
}

// ModifyComponentOr mutates e's T, adding factory() first when absent.
func ModifyComponentOr[T any](w *World, e Entity, factory func() T, fn func(v *T)) {
	Write(w, func(m *RefMut[T]) { fn(m.GetMutOr(e, factory)) })
}

// RemoveComponent detaches e's T and returns it.
func RemoveComponent[T any](w *World, e Entity) (T, bool) {
	var (
		out T
		ok  bool
	)
	Write(w, func(m *RefMut[T]) { out, ok = m.Remove(e) })
	return out, ok
}

// RegisterResource stores v on the root entity.
func RegisterResource[T any](w *World, v T) {
	AddComponent(w, Root, v)
}

// Resource returns a copy of the resource T. It panics when T was never registered.
func Resource[T any](w *World) T {
	return Component[T](w, Root)
}

func TryResource[T any](w *World) (T, bool) {
	return TryComponent[T](w, Root)
}

// ResourceMut mutates the resource T in place.
func ResourceMut[T any](w *World, fn func(v *T)) {
	ModifyComponent(w, Root, fn)
}
