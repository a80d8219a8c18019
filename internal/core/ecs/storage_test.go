package ecs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type health struct{ HP int }
type label struct{ Text string }

func TestAddGetHas(t *testing.T) {
	w := NewWorld(nil)
	e := w.NewEntity()

	require.False(t, HasComponent[health](w, e))
	AddComponent(w, e, health{HP: 10})
	require.True(t, HasComponent[health](w, e))
	require.Equal(t, 10, Component[health](w, e).HP)
	require.Contains(t, w.Owned(e), KeyOf[health]().typ)

	_, ok := TryComponent[label](w, e)
	require.False(t, ok)
}

func TestMissingComponentPanics(t *testing.T) {
	w := NewWorld(nil)
	e := w.NewEntity()

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		require.True(t, errors.Is(err, ErrMissingComponent))
		require.Contains(t, err.Error(), "health")
	}()
	_ = Component[health](w, e)
}

func TestHooksFireOnRelease(t *testing.T) {
	w := NewWorld(nil)
	e := w.NewEntity()

	var added, modified []Entity
	var removed []health
	StorageOf[health](w).SetHooks(Hooks[health]{
		OnAdded:    func(_ *Storage[health], e Entity) { added = append(added, e) },
		OnModified: func(_ *Storage[health], e Entity) { modified = append(modified, e) },
		OnRemoved:  func(_ *Storage[health], _ Entity, prior health) { removed = append(removed, prior) },
	})

	m := StorageOf[health](w).BorrowMut()
	m.Add(e, health{HP: 1})
	m.GetMut(e).HP = 2
	require.Empty(t, added, "hooks wait for the guard to be released")
	m.Release()

	require.Equal(t, []Entity{e}, added)
	require.Empty(t, modified, "a fresh add only reports OnAdded")

	ModifyComponent(w, e, func(h *health) { h.HP = 3 })
	require.Equal(t, []Entity{e}, modified)

	AddComponent(w, e, health{HP: 4})
	require.Equal(t, []Entity{e, e}, modified, "overwrite schedules OnModified")
	require.Len(t, added, 1)

	RemoveComponent[health](w, e)
	require.Equal(t, []health{{HP: 4}}, removed)
	require.False(t, HasComponent[health](w, e))
	require.NotContains(t, w.Owned(e), KeyOf[health]().typ)
}

func TestHookMayBorrowOtherStorages(t *testing.T) {
	w := NewWorld(nil)
	e := w.NewEntity()

	StorageOf[health](w).SetHooks(Hooks[health]{
		OnAdded: func(s *Storage[health], e Entity) {
			r := s.Borrow()
			hp := r.Get(e).HP
			r.Release()
			AddComponent(w, e, label{Text: "hp"})
			require.Equal(t, 5, hp)
		},
	})
	AddComponent(w, e, health{HP: 5})
	require.Equal(t, "hp", Component[label](w, e).Text)
}

func TestBorrowConflicts(t *testing.T) {
	w := NewWorld(nil)
	s := StorageOf[health](w)

	r1 := s.Borrow()
	r2 := s.Borrow()
	err := catchBorrow(func() { s.BorrowMut() })
	require.NotNil(t, err)
	require.True(t, err.Mutable)
	require.Len(t, err.Live, 2)
	require.Contains(t, err.Live[0], "storage_test.go")
	r1.Release()
	r2.Release()

	m := s.BorrowMut()
	err = catchBorrow(func() { s.Borrow() })
	require.NotNil(t, err)
	require.False(t, err.Mutable)
	require.True(t, errors.Is(err, ErrBorrowConflict))
	m.Release()

	require.Nil(t, catchBorrow(func() { s.BorrowMut().Release() }))
}

func TestReleaseIsIdempotent(t *testing.T) {
	w := NewWorld(nil)
	s := StorageOf[health](w)
	m := s.BorrowMut()
	m.Release()
	m.Release()
	r := s.Borrow()
	r.Release()
	r.Release()
	require.Nil(t, catchBorrow(func() { s.BorrowMut().Release() }))
}

func TestPendingHooksSkippedForRemovedEntity(t *testing.T) {
	w := NewWorld(nil)
	a, b := w.NewEntity(), w.NewEntity()

	var seen []Entity
	StorageOf[health](w).SetHooks(Hooks[health]{
		OnModified: func(_ *Storage[health], e Entity) {
			seen = append(seen, e)
			if e == a {
				w.RemoveEntity(b)
			}
		},
	})
	AddComponent(w, a, health{})
	AddComponent(w, b, health{})

	Write(w, func(m *RefMut[health]) {
		m.GetMut(a).HP = 1
		m.GetMut(b).HP = 1
	})
	require.Equal(t, []Entity{a}, seen)
	require.True(t, w.IsDead(b))
}

func TestGetMutOr(t *testing.T) {
	w := NewWorld(nil)
	e := w.NewEntity()
	Write(w, func(m *RefMut[label]) {
		m.GetMutOr(e, func() label { return label{Text: "new"} }).Text += "!"
	})
	require.Equal(t, "new!", Component[label](w, e).Text)
}

func TestResources(t *testing.T) {
	type settings struct{ Theme string }
	w := NewWorld(nil)

	_, ok := TryResource[settings](w)
	require.False(t, ok)

	RegisterResource(w, settings{Theme: "dark"})
	require.Equal(t, "dark", Resource[settings](w).Theme)

	ResourceMut(w, func(s *settings) { s.Theme = "light" })
	require.Equal(t, "light", Resource[settings](w).Theme)
}

func catchBorrow(fn func()) (err *BorrowError) {
	defer func() {
		if r := recover(); r != nil {
			err = r.(*BorrowError)
		}
	}()
	fn()
	return nil
}
