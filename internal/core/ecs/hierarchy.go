package ecs

import (
	"fmt"
	"slices"

	"github.com/zeusync/zeusui/internal/core/observability/log"
)

// Parent links a child to its parent. The parent lists the child exactly once in Children.
type Parent struct {
	Entity Entity
}

// Children is the ordered list of an entity's children.
type Children struct {
	List []Entity
}

// TreeSync mirrors hierarchy changes into an external tree, such as native DOM nodes.
type TreeSync interface {
	// ChildAttached is called after child joined parent. When hasBefore is set,
	// child was placed right before the sibling before.
	ChildAttached(parent, child, before Entity, hasBefore bool)
	// ChildDetached is called after child left its parent.
	ChildDetached(child Entity)
	// ChildReplaced is called after replacement took old's slot.
	ChildReplaced(old, replacement Entity)
}

// SetTreeSync installs the observer notified of hierarchy changes.
func (w *World) SetTreeSync(t TreeSync) {
	w.tree = t
}

// ParentOf returns e's parent if it has one.
func (w *World) ParentOf(e Entity) (Entity, bool) {
	p, ok := TryComponent[Parent](w, e)
	return p.Entity, ok
}

// Children returns a copy of e's children list.
func (w *World) Children(e Entity) []Entity {
	c, ok := TryComponent[Children](w, e)
	if !ok {
		return nil
	}
	return slices.Clone(c.List)
}

// AddChild appends child to parent's children. A child attached elsewhere leaves its old parent first.
func (w *World) AddChild(parent, child Entity) {
	if !w.checkLink("add_child", parent, child) {
		return
	}
	w.detach(child, true)

	ModifyComponentOr(w, parent, func() Children { return Children{} }, func(c *Children) {
		c.List = append(c.List, child)
	})
	AddComponent(w, child, Parent{Entity: parent})

	if w.tree != nil {
		w.tree.ChildAttached(parent, child, 0, false)
	}
}

// AddChildAt inserts child at index in parent's children, shifting the rest.
// An index past the end appends.
func (w *World) AddChildAt(parent Entity, index int, child Entity) {
	if !w.checkLink("add_child_at", parent, child) {
		return
	}
	w.detach(child, true)

	var (
		before    Entity
		hasBefore bool
	)
	ModifyComponentOr(w, parent, func() Children { return Children{} }, func(c *Children) {
		switch {
		case index < 0:
			w.log.Warn("negative child index, inserting first", log.Int("index", index), log.Entity(uint64(parent)))
			index = 0
		case index > len(c.List):
			w.log.Warn("child index out of range, appending", log.Int("index", index), log.Int("len", len(c.List)), log.Entity(uint64(parent)))
			index = len(c.List)
		}
		c.List = slices.Insert(c.List, index, child)
		if index+1 < len(c.List) {
			before, hasBefore = c.List[index+1], true
		}
	})
	AddComponent(w, child, Parent{Entity: parent})

	if w.tree != nil {
		w.tree.ChildAttached(parent, child, before, hasBefore)
	}
}

// LeaveParent detaches child from its parent without destroying it.
func (w *World) LeaveParent(child Entity) {
	if !w.CheckAlive("leave_parent", child) {
		return
	}
	w.detach(child, true)
}

// ReplaceWith puts replacement in old's slot, both in Children and in the
// mirrored tree, then removes old.
func (w *World) ReplaceWith(old, replacement Entity) {
	if !w.CheckAlive("replace_with", old) || !w.CheckAlive("replace_with", replacement) {
		return
	}
	if old == replacement {
		return
	}
	if w.isAncestor(replacement, old) {
		w.log.Warn("replacement is an ancestor of the replaced entity",
			log.Error(fmt.Errorf("%w: %s above %s", ErrHierarchyCycle, replacement, old)))
		return
	}
	w.detach(replacement, true)

	if parent, ok := w.ParentOf(old); ok {
		ModifyComponent(w, parent, func(c *Children) {
			if i := slices.Index(c.List, old); i >= 0 {
				c.List[i] = replacement
			}
		})
		AddComponent(w, replacement, Parent{Entity: parent})
		RemoveComponent[Parent](w, old)

		if w.tree != nil {
			w.tree.ChildReplaced(old, replacement)
		}
	}
	w.RemoveEntity(old)
}

// ClearChildren removes every child of e.
func (w *World) ClearChildren(e Entity) {
	if !w.CheckAlive("clear_children", e) {
		return
	}
	for _, child := range w.Children(e) {
		w.RemoveEntity(child)
	}
}

// Ancestors lists e's parent, grandparent and so on, bottom-up.
func (w *World) Ancestors(e Entity) []Entity {
	var out []Entity
	for {
		p, ok := w.ParentOf(e)
		if !ok {
			return out
		}
		out = append(out, p)
		e = p
	}
}

// Descendants lists everything below e in pre-order.
func (w *World) Descendants(e Entity) []Entity {
	var out []Entity
	var walk func(Entity)
	walk = func(n Entity) {
		for _, c := range w.Children(n) {
			out = append(out, c)
			walk(c)
		}
	}
	walk(e)
	return out
}

func (w *World) checkLink(op string, parent, child Entity) bool {
	if !w.CheckAlive(op, parent) || !w.CheckAlive(op, child) {
		return false
	}
	if parent == child || w.isAncestor(child, parent) {
		w.log.Warn("refusing to create a hierarchy cycle", log.String("op", op),
			log.Error(fmt.Errorf("%w: %s under %s", ErrHierarchyCycle, parent, child)))
		return false
	}
	return true
}

// isAncestor reports whether a is found walking up from e.
func (w *World) isAncestor(a, e Entity) bool {
	return slices.Contains(w.Ancestors(e), a)
}

func (w *World) detach(child Entity, sync bool) {
	parent, ok := w.ParentOf(child)
	if !ok {
		return
	}
	found := TryModifyComponent(w, parent, func(c *Children) {
		c.List = slices.DeleteFunc(c.List, func(x Entity) bool { return x == child })
	})
	if !found {
		w.log.Error("parent has no children list", log.Entity(uint64(parent)),
			log.Error(fmt.Errorf("%w: %s", ErrNotChild, child)))
	}
	RemoveComponent[Parent](w, child)

	if sync && w.tree != nil {
		w.tree.ChildDetached(child)
	}
}
