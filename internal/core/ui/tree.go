package ui

import (
	"slices"

	"github.com/zeusync/zeusui/internal/core/dom"
	"github.com/zeusync/zeusui/internal/core/ecs"
)

// nativeTree keeps native children in the same order as Children. Children
// without a native node are skipped when looking for an insertion point.
type nativeTree struct {
	app *App
}

var _ ecs.TreeSync = nativeTree{}

func (t nativeTree) node(e ecs.Entity) (dom.Node, bool) {
	return Element{app: t.app, id: e}.Node()
}

func (t nativeTree) ChildAttached(parent, child, _ ecs.Entity, _ bool) {
	t.place(parent, child)
}

func (t nativeTree) ChildDetached(child ecs.Entity) {
	cn, ok := t.node(child)
	if !ok {
		return
	}
	if err := cn.Remove(); err != nil {
		t.app.hostError("remove", child, err)
	}
}

func (t nativeTree) ChildReplaced(old, replacement ecs.Entity) {
	rn, ok := t.node(replacement)
	if !ok {
		// old's node leaves with old.
		return
	}
	if on, ok := t.node(old); ok && on.ParentNode() != nil {
		if err := on.ReplaceWith(rn); err != nil {
			t.app.hostError("replace_with", replacement, err)
		}
		return
	}
	if parent, ok := t.app.world.ParentOf(replacement); ok {
		t.place(parent, replacement)
	}
}

// place puts child's node before the node of the first later sibling that is
// attached to parent's node, or appends it when there is none.
func (t nativeTree) place(parent, child ecs.Entity) {
	pn, ok := t.node(parent)
	if !ok {
		return
	}
	cn, ok := t.node(child)
	if !ok {
		return
	}
	siblings := t.app.world.Children(parent)
	i := slices.Index(siblings, child)
	if i < 0 {
		return
	}
	for _, s := range siblings[i+1:] {
		bn, ok := t.node(s)
		if !ok || bn.ParentNode() != pn {
			continue
		}
		if err := pn.InsertBefore(cn, bn); err != nil {
			t.app.hostError("insert_before", child, err)
		}
		return
	}
	if err := pn.AppendChild(cn); err != nil {
		t.app.hostError("append_child", child, err)
	}
}
