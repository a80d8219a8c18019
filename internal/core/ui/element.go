package ui

import (
	"github.com/zeusync/zeusui/internal/core/css"
	"github.com/zeusync/zeusui/internal/core/dom"
	"github.com/zeusync/zeusui/internal/core/ecs"
)

// Element is a handle to a mirrored entity. It is a small value; copies refer
// to the same entity. Mutations on a removed element log a warning and do
// nothing.
type Element struct {
	app *App
	id  ecs.Entity
}

// Create makes an HTML element.
func (a *App) Create(tag string) Element {
	return a.CreateNS(dom.NamespaceHTML, tag)
}

// CreateSVG makes an element in the SVG namespace.
func (a *App) CreateSVG(tag string) Element {
	return a.CreateNS(dom.NamespaceSVG, tag)
}

// CreateNS makes an element in namespace. When the host refuses, the entity
// still exists but carries no native node.
func (a *App) CreateNS(namespace, tag string) Element {
	node, err := a.doc.CreateElementNS(namespace, tag)
	if err != nil {
		e := a.world.NewEntity()
		a.hostError("create_element", e, err)
		return Element{app: a, id: e}
	}
	return a.adopt(node)
}

// adopt allocates an entity for an existing native node.
func (a *App) adopt(node dom.Node) Element {
	w := a.world
	e := w.NewEntity()

	ecs.StorageOf[ElementRef](w).InstallHooksOnce(a.elementHooks)

	ecs.AddComponent(w, e, NodeRef{Node: node})
	ecs.AddComponent(w, e, ElementRef{Node: node})
	ecs.AddComponent(w, e, EventTargetRef{Node: node})
	ecs.AddComponent(w, e, Concrete{
		Kind:      dom.KindOf(node.Namespace(), node.TagName()),
		Tag:       node.TagName(),
		Namespace: node.Namespace(),
	})
	return Element{app: a, id: e}
}

// elementHooks tears an element down when its ElementRef goes away.
func (a *App) elementHooks() ecs.Hooks[ElementRef] {
	return ecs.Hooks[ElementRef]{
		OnRemoved: func(s *ecs.Storage[ElementRef], e ecs.Entity, prior ElementRef) {
			w := s.World()
			ecs.RemoveComponent[NodeRef](w, e)
			ecs.RemoveComponent[EventTargetRef](w, e)
			ecs.RemoveComponent[Handlers](w, e)
			ecs.RemoveComponent[Concrete](w, e)
			if prior.Node != nil {
				if err := prior.Node.Remove(); err != nil {
					a.hostError("remove", e, err)
				}
			}
		},
	}
}

// ID is the entity behind the element.
func (e Element) ID() ecs.Entity { return e.id }

func (e Element) App() *App { return e.app }

// IsDead reports whether the element has been removed.
func (e Element) IsDead() bool { return e.app.world.IsDead(e.id) }

// Node returns the native node, if the element has one.
func (e Element) Node() (dom.Node, bool) {
	ref, ok := ecs.TryComponent[NodeRef](e.app.world, e.id)
	if !ok || ref.Node == nil {
		return nil, false
	}
	return ref.Node, true
}

// Kind is the element variant, KindOther when unknown or removed.
func (e Element) Kind() dom.Kind {
	c, ok := ecs.TryComponent[Concrete](e.app.world, e.id)
	if !ok {
		return dom.KindOther
	}
	return c.Kind
}

// Tag is the native tag name.
func (e Element) Tag() string {
	c, _ := ecs.TryComponent[Concrete](e.app.world, e.id)
	return c.Tag
}

// alive reports whether e can be mutated, warning when it cannot.
func (e Element) alive(op string) bool {
	return e.app.world.CheckAlive(op, e.id)
}

// mutate runs fn on the native node of a live element and logs host failures.
func (e Element) mutate(op string, fn func(n dom.Node) error) {
	if !e.alive(op) {
		return
	}
	n, ok := e.Node()
	if !ok {
		return
	}
	if err := fn(n); err != nil {
		e.app.hostError(op, e.id, err)
	}
}

// SetAttr sets an attribute.
func (e Element) SetAttr(key, value string) Element {
	e.mutate("set_attribute", func(n dom.Node) error { return n.SetAttribute(key, value) })
	return e
}

// RemoveAttr removes an attribute.
func (e Element) RemoveAttr(key string) Element {
	e.mutate("remove_attribute", func(n dom.Node) error { return n.RemoveAttribute(key) })
	return e
}

// SetBoolAttr sets key to the empty string when on, removes it otherwise.
func (e Element) SetBoolAttr(key string, on bool) Element {
	if on {
		return e.SetAttr(key, "")
	}
	return e.RemoveAttr(key)
}

// Attr reads an attribute back from the native node.
func (e Element) Attr(key string) (string, bool) {
	n, ok := e.Node()
	if !ok {
		return "", false
	}
	return n.Attribute(key)
}

// SetText replaces the element's content with text.
func (e Element) SetText(text string) Element {
	e.mutate("set_text_content", func(n dom.Node) error { return n.SetTextContent(text) })
	return e
}

func (e Element) Text() string {
	n, ok := e.Node()
	if !ok {
		return ""
	}
	return n.TextContent()
}

// SetStyle writes decls as the inline style attribute.
func (e Element) SetStyle(decls ...css.Declaration) Element {
	return e.SetAttr("style", css.Declarations(decls).String())
}

// RemoveStyle clears the inline style attribute.
func (e Element) RemoveStyle() Element {
	return e.RemoveAttr("style")
}

// AddChild appends child; see ecs.World.AddChild.
func (e Element) AddChild(child Element) Element {
	e.app.world.AddChild(e.id, child.id)
	return e
}

// AddChildAt inserts child at index.
func (e Element) AddChildAt(index int, child Element) Element {
	e.app.world.AddChildAt(e.id, index, child.id)
	return e
}

// LeaveParent detaches e without destroying it.
func (e Element) LeaveParent() Element {
	e.app.world.LeaveParent(e.id)
	return e
}

// ReplaceWith puts other in e's place and removes e.
func (e Element) ReplaceWith(other Element) Element {
	e.app.world.ReplaceWith(e.id, other.id)
	return other
}

// ClearChildren removes every child of e.
func (e Element) ClearChildren() Element {
	e.app.world.ClearChildren(e.id)
	return e
}

// Remove destroys e and its descendants.
func (e Element) Remove() {
	e.app.world.RemoveEntity(e.id)
}

func (e Element) Parent() (Element, bool) {
	p, ok := e.app.world.ParentOf(e.id)
	return Element{app: e.app, id: p}, ok
}

func (e Element) Children() []Element {
	ids := e.app.world.Children(e.id)
	out := make([]Element, len(ids))
	for i, id := range ids {
		out[i] = Element{app: e.app, id: id}
	}
	return out
}
