package wsmirror

import (
	"sync"

	"github.com/google/uuid"

	"github.com/zeusync/zeusui/internal/core/dom"
)

var (
	_ dom.Document = (*Document)(nil)
	_ dom.Node     = (*Node)(nil)
	_ dom.Window   = (*Window)(nil)
)

// Document decorates another document and publishes its mutations.
type Document struct {
	inner dom.Document
	hub   *Hub

	mu       sync.RWMutex
	wrappers map[dom.Node]*Node
	byID     map[string]*Node
}

func NewDocument(inner dom.Document, hub *Hub) *Document {
	return &Document{
		inner:    inner,
		hub:      hub,
		wrappers: make(map[dom.Node]*Node),
		byID:     make(map[string]*Node),
	}
}

func (d *Document) Hub() *Hub { return d.hub }

// Inner is the decorated document.
func (d *Document) Inner() dom.Document { return d.inner }

func (d *Document) CreateElement(tag string) (dom.Node, error) {
	return d.CreateElementNS(dom.NamespaceHTML, tag)
}

func (d *Document) CreateElementNS(namespace, tag string) (dom.Node, error) {
	n, err := d.inner.CreateElementNS(namespace, tag)
	if err != nil {
		return nil, err
	}
	w := d.wrap(n, "")
	d.hub.Publish(Patch{Op: OpCreate, ID: w.id, Tag: n.TagName(), NS: n.Namespace()})
	return w, nil
}

func (d *Document) Head() (dom.Node, error) {
	n, err := d.inner.Head()
	if err != nil {
		return nil, err
	}
	return d.wrap(n, HeadID), nil
}

func (d *Document) Body() (dom.Node, error) {
	n, err := d.inner.Body()
	if err != nil {
		return nil, err
	}
	return d.wrap(n, BodyID), nil
}

// Resolve maps a patch id back to the decorated node.
func (d *Document) Resolve(id string) (dom.Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	w, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	return w.inner, true
}

func (d *Document) wrap(n dom.Node, id string) *Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w, ok := d.wrappers[n]; ok {
		return w
	}
	if id == "" {
		id = uuid.NewString()
	}
	w := &Node{doc: d, inner: n, id: id}
	d.wrappers[n] = w
	d.byID[id] = w
	return w
}

func (d *Document) unwrap(n dom.Node) (*Node, error) {
	w, ok := n.(*Node)
	if !ok || w.doc != d {
		return nil, dom.ErrForeignNode
	}
	return w, nil
}

// Node is a mirrored node. Its ID is the one used in patches.
type Node struct {
	doc   *Document
	inner dom.Node
	id    string
}

func (n *Node) ID() string { return n.id }

// Inner is the decorated node.
func (n *Node) Inner() dom.Node { return n.inner }

func (n *Node) TagName() string   { return n.inner.TagName() }
func (n *Node) Namespace() string { return n.inner.Namespace() }

func (n *Node) publish(p Patch) {
	if p.ID == "" {
		p.ID = n.id
	}
	n.doc.hub.Publish(p)
}

func (n *Node) AppendChild(child dom.Node) error {
	c, err := n.doc.unwrap(child)
	if err != nil {
		return err
	}
	if err := n.inner.AppendChild(c.inner); err != nil {
		return err
	}
	c.publish(Patch{Op: OpAppend, Parent: n.id})
	return nil
}

func (n *Node) InsertBefore(child, ref dom.Node) error {
	if ref == nil {
		return n.AppendChild(child)
	}
	c, err := n.doc.unwrap(child)
	if err != nil {
		return err
	}
	r, err := n.doc.unwrap(ref)
	if err != nil {
		return err
	}
	if err := n.inner.InsertBefore(c.inner, r.inner); err != nil {
		return err
	}
	c.publish(Patch{Op: OpInsert, Parent: n.id, Ref: r.id})
	return nil
}

func (n *Node) Remove() error {
	if err := n.inner.Remove(); err != nil {
		return err
	}
	n.publish(Patch{Op: OpRemove})
	return nil
}

func (n *Node) ReplaceWith(other dom.Node) error {
	o, err := n.doc.unwrap(other)
	if err != nil {
		return err
	}
	if err := n.inner.ReplaceWith(o.inner); err != nil {
		return err
	}
	n.publish(Patch{Op: OpReplace, Ref: o.id})
	return nil
}

func (n *Node) SetAttribute(key, value string) error {
	if err := n.inner.SetAttribute(key, value); err != nil {
		return err
	}
	n.publish(Patch{Op: OpSetAttr, Key: key, Value: value})
	return nil
}

func (n *Node) RemoveAttribute(key string) error {
	if err := n.inner.RemoveAttribute(key); err != nil {
		return err
	}
	n.publish(Patch{Op: OpRemoveAttr, Key: key})
	return nil
}

func (n *Node) Attribute(key string) (string, bool) { return n.inner.Attribute(key) }

func (n *Node) SetTextContent(text string) error {
	if err := n.inner.SetTextContent(text); err != nil {
		return err
	}
	n.publish(Patch{Op: OpSetText, Value: text})
	return nil
}

func (n *Node) TextContent() string { return n.inner.TextContent() }

// AddEventListener registers cb on the decorated node and asks clients to
// forward event.
func (n *Node) AddEventListener(event string, cb func(*dom.Event)) (dom.Listener, error) {
	l, err := n.inner.AddEventListener(event, cb)
	if err != nil {
		return nil, err
	}
	n.publish(Patch{Op: OpListen, Key: event})
	return l, nil
}

func (n *Node) RemoveEventListener(l dom.Listener) error {
	if err := n.inner.RemoveEventListener(l); err != nil {
		return err
	}
	if l != nil {
		n.publish(Patch{Op: OpUnlisten, Key: l.EventName()})
	}
	return nil
}

func (n *Node) ParentNode() dom.Node {
	p := n.inner.ParentNode()
	if p == nil {
		return nil
	}
	return n.doc.wrap(p, "")
}

func (n *Node) ChildNodes() []dom.Node {
	inner := n.inner.ChildNodes()
	out := make([]dom.Node, len(inner))
	for i, c := range inner {
		out[i] = n.doc.wrap(c, "")
	}
	return out
}

// Window exposes a mirrored document as a dom.Window.
type Window struct {
	doc *Document
}

// NewWindow decorates the document of inner.
func NewWindow(inner dom.Window, hub *Hub) *Window {
	return &Window{doc: NewDocument(inner.Document(), hub)}
}

func (w *Window) Document() dom.Document { return w.doc }

// MirrorDocument returns the concrete mirrored document.
func (w *Window) MirrorDocument() *Document { return w.doc }
