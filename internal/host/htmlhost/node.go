package htmlhost

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/zeusync/zeusui/internal/core/dom"
)

var _ dom.Node = (*Node)(nil)

type listener struct {
	id    string
	event string
	cb    func(*dom.Event)
}

func (l *listener) ID() string        { return l.id }
func (l *listener) EventName() string { return l.event }

// Node wraps an element of a Document.
type Node struct {
	doc       *Document
	n         *html.Node
	listeners map[string][]*listener
}

func (n *Node) TagName() string { return n.n.Data }

func (n *Node) Namespace() string {
	switch n.n.Namespace {
	case "":
		return dom.NamespaceHTML
	case "svg":
		return dom.NamespaceSVG
	default:
		return n.n.Namespace
	}
}

func (n *Node) AppendChild(child dom.Node) error {
	if err := n.doc.fault("append_child"); err != nil {
		return err
	}
	c, err := n.adoptable(child)
	if err != nil {
		return err
	}
	detach(c.n)
	n.n.AppendChild(c.n)
	return nil
}

func (n *Node) InsertBefore(child, ref dom.Node) error {
	if err := n.doc.fault("insert_before"); err != nil {
		return err
	}
	if ref == nil {
		return n.AppendChild(child)
	}
	c, err := n.adoptable(child)
	if err != nil {
		return err
	}
	r, err := n.doc.own(ref)
	if err != nil {
		return err
	}
	if r.n.Parent != n.n {
		return dom.ErrNotFound
	}
	if c == r {
		return nil
	}
	detach(c.n)
	n.n.InsertBefore(c.n, r.n)
	return nil
}

// Remove detaches the node from its parent. Removing a detached node is a no-op.
func (n *Node) Remove() error {
	if err := n.doc.fault("remove"); err != nil {
		return err
	}
	detach(n.n)
	return nil
}

// ReplaceWith puts other in the node's place. A detached node is left alone.
func (n *Node) ReplaceWith(other dom.Node) error {
	if err := n.doc.fault("replace_with"); err != nil {
		return err
	}
	o, err := n.doc.own(other)
	if err != nil {
		return err
	}
	parent := n.n.Parent
	if parent == nil || o == n {
		return nil
	}
	if isInclusiveAncestor(o.n, parent) {
		return dom.ErrHierarchy
	}
	detach(o.n)
	parent.InsertBefore(o.n, n.n)
	parent.RemoveChild(n.n)
	return nil
}

func (n *Node) SetAttribute(key, value string) error {
	if err := n.doc.fault("set_attribute"); err != nil {
		return err
	}
	if key == "" || strings.ContainsAny(key, " \t\n\"'>/=") {
		return fmt.Errorf("%w: attribute %q", dom.ErrInvalidName, key)
	}
	for i := range n.n.Attr {
		if n.n.Attr[i].Key == key {
			n.n.Attr[i].Val = value
			return nil
		}
	}
	n.n.Attr = append(n.n.Attr, html.Attribute{Key: key, Val: value})
	return nil
}

func (n *Node) RemoveAttribute(key string) error {
	if err := n.doc.fault("remove_attribute"); err != nil {
		return err
	}
	for i := range n.n.Attr {
		if n.n.Attr[i].Key == key {
			n.n.Attr = append(n.n.Attr[:i], n.n.Attr[i+1:]...)
			return nil
		}
	}
	return nil
}

func (n *Node) Attribute(key string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetTextContent replaces every child with a single text node.
func (n *Node) SetTextContent(text string) error {
	if err := n.doc.fault("set_text_content"); err != nil {
		return err
	}
	for c := n.n.FirstChild; c != nil; c = n.n.FirstChild {
		n.n.RemoveChild(c)
	}
	if text != "" {
		n.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return nil
}

func (n *Node) TextContent() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(h *html.Node) {
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
			walk(c)
		}
	}
	walk(n.n)
	return b.String()
}

func (n *Node) AddEventListener(event string, cb func(*dom.Event)) (dom.Listener, error) {
	if err := n.doc.fault("add_event_listener"); err != nil {
		return nil, err
	}
	l := &listener{id: uuid.NewString(), event: event, cb: cb}
	n.listeners[event] = append(n.listeners[event], l)
	return l, nil
}

func (n *Node) RemoveEventListener(l dom.Listener) error {
	if l == nil {
		return nil
	}
	list := n.listeners[l.EventName()]
	for i, candidate := range list {
		if candidate.id == l.ID() {
			n.listeners[l.EventName()] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return dom.ErrUnknownListener
}

// ListenerCount returns the number of listeners registered for event.
func (n *Node) ListenerCount(event string) int {
	return len(n.listeners[event])
}

// ParentNode returns the parent element, or nil for detached nodes and the
// document element.
func (n *Node) ParentNode() dom.Node {
	p := n.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return n.doc.wrap(p)
}

// ChildNodes lists element children; text nodes are skipped.
func (n *Node) ChildNodes() []dom.Node {
	var out []dom.Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, n.doc.wrap(c))
		}
	}
	return out
}

// Dispatch delivers ev to target and then to its ancestors until a listener
// stops propagation.
func (d *Document) Dispatch(target dom.Node, ev *dom.Event) error {
	t, err := d.own(target)
	if err != nil {
		return err
	}
	ev.Target = t
	for h := t.n; h != nil; h = h.Parent {
		if h.Type != html.ElementNode {
			continue
		}
		current := d.wrap(h)
		ev.CurrentTarget = current
		for _, l := range append([]*listener(nil), current.listeners[ev.Type]...) {
			l.cb(ev)
		}
		if ev.Stopped() {
			break
		}
	}
	return nil
}

func (n *Node) adoptable(child dom.Node) (*Node, error) {
	c, err := n.doc.own(child)
	if err != nil {
		return nil, err
	}
	if isInclusiveAncestor(c.n, n.n) {
		return nil, dom.ErrHierarchy
	}
	return c, nil
}

// isInclusiveAncestor reports whether a is n or one of n's ancestors.
func isInclusiveAncestor(a, n *html.Node) bool {
	for h := n; h != nil; h = h.Parent {
		if h == a {
			return true
		}
	}
	return false
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
