// Package dom defines the host contract the UI core drives: documents that
// create elements, and nodes that can be attached, mutated and listened to.
// Every operation is synchronous from the caller's point of view.
package dom

import "errors"

const (
	NamespaceHTML = "http://www.w3.org/1999/xhtml"
	NamespaceSVG  = "http://www.w3.org/2000/svg"
)

var (
	ErrForeignNode     = errors.New("node belongs to another document")
	ErrHierarchy       = errors.New("hierarchy request error")
	ErrNotFound        = errors.New("reference node is not a child")
	ErrNoHead          = errors.New("document has no head")
	ErrNoBody          = errors.New("document has no body")
	ErrInvalidName     = errors.New("invalid name")
	ErrUnknownListener = errors.New("listener is not registered on this node")
)

// Node is a native element handle.
type Node interface {
	TagName() string
	Namespace() string

	AppendChild(child Node) error
	InsertBefore(child, ref Node) error
	Remove() error
	ReplaceWith(other Node) error

	SetAttribute(key, value string) error
	RemoveAttribute(key string) error
	Attribute(key string) (string, bool)

	SetTextContent(text string) error
	TextContent() string

	AddEventListener(event string, cb func(*Event)) (Listener, error)
	RemoveEventListener(l Listener) error

	ParentNode() Node
	ChildNodes() []Node
}

// Document creates nodes and exposes the head and body.
type Document interface {
	CreateElement(tag string) (Node, error)
	CreateElementNS(namespace, tag string) (Node, error)
	Head() (Node, error)
	Body() (Node, error)
}

// Window is a browsing context owning one document.
type Window interface {
	Document() Document
}

// Listener is the registration returned by AddEventListener.
type Listener interface {
	ID() string
	EventName() string
}

// Event is delivered to listeners. Data carries event-specific values such
// as "value" for input events or "key" for keyboard events.
type Event struct {
	Type          string
	Target        Node
	CurrentTarget Node
	Data          map[string]string

	stopped bool
}

func NewEvent(typ string, data map[string]string) *Event {
	return &Event{Type: typ, Data: data}
}

func (e *Event) StopPropagation() { e.stopped = true }

func (e *Event) Stopped() bool { return e.stopped }

// Value returns Data["value"].
func (e *Event) Value() string { return e.Data["value"] }
