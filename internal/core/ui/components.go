package ui

import (
	"github.com/zeusync/zeusui/internal/core/css"
	"github.com/zeusync/zeusui/internal/core/dom"
	"github.com/zeusync/zeusui/internal/core/signal"
	"github.com/zeusync/zeusui/internal/core/style"
)

// NodeRef is the generic node handle used for tree operations and text.
type NodeRef struct {
	Node dom.Node
}

// ElementRef marks an entity as a mirrored element. Removing it tears down
// the rest of the element's components and detaches the native node.
type ElementRef struct {
	Node dom.Node
}

// EventTargetRef is the handle listeners are registered on.
type EventTargetRef struct {
	Node dom.Node
}

// Concrete records which element variant the native node is.
type Concrete struct {
	Kind      dom.Kind
	Tag       string
	Namespace string
}

// Handlers owns the event listeners of an entity.
type Handlers struct {
	List []*EventHandle
}

// SignalHandles owns the subscriptions bound to an entity's attributes, text,
// styles and classes.
type SignalHandles struct {
	Handles signal.Handles
}

// ChildSignalHandles owns the subscriptions that swap child elements.
type ChildSignalHandles struct {
	Handles signal.Handles
}

// Classes drives the class attribute: one token per mark, then one
// registered style class per tag ordered by ordinal.
type Classes struct {
	Marks  []uint64
	Styles map[uint64]TaggedStyle
}

// TaggedStyle is a style bound to a tag. Ordinal is assigned when the tag is
// first seen and kept when the tag is set again.
type TaggedStyle struct {
	Tag     uint64
	Style   css.Style
	Ordinal int
}

// StyleSheet is the root resource giving hooks access to the style registry.
type StyleSheet struct {
	Registry *style.Registry
}
