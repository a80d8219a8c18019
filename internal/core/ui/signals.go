package ui

import (
	"github.com/zeusync/zeusui/internal/core/css"
	"github.com/zeusync/zeusui/internal/core/ecs"
	"github.com/zeusync/zeusui/internal/core/signal"
)

// Attribute is a key/value pair emitted by SetAttrsSignal.
type Attribute struct {
	Key   string
	Value string
}

// bind subscribes apply to sig and stores the handle on e. Values arriving
// after e was removed are dropped without a warning.
func bind[T any](e Element, op string, sig signal.Signal[T], apply func(Element, T)) Element {
	if !e.alive(op) {
		return e
	}
	h := sig.ForEach(e.app.sched, func(v T) {
		if e.IsDead() {
			return
		}
		apply(e, v)
	})
	ecs.ModifyComponentOr(e.app.world, e.id, func() SignalHandles { return SignalHandles{} }, func(s *SignalHandles) {
		s.Handles = append(s.Handles, h)
	})
	return e
}

// SetAttrSignal keeps attribute key equal to the latest value of sig.
func (e Element) SetAttrSignal(key string, sig signal.Signal[string]) Element {
	return bind(e, "set_attr_signal", sig, func(e Element, v string) { e.SetAttr(key, v) })
}

// SetBoolAttrSignal toggles attribute key with sig.
func (e Element) SetBoolAttrSignal(key string, sig signal.Signal[bool]) Element {
	return bind(e, "set_bool_attr_signal", sig, func(e Element, v bool) { e.SetBoolAttr(key, v) })
}

// SetAttrsSignal applies every emitted key/value pair.
func (e Element) SetAttrsSignal(sig signal.Signal[Attribute]) Element {
	return bind(e, "set_attrs_signal", sig, func(e Element, a Attribute) { e.SetAttr(a.Key, a.Value) })
}

func (e Element) SetTextSignal(sig signal.Signal[string]) Element {
	return bind(e, "set_text_signal", sig, func(e Element, v string) { e.SetText(v) })
}

// SetStyleSignal rewrites the inline style on every emission.
func (e Element) SetStyleSignal(sig signal.Signal[css.Declarations]) Element {
	return bind(e, "set_style_signal", sig, func(e Element, v css.Declarations) { e.SetStyle(v...) })
}

func (e Element) SetClassSignal(sig signal.Signal[css.Style]) Element {
	return bind(e, "set_class_signal", sig, func(e Element, v css.Style) { e.SetClass(v) })
}

// SetClassTaggedSignal binds tag to the latest style of sig.
func SetClassTaggedSignal[T comparable](e Element, tag T, sig signal.Signal[css.Style]) Element {
	return bind(e, "set_class_tagged_signal", sig, func(e Element, v css.Style) { SetClassTagged(e, tag, v) })
}

// SetClassTypedSignal binds T to the latest style of sig.
func SetClassTypedSignal[T any](e Element, sig signal.Signal[css.Style]) Element {
	return bind(e, "set_class_typed_signal", sig, func(e Element, v css.Style) { SetClassTyped[T](e, v) })
}

// MarkSignal toggles T's mark with sig.
func MarkSignal[T any](e Element, sig signal.Signal[bool]) Element {
	return bind(e, "mark_signal", sig, func(e Element, on bool) {
		if on {
			Mark[T](e)
			return
		}
		Unmark[T](e)
	})
}

// AddChildSignal reserves a slot among e's children and fills it with the
// latest element of sig. Until the first value arrives the slot holds a
// hidden placeholder; each new child replaces the previous one.
func (e Element) AddChildSignal(sig signal.Signal[Element]) Element {
	if !e.alive("add_child_signal") {
		return e
	}
	placeholder := e.app.Create("template").SetBoolAttr("hidden", true)
	e.AddChild(placeholder)

	current := placeholder
	h := sig.ForEach(e.app.sched, func(child Element) {
		if e.IsDead() || child.IsDead() {
			return
		}
		if current.IsDead() {
			e.AddChild(child)
		} else {
			current.ReplaceWith(child)
		}
		current = child
	})
	ecs.ModifyComponentOr(e.app.world, e.id, func() ChildSignalHandles { return ChildSignalHandles{} }, func(s *ChildSignalHandles) {
		s.Handles = append(s.Handles, h)
	})
	return e
}

// DropSignals cancels every subscription bound to e.
func (e Element) DropSignals() Element {
	if !e.alive("drop_signals") {
		return e
	}
	ecs.RemoveComponent[SignalHandles](e.app.world, e.id)
	ecs.RemoveComponent[ChildSignalHandles](e.app.world, e.id)
	return e
}
