package ui

import (
	"github.com/zeusync/zeusui/internal/core/dom"
	"github.com/zeusync/zeusui/internal/core/ecs"
	"github.com/zeusync/zeusui/internal/core/observability/log"
)

// EventHandle owns one native listener. Dropping it unregisters the listener.
type EventHandle struct {
	node     dom.Node
	listener dom.Listener
	event    string
	log      log.Log
	dropped  bool
}

// Event is the name of the event the handle listens to.
func (h *EventHandle) Event() string { return h.event }

// Drop unregisters the listener. It is idempotent.
func (h *EventHandle) Drop() {
	if h == nil || h.dropped {
		return
	}
	h.dropped = true
	if err := h.node.RemoveEventListener(h.listener); err != nil {
		h.log.Error("dom operation failed",
			log.String("op", "remove_event_listener"),
			log.String("event", h.event),
			log.Error(err),
		)
	}
}

// Listen installs cb for event and returns the handle, which is also kept in
// the element's Handlers so removal of the element drops it.
func (e Element) Listen(event string, cb func(*dom.Event)) (*EventHandle, bool) {
	if !e.alive("add_event_listener") {
		return nil, false
	}
	target, ok := ecs.TryComponent[EventTargetRef](e.app.world, e.id)
	if !ok || target.Node == nil {
		return nil, false
	}
	l, err := target.Node.AddEventListener(event, cb)
	if err != nil {
		e.app.hostError("add_event_listener", e.id, err)
		return nil, false
	}
	h := &EventHandle{node: target.Node, listener: l, event: event, log: e.app.log}
	ecs.ModifyComponentOr(e.app.world, e.id, func() Handlers { return Handlers{} }, func(hs *Handlers) {
		hs.List = append(hs.List, h)
	})
	return h, true
}

// On installs cb for event and returns e for chaining.
func (e Element) On(event string, cb func(*dom.Event)) Element {
	e.Listen(event, cb)
	return e
}

// OnSelf is On with the element passed to the callback.
func (e Element) OnSelf(event string, cb func(Element, *dom.Event)) Element {
	self := e
	e.Listen(event, func(ev *dom.Event) { cb(self, ev) })
	return e
}

// DropHandlers unregisters every listener of e.
func (e Element) DropHandlers() Element {
	if !e.alive("drop_handlers") {
		return e
	}
	ecs.RemoveComponent[Handlers](e.app.world, e.id)
	return e
}

// HandlerCount is the number of listeners e owns.
func (e Element) HandlerCount() int {
	hs, _ := ecs.TryComponent[Handlers](e.app.world, e.id)
	return len(hs.List)
}

func (e Element) OnClick(cb func(*dom.Event)) Element      { return e.On("click", cb) }
func (e Element) OnInput(cb func(*dom.Event)) Element      { return e.On("input", cb) }
func (e Element) OnChange(cb func(*dom.Event)) Element     { return e.On("change", cb) }
func (e Element) OnKeyDown(cb func(*dom.Event)) Element    { return e.On("keydown", cb) }
func (e Element) OnSubmit(cb func(*dom.Event)) Element     { return e.On("submit", cb) }
func (e Element) OnMouseEnter(cb func(*dom.Event)) Element { return e.On("mouseenter", cb) }
func (e Element) OnMouseLeave(cb func(*dom.Event)) Element { return e.On("mouseleave", cb) }
