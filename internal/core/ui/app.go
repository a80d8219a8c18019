// Package ui mirrors an entity tree into a host DOM. Elements are entities
// carrying native node handles; attributes, text, classes and styles are
// written through to the host, and signals keep them updated over time.
package ui

import (
	"context"

	"github.com/zeusync/zeusui/internal/core/dom"
	"github.com/zeusync/zeusui/internal/core/ecs"
	"github.com/zeusync/zeusui/internal/core/observability/log"
	"github.com/zeusync/zeusui/internal/core/signal"
	"github.com/zeusync/zeusui/internal/core/style"
)

// App binds a world to a host window, a style registry and a scheduler.
// Every method must be called from the goroutine that drives the scheduler.
type App struct {
	world  *ecs.World
	sched  *signal.Scheduler
	styles *style.Registry
	window dom.Window
	doc    dom.Document
	log    log.Log

	body ecs.Entity
}

// NewApp creates an App with a fresh world.
func NewApp(logger log.Log, window dom.Window, styles *style.Registry, sched *signal.Scheduler) *App {
	if logger == nil {
		logger = log.NewNop()
	}
	a := &App{
		world:  ecs.NewWorld(logger),
		sched:  sched,
		styles: styles,
		window: window,
		doc:    window.Document(),
		log:    logger.Named("ui"),
	}
	a.world.SetTreeSync(nativeTree{app: a})
	ecs.RegisterResource(a.world, StyleSheet{Registry: styles})
	a.installHooks()
	return a
}

func (a *App) World() *ecs.World { return a.world }

func (a *App) Scheduler() *signal.Scheduler { return a.sched }

func (a *App) Styles() *style.Registry { return a.styles }

func (a *App) Window() dom.Window { return a.window }

func (a *App) Logger() log.Log { return a.log }

// Flush runs queued signal deliveries until none are left.
func (a *App) Flush() int {
	return a.sched.RunUntilIdle()
}

// Run drives the scheduler until ctx is done.
func (a *App) Run(ctx context.Context) error {
	return a.sched.Run(ctx)
}

// Element wraps an existing entity.
func (a *App) Element(e ecs.Entity) Element {
	return Element{app: a, id: e}
}

// Body returns the element mirroring the document body, adopting it on first use.
// When the host has no body a node-less element stands in for it, so mounted
// children are still tracked.
func (a *App) Body() Element {
	if a.body != 0 && !a.world.IsDead(a.body) {
		return Element{app: a, id: a.body}
	}
	node, err := a.doc.Body()
	if err != nil {
		a.hostError("body", ecs.Root, err)
		a.body = a.world.NewEntity()
		return Element{app: a, id: a.body}
	}
	el := a.adopt(node)
	a.body = el.id
	return el
}

// Mount appends child to the document body.
func (a *App) Mount(child Element) {
	a.Body().AddChild(child)
}

// RegisterResource stores a process-wide value on the root entity.
func RegisterResource[T any](a *App, v T) {
	ecs.RegisterResource(a.world, v)
}

// Resource returns the resource T.
func Resource[T any](a *App) (T, bool) {
	return ecs.TryResource[T](a.world)
}

func (a *App) hostError(op string, e ecs.Entity, err error) {
	a.log.Error("dom operation failed",
		log.String("op", op),
		log.Entity(uint64(e)),
		log.Error(err),
	)
}

func (a *App) installHooks() {
	ecs.StorageOf[Classes](a.world).InstallHooksOnce(classHooks)
	ecs.StorageOf[Handlers](a.world).InstallHooksOnce(func() ecs.Hooks[Handlers] {
		return ecs.Hooks[Handlers]{
			OnRemoved: func(_ *ecs.Storage[Handlers], _ ecs.Entity, prior Handlers) {
				for _, h := range prior.List {
					h.Drop()
				}
			},
		}
	})
	ecs.StorageOf[SignalHandles](a.world).InstallHooksOnce(func() ecs.Hooks[SignalHandles] {
		return ecs.Hooks[SignalHandles]{
			OnRemoved: func(_ *ecs.Storage[SignalHandles], _ ecs.Entity, prior SignalHandles) {
				prior.Handles.CancelAll()
			},
		}
	})
	ecs.StorageOf[ChildSignalHandles](a.world).InstallHooksOnce(func() ecs.Hooks[ChildSignalHandles] {
		return ecs.Hooks[ChildSignalHandles]{
			OnRemoved: func(_ *ecs.Storage[ChildSignalHandles], _ ecs.Entity, prior ChildSignalHandles) {
				prior.Handles.CancelAll()
			},
		}
	})
}
