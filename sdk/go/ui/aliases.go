package ui

import (
	"github.com/zeusync/zeusui/internal/config"
	"github.com/zeusync/zeusui/internal/core/css"
	"github.com/zeusync/zeusui/internal/core/dom"
	"github.com/zeusync/zeusui/internal/core/signal"
	core "github.com/zeusync/zeusui/internal/core/ui"
)

type (
	Config      = config.Config
	App         = core.App
	Element     = core.Element
	Attribute   = core.Attribute
	EventHandle = core.EventHandle
	Event       = dom.Event

	Style        = css.Style
	Declaration  = css.Declaration
	Declarations = css.Declarations

	Handle = signal.Handle
)

type (
	Signal[T any]  = signal.Signal[T]
	Mutable[T any] = signal.Mutable[T]
)

func DefaultConfig() Config { return config.Default() }

func NewMutable[T any](initial T) *Mutable[T] { return signal.NewMutable(initial) }

func Constant[T any](v T) Signal[T] { return signal.Constant(v) }

func FromChannel[T any](ch <-chan T) Signal[T] { return signal.FromChannel(ch) }

func Map[A, B any](sig Signal[A], f func(A) B) Signal[B] { return signal.Map(sig, f) }

func Dedupe[T comparable](sig Signal[T]) Signal[T] { return signal.Dedupe(sig) }

// Inline builds a style from declarations applied to the element itself.
func Inline(decls ...Declaration) Style { return css.Inline(decls...) }

func SetClassTagged[T comparable](e Element, tag T, s Style) Element {
	return core.SetClassTagged(e, tag, s)
}

func SetClassTyped[T any](e Element, s Style) Element { return core.SetClassTyped[T](e, s) }

func Mark[T any](e Element) Element { return core.Mark[T](e) }

func Unmark[T any](e Element) Element { return core.Unmark[T](e) }

func MarkSignal[T any](e Element, on Signal[bool]) Element { return core.MarkSignal[T](e, on) }
