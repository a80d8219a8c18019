package ui

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/zeusui/internal/core/css"
	"github.com/zeusync/zeusui/internal/core/ecs"
	"github.com/zeusync/zeusui/internal/core/observability/log"
)

// classTag is the tag set_class binds to; add_class tags count up from it.
const classTag uint64 = 0

// TagHash combines the type id of T with the value of tag, so equal bytes
// under different tag types stay distinct.
func TagHash[T comparable](tag T) uint64 {
	h := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], css.TypeID[T]())
	_, _ = h.Write(buf[:])
	_, _ = fmt.Fprintf(h, "%#v", tag)
	return h.Sum64()
}

// SetClass binds style to the fixed default tag.
func (e Element) SetClass(style css.Style) Element {
	e.setClassTag("set_class", classTag, style, false)
	return e
}

// AddClass binds style to a fresh tag, so every call adds one more class.
func (e Element) AddClass(style css.Style) Element {
	e.setClassTag("add_class", 0, style, true)
	return e
}

// SetClassTagged binds style to tag. Setting the same tag again replaces the
// style but keeps its ordinal.
func SetClassTagged[T comparable](e Element, tag T, style css.Style) Element {
	e.setClassTag("set_class_tagged", TagHash(tag), style, false)
	return e
}

// RemoveClassTagged unbinds tag.
func RemoveClassTagged[T comparable](e Element, tag T) Element {
	e.removeClassTag("remove_class_tagged", TagHash(tag))
	return e
}

// SetClassTyped binds style to the type T.
func SetClassTyped[T any](e Element, style css.Style) Element {
	e.setClassTag("set_class_typed", css.TypeID[T](), style, false)
	return e
}

// RemoveClassTyped unbinds the style bound to T.
func RemoveClassTyped[T any](e Element) Element {
	e.removeClassTag("remove_class_typed", css.TypeID[T]())
	return e
}

// Mark adds T's class token to e.
func Mark[T any](e Element) Element {
	e.setMark("mark", css.TypeID[T](), true)
	return e
}

// Unmark removes T's class token from e.
func Unmark[T any](e Element) Element {
	e.setMark("unmark", css.TypeID[T](), false)
	return e
}

// HasMark reports whether e carries T's class token.
func HasMark[T any](e Element) bool {
	c, ok := ecs.TryComponent[Classes](e.app.world, e.id)
	return ok && slices.Contains(c.Marks, css.TypeID[T]())
}

// ClassStyles lists the tagged styles of e in ordinal order.
func (e Element) ClassStyles() []TaggedStyle {
	c, ok := ecs.TryComponent[Classes](e.app.world, e.id)
	if !ok {
		return nil
	}
	return c.ordered()
}

func newClasses() Classes {
	return Classes{Styles: make(map[uint64]TaggedStyle)}
}

func (e Element) setClassTag(op string, tag uint64, style css.Style, nextFree bool) {
	if !e.alive(op) {
		return
	}
	ecs.ModifyComponentOr(e.app.world, e.id, newClasses, func(c *Classes) {
		if nextFree {
			tag = uint64(len(c.Styles))
			for {
				if _, taken := c.Styles[tag]; !taken {
					break
				}
				tag++
			}
		}
		if prev, ok := c.Styles[tag]; ok {
			c.Styles[tag] = TaggedStyle{Tag: tag, Style: style, Ordinal: prev.Ordinal}
			return
		}
		c.Styles[tag] = TaggedStyle{Tag: tag, Style: style, Ordinal: len(c.Styles)}
	})
}

func (e Element) removeClassTag(op string, tag uint64) {
	if !e.alive(op) {
		return
	}
	ecs.TryModifyComponent(e.app.world, e.id, func(c *Classes) {
		delete(c.Styles, tag)
	})
}

func (e Element) setMark(op string, id uint64, on bool) {
	if !e.alive(op) {
		return
	}
	ecs.ModifyComponentOr(e.app.world, e.id, newClasses, func(c *Classes) {
		has := slices.Contains(c.Marks, id)
		switch {
		case on && !has:
			c.Marks = append(c.Marks, id)
		case !on && has:
			c.Marks = slices.DeleteFunc(c.Marks, func(x uint64) bool { return x == id })
		}
	})
}

func (c Classes) ordered() []TaggedStyle {
	out := make([]TaggedStyle, 0, len(c.Styles))
	for _, s := range c.Styles {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b TaggedStyle) int {
		if a.Ordinal != b.Ordinal {
			return a.Ordinal - b.Ordinal
		}
		return cmp.Compare(a.Tag, b.Tag)
	})
	return out
}

func classHooks() ecs.Hooks[Classes] {
	return ecs.Hooks[Classes]{
		OnAdded:    recomputeClasses,
		OnModified: recomputeClasses,
	}
}

// recomputeClasses rebuilds the class attribute from marks and styles.
func recomputeClasses(s *ecs.Storage[Classes], e ecs.Entity) {
	w := s.World()

	var c Classes
	ecs.Read(w, func(r *ecs.Ref[Classes]) {
		if v, ok := r.TryGet(e); ok {
			c = *v
		}
	})
	sheet, _ := ecs.TryResource[StyleSheet](w)

	tokens := make([]string, 0, len(c.Marks)+len(c.Styles))
	for _, id := range c.Marks {
		tokens = append(tokens, css.MarkClass(id))
	}
	for _, ts := range c.ordered() {
		if sheet.Registry == nil {
			break
		}
		tokens = append(tokens, sheet.Registry.Register(ts.Style, ts.Ordinal))
	}

	ref, ok := ecs.TryComponent[NodeRef](w, e)
	if !ok || ref.Node == nil {
		return
	}
	var err error
	if len(tokens) == 0 {
		err = ref.Node.RemoveAttribute("class")
	} else {
		err = ref.Node.SetAttribute("class", strings.Join(tokens, " "))
	}
	if err != nil {
		w.Logger().Error("dom operation failed",
			log.String("op", "set_attribute"),
			log.Entity(uint64(e)),
			log.Error(err),
		)
	}
}
