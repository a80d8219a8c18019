package htmlhost

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/zeusui/internal/core/dom"
)

func tags(nodes []dom.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.TagName())
	}
	return out
}

func TestNewDocumentSkeleton(t *testing.T) {
	doc := NewDocument()

	head, err := doc.Head()
	require.NoError(t, err)
	assert.Equal(t, "head", head.TagName())

	body, err := doc.Body()
	require.NoError(t, err)
	assert.Equal(t, "body", body.TagName())

	assert.Equal(t, "<!DOCTYPE html><html><head></head><body></body></html>", doc.String())
}

func TestCreateElement(t *testing.T) {
	doc := NewDocument()

	div, err := doc.CreateElement("DIV")
	require.NoError(t, err)
	assert.Equal(t, "div", div.TagName())
	assert.Equal(t, dom.NamespaceHTML, div.Namespace())

	path, err := doc.CreateElementNS(dom.NamespaceSVG, "path")
	require.NoError(t, err)
	assert.Equal(t, "path", path.TagName())
	assert.Equal(t, dom.NamespaceSVG, path.Namespace())

	_, err = doc.CreateElement("")
	assert.ErrorIs(t, err, dom.ErrInvalidName)
}

func TestAppendAndInsertBefore(t *testing.T) {
	doc := NewDocument()
	parent, _ := doc.CreateElement("ul")
	a, _ := doc.CreateElement("li")
	b, _ := doc.CreateElement("p")
	c, _ := doc.CreateElement("span")

	require.NoError(t, parent.AppendChild(a))
	require.NoError(t, parent.AppendChild(c))
	require.NoError(t, parent.InsertBefore(b, c))

	if diff := cmp.Diff([]string{"li", "p", "span"}, tags(parent.ChildNodes())); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	assert.Same(t, parent, b.ParentNode())

	// Re-appending moves the node instead of duplicating it.
	require.NoError(t, parent.AppendChild(a))
	assert.Equal(t, []string{"p", "span", "li"}, tags(parent.ChildNodes()))

	require.NoError(t, parent.InsertBefore(a, nil))
	assert.Equal(t, []string{"p", "span", "li"}, tags(parent.ChildNodes()))
}

func TestInsertBeforeForeignRef(t *testing.T) {
	doc := NewDocument()
	parent, _ := doc.CreateElement("div")
	other, _ := doc.CreateElement("div")
	child, _ := doc.CreateElement("span")

	assert.ErrorIs(t, parent.InsertBefore(child, other), dom.ErrNotFound)

	second := NewDocument()
	stranger, _ := second.CreateElement("span")
	assert.ErrorIs(t, parent.AppendChild(stranger), dom.ErrForeignNode)
}

func TestAppendCycle(t *testing.T) {
	doc := NewDocument()
	outer, _ := doc.CreateElement("div")
	inner, _ := doc.CreateElement("div")
	require.NoError(t, outer.AppendChild(inner))

	assert.ErrorIs(t, inner.AppendChild(outer), dom.ErrHierarchy)
	assert.ErrorIs(t, outer.AppendChild(outer), dom.ErrHierarchy)
}

func TestRemoveAndReplace(t *testing.T) {
	doc := NewDocument()
	parent, _ := doc.CreateElement("div")
	a, _ := doc.CreateElement("a")
	b, _ := doc.CreateElement("b")
	c, _ := doc.CreateElement("i")
	x, _ := doc.CreateElement("em")
	for _, n := range []dom.Node{a, b, c} {
		require.NoError(t, parent.AppendChild(n))
	}

	require.NoError(t, b.ReplaceWith(x))
	assert.Equal(t, []string{"a", "em", "i"}, tags(parent.ChildNodes()))
	assert.Nil(t, b.ParentNode())

	// Detached nodes ignore both operations.
	require.NoError(t, b.Remove())
	require.NoError(t, b.ReplaceWith(a))
	assert.Equal(t, []string{"a", "em", "i"}, tags(parent.ChildNodes()))

	require.NoError(t, a.Remove())
	assert.Equal(t, []string{"em", "i"}, tags(parent.ChildNodes()))
}

func TestAttributes(t *testing.T) {
	doc := NewDocument()
	n, _ := doc.CreateElement("input")

	require.NoError(t, n.SetAttribute("value", "x"))
	require.NoError(t, n.SetAttribute("disabled", ""))
	require.NoError(t, n.SetAttribute("value", "y"))

	v, ok := n.Attribute("value")
	assert.True(t, ok)
	assert.Equal(t, "y", v)

	v, ok = n.Attribute("disabled")
	assert.True(t, ok)
	assert.Empty(t, v)

	require.NoError(t, n.RemoveAttribute("disabled"))
	_, ok = n.Attribute("disabled")
	assert.False(t, ok)
	require.NoError(t, n.RemoveAttribute("missing"))

	assert.ErrorIs(t, n.SetAttribute("bad name", "v"), dom.ErrInvalidName)
	assert.Equal(t, `<input value="y"/>`, RenderNode(n))
}

func TestTextContent(t *testing.T) {
	doc := NewDocument()
	p, _ := doc.CreateElement("p")
	span, _ := doc.CreateElement("span")
	require.NoError(t, p.AppendChild(span))
	require.NoError(t, span.SetTextContent("inner"))
	assert.Equal(t, "inner", p.TextContent())

	require.NoError(t, p.SetTextContent("flat"))
	assert.Equal(t, "flat", p.TextContent())
	assert.Empty(t, p.ChildNodes())
	assert.Nil(t, span.ParentNode())

	require.NoError(t, p.SetTextContent(""))
	assert.Equal(t, "<p></p>", RenderNode(p))
}

func TestFaultInjection(t *testing.T) {
	doc := NewDocument()
	parent, _ := doc.CreateElement("div")
	child, _ := doc.CreateElement("span")
	boom := errors.New("boom")

	doc.InjectFault("append_child", boom)
	assert.ErrorIs(t, parent.AppendChild(child), boom)
	assert.Empty(t, parent.ChildNodes())

	// Faults are consumed once.
	require.NoError(t, parent.AppendChild(child))
	assert.Len(t, parent.ChildNodes(), 1)

	doc.InjectFault("create_element", boom)
	_, err := doc.CreateElement("div")
	assert.ErrorIs(t, err, boom)
}

func TestListenersAndDispatch(t *testing.T) {
	doc := NewDocument()
	body, _ := doc.Body()
	form, _ := doc.CreateElement("form")
	button, _ := doc.CreateElement("button")
	require.NoError(t, body.AppendChild(form))
	require.NoError(t, form.AppendChild(button))

	var seen []string
	l1, err := button.AddEventListener("click", func(ev *dom.Event) {
		seen = append(seen, "button:"+ev.CurrentTarget.TagName())
	})
	require.NoError(t, err)
	_, err = form.AddEventListener("click", func(ev *dom.Event) {
		seen = append(seen, "form:"+ev.Target.TagName())
	})
	require.NoError(t, err)
	_, err = body.AddEventListener("click", func(ev *dom.Event) {
		seen = append(seen, "body")
		ev.StopPropagation()
	})
	require.NoError(t, err)

	require.NoError(t, doc.Dispatch(button, dom.NewEvent("click", nil)))
	assert.Equal(t, []string{"button:button", "form:button", "body"}, seen)

	assert.Equal(t, 1, button.(*Node).ListenerCount("click"))
	require.NoError(t, button.RemoveEventListener(l1))
	assert.Equal(t, 0, button.(*Node).ListenerCount("click"))
	assert.ErrorIs(t, button.RemoveEventListener(l1), dom.ErrUnknownListener)

	seen = nil
	require.NoError(t, doc.Dispatch(button, dom.NewEvent("click", nil)))
	assert.Equal(t, []string{"form:button", "body"}, seen)
}

func TestDispatchStopPropagation(t *testing.T) {
	doc := NewDocument()
	outer, _ := doc.CreateElement("div")
	inner, _ := doc.CreateElement("input")
	require.NoError(t, outer.AppendChild(inner))

	var outerCalled bool
	_, _ = outer.AddEventListener("input", func(*dom.Event) { outerCalled = true })

	var value string
	_, _ = inner.AddEventListener("input", func(ev *dom.Event) {
		value = ev.Value()
		ev.StopPropagation()
	})

	require.NoError(t, doc.Dispatch(inner, dom.NewEvent("input", map[string]string{"value": "typed"})))
	assert.Equal(t, "typed", value)
	assert.False(t, outerCalled)
}

func TestRenderDocument(t *testing.T) {
	w := NewWindow()
	doc := w.HTMLDocument()
	body, _ := doc.Body()
	div, _ := doc.CreateElement("div")
	require.NoError(t, div.SetAttribute("class", "s-1"))
	require.NoError(t, div.SetTextContent("hi"))
	require.NoError(t, body.AppendChild(div))

	var b strings.Builder
	require.NoError(t, doc.Render(&b))
	assert.Contains(t, b.String(), `<body><div class="s-1">hi</div></body>`)
	assert.Same(t, doc, w.Document())
}
