package ui

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/zeusui/internal/core/css"
	"github.com/zeusync/zeusui/internal/core/dom"
	"github.com/zeusync/zeusui/internal/core/ecs"
	"github.com/zeusync/zeusui/internal/core/observability/log"
	"github.com/zeusync/zeusui/internal/core/signal"
	"github.com/zeusync/zeusui/internal/core/style"
	"github.com/zeusync/zeusui/internal/host/htmlhost"
)

type fixture struct {
	app  *App
	win  *htmlhost.Window
	doc  *htmlhost.Document
	logs *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := log.FromZap(zap.New(core), log.LevelDebug)

	win := htmlhost.NewWindow()
	reg, err := style.NewRegistry(logger, "default", win)
	require.NoError(t, err)

	return &fixture{
		app:  NewApp(logger, win, reg, signal.NewScheduler(logger)),
		win:  win,
		doc:  win.HTMLDocument(),
		logs: logs,
	}
}

func ids(els []Element) []ecs.Entity {
	out := make([]ecs.Entity, len(els))
	for i, e := range els {
		out[i] = e.ID()
	}
	return out
}

func nodesOf(t *testing.T, els ...Element) []dom.Node {
	t.Helper()
	out := make([]dom.Node, len(els))
	for i, e := range els {
		n, ok := e.Node()
		require.True(t, ok, "element %s has no node", e.ID())
		out[i] = n
	}
	return out
}

func nativeChildren(t *testing.T, e Element) []dom.Node {
	t.Helper()
	n, ok := e.Node()
	require.True(t, ok)
	return n.ChildNodes()
}

func TestCreateAndAttach(t *testing.T) {
	f := newFixture(t)
	d := f.app.Create("div")
	s := f.app.Create("span")

	d.AddChild(s)

	assert.Equal(t, []ecs.Entity{s.ID()}, ids(d.Children()))
	p, ok := s.Parent()
	require.True(t, ok)
	assert.Equal(t, d.ID(), p.ID())

	sn, _ := s.Node()
	dn, _ := d.Node()
	assert.Same(t, dn, sn.ParentNode())
}

func TestCreateRecordsConcreteKind(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, dom.KindInput, f.app.Create("input").Kind())
	assert.Equal(t, dom.KindSVGPath, f.app.CreateSVG("path").Kind())

	custom := f.app.Create("my-widget")
	assert.Equal(t, dom.KindOther, custom.Kind())
	assert.Equal(t, "my-widget", custom.Tag())
}

func TestCreateSurvivesHostFailure(t *testing.T) {
	f := newFixture(t)
	f.doc.InjectFault("create_element", errors.New("denied"))

	e := f.app.Create("div")
	assert.False(t, e.IsDead())
	_, ok := e.Node()
	assert.False(t, ok)

	// Mutations on a node-less element are quiet no-ops.
	e.SetAttr("title", "x").SetText("y")
	assert.Equal(t, 1, f.logs.FilterMessage("dom operation failed").Len())
}

func TestReplacePreservesParentSlot(t *testing.T) {
	f := newFixture(t)
	p := f.app.Create("div")
	a, b, c := f.app.Create("a"), f.app.Create("b"), f.app.Create("i")
	x := f.app.Create("em")
	p.AddChild(a).AddChild(b).AddChild(c)

	b.ReplaceWith(x)

	if diff := cmp.Diff([]ecs.Entity{a.ID(), x.ID(), c.ID()}, ids(p.Children())); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, nodesOf(t, a, x, c), nativeChildren(t, p))
	parent, ok := x.Parent()
	require.True(t, ok)
	assert.Equal(t, p.ID(), parent.ID())
	assert.True(t, b.IsDead())
}

func TestNodelessSiblingsKeepNativeOrder(t *testing.T) {
	f := newFixture(t)
	p := f.app.Create("div")
	x := f.app.Element(f.app.World().NewEntity())
	a := f.app.Create("a")
	p.AddChild(x).AddChild(a)

	b := f.app.Create("b")
	p.AddChildAt(0, b)
	assert.Equal(t, []ecs.Entity{b.ID(), x.ID(), a.ID()}, ids(p.Children()))
	assert.Equal(t, nodesOf(t, b, a), nativeChildren(t, p))

	c := f.app.Create("i")
	p.AddChildAt(1, c)
	assert.Equal(t, []ecs.Entity{b.ID(), c.ID(), x.ID(), a.ID()}, ids(p.Children()))
	assert.Equal(t, nodesOf(t, b, c, a), nativeChildren(t, p))
}

func TestReplaceNodelessChild(t *testing.T) {
	f := newFixture(t)
	p := f.app.Create("div")
	x := f.app.Element(f.app.World().NewEntity())
	a := f.app.Create("a")
	p.AddChild(x).AddChild(a)

	s := f.app.Create("span")
	x.ReplaceWith(s)

	assert.True(t, x.IsDead())
	assert.Equal(t, []ecs.Entity{s.ID(), a.ID()}, ids(p.Children()))
	assert.Equal(t, nodesOf(t, s, a), nativeChildren(t, p))

	y := f.app.Element(f.app.World().NewEntity())
	p.AddChild(y)
	z := f.app.Create("em")
	y.ReplaceWith(z)
	assert.Equal(t, nodesOf(t, s, a, z), nativeChildren(t, p))
}

func TestAddChildAtRoundTrip(t *testing.T) {
	f := newFixture(t)
	p := f.app.Create("ul")
	a, b, c := f.app.Create("li"), f.app.Create("li"), f.app.Create("li")
	p.AddChild(a).AddChild(c)

	p.AddChildAt(1, b)
	assert.Equal(t, []ecs.Entity{a.ID(), b.ID(), c.ID()}, ids(p.Children()))
	assert.Equal(t, nodesOf(t, a, b, c), nativeChildren(t, p))

	d := f.app.Create("li")
	p.AddChildAt(3, d)
	assert.Equal(t, d.ID(), p.Children()[3].ID())
	assert.Equal(t, nodesOf(t, a, b, c, d), nativeChildren(t, p))

	e := f.app.Create("li")
	p.AddChildAt(42, e)
	assert.Equal(t, e.ID(), p.Children()[4].ID())
	assert.Equal(t, nodesOf(t, a, b, c, d, e), nativeChildren(t, p))
	assert.Equal(t, 1, f.logs.FilterMessage("child index out of range, appending").Len())

	// Moving within the same parent keeps both sides aligned.
	p.AddChildAt(0, e)
	assert.Equal(t, nodesOf(t, e, a, b, c, d), nativeChildren(t, p))
}

func TestLeaveParentAndRemove(t *testing.T) {
	f := newFixture(t)
	p := f.app.Create("div")
	a, b := f.app.Create("span"), f.app.Create("span")
	p.AddChild(a).AddChild(b)

	a.LeaveParent()
	assert.False(t, a.IsDead())
	assert.Equal(t, nodesOf(t, b), nativeChildren(t, p))
	an, _ := a.Node()
	assert.Nil(t, an.ParentNode())

	f.app.Mount(p)
	body := f.app.Body()
	assert.Equal(t, "body", body.Tag())
	assert.Len(t, nativeChildren(t, body), 1)

	p.Remove()
	assert.True(t, p.IsDead())
	assert.True(t, b.IsDead())
	assert.Empty(t, nativeChildren(t, body))
	assert.False(t, ecs.HasComponent[NodeRef](f.app.World(), p.ID()))
	assert.False(t, ecs.HasComponent[Concrete](f.app.World(), b.ID()))
}

func TestClearChildren(t *testing.T) {
	f := newFixture(t)
	p := f.app.Create("div")
	a, b := f.app.Create("span"), f.app.Create("span")
	p.AddChild(a).AddChild(b)

	p.ClearChildren()
	assert.Empty(t, p.Children())
	assert.Empty(t, nativeChildren(t, p))
	assert.True(t, a.IsDead())
	assert.True(t, b.IsDead())
}

func TestAttributeRoundTrips(t *testing.T) {
	f := newFixture(t)
	e := f.app.Create("input")

	e.SetAttr("value", "hello")
	v, ok := e.Attr("value")
	require.True(t, ok)
	assert.Equal(t, "hello", v)

	e.SetBoolAttr("disabled", true)
	v, ok = e.Attr("disabled")
	require.True(t, ok)
	assert.Equal(t, "", v)

	e.SetBoolAttr("disabled", false)
	_, ok = e.Attr("disabled")
	assert.False(t, ok)

	e.RemoveAttr("value")
	_, ok = e.Attr("value")
	assert.False(t, ok)
}

func TestTextAndInlineStyle(t *testing.T) {
	f := newFixture(t)
	e := f.app.Create("p").SetText("hello")
	assert.Equal(t, "hello", e.Text())

	e.SetStyle(css.Prop(css.Color, css.Keyword("red")), css.Prop(css.Margin, css.Px(0)))
	v, ok := e.Attr("style")
	require.True(t, ok)
	assert.Equal(t, "color:red;margin:0;", v)

	e.RemoveStyle()
	_, ok = e.Attr("style")
	assert.False(t, ok)
}

func TestDeadEntityOperationsWarn(t *testing.T) {
	f := newFixture(t)
	e := f.app.Create("div")
	e.Remove()

	assert.NotPanics(t, func() {
		e.SetAttr("title", "x").SetText("x").SetClass(red).AddChild(f.app.Create("span"))
		Mark[primary](e)
	})

	warnings := f.logs.FilterMessage("operation on dead entity").All()
	require.NotEmpty(t, warnings)
	for _, w := range warnings {
		assert.Equal(t, uint64(e.ID()), w.ContextMap()["entity"])
	}
	ops := make([]string, 0, len(warnings))
	for _, w := range warnings {
		ops = append(ops, w.ContextMap()["op"].(string))
	}
	assert.Subset(t, ops, []string{"set_attribute", "set_text_content", "set_class", "add_child", "mark"})
}

func TestHostFailureIsLoggedAndSkipped(t *testing.T) {
	f := newFixture(t)
	e := f.app.Create("div")
	boom := errors.New("boom")

	f.doc.InjectFault("set_attribute", boom)
	e.SetAttr("title", "x")

	entries := f.logs.FilterMessage("dom operation failed").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "set_attribute", ctx["op"])
	assert.Equal(t, uint64(e.ID()), ctx["entity"])
	assert.Equal(t, "boom", ctx["error"])
	_, ok := e.Attr("title")
	assert.False(t, ok)

	e.SetAttr("title", "y")
	v, _ := e.Attr("title")
	assert.Equal(t, "y", v)
}

func TestHostFailureKeepsHierarchyConsistent(t *testing.T) {
	f := newFixture(t)
	p := f.app.Create("div")
	c := f.app.Create("span")

	f.doc.InjectFault("append_child", errors.New("boom"))
	p.AddChild(c)

	assert.Equal(t, []ecs.Entity{c.ID()}, ids(p.Children()))
	assert.Empty(t, nativeChildren(t, p))
	assert.Equal(t, 1, f.logs.FilterMessage("dom operation failed").Len())
}

func TestMissingBodyIsLookedUpOnce(t *testing.T) {
	f := newFixture(t)
	f.doc.InjectFault("body", errors.New("gone"))

	first := f.app.Body()
	entities := f.app.World().Len()
	second := f.app.Body()

	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, entities, f.app.World().Len())
	_, ok := first.Node()
	assert.False(t, ok)

	c := f.app.Create("p")
	f.app.Mount(c)
	assert.Equal(t, []ecs.Entity{c.ID()}, ids(first.Children()))
	assert.Equal(t, 1, f.logs.FilterMessage("dom operation failed").Len())
}

type counter struct{ N int }

func TestResources(t *testing.T) {
	f := newFixture(t)

	_, ok := Resource[counter](f.app)
	assert.False(t, ok)

	RegisterResource(f.app, counter{N: 3})
	c, ok := Resource[counter](f.app)
	require.True(t, ok)
	assert.Equal(t, 3, c.N)

	sheet, ok := Resource[StyleSheet](f.app)
	require.True(t, ok)
	assert.Same(t, f.app.Styles(), sheet.Registry)
}
