package style

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/zeusui/internal/core/css"
	"github.com/zeusync/zeusui/internal/host/htmlhost"
)

var (
	red   = css.Inline(css.Prop(css.Color, css.Keyword("red")))
	large = css.Inline(css.Prop(css.FontSize, css.Rem(2)))
)

func headStyles(t *testing.T, w *htmlhost.Window) []string {
	t.Helper()
	head, err := w.Document().Head()
	require.NoError(t, err)
	var out []string
	for _, n := range head.ChildNodes() {
		if n.TagName() == "style" {
			out = append(out, n.TextContent())
		}
	}
	return out
}

func newRegistry(t *testing.T) (*Registry, *htmlhost.Window) {
	t.Helper()
	w := htmlhost.NewWindow()
	r, err := NewRegistry(nil, "default", w)
	require.NoError(t, err)
	return r, w
}

func TestRegisterDeduplicates(t *testing.T) {
	r, w := newRegistry(t)

	a := r.Register(red, 0)
	b := r.Register(css.Inline(css.Prop(css.Color, css.Keyword("red"))), 0)

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "s-"))
	assert.Equal(t, ClassName(red, 0), a)
	require.Len(t, r.Rules(), 1)
	assert.Equal(t, []string{"." + a + "{color:red;}"}, headStyles(t, w))
}

func TestRegisterCanonicalFormsCollide(t *testing.T) {
	r, _ := newRegistry(t)

	s1 := css.Inline(css.Prop(css.Color, css.Keyword("red")), css.Prop(css.Display, css.Keyword("flex")))
	s2 := css.Inline(css.Prop(css.Display, css.Keyword("flex")), css.Prop(css.Color, css.Keyword("red")))

	assert.Equal(t, r.Register(s1, 3), r.Register(s2, 3))
	assert.NotEqual(t, r.Register(s1, 0), r.Register(s1, 1))
	assert.Len(t, r.Rules(), 3)
}

func TestOrdinalsGetOwnSheets(t *testing.T) {
	r, w := newRegistry(t)

	c0 := r.Register(red, 0)
	c2 := r.Register(large, 2)

	sheets := headStyles(t, w)
	require.Len(t, sheets, 3)
	assert.Equal(t, "."+c0+"{color:red;}", sheets[0])
	assert.Empty(t, sheets[1])
	assert.Equal(t, "."+c2+"{font-size:2rem;}", sheets[2])
}

func TestRegisterWindowCopiesExistingRules(t *testing.T) {
	r, w1 := newRegistry(t)
	s := r.Register(red, 0)

	w2 := htmlhost.NewWindow()
	require.NoError(t, r.RegisterWindow(w2, "popup"))
	assert.Equal(t, []string{"default", "popup"}, r.WindowNames())
	require.Len(t, headStyles(t, w2), 1)
	assert.Contains(t, headStyles(t, w2)[0], "."+s+"{color:red;}")

	tc := r.Register(large, 0)
	for _, w := range []*htmlhost.Window{w1, w2} {
		sheets := headStyles(t, w)
		require.Len(t, sheets, 1)
		assert.Contains(t, sheets[0], "."+tc+"{font-size:2rem;}")
	}

	assert.ErrorIs(t, r.RegisterWindow(htmlhost.NewWindow(), "popup"), ErrWindowExists)
}

func TestUnregisterWindow(t *testing.T) {
	r, _ := newRegistry(t)
	w2 := htmlhost.NewWindow()
	require.NoError(t, r.RegisterWindow(w2, "popup"))
	require.NoError(t, r.UnregisterWindow("popup"))
	assert.ErrorIs(t, r.UnregisterWindow("popup"), ErrUnknownWindow)

	r.Register(red, 0)
	assert.Empty(t, headStyles(t, w2))
	assert.Equal(t, []string{"default"}, r.WindowNames())
}

func TestRegisterWindowAfterDefaultIsGone(t *testing.T) {
	r, _ := newRegistry(t)
	a := r.Register(red, 0)
	b := r.Register(large, 1)
	require.NoError(t, r.UnregisterWindow("default"))

	w3 := htmlhost.NewWindow()
	require.NoError(t, r.RegisterWindow(w3, "late"))
	assert.Equal(t, []string{"." + a + "{color:red;}", "." + b + "{font-size:2rem;}"}, headStyles(t, w3))

	c := r.Register(red, 2)
	sheets := headStyles(t, w3)
	require.Len(t, sheets, 3)
	assert.Equal(t, "."+c+"{color:red;}", sheets[2])
}

func TestRegisterSurvivesHostFailure(t *testing.T) {
	w := htmlhost.NewWindow()
	r, err := NewRegistry(nil, "default", w)
	require.NoError(t, err)

	w.HTMLDocument().InjectFault("create_element", errors.New("quota"))
	class := r.Register(red, 0)
	assert.NotEmpty(t, class)
	assert.Len(t, r.Rules(), 1)
	assert.Empty(t, headStyles(t, w))
}

func TestNestedRulesUseClassName(t *testing.T) {
	r, w := newRegistry(t)
	s := css.Inline(css.Prop(css.Color, css.Keyword("red"))).With(
		css.Media("(max-width:600px)", css.Hover(css.Prop(css.Color, css.Keyword("blue")))),
	)
	class := r.Register(s, 0)
	assert.Equal(t,
		[]string{"." + class + "{color:red;}@media (max-width:600px){." + class + ":hover{color:blue;}}"},
		headStyles(t, w))
}
