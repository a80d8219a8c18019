package css

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type primaryButton struct{}

func TestDeclarationSerialization(t *testing.T) {
	decls := Declarations{
		Prop(Color, Keyword("red")),
		Prop(Margin, Spaced(Px(0), Px(4))),
		Prop(Opacity, Number(0.5)),
		Var("accent", RGB(255, 0, 16)),
		Prop(BackgroundColor, RGBA{R: 1, G: 2, B: 3, A: 0.25}),
	}
	require.Equal(t,
		"color:red;margin:0 4px;opacity:0.5;--accent:#ff0010;background-color:rgba(1,2,3,0.25);",
		decls.String())
}

func TestCanonicalOrderIsSourceIndependent(t *testing.T) {
	a := Inline(Prop(Color, Keyword("red")), Prop(Display, Keyword("flex")), Var("b", Raw("1")), Var("a", Raw("2")))
	b := Inline(Var("a", Raw("2")), Prop(Display, Keyword("flex")), Var("b", Raw("1")), Prop(Color, Keyword("red")))

	require.Equal(t, a.Key(), b.Key())
	require.Equal(t, ".&{display:flex;color:red;--a:2;--b:1;}", a.Key())
}

func TestRenderSubstitutesPlaceholderEverywhere(t *testing.T) {
	s := Inline(Prop(Color, Keyword("red"))).With(
		Hover(Prop(Color, Keyword("blue"))),
		Media("(max-width:600px)", On(Selector{Self(), Descendant, Tag("span")}, Prop(Display, Keyword("none")))),
	)
	require.Equal(t,
		".s-1{color:red;}.s-1:hover{color:blue;}@media (max-width:600px){.s-1 span{display:none;}}",
		s.Render("s-1"))
}

func TestMarkedSelector(t *testing.T) {
	id := TypeID[primaryButton]()
	require.Equal(t, id, TypeID[primaryButton]())
	require.NotEqual(t, id, TypeID[struct{}]())

	s := Style{On(Selector{Marked(id), Combinator(" > "), Self()}, Prop(Color, Keyword("red")))}
	require.Equal(t, "."+MarkClass(id)+" > .x{color:red;}", s.Render("x"))
	require.Regexp(t, `^t-[0-9a-f]+$`, MarkClass(id))
	require.Equal(t, "s-ff", StyleClass(255))
}

func TestLengthZero(t *testing.T) {
	require.Equal(t, "0", Px(0).CSS())
	require.Equal(t, "1.5em", Em(1.5).CSS())
	require.Equal(t, "50%", Percent(50).CSS())
	require.Equal(t, "0ms", Ms(0).CSS())
}
