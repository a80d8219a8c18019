package css

import (
	"fmt"
	"strconv"
	"strings"
)

// PropertyKind identifies a CSS property. The numeric order of kinds is the
// canonical declaration order used before hashing styles.
type PropertyKind uint16

const (
	Display PropertyKind = iota + 1
	Position
	Top
	Right
	Bottom
	Left
	ZIndex
	BoxSizing
	Width
	MinWidth
	MaxWidth
	Height
	MinHeight
	MaxHeight
	Margin
	MarginTop
	MarginRight
	MarginBottom
	MarginLeft
	Padding
	PaddingTop
	PaddingRight
	PaddingBottom
	PaddingLeft
	FlexDirection
	FlexWrap
	FlexGrow
	FlexShrink
	FlexBasis
	JustifyContent
	AlignItems
	AlignSelf
	Gap
	GridTemplateColumns
	GridTemplateRows
	Overflow
	Border
	BorderRadius
	BorderColor
	BorderWidth
	BorderStyle
	Background
	BackgroundColor
	Color
	Opacity
	FontFamily
	FontSize
	FontWeight
	FontStyle
	LineHeight
	TextAlign
	TextDecoration
	WhiteSpace
	Cursor
	PointerEvents
	UserSelect
	Transform
	Transition
	BoxShadow
	Visibility
	Fill
	Stroke
	StrokeWidth

	// Custom properties sort after every known kind, then by name.
	Custom PropertyKind = 0xFFFF
)

var propertyNames = map[PropertyKind]string{
	Display:             "display",
	Position:            "position",
	Top:                 "top",
	Right:               "right",
	Bottom:              "bottom",
	Left:                "left",
	ZIndex:              "z-index",
	BoxSizing:           "box-sizing",
	Width:               "width",
	MinWidth:            "min-width",
	MaxWidth:            "max-width",
	Height:              "height",
	MinHeight:           "min-height",
	MaxHeight:           "max-height",
	Margin:              "margin",
	MarginTop:           "margin-top",
	MarginRight:         "margin-right",
	MarginBottom:        "margin-bottom",
	MarginLeft:          "margin-left",
	Padding:             "padding",
	PaddingTop:          "padding-top",
	PaddingRight:        "padding-right",
	PaddingBottom:       "padding-bottom",
	PaddingLeft:         "padding-left",
	FlexDirection:       "flex-direction",
	FlexWrap:            "flex-wrap",
	FlexGrow:            "flex-grow",
	FlexShrink:          "flex-shrink",
	FlexBasis:           "flex-basis",
	JustifyContent:      "justify-content",
	AlignItems:          "align-items",
	AlignSelf:           "align-self",
	Gap:                 "gap",
	GridTemplateColumns: "grid-template-columns",
	GridTemplateRows:    "grid-template-rows",
	Overflow:            "overflow",
	Border:              "border",
	BorderRadius:        "border-radius",
	BorderColor:         "border-color",
	BorderWidth:         "border-width",
	BorderStyle:         "border-style",
	Background:          "background",
	BackgroundColor:     "background-color",
	Color:               "color",
	Opacity:             "opacity",
	FontFamily:          "font-family",
	FontSize:            "font-size",
	FontWeight:          "font-weight",
	FontStyle:           "font-style",
	LineHeight:          "line-height",
	TextAlign:           "text-align",
	TextDecoration:      "text-decoration",
	WhiteSpace:          "white-space",
	Cursor:              "cursor",
	PointerEvents:       "pointer-events",
	UserSelect:          "user-select",
	Transform:           "transform",
	Transition:          "transition",
	BoxShadow:           "box-shadow",
	Visibility:          "visibility",
	Fill:                "fill",
	Stroke:              "stroke",
	StrokeWidth:         "stroke-width",
}

func (k PropertyKind) String() string {
	if name, ok := propertyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("property(%d)", uint16(k))
}

// Value is an opaque CSS value token with a deterministic textual form.
type Value interface {
	CSS() string
}

// Keyword is an identifier value such as "flex" or "none".
type Keyword string

func (k Keyword) CSS() string { return string(k) }

// Raw is passed through verbatim.
type Raw string

func (r Raw) CSS() string { return string(r) }

// Number is a unitless number.
type Number float64

func (n Number) CSS() string { return formatFloat(float64(n)) }

type Unit string

const (
	UnitPx      Unit = "px"
	UnitEm      Unit = "em"
	UnitRem     Unit = "rem"
	UnitPercent Unit = "%"
	UnitVw      Unit = "vw"
	UnitVh      Unit = "vh"
	UnitMs      Unit = "ms"
	UnitS       Unit = "s"
	UnitDeg     Unit = "deg"
)

// Length is a number with a unit. Zero serializes without unit.
type Length struct {
	N    float64
	Unit Unit
}

func (l Length) CSS() string {
	if l.N == 0 && l.Unit != UnitMs && l.Unit != UnitS {
		return "0"
	}
	return formatFloat(l.N) + string(l.Unit)
}

func Px(n float64) Length      { return Length{N: n, Unit: UnitPx} }
func Em(n float64) Length      { return Length{N: n, Unit: UnitEm} }
func Rem(n float64) Length     { return Length{N: n, Unit: UnitRem} }
func Percent(n float64) Length { return Length{N: n, Unit: UnitPercent} }
func Vw(n float64) Length      { return Length{N: n, Unit: UnitVw} }
func Vh(n float64) Length      { return Length{N: n, Unit: UnitVh} }
func Ms(n float64) Length      { return Length{N: n, Unit: UnitMs} }

// RGBA is a color; A is in [0,1].
type RGBA struct {
	R, G, B uint8
	A       float64
}

func RGB(r, g, b uint8) RGBA { return RGBA{R: r, G: g, B: b, A: 1} }

func (c RGBA) CSS() string {
	if c.A >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, formatFloat(c.A))
}

// List joins values with a separator, e.g. a font stack or a shorthand.
type List struct {
	Sep    string
	Values []Value
}

func Spaced(values ...Value) List { return List{Sep: " ", Values: values} }
func Comma(values ...Value) List  { return List{Sep: ",", Values: values} }

func (l List) CSS() string {
	parts := make([]string, len(l.Values))
	for i, v := range l.Values {
		parts[i] = v.CSS()
	}
	return strings.Join(parts, l.Sep)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
