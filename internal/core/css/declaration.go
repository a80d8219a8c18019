package css

import (
	"cmp"
	"slices"
	"strings"
)

// Declaration is one property assignment. Name is only used by Custom kinds.
type Declaration struct {
	Kind  PropertyKind
	Name  string
	Value Value
}

// Prop declares a known property.
func Prop(kind PropertyKind, value Value) Declaration {
	return Declaration{Kind: kind, Value: value}
}

// Var declares a custom property; name may omit the leading "--".
func Var(name string, value Value) Declaration {
	if !strings.HasPrefix(name, "--") {
		name = "--" + name
	}
	return Declaration{Kind: Custom, Name: name, Value: value}
}

func (d Declaration) PropertyName() string {
	if d.Kind == Custom {
		return d.Name
	}
	return d.Kind.String()
}

// String renders "name:value;" without whitespace.
func (d Declaration) String() string {
	value := ""
	if d.Value != nil {
		value = d.Value.CSS()
	}
	return d.PropertyName() + ":" + value + ";"
}

// Declarations is an ordered property list, e.g. an inline style attribute.
type Declarations []Declaration

func (ds Declarations) String() string {
	var b strings.Builder
	for _, d := range ds {
		b.WriteString(d.String())
	}
	return b.String()
}

// Canonical returns a copy sorted by property kind, custom properties by name.
// The sort is stable so repeated kinds keep their relative order.
func (ds Declarations) Canonical() Declarations {
	out := slices.Clone(ds)
	slices.SortStableFunc(out, compareDeclarations)
	return out
}

func compareDeclarations(a, b Declaration) int {
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	if a.Kind == Custom {
		return cmp.Compare(a.Name, b.Name)
	}
	return 0
}
