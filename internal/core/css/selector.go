package css

import "strings"

// SelectorPart is one component of a selector. self is the class name that
// replaces the class placeholder.
type SelectorPart interface {
	selectorCSS(self string) string
}

// Selector is rendered by concatenating its parts.
type Selector []SelectorPart

func (s Selector) render(self string) string {
	var b strings.Builder
	for _, p := range s {
		b.WriteString(p.selectorCSS(self))
	}
	return b.String()
}

type selfPart struct{}

func (selfPart) selectorCSS(self string) string { return "." + self }

// Self is the class placeholder, substituted with the generated class name.
func Self() SelectorPart { return selfPart{} }

type classPart string

func (c classPart) selectorCSS(string) string { return "." + string(c) }

// Class matches a literal class name.
func Class(name string) SelectorPart { return classPart(name) }

type rawPart string

func (r rawPart) selectorCSS(string) string { return string(r) }

// Tag matches an element name.
func Tag(name string) SelectorPart { return rawPart(name) }

// Pseudo appends a pseudo-class or pseudo-element such as ":hover".
func Pseudo(p string) SelectorPart { return rawPart(p) }

// Combinator joins compound selectors: " ", " > ", " + ", " ~ ".
func Combinator(c string) SelectorPart { return rawPart(c) }

// Descendant and ChildOf are the common combinators.
var (
	Descendant = Combinator(" ")
	ChildOf    = Combinator(">")
	AnyOf      = Combinator(",")
)

// Marked matches elements carrying the mark of type id typeID.
func Marked(typeID uint64) SelectorPart { return classPart(MarkClass(typeID)) }
