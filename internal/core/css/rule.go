package css

import "strings"

// Rule is either a style rule or an at-rule wrapping nested rules.
type Rule interface {
	writeCSS(b *strings.Builder, self string)
	canonical() Rule
}

// StyleRule serializes as "selector{decl;decl;}".
type StyleRule struct {
	Selector Selector
	Decls    Declarations
}

func (r StyleRule) writeCSS(b *strings.Builder, self string) {
	b.WriteString(r.Selector.render(self))
	b.WriteByte('{')
	b.WriteString(r.Decls.String())
	b.WriteByte('}')
}

func (r StyleRule) canonical() Rule {
	return StyleRule{Selector: r.Selector, Decls: r.Decls.Canonical()}
}

// MediaRule serializes as "@media query{rules}".
type MediaRule struct {
	Query string
	Rules Style
}

func (r MediaRule) writeCSS(b *strings.Builder, self string) {
	b.WriteString("@media ")
	b.WriteString(r.Query)
	b.WriteByte('{')
	for _, inner := range r.Rules {
		inner.writeCSS(b, self)
	}
	b.WriteByte('}')
}

func (r MediaRule) canonical() Rule {
	return MediaRule{Query: r.Query, Rules: r.Rules.Canonical()}
}

// Style is an ordered list of rules registered together under one class.
type Style []Rule

// Inline is the common case: declarations applied to the element itself.
func Inline(decls ...Declaration) Style {
	return Style{StyleRule{Selector: Selector{Self()}, Decls: decls}}
}

// On targets a selector built around the placeholder, e.g. On(Selector{Self(), Pseudo(":hover")}, ...).
func On(sel Selector, decls ...Declaration) StyleRule {
	return StyleRule{Selector: sel, Decls: decls}
}

// Hover targets the element while hovered.
func Hover(decls ...Declaration) StyleRule {
	return On(Selector{Self(), Pseudo(":hover")}, decls...)
}

// Media wraps rules in a media query.
func Media(query string, rules ...Rule) MediaRule {
	return MediaRule{Query: query, Rules: rules}
}

// With appends rules to a copy of s.
func (s Style) With(rules ...Rule) Style {
	out := make(Style, 0, len(s)+len(rules))
	out = append(out, s...)
	return append(out, rules...)
}

// Canonical sorts the declarations of every rule, nested rules included.
// Rule order is preserved since it is significant for the cascade.
func (s Style) Canonical() Style {
	out := make(Style, len(s))
	for i, r := range s {
		out[i] = r.canonical()
	}
	return out
}

// Render serializes s with the placeholder replaced by the class name self.
func (s Style) Render(self string) string {
	var b strings.Builder
	for _, r := range s {
		r.writeCSS(&b, self)
	}
	return b.String()
}

// Placeholder is the stand-in class name used to serialize a style before
// its class name is known.
const Placeholder = "&"

// Key is the canonical serialization of s with the placeholder left in place.
// Semantically equal styles have equal keys.
func (s Style) Key() string {
	return s.Canonical().Render(Placeholder)
}
