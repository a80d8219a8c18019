package dom

import "strings"

// Kind is the concrete element variant. Tags outside the known set map to
// KindOther and keep their name in the component that carries the kind.
type Kind uint8

const (
	KindOther Kind = iota
	KindDiv
	KindSpan
	KindParagraph
	KindAnchor
	KindButton
	KindInput
	KindTextArea
	KindSelect
	KindOption
	KindLabel
	KindForm
	KindImage
	KindList
	KindListItem
	KindHeading
	KindStyle
	KindSVG
	KindSVGPath
	KindSVGGroup
	KindSVGCircle
	KindSVGRect
	KindSVGOther
)

var htmlKinds = map[string]Kind{
	"div":      KindDiv,
	"span":     KindSpan,
	"p":        KindParagraph,
	"a":        KindAnchor,
	"button":   KindButton,
	"input":    KindInput,
	"textarea": KindTextArea,
	"select":   KindSelect,
	"option":   KindOption,
	"label":    KindLabel,
	"form":     KindForm,
	"img":      KindImage,
	"ul":       KindList,
	"ol":       KindList,
	"li":       KindListItem,
	"h1":       KindHeading,
	"h2":       KindHeading,
	"h3":       KindHeading,
	"h4":       KindHeading,
	"h5":       KindHeading,
	"h6":       KindHeading,
	"style":    KindStyle,
}

var svgKinds = map[string]Kind{
	"svg":    KindSVG,
	"path":   KindSVGPath,
	"g":      KindSVGGroup,
	"circle": KindSVGCircle,
	"rect":   KindSVGRect,
}

// KindOf classifies a tag in a namespace.
func KindOf(namespace, tag string) Kind {
	tag = strings.ToLower(tag)
	if namespace == NamespaceSVG {
		if k, ok := svgKinds[tag]; ok {
			return k
		}
		return KindSVGOther
	}
	return htmlKinds[tag]
}

// IsFormControl reports kinds that carry a user-editable value.
func (k Kind) IsFormControl() bool {
	return k == KindInput || k == KindTextArea || k == KindSelect
}

// IsSVG reports kinds from the SVG namespace.
func (k Kind) IsSVG() bool {
	return k >= KindSVG
}
