// Package htmlhost is an in-memory DOM host backed by golang.org/x/net/html.
// It serves tests, server-side tooling and the websocket mirror, which
// replays its mutations to real browsers.
package htmlhost

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/zeusync/zeusui/internal/core/dom"
)

var (
	_ dom.Document = (*Document)(nil)
	_ dom.Window   = (*Window)(nil)
)

const skeleton = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document owns an html.Node tree and the wrappers handed out for its elements.
type Document struct {
	root     *html.Node
	head     *html.Node
	body     *html.Node
	wrappers map[*html.Node]*Node
	faults   map[string][]error
}

// NewDocument parses an empty HTML5 skeleton.
func NewDocument() *Document {
	root, err := html.Parse(strings.NewReader(skeleton))
	if err != nil {
		panic(fmt.Sprintf("htmlhost: parse skeleton: %v", err))
	}
	d := &Document{
		root:     root,
		wrappers: make(map[*html.Node]*Node),
		faults:   make(map[string][]error),
	}
	d.head = findElement(root, atom.Head)
	d.body = findElement(root, atom.Body)
	return d
}

func (d *Document) CreateElement(tag string) (dom.Node, error) {
	return d.CreateElementNS(dom.NamespaceHTML, tag)
}

func (d *Document) CreateElementNS(namespace, tag string) (dom.Node, error) {
	if err := d.fault("create_element"); err != nil {
		return nil, err
	}
	if tag == "" {
		return nil, fmt.Errorf("%w: empty tag", dom.ErrInvalidName)
	}
	n := &html.Node{Type: html.ElementNode, Data: tag}
	switch namespace {
	case dom.NamespaceSVG:
		n.Namespace = "svg"
	case dom.NamespaceHTML, "":
		n.Data = strings.ToLower(tag)
		n.DataAtom = atom.Lookup([]byte(n.Data))
	default:
		n.Namespace = namespace
	}
	return d.wrap(n), nil
}

func (d *Document) Head() (dom.Node, error) {
	if err := d.fault("head"); err != nil {
		return nil, err
	}
	if d.head == nil {
		return nil, dom.ErrNoHead
	}
	return d.wrap(d.head), nil
}

func (d *Document) Body() (dom.Node, error) {
	if err := d.fault("body"); err != nil {
		return nil, err
	}
	if d.body == nil {
		return nil, dom.ErrNoBody
	}
	return d.wrap(d.body), nil
}

// InjectFault makes the next call of op fail with err. Ops are the snake_case
// names of the host contract: "append_child", "insert_before", "remove",
// "replace_with", "set_attribute", "remove_attribute", "set_text_content",
// "add_event_listener", "create_element", "head", "body".
func (d *Document) InjectFault(op string, err error) {
	d.faults[op] = append(d.faults[op], err)
}

func (d *Document) fault(op string) error {
	queue := d.faults[op]
	if len(queue) == 0 {
		return nil
	}
	err := queue[0]
	d.faults[op] = queue[1:]
	return err
}

// Render writes the whole document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// RenderNode renders a single node and its subtree.
func RenderNode(n dom.Node) string {
	hn, ok := n.(*Node)
	if !ok {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, hn.n); err != nil {
		return ""
	}
	return buf.String()
}

// String renders the document, ignoring errors.
func (d *Document) String() string {
	var buf bytes.Buffer
	_ = d.Render(&buf)
	return buf.String()
}

func (d *Document) wrap(n *html.Node) *Node {
	if w, ok := d.wrappers[n]; ok {
		return w
	}
	w := &Node{doc: d, n: n, listeners: make(map[string][]*listener)}
	d.wrappers[n] = w
	return w
}

func (d *Document) own(n dom.Node) (*Node, error) {
	hn, ok := n.(*Node)
	if !ok || hn.doc != d {
		return nil, dom.ErrForeignNode
	}
	return hn, nil
}

// Window is a browsing context around a Document.
type Window struct {
	doc *Document
}

func NewWindow() *Window {
	return &Window{doc: NewDocument()}
}

func (w *Window) Document() dom.Document { return w.doc }

// HTMLDocument returns the concrete document for rendering and event dispatch.
func (w *Window) HTMLDocument() *Document { return w.doc }

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
