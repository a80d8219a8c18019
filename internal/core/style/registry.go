// Package style turns css.Style values into synthetic class names and keeps
// the generated rules installed in every registered window.
package style

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/zeusui/internal/core/css"
	"github.com/zeusync/zeusui/internal/core/dom"
	"github.com/zeusync/zeusui/internal/core/observability/log"
)

// Inserted describes a rule the registry has installed.
type Inserted struct {
	ID      uint64
	Class   string
	Ordinal int
	CSS     string
}

type window struct {
	name  string
	doc   dom.Document
	sinks []dom.Node
}

// Registry deduplicates styles by canonical form and ordinal. Every ordinal
// owns one <style> element per window so that later ordinals win the cascade.
// A Registry is not safe for concurrent use; it lives on the UI goroutine.
type Registry struct {
	log         log.Log
	defaultName string
	inserted    map[uint64]string
	rules       []Inserted
	windows     map[string]*window
	order       []string
}

// NewRegistry creates a registry and registers w under defaultName.
func NewRegistry(logger log.Log, defaultName string, w dom.Window) (*Registry, error) {
	if logger == nil {
		logger = log.NewNop()
	}
	r := &Registry{
		log:         logger.Named("style"),
		defaultName: defaultName,
		inserted:    make(map[uint64]string),
		windows:     make(map[string]*window),
	}
	if err := r.RegisterWindow(w, defaultName); err != nil {
		return nil, err
	}
	return r, nil
}

// ID hashes the canonical form of s together with ordinal.
func ID(s css.Style, ordinal int) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(s.Key())
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(ordinal))
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// ClassName returns the class s would be registered under, without inserting it.
func ClassName(s css.Style, ordinal int) string {
	return css.StyleClass(ID(s, ordinal))
}

// Register returns the class name for (s, ordinal), installing the rule into
// every window the first time the pair is seen.
func (r *Registry) Register(s css.Style, ordinal int) string {
	if ordinal < 0 {
		ordinal = 0
	}
	id := ID(s, ordinal)
	if class, ok := r.inserted[id]; ok {
		return class
	}

	class := css.StyleClass(id)
	text := s.Canonical().Render(class)
	for _, name := range r.order {
		r.appendRule(r.windows[name], ordinal, text)
	}

	r.inserted[id] = class
	r.rules = append(r.rules, Inserted{ID: id, Class: class, Ordinal: ordinal, CSS: text})
	r.log.Debug("style registered",
		log.String("class", class),
		log.Int("ordinal", ordinal),
	)
	return class
}

// RegisterWindow adds a window and copies every rule inserted so far into it.
func (r *Registry) RegisterWindow(w dom.Window, name string) error {
	if w == nil {
		return ErrNilWindow
	}
	if _, ok := r.windows[name]; ok {
		return fmt.Errorf("%w: %q", ErrWindowExists, name)
	}

	win := &window{name: name, doc: w.Document()}
	var sheets []string
	for _, rule := range r.rules {
		for len(sheets) <= rule.Ordinal {
			sheets = append(sheets, "")
		}
		sheets[rule.Ordinal] += rule.CSS
	}
	if err := r.ensureSinks(win, len(sheets)); err != nil {
		return fmt.Errorf("register window %q: %w", name, err)
	}
	for i, text := range sheets {
		if err := win.sinks[i].SetTextContent(text); err != nil {
			return fmt.Errorf("register window %q: %w", name, err)
		}
	}

	r.windows[name] = win
	r.order = append(r.order, name)
	r.log.Info("window registered", log.String("window", name), log.Int("sheets", len(win.sinks)))
	return nil
}

// UnregisterWindow forgets a window. Its <style> elements are left in place.
func (r *Registry) UnregisterWindow(name string) error {
	if _, ok := r.windows[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWindow, name)
	}
	delete(r.windows, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.log.Info("window unregistered", log.String("window", name))
	return nil
}

// Rules lists inserted rules in insertion order.
func (r *Registry) Rules() []Inserted {
	return append([]Inserted(nil), r.rules...)
}

// WindowNames lists registered windows in registration order.
func (r *Registry) WindowNames() []string {
	return append([]string(nil), r.order...)
}

// DefaultWindow is the name the window given to NewRegistry was registered under.
func (r *Registry) DefaultWindow() string {
	return r.defaultName
}

func (r *Registry) appendRule(win *window, ordinal int, text string) {
	if err := r.ensureSinks(win, ordinal+1); err != nil {
		r.log.Error("style sink unavailable",
			log.String("window", win.name),
			log.Int("ordinal", ordinal),
			log.Error(err),
		)
		return
	}
	sink := win.sinks[ordinal]
	if err := sink.SetTextContent(sink.TextContent() + text); err != nil {
		r.log.Error("style append failed",
			log.String("op", "set_text_content"),
			log.String("window", win.name),
			log.Error(err),
		)
	}
}

// ensureSinks creates <style> elements in the head until there are n.
func (r *Registry) ensureSinks(win *window, n int) error {
	if len(win.sinks) >= n {
		return nil
	}
	head, err := win.doc.Head()
	if err != nil {
		return err
	}
	for len(win.sinks) < n {
		el, err := win.doc.CreateElement("style")
		if err != nil {
			return err
		}
		if err := head.AppendChild(el); err != nil {
			return err
		}
		win.sinks = append(win.sinks, el)
	}
	return nil
}
