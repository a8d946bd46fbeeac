package scene

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Pointer event types understood by chart elements.
const (
	EventPointerEnter = "pointerenter"
	EventPointerMove  = "pointermove"
	EventPointerLeave = "pointerleave"
)

// Event is a pointer event delivered to an element.
// X and Y are relative to the element's own coordinate system.
type Event struct {
	Type string
	X, Y float64
}

// Handler reacts to an Event.
type Handler func(Event)

type property struct {
	name  string
	value string
}

// Element is a node in the scene tree.
type Element struct {
	Tag string

	attrs    []property
	styles   []property
	text     string
	html     string
	children []*Element
	parent   *Element
	handlers map[string][]Handler
}

// New returns a detached element with the given tag.
func New(tag string) *Element {
	return &Element{Tag: tag}
}

// Append creates a child element and returns it.
func (e *Element) Append(tag string) *Element {
	child := New(tag)
	child.parent = e
	e.children = append(e.children, child)
	return child
}

// Parent returns the element's parent, or nil if it is detached.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the element's children in document order.
func (e *Element) Children() []*Element { return e.children }

// Remove detaches e from its parent. Removing a detached element is a no-op.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	p := e.parent
	p.children = slices.DeleteFunc(p.children, func(c *Element) bool { return c == e })
	e.parent = nil
}

// Attr sets an attribute. Numbers are formatted without trailing zeros.
func (e *Element) Attr(name string, value any) *Element {
	e.attrs = setProperty(e.attrs, name, format(value))
	return e
}

// AttrValue returns an attribute value and whether it is set.
func (e *Element) AttrValue(name string) (string, bool) {
	return getProperty(e.attrs, name)
}

// Float returns a numeric attribute, or 0 if it is missing or not a number.
func (e *Element) Float(name string) float64 {
	v, _ := e.AttrValue(name)
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

// Attrs returns the attributes in the order they were first set.
func (e *Element) Attrs() [][2]string {
	return pairs(e.attrs)
}

// Style sets an inline style property.
func (e *Element) Style(name string, value any) *Element {
	e.styles = setProperty(e.styles, name, format(value))
	return e
}

// StyleValue returns a style value and whether it is set.
func (e *Element) StyleValue(name string) (string, bool) {
	return getProperty(e.styles, name)
}

// Styles returns the inline styles in the order they were first set.
func (e *Element) Styles() [][2]string {
	return pairs(e.styles)
}

// SetText replaces the element's text content.
func (e *Element) SetText(s string) *Element {
	e.text, e.html = s, ""
	return e
}

// Text returns the element's text content.
func (e *Element) Text() string { return e.text }

// SetHTML replaces the element's content with raw markup.
func (e *Element) SetHTML(s string) *Element {
	e.html, e.text = s, ""
	return e
}

// HTML returns the element's raw markup content.
func (e *Element) HTML() string { return e.html }

// HasClass reports whether the element's class list contains name.
func (e *Element) HasClass(name string) bool {
	v, _ := e.AttrValue("class")
	return slices.Contains(strings.Fields(v), name)
}

// On registers a handler for an event type.
func (e *Element) On(event string, h Handler) *Element {
	if e.handlers == nil {
		e.handlers = make(map[string][]Handler)
	}
	e.handlers[event] = append(e.handlers[event], h)
	return e
}

// Listens reports whether any handler is registered for event.
func (e *Element) Listens(event string) bool {
	return len(e.handlers[event]) > 0
}

// Dispatch delivers ev to the element's handlers for ev.Type.
// Events do not bubble.
func (e *Element) Dispatch(ev Event) {
	for _, h := range e.handlers[ev.Type] {
		h(ev)
	}
}

// Select returns the first descendant matching selector, or nil.
func (e *Element) Select(selector string) *Element {
	m := parseSelector(selector)
	var found *Element
	e.walk(func(el *Element) bool {
		if el != e && m.matches(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

// SelectAll returns every descendant matching selector in document order.
func (e *Element) SelectAll(selector string) []*Element {
	m := parseSelector(selector)
	var out []*Element
	e.walk(func(el *Element) bool {
		if el != e && m.matches(el) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// Hidden reports whether the element or any ancestor has display:none.
func (e *Element) Hidden() bool {
	for el := e; el != nil; el = el.parent {
		if v, ok := el.StyleValue("display"); ok && v == "none" {
			return true
		}
	}
	return false
}

// walk visits e and its descendants depth-first until fn returns false.
func (e *Element) walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

type selector struct {
	tag   string
	class string
}

func parseSelector(s string) selector {
	tag, class, _ := strings.Cut(s, ".")
	return selector{tag: tag, class: class}
}

func (s selector) matches(e *Element) bool {
	if s.tag != "" && e.Tag != s.tag {
		return false
	}
	return s.class == "" || e.HasClass(s.class)
}

func setProperty(props []property, name, value string) []property {
	for i := range props {
		if props[i].name == name {
			props[i].value = value
			return props
		}
	}
	return append(props, property{name, value})
}

func getProperty(props []property, name string) (string, bool) {
	for _, p := range props {
		if p.name == name {
			return p.value, true
		}
	}
	return "", false
}

func pairs(props []property) [][2]string {
	out := make([][2]string, len(props))
	for i, p := range props {
		out[i] = [2]string{p.name, p.value}
	}
	return out
}

func format(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}
