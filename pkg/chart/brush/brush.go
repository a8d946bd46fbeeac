// Package brush implements a horizontal range-selection widget.
//
// A brush draws an invisible overlay across its extent and a shaded selection
// rectangle with west and east handles. The selection can be set
// programmatically with [Brush.Move] or interactively with the pointer-driven
// [Brush.Start], [Brush.Drag] and [Brush.End] calls. Every change emits
// events to the registered handlers:
//
//   - "start": a gesture or programmatic move begins
//   - "brush": the selection changed
//   - "end":   the gesture finished
package brush

import (
	"github.com/matzehuels/linechart/pkg/chart/scene"
)

// Event types emitted by a brush.
const (
	EventStart = "start"
	EventBrush = "brush"
	EventEnd   = "end"
)

// handleWidth is the pixel width of the resize handles.
const handleWidth = 6

// Event describes a selection change. Selection is empty (ok == false) when
// the user cleared the brush.
type Event struct {
	Type      string
	Selection [2]float64
	Empty     bool
	// Programmatic is true for changes made through Move rather than a gesture.
	Programmatic bool
}

// Handler reacts to brush events.
type Handler func(Event)

type mode int

const (
	modeNone mode = iota
	modeMove
	modeWest
	modeEast
	modeNew
)

// Brush is a horizontal (x-only) brush.
type Brush struct {
	x0, y0, x1, y1 float64

	selection [2]float64
	empty     bool
	handlers  map[string][]Handler

	group *scene.Element

	mode   mode
	anchor float64
	origin [2]float64
}

// NewX returns a horizontal brush with an empty selection.
func NewX() *Brush {
	return &Brush{empty: true, handlers: make(map[string][]Handler)}
}

// Extent sets the brushable area as [[x0, y0], [x1, y1]].
func (b *Brush) Extent(x0, y0, x1, y1 float64) *Brush {
	b.x0, b.y0, b.x1, b.y1 = x0, y0, x1, y1
	return b
}

// On registers a handler for an event type.
func (b *Brush) On(event string, h Handler) *Brush {
	b.handlers[event] = append(b.handlers[event], h)
	return b
}

// Selection returns the current selection in pixels and whether one exists.
func (b *Brush) Selection() ([2]float64, bool) {
	return b.selection, !b.empty
}

// Render draws the brush into g. It must be called before Move.
func (b *Brush) Render(g *scene.Element) {
	b.group = g
	g.Attr("class", "brush").
		Attr("fill", "none").
		Attr("pointer-events", "all")

	g.Append("rect").
		Attr("class", "overlay").
		Attr("pointer-events", "all").
		Attr("cursor", "crosshair").
		Attr("x", b.x0).
		Attr("y", b.y0).
		Attr("width", b.x1-b.x0).
		Attr("height", b.y1-b.y0)

	g.Append("rect").
		Attr("class", "selection").
		Attr("cursor", "move").
		Attr("fill", "#777").
		Attr("fill-opacity", 0.3).
		Attr("stroke", "#fff").
		Attr("shape-rendering", "crispEdges").
		Style("display", "none")

	for _, side := range []string{"w", "e"} {
		g.Append("rect").
			Attr("class", "handle handle--"+side).
			Attr("cursor", "ew-resize").
			Style("display", "none")
	}
}

// Move sets the selection programmatically, emitting start, brush and end.
// A nil selection clears the brush.
func (b *Brush) Move(sel *[2]float64) {
	b.emit(EventStart, true)
	if sel == nil {
		b.empty = true
	} else {
		b.selection = b.clamp(sel[0], sel[1])
		b.empty = false
	}
	b.redraw()
	b.emit(EventBrush, true)
	b.emit(EventEnd, true)
}

// Start begins a pointer gesture at pixel x. Pressing inside the selection
// moves it, on a handle resizes it, and anywhere else starts a new selection.
func (b *Brush) Start(x float64) {
	x = b.clampX(x)
	b.anchor = x
	b.origin = b.selection

	switch {
	case !b.empty && near(x, b.selection[0]):
		b.mode = modeWest
	case !b.empty && near(x, b.selection[1]):
		b.mode = modeEast
	case !b.empty && x > b.selection[0] && x < b.selection[1]:
		b.mode = modeMove
	default:
		b.mode = modeNew
		b.selection = [2]float64{x, x}
		b.empty = false
	}
	b.redraw()
	b.emit(EventStart, false)
}

// Drag updates the selection for a pointer at pixel x during a gesture.
func (b *Brush) Drag(x float64) {
	if b.mode == modeNone {
		return
	}
	x = b.clampX(x)

	switch b.mode {
	case modeMove:
		width := b.origin[1] - b.origin[0]
		lo := min(max(b.origin[0]+x-b.anchor, b.x0), b.x1-width)
		b.selection = [2]float64{lo, lo + width}
	case modeWest:
		b.selection = b.clamp(x, b.origin[1])
	case modeEast:
		b.selection = b.clamp(b.origin[0], x)
	case modeNew:
		b.selection = b.clamp(b.anchor, x)
	}
	b.redraw()
	b.emit(EventBrush, false)
}

// End finishes the current gesture. A zero-width selection clears the brush.
func (b *Brush) End() {
	if b.mode == modeNone {
		return
	}
	b.mode = modeNone
	if b.selection[0] == b.selection[1] {
		b.empty = true
		b.redraw()
	}
	b.emit(EventEnd, false)
}

func (b *Brush) emit(event string, programmatic bool) {
	ev := Event{Type: event, Selection: b.selection, Empty: b.empty, Programmatic: programmatic}
	for _, h := range b.handlers[event] {
		h(ev)
	}
}

func (b *Brush) redraw() {
	if b.group == nil {
		return
	}
	sel := b.group.Select("rect.selection")
	west := b.group.Select("rect.handle--w")
	east := b.group.Select("rect.handle--e")

	if b.empty {
		for _, r := range []*scene.Element{sel, west, east} {
			r.Style("display", "none")
		}
		return
	}

	height := b.y1 - b.y0
	sel.Style("display", "unset").
		Attr("x", b.selection[0]).
		Attr("y", b.y0).
		Attr("width", b.selection[1]-b.selection[0]).
		Attr("height", height)

	for i, r := range []*scene.Element{west, east} {
		r.Style("display", "unset").
			Attr("x", b.selection[i]-handleWidth/2).
			Attr("y", b.y0-handleWidth/2).
			Attr("width", handleWidth).
			Attr("height", height+handleWidth)
	}
}

func (b *Brush) clamp(a, c float64) [2]float64 {
	a, c = b.clampX(a), b.clampX(c)
	if a > c {
		a, c = c, a
	}
	return [2]float64{a, c}
}

func (b *Brush) clampX(x float64) float64 {
	return min(max(x, b.x0), b.x1)
}

func near(x, edge float64) bool {
	d := x - edge
	return d >= -handleWidth/2 && d <= handleWidth/2
}
