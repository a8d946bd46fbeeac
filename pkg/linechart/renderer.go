package linechart

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/linechart/pkg/chart/axis"
	"github.com/matzehuels/linechart/pkg/chart/brush"
	"github.com/matzehuels/linechart/pkg/chart/scene"
	"github.com/matzehuels/linechart/pkg/chart/shape"
	"github.com/matzehuels/linechart/pkg/dataset"
	"github.com/matzehuels/linechart/pkg/observability"
)

// State is the renderer's display state.
type State int

const (
	StateIdle State = iota
	StateDrawn
	StateHovering
	StateBrushing
)

func (s State) String() string {
	switch s {
	case StateDrawn:
		return "drawn"
	case StateHovering:
		return "hovering"
	case StateBrushing:
		return "brushing"
	default:
		return "idle"
	}
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for redraw and brush diagnostics.
func WithLogger(l *log.Logger) Option { return func(r *Renderer) { r.logger = l } }

// WithLayout overrides the chart metrics. Zero fields keep their defaults.
func WithLayout(l Layout) Option { return func(r *Renderer) { r.layout = l.WithDefaults() } }

// WithID sets the instance id used to namespace element ids.
func WithID(id string) Option { return func(r *Renderer) { r.id = id } }

// WithOrigin supplies the on-screen position of the primary plot's top-left
// corner. The tooltip is positioned relative to it. By default the plot is
// assumed to sit at its margin offset from the page origin.
func WithOrigin(fn func() (x, y float64)) Option { return func(r *Renderer) { r.origin = fn } }

// Renderer draws the primary and summary charts into two containers and
// manages hover and brush interaction. It is not safe for concurrent use;
// like the event loop that drives it, all calls must come from one goroutine.
type Renderer struct {
	chart   *scene.Element
	summary *scene.Element

	layout Layout
	logger *log.Logger
	id     string
	origin func() (float64, float64)

	state   State
	gen     int
	ctx     *Context
	surface *scene.Element
	tooltip *scene.Element
	brush   *brush.Brush
	focus   *dataset.CategorySummary
}

// New returns a renderer that draws into chart and summary.
func New(chart, summary *scene.Element, opts ...Option) *Renderer {
	r := &Renderer{
		chart:   chart,
		summary: summary,
		layout:  DefaultLayout(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if r.id == "" {
		r.id = uuid.NewString()
	}
	if r.origin == nil {
		r.origin = func() (float64, float64) { return r.layout.Margin.Left, r.layout.Margin.Top }
	}
	return r
}

// ID returns the renderer's instance id.
func (r *Renderer) ID() string { return r.id }

// Chart returns the primary chart container.
func (r *Renderer) Chart() *scene.Element { return r.chart }

// Summary returns the summary chart container.
func (r *Renderer) Summary() *scene.Element { return r.summary }

// Layout returns the metrics the renderer draws with.
func (r *Renderer) Layout() Layout { return r.layout }

// State returns the current display state.
func (r *Renderer) State() State { return r.state }

// Context returns the context of the current render, or nil when idle.
func (r *Renderer) Context() *Context { return r.ctx }

// Surface returns the element that receives pointer events, or nil when idle.
func (r *Renderer) Surface() *scene.Element { return r.surface }

// Tooltip returns the tooltip element, or nil when idle.
func (r *Renderer) Tooltip() *scene.Element { return r.tooltip }

// Brush returns the summary chart's brush, or nil when idle.
func (r *Renderer) Brush() *brush.Brush { return r.brush }

// Focus returns the data point the crosshair last snapped to.
func (r *Renderer) Focus() (dataset.CategorySummary, bool) {
	if r.focus == nil {
		return dataset.CategorySummary{}, false
	}
	return *r.focus, true
}

// Render tears down any previous chart and draws data from scratch.
func (r *Renderer) Render(data []dataset.CategorySummary) {
	r.Teardown()

	ctx := NewContext(data, r.layout)
	r.ctx = &ctx

	r.drawPrimary(ctx)
	r.drawSummary(ctx)

	r.state = StateDrawn
	observability.Interaction().OnRedraw(len(data))
	r.logger.Debug("rendered line chart", "id", r.id, "categories", len(data))
}

// Teardown removes both charts and the tooltip and returns to the idle state.
func (r *Renderer) Teardown() {
	if svg := r.chart.Select("svg"); svg != nil {
		svg.Remove()
	}
	if tip := r.chart.Select(".tooltip"); tip != nil {
		tip.Remove()
	}
	if svg := r.summary.Select("svg"); svg != nil {
		svg.Remove()
	}
	r.gen++
	r.state = StateIdle
	r.ctx = nil
	r.surface = nil
	r.tooltip = nil
	r.brush = nil
	r.focus = nil
}

func (r *Renderer) drawPrimary(ctx Context) {
	l := ctx.Layout
	w, h := l.PlotWidth(), l.PlotHeight()

	svg := r.chart.Append("svg").
		Attr("id", r.id+"-chart").
		Attr("width", l.Width).
		Attr("height", l.Height).
		Append("g").
		Attr("transform", "translate("+num(l.Margin.Left)+","+num(l.Margin.Top)+")")

	axis.Bottom(ctx.X).TickSize(0).Render(
		svg.Append("g").Attr("class", "grid").Attr("transform", "translate(0,"+num(h)+")"))
	axis.Left(ctx.Y).TickSize(-w).TickFormat(axis.FormatPercent).Render(
		svg.Append("g").Attr("class", "grid"))

	svg.Append("path").
		Attr("class", "line").
		Attr("fill", "none").
		Attr("stroke", l.LineColor).
		Attr("stroke-width", l.LineWidth).
		Attr("d", linePath(ctx.Data, ctx.X.Map, ctx.Y.Map))

	group := svg.Append("g").Attr("class", "focus").Style("display", "none")
	target := hoverTarget{group: group}
	target.hline = group.Append("line").
		Attr("class", "x").
		Attr("stroke", "black").
		Attr("stroke-width", 0.5).
		Attr("x1", 0).
		Attr("x2", w)
	target.vline = group.Append("line").
		Attr("class", "y").
		Attr("stroke", "black").
		Attr("stroke-width", 0.5).
		Attr("y1", 0).
		Attr("y2", h)
	target.dot = group.Append("circle").Attr("r", l.DotRadius)

	target.tooltip = r.chart.Append("div").
		Attr("class", "tooltip").
		Style("display", "none")

	svg.Append("text").
		Attr("class", "title").
		Attr("x", w/2).
		Attr("y", -l.Margin.Top/2).
		Attr("text-anchor", "middle").
		Style("font-size", "16px").
		SetText(l.Title)

	// Handlers from a torn-down render still update their own detached
	// elements but must not touch renderer state.
	gen := r.gen
	current := func() bool { return gen == r.gen }
	hv := &hover{
		ctx:    ctx,
		target: target,
		origin: r.origin,
		onEnter: func() {
			if current() {
				r.setState(StateHovering)
			}
		},
		onLeave: func() {
			if current() {
				r.setState(StateDrawn)
			}
		},
		onSnap: func(d dataset.CategorySummary) {
			if current() {
				r.focus = &d
			}
		},
	}
	r.surface = svg.Append("rect").
		Attr("class", "surface").
		Attr("width", l.Width).
		Attr("height", l.Height).
		Attr("fill", "none").
		Attr("pointer-events", "all").
		On(scene.EventPointerEnter, hv.enter).
		On(scene.EventPointerLeave, hv.leave).
		On(scene.EventPointerMove, hv.move)
	r.tooltip = target.tooltip
}

// setState changes the display state unless a brush gesture is in progress.
func (r *Renderer) setState(s State) {
	if r.state == StateIdle || r.state == StateBrushing {
		return
	}
	r.state = s
}

func linePath(data []dataset.CategorySummary, x, y func(float64) float64) string {
	return shape.Line[dataset.CategorySummary]{
		X: func(d dataset.CategorySummary) float64 { return x(d.Category) },
		Y: func(d dataset.CategorySummary) float64 { return y(d.Percentage) },
	}.Path(data)
}
