package linechart

import (
	"github.com/matzehuels/linechart/pkg/chart/brush"
)

func (r *Renderer) drawSummary(ctx Context) {
	l := ctx.Layout
	w, h := l.PlotWidth(), l.SummaryPlotHeight()

	svg := r.summary.Append("svg").
		Attr("id", r.id+"-summary").
		Attr("width", l.SummaryWidth()).
		Attr("height", l.SummaryHeight).
		Append("g").
		Attr("transform", "translate("+num(l.SummaryMargin.Left)+","+num(l.SummaryMargin.Top)+")")

	svg.Append("path").
		Attr("class", "line").
		Attr("fill", "none").
		Attr("stroke", l.LineColor).
		Attr("stroke-width", l.LineWidth).
		Attr("d", linePath(ctx.Data, ctx.SummaryX.Map, ctx.SummaryY.Map))

	// A brush kept from a torn-down render must not change renderer state.
	gen := r.gen
	current := func(fn brush.Handler) brush.Handler {
		return func(ev brush.Event) {
			if gen == r.gen {
				fn(ev)
			}
		}
	}
	b := brush.NewX().
		Extent(0, -2, w, h).
		On(brush.EventStart, current(r.onBrushStart)).
		On(brush.EventBrush, current(r.onBrush)).
		On(brush.EventEnd, current(r.onBrushEnd))
	b.Render(svg.Append("g"))
	b.Move(&[2]float64{0, w / 3})
	r.brush = b
}

func (r *Renderer) onBrushStart(ev brush.Event) {
	if ev.Programmatic {
		return
	}
	r.state = StateBrushing
}

// onBrush observes selection changes. The primary chart is not filtered.
func (r *Renderer) onBrush(ev brush.Event) {
	r.logger.Debug("brush", "id", r.id, "selection", ev.Selection, "empty", ev.Empty)
}

func (r *Renderer) onBrushEnd(ev brush.Event) {
	r.logger.Debug("brush end", "id", r.id, "selection", ev.Selection, "empty", ev.Empty)
	if r.state == StateBrushing {
		r.state = StateDrawn
	}
}
