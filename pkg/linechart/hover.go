package linechart

import (
	"html"
	"strconv"
	"strings"

	"github.com/matzehuels/linechart/pkg/chart/scene"
	"github.com/matzehuels/linechart/pkg/dataset"
	"github.com/matzehuels/linechart/pkg/observability"
)

// hoverTarget is the crosshair group and tooltip a hover handler repositions.
type hoverTarget struct {
	group   *scene.Element
	dot     *scene.Element
	hline   *scene.Element
	vline   *scene.Element
	tooltip *scene.Element
}

// hover holds the handlers bound to the interaction surface for one render.
type hover struct {
	ctx    Context
	target hoverTarget
	origin func() (float64, float64)

	onEnter func()
	onLeave func()
	onSnap  func(dataset.CategorySummary)
}

func (h *hover) enter(scene.Event) {
	h.target.group.Style("display", "unset")
	if h.onEnter != nil {
		h.onEnter()
	}
}

func (h *hover) leave(scene.Event) {
	h.target.group.Style("display", "none")
	h.target.tooltip.Style("display", "none")
	if h.onLeave != nil {
		h.onLeave()
	}
}

// move snaps the crosshair to the point nearest the pointer. Positions with
// no bracketing data points leave the previous state untouched.
func (h *hover) move(ev scene.Event) {
	x0 := h.ctx.X.Invert(ev.X)
	i, ok := NearestPoint(h.ctx.Data, x0)
	observability.Interaction().OnLookup(ok)
	if !ok {
		return
	}
	d := h.ctx.Data[i]
	xc, yc := h.ctx.Point(d)

	h.target.dot.Attr("transform", "translate("+num(xc)+", "+num(yc)+")")
	h.target.hline.Attr("y1", yc).Attr("y2", yc)
	h.target.vline.Attr("x1", xc).Attr("x2", xc)

	ox, oy := h.origin()
	off := h.ctx.Layout.Offset()
	h.target.tooltip.
		SetHTML(TooltipHTML(d.Users)).
		Style("left", num(ox+xc+off)+"px").
		Style("top", num(oy+yc-off)+"px").
		Style("display", "unset")

	if h.onSnap != nil {
		h.onSnap(d)
	}
}

// TooltipHTML renders one escaped, break-terminated line per user.
func TooltipHTML(users []string) string {
	var sb strings.Builder
	for _, u := range users {
		sb.WriteString(html.EscapeString(u))
		sb.WriteString("<br/>")
	}
	return sb.String()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
