// Package axis renders tick marks and labels along the edge of a plot.
//
// Axes follow the familiar convention of drawing into a group element: a
// "domain" path spanning the scale's range plus one "tick" group per tick
// value. Negative tick sizes extend ticks into the plot, which is how
// gridlines are drawn.
package axis

import (
	"strconv"

	"github.com/matzehuels/linechart/pkg/chart/scene"
	"github.com/matzehuels/linechart/pkg/scale"
)

// Orient is the edge an axis is drawn along.
type Orient int

const (
	OrientBottom Orient = iota
	OrientLeft
)

const (
	defaultTickSize    = 6
	defaultTickPadding = 3
	defaultTickCount   = 10
)

// Axis draws ticks for a linear scale.
type Axis struct {
	orient      Orient
	scale       scale.Linear
	tickSize    float64
	tickPadding float64
	tickCount   int
	format      func(float64) string
}

// Bottom returns an axis with ticks below a horizontal line.
func Bottom(s scale.Linear) *Axis { return newAxis(OrientBottom, s) }

// Left returns an axis with ticks left of a vertical line.
func Left(s scale.Linear) *Axis { return newAxis(OrientLeft, s) }

func newAxis(o Orient, s scale.Linear) *Axis {
	return &Axis{
		orient:      o,
		scale:       s,
		tickSize:    defaultTickSize,
		tickPadding: defaultTickPadding,
		tickCount:   defaultTickCount,
		format:      FormatNumber,
	}
}

// TickSize sets the tick length. Zero hides the tick lines; negative values
// draw them across the plot.
func (a *Axis) TickSize(size float64) *Axis {
	a.tickSize = size
	return a
}

// TickFormat sets the label formatter.
func (a *Axis) TickFormat(f func(float64) string) *Axis {
	if f != nil {
		a.format = f
	}
	return a
}

// Ticks sets the approximate number of ticks.
func (a *Axis) Ticks(count int) *Axis {
	a.tickCount = count
	return a
}

// Values returns the tick values the axis will draw.
func (a *Axis) Values() []float64 {
	return a.scale.Ticks(a.tickCount)
}

// Render draws the axis into g.
func (a *Axis) Render(g *scene.Element) {
	g.Attr("fill", "none").
		Attr("font-size", 10).
		Attr("font-family", "sans-serif")
	if a.orient == OrientLeft {
		g.Attr("text-anchor", "end")
	} else {
		g.Attr("text-anchor", "middle")
	}

	r0, r1 := a.scale.Range()
	outer := a.tickSize
	g.Append("path").
		Attr("class", "domain").
		Attr("stroke", "currentColor").
		Attr("d", a.domainPath(r0, r1, outer))

	spacing := max(a.tickSize, 0) + a.tickPadding
	for _, v := range a.Values() {
		pos := a.scale.Map(v)
		tick := g.Append("g").Attr("class", "tick").Attr("opacity", 1)
		line := tick.Append("line").Attr("stroke", "currentColor")
		text := tick.Append("text").Attr("fill", "currentColor").SetText(a.format(v))

		switch a.orient {
		case OrientLeft:
			tick.Attr("transform", "translate(0,"+num(pos)+")")
			line.Attr("x2", -a.tickSize)
			text.Attr("x", -spacing).Attr("dy", "0.32em")
		default:
			tick.Attr("transform", "translate("+num(pos)+",0)")
			line.Attr("y2", a.tickSize)
			text.Attr("y", spacing).Attr("dy", "0.71em")
		}
	}
}

func (a *Axis) domainPath(r0, r1, outer float64) string {
	if a.orient == OrientLeft {
		return "M" + num(-outer) + "," + num(r0) + "H0V" + num(r1) + "H" + num(-outer)
	}
	return "M" + num(r0) + "," + num(outer) + "V0H" + num(r1) + "V" + num(outer)
}

// FormatNumber is the default tick label format.
func FormatNumber(v float64) string { return num(v) }

// FormatPercent appends a percent sign to the number.
func FormatPercent(v float64) string { return num(v) + "%" }

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
