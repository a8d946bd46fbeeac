package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/linechart/pkg/linechart"
)

const svgCSS = `
    text { font-family: sans-serif; font-size: 10px; }
    text.title { font-size: 16px; }
    .grid line { stroke: lightgrey; stroke-opacity: 0.7; shape-rendering: crispEdges; }
    .grid path { stroke-width: 0; }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	summary    bool
	background string
}

// WithoutSummary omits the summary chart.
func WithoutSummary() SVGOption { return func(r *svgRenderer) { r.summary = false } }

// WithBackground fills the canvas with color before drawing.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// RenderSVG serializes the renderer's charts into one standalone SVG, the
// summary chart stacked below the primary chart. An idle renderer yields an
// empty canvas of the configured size.
func RenderSVG(r *linechart.Renderer, opts ...SVGOption) []byte {
	s := svgRenderer{summary: true}
	for _, opt := range opts {
		opt(&s)
	}

	l := r.Layout()
	width, height := l.Width, l.Height
	if s.summary {
		width = max(width, l.SummaryWidth())
		height += l.SummaryHeight
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgCSS)
	if s.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", s.background)
	}

	if chart := r.Chart().Select("svg"); chart != nil {
		writeElement(&buf, chart, 1)
	}
	if s.summary {
		if summary := r.Summary().Select("svg"); summary != nil {
			fmt.Fprintf(&buf, `  <g transform="translate(0,%s)">`+"\n", fmtNum(l.Height))
			writeElement(&buf, summary, 2)
			buf.WriteString("  </g>\n")
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
