package pipeline

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linechart/pkg/chart/scene"
	"github.com/matzehuels/linechart/pkg/dataset"
	chartio "github.com/matzehuels/linechart/pkg/io"
	"github.com/matzehuels/linechart/pkg/linechart"
	"github.com/matzehuels/linechart/pkg/linechart/sink"
)

// Container ids used for rendered pages.
const (
	ChartContainerID   = "lineChart"
	SummaryContainerID = "summaryChart"
)

// NewChart mounts a renderer on fresh primary and summary containers.
func NewChart(layout linechart.Layout, logger *log.Logger) *linechart.Renderer {
	return linechart.New(
		scene.New("div").Attr("id", ChartContainerID),
		scene.New("div").Attr("id", SummaryContainerID),
		linechart.WithLayout(layout),
		linechart.WithLogger(logger),
	)
}

// Draw renders summaries onto a new chart and applies opts.Hover.
func Draw(summaries []dataset.CategorySummary, opts Options) *linechart.Renderer {
	r := NewChart(opts.Layout, opts.Logger)
	r.Render(summaries)
	if opts.Hover != nil {
		ctx := r.Context()
		x := ctx.X.Map(*opts.Hover)
		r.Surface().Dispatch(scene.Event{Type: scene.EventPointerEnter, X: x})
		r.Surface().Dispatch(scene.Event{Type: scene.EventPointerMove, X: x})
	}
	return r
}

// Render generates output artifacts in the requested formats. Options
// must already be validated.
func Render(summaries []dataset.CategorySummary, opts Options) (map[string][]byte, error) {
	r := Draw(summaries, opts)

	var svgOpts []sink.SVGOption
	if opts.NoSummary {
		svgOpts = append(svgOpts, sink.WithoutSummary())
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(r, svgOpts...)
		case FormatHTML:
			var hopts []sink.HTMLOption
			if opts.PageTitle != "" {
				hopts = append(hopts, sink.WithPageTitle(opts.PageTitle))
			}
			data, err = sink.RenderHTML(r, hopts...)
		case FormatPNG:
			data, err = sink.RenderPNG(r, sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...))
		case FormatPDF:
			data, err = sink.RenderPDF(r, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			var buf bytes.Buffer
			err = chartio.WriteJSON(summaries, &buf)
			data = buf.Bytes()
		case FormatCSV:
			var buf bytes.Buffer
			err = chartio.WriteCSV(summaries, &buf)
			data = buf.Bytes()
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
