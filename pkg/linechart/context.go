package linechart

import (
	"slices"

	"github.com/matzehuels/linechart/pkg/dataset"
	"github.com/matzehuels/linechart/pkg/scale"
)

// Context is everything a single render needs to map data to pixels.
// It is built once per render and never modified.
type Context struct {
	Data   []dataset.CategorySummary
	Layout Layout

	// X and Y are the primary chart scales.
	X, Y scale.Linear
	// SummaryX and SummaryY are the summary chart scales.
	SummaryX, SummaryY scale.Linear
}

// NewContext builds the scales for data under layout.
// The horizontal domain spans the observed categories; the primary vertical
// domain is fixed at 0 to 100 while the summary's spans the observed percentages.
func NewContext(data []dataset.CategorySummary, layout Layout) Context {
	c0, c1 := dataset.CategoryExtent(data)
	p0, p1 := dataset.PercentageExtent(data)
	w := layout.PlotWidth()

	return Context{
		Data:     slices.Clone(data),
		Layout:   layout,
		X:        scale.NewLinear(c0, c1, 0, w),
		Y:        scale.NewLinear(0, 100, layout.PlotHeight(), 0),
		SummaryX: scale.NewLinear(c0, c1, 0, w),
		SummaryY: scale.NewLinear(p0, p1, layout.SummaryPlotHeight(), 0),
	}
}

// Point returns the primary-chart pixel position of summary s.
func (c Context) Point(s dataset.CategorySummary) (x, y float64) {
	return c.X.Map(s.Category), c.Y.Map(s.Percentage)
}
