package linechart

import "github.com/matzehuels/linechart/pkg/errors"

// Margin is the space between a canvas edge and its plot area.
type Margin struct {
	Top    float64 `json:"top" toml:"top" validate:"gte=0"`
	Right  float64 `json:"right" toml:"right" validate:"gte=0"`
	Bottom float64 `json:"bottom" toml:"bottom" validate:"gte=0"`
	Left   float64 `json:"left" toml:"left" validate:"gte=0"`
}

// Layout holds the pixel metrics and styling for both charts.
//
// Zero-valued numeric fields select the defaults. The margins and the tooltip
// offset are pointers: nil selects the default and a pointer to zero keeps
// zero.
type Layout struct {
	// Width and Height are the primary canvas size including margins.
	Width  float64 `json:"width" toml:"width" validate:"gt=0"`
	Height float64 `json:"height" toml:"height" validate:"gt=0"`
	Margin *Margin `json:"margin,omitempty" toml:"margin"`

	// SummaryHeight is the summary canvas height including SummaryMargin.
	SummaryHeight float64 `json:"summary_height" toml:"summary_height" validate:"gt=0"`
	SummaryMargin *Margin `json:"summary_margin,omitempty" toml:"summary_margin"`

	TooltipOffset *float64 `json:"tooltip_offset,omitempty" toml:"tooltip_offset" validate:"omitempty,gte=0"`
	DotRadius     float64  `json:"dot_radius" toml:"dot_radius" validate:"gt=0"`
	LineColor     string   `json:"line_color" toml:"line_color"`
	LineWidth     float64  `json:"line_width" toml:"line_width" validate:"gt=0"`
	Title         string   `json:"title" toml:"title"`
}

// DefaultTitle is drawn above the primary plot.
const DefaultTitle = "Percent Value vs Category"

// DefaultLayout returns the standard 800x400 chart with a 65px summary strip.
func DefaultLayout() Layout {
	return Layout{
		Width:         800,
		Height:        400,
		Margin:        &Margin{Top: 50, Right: 50, Bottom: 20, Left: 50},
		SummaryHeight: 65,
		SummaryMargin: &Margin{Top: 10, Right: 30, Bottom: 30, Left: 50},
		TooltipOffset: ptr(35.0),
		DotRadius:     5,
		LineColor:     "steelblue",
		LineWidth:     2,
		Title:         DefaultTitle,
	}
}

func ptr[T any](v T) *T { return &v }

// WithDefaults fills zero numeric fields and nil overrides from
// DefaultLayout. The result owns its margins and offset, so later edits do
// not reach l.
func (l Layout) WithDefaults() Layout {
	d := DefaultLayout()
	if l.Width == 0 {
		l.Width = d.Width
	}
	if l.Height == 0 {
		l.Height = d.Height
	}
	if l.Margin == nil {
		l.Margin = d.Margin
	} else {
		l.Margin = ptr(*l.Margin)
	}
	if l.SummaryHeight == 0 {
		l.SummaryHeight = d.SummaryHeight
	}
	if l.SummaryMargin == nil {
		l.SummaryMargin = d.SummaryMargin
	} else {
		l.SummaryMargin = ptr(*l.SummaryMargin)
	}
	if l.TooltipOffset == nil {
		l.TooltipOffset = d.TooltipOffset
	} else {
		l.TooltipOffset = ptr(*l.TooltipOffset)
	}
	if l.DotRadius == 0 {
		l.DotRadius = d.DotRadius
	}
	if l.LineColor == "" {
		l.LineColor = d.LineColor
	}
	if l.LineWidth == 0 {
		l.LineWidth = d.LineWidth
	}
	if l.Title == "" {
		l.Title = d.Title
	}
	return l
}

// margins returns the primary and summary margins, zero when unset.
func (l Layout) margins() (primary, summary Margin) {
	if l.Margin != nil {
		primary = *l.Margin
	}
	if l.SummaryMargin != nil {
		summary = *l.SummaryMargin
	}
	return primary, summary
}

// Offset is the tooltip offset, zero when unset.
func (l Layout) Offset() float64 {
	if l.TooltipOffset == nil {
		return 0
	}
	return *l.TooltipOffset
}

// PlotWidth is the primary plot width. The summary plot shares it.
func (l Layout) PlotWidth() float64 {
	m, _ := l.margins()
	return l.Width - m.Left - m.Right
}

// PlotHeight is the primary plot height.
func (l Layout) PlotHeight() float64 {
	m, _ := l.margins()
	return l.Height - m.Top - m.Bottom
}

// SummaryPlotHeight is the summary plot height.
func (l Layout) SummaryPlotHeight() float64 {
	_, m := l.margins()
	return l.SummaryHeight - m.Top - m.Bottom
}

// SummaryWidth is the summary canvas width including SummaryMargin.
func (l Layout) SummaryWidth() float64 {
	_, m := l.margins()
	return l.PlotWidth() + m.Left + m.Right
}

// Validate checks a defaulted layout. Margins must leave a positive plot
// area on both canvases.
func (l Layout) Validate() error {
	if err := errors.Validate(l); err != nil {
		return err
	}
	if l.PlotWidth() <= 0 || l.PlotHeight() <= 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"margins leave no plot area (%gx%g)", l.PlotWidth(), l.PlotHeight())
	}
	if l.SummaryPlotHeight() <= 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"summary margins leave no plot area (height %g)", l.SummaryPlotHeight())
	}
	return nil
}
