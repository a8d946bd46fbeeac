// Package pipeline provides the chart pipeline shared by the CLI and the
// HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read observations from a file or take them from the request
//  2. Aggregate: Validate the dataset and compute per-category summaries
//  3. Render: Draw the charts and serialize them (SVG, HTML, PNG, PDF, JSON, CSV)
//
// Aggregation results and rendered artifacts are cached by content hash, so
// re-rendering an unchanged dataset is a cache lookup.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "observations.csv",
//	    Formats: []string{"svg", "html"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	summaries, err := runner.Aggregate(ctx, observations)
//	artifacts, err := runner.Render(ctx, summaries, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linechart/pkg/cache"
	"github.com/matzehuels/linechart/pkg/dataset"
	"github.com/matzehuels/linechart/pkg/errors"
	"github.com/matzehuels/linechart/pkg/linechart"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatHTML: true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatCSV:  true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatHTML: "text/html; charset=utf-8",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatCSV:  "text/csv; charset=utf-8",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options. Observations take precedence over Input.
	Observations []dataset.RawObservation `json:"observations,omitempty"`
	Input        string                   `json:"-"`
	Refresh      bool                     `json:"refresh,omitempty"`

	// Render options
	Formats   []string         `json:"formats,omitempty"`
	Layout    linechart.Layout `json:"layout"`
	PageTitle string           `json:"page_title,omitempty"`
	Scale     float64          `json:"scale,omitempty" validate:"gte=0,lte=10"`
	NoSummary bool             `json:"no_summary,omitempty"`

	// Hover bakes a hover state into the output: the crosshair snaps to the
	// point nearest this category, as if the pointer were there.
	Hover *float64 `json:"hover,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Summaries are the aggregated category summaries.
	Summaries []dataset.CategorySummary

	// DatasetHash is the content hash of the input observations.
	DatasetHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Observations  int
	Categories    int
	LoadTime      time.Duration
	AggregateTime time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SummaryHit bool // Whether summaries came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates. An empty string yields nil so defaults apply.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Layout = o.Layout.WithDefaults()
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.Layout.Validate(); err != nil {
		return err
	}
	if o.Hover != nil {
		if err := errors.ValidateFinite("hover", *o.Hover); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid hover position")
		}
	}
	return errors.Validate(o)
}

// ValidateForLoad checks that a dataset source is present.
func (o *Options) ValidateForLoad() error {
	if o.Observations == nil && o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "observations or input file is required")
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		LayoutHash: cache.HashJSON(o.Layout),
		PageTitle:  o.PageTitle,
		Scale:      o.Scale,
		NoSummary:  o.NoSummary,
		Hover:      o.Hover,
	}
}
