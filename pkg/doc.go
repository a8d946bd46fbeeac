// Package pkg provides the core libraries for Linechart.
//
// # Overview
//
// Linechart turns raw (category, value, user) observations into a line chart
// of per-category percentages. The chart carries a hover crosshair that snaps
// to the nearest category, a tooltip listing the users behind that category,
// and a smaller summary chart with a brush band. The pkg directory is
// organized into these areas:
//
//  1. [dataset] - Observation types, validation and percentage aggregation
//  2. [scale] and [chart] - Linear scales and a small retained scene tree
//  3. [linechart] - The interactive renderer and its output sinks
//  4. [pipeline] - Orchestration (load → aggregate → render) with caching
//  5. [cache], [observability], [errors], [io] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow through Linechart:
//
//	Observation file (JSON/YAML/TOML/CSV)
//	         ↓
//	    [io] package (decode observations)
//	         ↓
//	    [dataset] package (validate + aggregate)
//	         ↓
//	    [linechart] package (scales, scene, hover state)
//	         ↓
//	    SVG/HTML/PNG/PDF/JSON/CSV output
//
// # Quick Start
//
// Aggregate observations and render the chart:
//
//	import (
//	    "github.com/matzehuels/linechart/pkg/dataset"
//	    "github.com/matzehuels/linechart/pkg/linechart/sink"
//	    "github.com/matzehuels/linechart/pkg/pipeline"
//	)
//
//	// 1. Aggregate observations into per-category summaries
//	summaries := dataset.Aggregate([]dataset.RawObservation{
//	    {Category: 1, Value: 10, User: "alice"},
//	    {Category: 2, Value: 30, User: "bob"},
//	})
//
//	// 2. Build the renderer and draw both charts
//	r := pipeline.Draw(summaries, pipeline.Options{})
//
//	// 3. Serialize to SVG
//	svg := sink.RenderSVG(r)
//
// For cached, multi-format rendering use [pipeline.Runner]. The cmd/linechart
// binary wraps the same runner in a CLI, an HTTP server and a terminal
// inspector.
//
// [dataset]: https://pkg.go.dev/github.com/matzehuels/linechart/pkg/dataset
// [scale]: https://pkg.go.dev/github.com/matzehuels/linechart/pkg/scale
// [chart]: https://pkg.go.dev/github.com/matzehuels/linechart/pkg/chart/scene
// [linechart]: https://pkg.go.dev/github.com/matzehuels/linechart/pkg/linechart
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/linechart/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/linechart/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/linechart/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/linechart/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/linechart/pkg/errors
// [io]: https://pkg.go.dev/github.com/matzehuels/linechart/pkg/io
package pkg
