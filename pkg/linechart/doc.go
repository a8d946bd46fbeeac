// Package linechart draws an interactive percentage line chart with a brushable
// summary chart underneath it.
//
// # Overview
//
// A [Renderer] owns two caller-supplied containers: one for the primary chart
// and one for the summary chart. Every call to [Renderer.Render] tears down
// whatever was drawn before and rebuilds both charts from scratch:
//
//	chart := scene.New("div").Attr("id", "lineChart")
//	summary := scene.New("div").Attr("id", "summaryChart")
//
//	r := linechart.New(chart, summary, linechart.WithLogger(logger))
//	r.Render(dataset.Aggregate(observations))
//
// The primary chart plots category against percentage on a fixed 0–100 axis
// with horizontal gridlines. The summary chart plots the same line scaled to
// the observed percentage range and carries a horizontal brush whose initial
// selection covers the left third of the plot.
//
// # Hover
//
// The primary chart is covered by an invisible interaction surface
// ([Renderer.Surface]). Hosts dispatch pointer enter, move and leave events to
// it. While the pointer is over the chart, each move snaps a crosshair, a dot
// and a tooltip listing the category's users to the data point nearest the
// pointer, as computed by [NearestPoint].
//
// # Context
//
// Scales, data and layout metrics for one render are bundled into an
// immutable [Context]. Event handlers are built from the context of the render
// that created them, so a later render never changes what an older handler
// sees.
//
// # Brush
//
// Brush events are observed but do not filter the primary chart.
//
// # Preconditions
//
// Render expects a non-empty summary sequence with finite percentages. Empty
// or zero-total input draws a degenerate chart instead of failing.
package linechart
