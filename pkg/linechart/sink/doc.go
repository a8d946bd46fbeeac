// Package sink serializes rendered line charts to output formats.
//
// A [linechart.Renderer] draws into [scene.Element] containers. The sinks in
// this package turn those trees into bytes:
//
//   - [RenderSVG]: a standalone SVG with the primary chart above the summary
//     chart. Hover and brush state are drawn as they currently are.
//   - [RenderHTML]: a self-contained page embedding both charts, the chart
//     data and a small script that reproduces hover snapping and the brush
//     in a browser.
//   - [RenderPNG] and [RenderPDF]: raster and print output converted from the
//     SVG with rsvg-convert.
//
// [WriteMarkup] is the underlying element serializer and is useful on its own
// for embedding one container into another document.
//
// # Dependencies
//
// PNG and PDF output shell out to rsvg-convert from librsvg:
//
//	brew install librsvg        # macOS
//	apt install librsvg2-bin    # Debian/Ubuntu
//
// [linechart.Renderer]: github.com/matzehuels/linechart/pkg/linechart.Renderer
// [scene.Element]: github.com/matzehuels/linechart/pkg/chart/scene.Element
package sink
