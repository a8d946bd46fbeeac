// Package scene is a small retained element tree used as the drawing surface
// for charts.
//
// # Overview
//
// An [Element] mirrors the subset of a document tree that charts need: a tag,
// ordered attributes and styles, text or markup content, children, and
// pointer-event handlers. Charts build elements into caller-owned containers,
// and sinks serialize the tree to SVG or HTML afterwards.
//
//	mount := scene.New("div").Attr("id", "lineChart")
//	svg := mount.Append("svg").Attr("width", 800).Attr("height", 400)
//	svg.Append("path").Attr("d", "M0,0L10,10").Attr("fill", "none")
//
// # Selection
//
// [Element.Select] and [Element.SelectAll] accept a tag name, a ".class"
// selector, or "tag.class". Matching is depth-first in document order.
//
// # Events
//
// Handlers registered with [Element.On] receive an [Event] carrying the pointer
// position relative to the element. Hosts call [Element.Dispatch] to deliver
// events; handlers run synchronously in registration order.
package scene
