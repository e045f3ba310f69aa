// Package day renders positioned day-view events into output formats.
//
// # Overview
//
// A sink transforms a slice of [layout.Styled] events into a final output
// format. This package provides:
//
//   - SVG: A day column with a time gutter and event rectangles
//   - JSON: Layout data export for web frontends and caching
//   - DOT: Graphviz overlap diagram for debugging cluster structure
//
// # SVG Output
//
// [RenderSVG] draws the day as a single column. The time gutter on the
// left lists hours from the grid window; event rectangles are placed by
// converting the layout percentages into pixel coordinates inside the
// column area.
//
//	svg := day.RenderSVG(styled, grid,
//	    day.WithSize(800, 1200),
//	    day.WithTitle("Friday, March 15"),
//	)
//
// # JSON Output
//
// [RenderJSON] exports each event with its resolved style so a frontend
// can absolutely position DOM nodes without recomputing the layout.
//
// # DOT Output
//
// [ToDOT] emits a Graphviz digraph where events are boxes and edges
// connect events that overlap in time. [RenderDOTSVG] and [RenderDOTPNG]
// run Graphviz on the result. Useful when diagnosing unexpected column
// assignments.
package day
