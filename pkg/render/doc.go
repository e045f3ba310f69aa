// Package render provides output rendering for day-view layouts.
//
// # Overview
//
// This package contains the rendering pipeline that transforms computed
// day-view layouts into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Day-column rendering (in [day] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). They are shared by all
// SVG-producing sinks.
//
//	svg := day.RenderSVG(styled, grid, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Day Column Rendering
//
// The [day] subpackage renders a positioned event list as a single day
// column: a time gutter on the left and event rectangles placed from
// their computed top, height, width, and horizontal offset.
//
// Key sinks:
//   - [day.RenderSVG]: Scalable vector output
//   - [day.RenderJSON]: Layout data export for web frontends
//   - [day.ToDOT] with [day.RenderDOTSVG]: Graphviz overlap diagram for
//     debugging cluster structure
//
// [day]: github.com/travelboss/daygrid/pkg/render/day
// [day.RenderSVG]: github.com/travelboss/daygrid/pkg/render/day.RenderSVG
// [day.RenderJSON]: github.com/travelboss/daygrid/pkg/render/day.RenderJSON
// [day.ToDOT]: github.com/travelboss/daygrid/pkg/render/day.ToDOT
// [day.RenderDOTSVG]: github.com/travelboss/daygrid/pkg/render/day.RenderDOTSVG
package render
