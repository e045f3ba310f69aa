// Package pkg provides the core libraries for daygrid day-view layout.
//
// # Overview
//
// Daygrid turns the events of one calendar day into absolutely positioned
// boxes: the layout a calendar frontend renders as a vertical day column
// with overlapping events side by side. The pkg directory is organized
// into four main areas:
//
//  1. [event], [timegrid], [layout] - Domain logic (event model, day-column
//     coordinates, overlap clustering and width assignment)
//  2. [ics], [cache], [store], [httputil] - Infrastructure (feed fetching
//     and recurrence expansion, result caching, layout persistence)
//  3. [render] - Output (SVG, PNG, JSON, DOT)
//  4. [pipeline] - Orchestration (load → layout → render)
//
// # Architecture
//
// The typical data flow through daygrid:
//
//	ICS feed or inline events
//	         ↓
//	    [ics] package (parse + expand recurrences for one day)
//	         ↓
//	    [timegrid] package (instants → day-column coordinates)
//	         ↓
//	    [layout] package (overlap clustering, widths, offsets)
//	         ↓
//	    [render/day] package
//	         ↓
//	    SVG/PNG/JSON/DOT output
//
// # Quick Start
//
// Run the whole pipeline through a [pipeline.Runner]:
//
//	runner := pipeline.NewRunner(nil, nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "https://example.com/work.ics",
//	    Date:    "2024-03-15",
//	    Formats: []string{"svg"},
//	})
//
// Or call the layout engine directly with your own event type via
// [layout.Compute] and [layout.Accessors].
package pkg
