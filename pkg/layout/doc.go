// Package layout computes a non-overlapping horizontal layout for a set of
// time-ranged events rendered in a single day column.
//
// Given events with start/end instants (possibly identical or overlapping)
// and an optional grouping key, the engine:
//
//  1. establishes a deterministic, stable render order
//  2. partitions ungrouped events into overlap clusters: a tree of
//     containers → rows → leaves
//  3. packs grouped events into a fixed three-slot matrix per grouping key
//  4. derives a proportional width and horizontal offset for every event so
//     that overlapping events appear side by side, slightly widened when a
//     neighboring slot is otherwise free
//
// The engine is a pure function of its inputs: it allocates an internal
// arena of adapter nodes per call, mutates only that arena, and returns the
// events in render order paired with their resolved styles. Vertical
// placement (top/height) and the mapping from domain events to instants are
// supplied by the caller through the timegrid.Metrics and Accessors
// contracts; the engine never inspects event payloads itself.
//
// Clustering is a single greedy forward pass without backtracking.
// Pathological interleavings may produce a visually suboptimal layout, but
// the result is always deterministic and collision-free. This trade-off is
// part of the algorithm's contract: callers rendering the same events twice
// get pixel-identical output.
//
// # Usage
//
//	grid, _ := timegrid.New(timegrid.Config{Day: day})
//	styled, err := layout.Compute(layout.Options[event.Event]{
//	    Events:                 events,
//	    Accessors:              event.LayoutAccessors(),
//	    Metrics:                grid,
//	    MinimumStartDifference: grid.MinimumStartDifference(),
//	})
//	for _, s := range styled {
//	    draw(s.Event, s.Style.Top, s.Style.Height, s.Style.Width, s.Style.XOffset)
//	}
package layout
