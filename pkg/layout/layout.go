package layout

import (
	"time"

	"github.com/travelboss/daygrid/pkg/errors"
	"github.com/travelboss/daygrid/pkg/timegrid"
)

// Unit is the measurement unit of a horizontal dimension.
type Unit string

// Supported units. Derived widths are always percentages; pixel and
// unitless values only enter through explicitly supplied fixed widths.
const (
	UnitPercent Unit = "%"
	UnitPixel   Unit = "px"
	UnitNone    Unit = ""
)

// Dimension is a horizontal measurement with its unit.
type Dimension struct {
	Value float64 `json:"value" bson:"value"`
	Unit  Unit    `json:"unit" bson:"unit"`
}

// Style is the resolved visual placement of one event.
//
// Top and Height are percentages of the day column, passed through
// unchanged from the coordinate mapping. Width and XOffset are derived by
// the engine from the event's position in the cluster tree or group matrix.
type Style struct {
	Top     float64   `json:"top" bson:"top"`
	Height  float64   `json:"height" bson:"height"`
	Width   Dimension `json:"width" bson:"width"`
	XOffset Dimension `json:"x_offset" bson:"x_offset"`
}

// Styled pairs an original event payload with its resolved style.
type Styled[E any] struct {
	Event E     `json:"event" bson:"event"`
	Style Style `json:"style" bson:"style"`
}

// Accessors supplies the per-event lookups the engine needs. Start and End
// are required; Group and FixedWidth are optional.
type Accessors[E any] struct {
	// Start returns the event's start instant.
	Start func(E) time.Time

	// End returns the event's end instant.
	End func(E) time.Time

	// Group returns the event's grouping key, or "" for ungrouped events.
	// Events sharing a key bypass container/row/leaf clustering in favor of
	// the fixed three-slot matrix for that key.
	Group func(E) string

	// FixedWidth returns an explicitly supplied width for the event.
	// A fixed width overrides all derived width logic and never grows.
	FixedWidth func(E) (Dimension, bool)
}

// Options configures one layout computation.
type Options[E any] struct {
	// Events are the payloads to lay out, in caller order. Ties in the
	// render order preserve this order.
	Events []E

	// Accessors map payloads to instants, grouping keys, and fixed widths.
	Accessors Accessors[E]

	// Metrics is the coordinate mapping resolving vertical placement.
	Metrics timegrid.Metrics

	// MinimumStartDifference is the placement-space tolerance below which
	// two starts are treated as simultaneous.
	MinimumStartDifference float64
}

func (o *Options[E]) validate() error {
	if o.Metrics == nil {
		return errors.New(errors.ErrCodeInvalidInput, "coordinate metrics are required")
	}
	if o.Accessors.Start == nil || o.Accessors.End == nil {
		return errors.New(errors.ErrCodeInvalidInput, "start and end accessors are required")
	}
	if o.MinimumStartDifference < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "minimum start difference must be non-negative")
	}
	return nil
}

// Compute resolves the styled layout for opts.Events.
//
// The returned slice is in render order, which differs from input order:
// grouped events come first, then ascending start instant with longer
// events first among equal starts, then a contiguity pass that keeps
// overlapping ungrouped chains adjacent. Ties preserve input order.
//
// Malformed events (zero instants, end before start) fail fast with an
// ErrCodeInvalidEvent error rather than producing a degenerate layout.
func Compute[E any](opts Options[E]) ([]Styled[E], error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	a, err := buildArena(opts)
	if err != nil {
		return nil, err
	}

	order := renderOrder(a)

	b := newBuilder(a, opts.MinimumStartDifference)
	for _, i := range order {
		b.attach(i)
	}

	styled := make([]Styled[E], len(order))
	for k, i := range order {
		n := &a.nodes[i]
		styled[k] = Styled[E]{
			Event: opts.Events[n.src],
			Style: Style{
				Top:     n.top,
				Height:  n.height,
				Width:   a.width(i),
				XOffset: a.xOffset(i),
			},
		}
	}
	return styled, nil
}

// buildArena wraps every payload in an adapter node, resolving vertical
// placement through the coordinate mapping.
func buildArena[E any](opts Options[E]) (*arena, error) {
	a := &arena{nodes: make([]node, 0, len(opts.Events))}

	for idx, ev := range opts.Events {
		start := opts.Accessors.Start(ev)
		end := opts.Accessors.End(ev)
		if start.IsZero() || end.IsZero() {
			return nil, errors.New(errors.ErrCodeInvalidEvent, "event %d has a zero start or end instant", idx)
		}
		if end.Before(start) {
			return nil, errors.New(errors.ErrCodeInvalidEvent, "event %d ends before it starts", idx)
		}

		r := opts.Metrics.Range(start, end)

		n := newNode(idx, r, start, end)
		if opts.Accessors.Group != nil {
			n.group = opts.Accessors.Group(ev)
			n.grouped = n.group != ""
		}
		if opts.Accessors.FixedWidth != nil {
			if d, ok := opts.Accessors.FixedWidth(ev); ok {
				n.fixed = d
				n.hasFixed = true
				n.unit = d.Unit
			}
		}
		a.nodes = append(a.nodes, n)
	}
	return a, nil
}
