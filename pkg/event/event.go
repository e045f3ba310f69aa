// Package event defines the neutral calendar event model shared by all
// sources (ICS files, JSON payloads) and consumed by the layout engine.
//
// The layout engine never sees this type directly; it reads events through
// the accessor set returned by LayoutAccessors. Sources populate Type with
// a grouping key when an event should bypass overlap clustering in favor
// of the per-key marker matrix (all-day events, category markers).
package event

import (
	"time"

	"github.com/travelboss/daygrid/pkg/layout"
)

// TypeAllDay is the grouping key assigned to all-day events, which render
// as markers alongside the timed column instead of joining overlap
// clustering.
const TypeAllDay = "allday"

// Event is a single concrete calendar event occurrence.
type Event struct {
	// ID uniquely identifies this occurrence. For recurring events it is
	// derived from the UID plus the occurrence start.
	ID string `json:"id" bson:"id"`

	// UID is the source identifier (e.g., the iCalendar UID).
	UID string `json:"uid,omitempty" bson:"uid,omitempty"`

	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Location    string `json:"location,omitempty" bson:"location,omitempty"`

	// Type is the grouping key, or "" for regular timed events.
	Type string `json:"type,omitempty" bson:"type,omitempty"`

	AllDay bool `json:"all_day,omitempty" bson:"all_day,omitempty"`

	// Start and End are absolute instants in the display timezone.
	Start time.Time `json:"start" bson:"start"`
	End   time.Time `json:"end" bson:"end"`

	// FixedWidth pins the rendered width of a grouped event, overriding
	// all derived width logic.
	FixedWidth *layout.Dimension `json:"fixed_width,omitempty" bson:"fixed_width,omitempty"`
}

// LayoutAccessors returns the accessor set wiring Event into the layout
// engine.
func LayoutAccessors() layout.Accessors[Event] {
	return layout.Accessors[Event]{
		Start: func(e Event) time.Time { return e.Start },
		End:   func(e Event) time.Time { return e.End },
		Group: func(e Event) string { return e.Type },
		FixedWidth: func(e Event) (layout.Dimension, bool) {
			if e.FixedWidth == nil {
				return layout.Dimension{}, false
			}
			return *e.FixedWidth, true
		},
	}
}
