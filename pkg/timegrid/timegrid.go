// Package timegrid maps absolute instants onto the vertical coordinate
// system of a single-day calendar column.
//
// A Grid covers one day window (for example 00:00–24:00 at a 15 minute
// step) and converts an event's start/end instants into:
//   - placement-space coordinates (minutes from the window start), used by
//     the layout engine for overlap and adjacency tests
//   - top/height percentages of the column, used directly for rendering
//
// The layout engine (pkg/layout) consumes a Grid only through the Metrics
// interface, so alternative coordinate systems can be plugged in.
package timegrid

import (
	"math"
	"time"

	"github.com/travelboss/daygrid/pkg/errors"
)

// Default grid parameters.
const (
	// DefaultStepMinutes is the duration of one renderable time slot.
	DefaultStepMinutes = 15

	// DefaultTimeslots is the number of slots grouped into one visual row.
	DefaultTimeslots = 2
)

// Range is the resolved placement of one start/end pair on the grid.
type Range struct {
	// Start and End are placement-space coordinates: minutes from the
	// window start, clamped to the window.
	Start float64
	End   float64

	// StartDate and EndDate are the clamped absolute instants.
	StartDate time.Time
	EndDate   time.Time

	// Top and Height are percentages of the day column.
	Top    float64
	Height float64
}

// Metrics is the coordinate-mapping contract consumed by the layout engine.
type Metrics interface {
	// Range resolves the vertical placement of a start/end pair.
	Range(start, end time.Time) Range
}

// Config holds grid construction parameters.
type Config struct {
	// Day is any instant within the day to lay out. The window is anchored
	// to this day's midnight in Day's location.
	Day time.Time

	// StartMinute and EndMinute bound the visible window as minutes from
	// midnight. Zero values mean the full day (0–1440).
	StartMinute int
	EndMinute   int

	// StepMinutes is the slot granularity. Zero means DefaultStepMinutes.
	StepMinutes int

	// Timeslots is the number of slots per visual group. Zero means
	// DefaultTimeslots.
	Timeslots int
}

// Grid maps instants to day-column coordinates.
type Grid struct {
	windowStart time.Time
	windowEnd   time.Time
	stepMinutes int
	timeslots   int
	totalMin    float64
}

// New creates a grid for the day window described by cfg.
func New(cfg Config) (*Grid, error) {
	if cfg.Day.IsZero() {
		return nil, errors.New(errors.ErrCodeInvalidRange, "grid day must be set")
	}

	start, end := cfg.StartMinute, cfg.EndMinute
	if start == 0 && end == 0 {
		end = 24 * 60
	}
	if end <= start {
		return nil, errors.New(errors.ErrCodeInvalidRange, "grid window end (%d) must be after start (%d)", end, start)
	}

	step := cfg.StepMinutes
	if step == 0 {
		step = DefaultStepMinutes
	}
	if step < 0 || (end-start)%step != 0 {
		return nil, errors.New(errors.ErrCodeInvalidRange, "step %d does not divide window of %d minutes", step, end-start)
	}

	timeslots := cfg.Timeslots
	if timeslots == 0 {
		timeslots = DefaultTimeslots
	}

	y, m, d := cfg.Day.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, cfg.Day.Location())

	return &Grid{
		windowStart: midnight.Add(time.Duration(start) * time.Minute),
		windowEnd:   midnight.Add(time.Duration(end) * time.Minute),
		stepMinutes: step,
		timeslots:   timeslots,
		totalMin:    float64(end - start),
	}, nil
}

// WindowStart returns the first instant of the visible window.
func (g *Grid) WindowStart() time.Time { return g.windowStart }

// WindowEnd returns the instant just past the visible window.
func (g *Grid) WindowEnd() time.Time { return g.windowEnd }

// StepMinutes returns the slot granularity in minutes.
func (g *Grid) StepMinutes() int { return g.stepMinutes }

// SlotCount returns the number of slots in the window.
func (g *Grid) SlotCount() int { return int(g.totalMin) / g.stepMinutes }

// MinimumStartDifference returns the placement-space tolerance below which
// two starts are treated as simultaneous: half a visual slot group.
func (g *Grid) MinimumStartDifference() float64 {
	return math.Ceil(float64(g.stepMinutes*g.timeslots) / 2)
}

// Range resolves the vertical placement of a start/end pair, clamping both
// instants to the window. End is never resolved before start.
func (g *Grid) Range(start, end time.Time) Range {
	startDate := clamp(start, g.windowStart, g.windowEnd)
	endDate := clamp(end, g.windowStart, g.windowEnd)
	if endDate.Before(startDate) {
		endDate = startDate
	}

	startPos := startDate.Sub(g.windowStart).Minutes()
	endPos := endDate.Sub(g.windowStart).Minutes()

	return Range{
		Start:     startPos,
		End:       endPos,
		StartDate: startDate,
		EndDate:   endDate,
		Top:       startPos / g.totalMin * 100,
		Height:    (endPos - startPos) / g.totalMin * 100,
	}
}

func clamp(t, lo, hi time.Time) time.Time {
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}

// Ensure Grid implements Metrics.
var _ Metrics = (*Grid)(nil)
