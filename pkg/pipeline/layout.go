package pipeline

import (
	"github.com/travelboss/daygrid/pkg/event"
	"github.com/travelboss/daygrid/pkg/layout"
	"github.com/travelboss/daygrid/pkg/timegrid"
)

// =============================================================================
// Layout Computation
// =============================================================================

// computeLayout builds the time grid from the options and positions the
// events in the day column.
func computeLayout(events []event.Event, opts Options) ([]layout.Styled[event.Event], error) {
	grid, err := buildGrid(opts)
	if err != nil {
		return nil, err
	}

	return layout.Compute(layout.Options[event.Event]{
		Events:                 events,
		Accessors:              event.LayoutAccessors(),
		Metrics:                grid,
		MinimumStartDifference: grid.MinimumStartDifference(),
	})
}

// buildGrid constructs the timegrid for the configured day and window.
func buildGrid(opts Options) (*timegrid.Grid, error) {
	return timegrid.New(timegrid.Config{
		Day:         opts.Day(),
		StartMinute: opts.StartMinute,
		EndMinute:   opts.EndMinute,
		StepMinutes: opts.StepMinutes,
		Timeslots:   opts.Timeslots,
	})
}
