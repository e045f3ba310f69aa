package day

import (
	"encoding/json"
	"time"

	"github.com/travelboss/daygrid/pkg/errors"
	"github.com/travelboss/daygrid/pkg/event"
	"github.com/travelboss/daygrid/pkg/layout"
	"github.com/travelboss/daygrid/pkg/timegrid"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	date   string
	source string
}

// WithJSONDate records the rendered date (YYYY-MM-DD) in the output.
func WithJSONDate(date string) JSONOption {
	return func(r *jsonRenderer) { r.date = date }
}

// WithJSONSource records the feed source name in the output.
func WithJSONSource(source string) JSONOption {
	return func(r *jsonRenderer) { r.source = source }
}

type jsonOutput struct {
	Date        string      `json:"date,omitempty"`
	Source      string      `json:"source,omitempty"`
	WindowStart string      `json:"window_start"`
	WindowEnd   string      `json:"window_end"`
	StepMinutes int         `json:"step_minutes"`
	Events      []jsonEvent `json:"events"`
}

type jsonEvent struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Location string    `json:"location,omitempty"`
	Type     string    `json:"type,omitempty"`
	AllDay   bool      `json:"all_day,omitempty"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Style    jsonStyle `json:"style"`
}

type jsonStyle struct {
	Top     float64       `json:"top"`
	Height  float64       `json:"height"`
	Width   jsonDimension `json:"width"`
	XOffset jsonDimension `json:"x_offset"`
}

type jsonDimension struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// RenderJSON exports the positioned events as a pretty-printed JSON
// document. This is the primary interchange format for frontends that
// absolutely position DOM nodes from the computed styles, and for
// caching layouts between runs.
//
// RenderJSON returns an error only if JSON marshaling fails. It does not
// modify its inputs and is safe to call concurrently.
func RenderJSON(items []layout.Styled[event.Event], grid *timegrid.Grid, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Date:        r.date,
		Source:      r.source,
		WindowStart: grid.WindowStart().Format(time.RFC3339),
		WindowEnd:   grid.WindowEnd().Format(time.RFC3339),
		StepMinutes: grid.StepMinutes(),
		Events:      make([]jsonEvent, 0, len(items)),
	}

	for _, it := range items {
		out.Events = append(out.Events, jsonEvent{
			ID:       it.Event.ID,
			Title:    it.Event.Title,
			Location: it.Event.Location,
			Type:     it.Event.Type,
			AllDay:   it.Event.AllDay,
			Start:    it.Event.Start,
			End:      it.Event.End,
			Style: jsonStyle{
				Top:     it.Style.Top,
				Height:  it.Style.Height,
				Width:   jsonDimension{Value: it.Style.Width.Value, Unit: string(it.Style.Width.Unit)},
				XOffset: jsonDimension{Value: it.Style.XOffset.Value, Unit: string(it.Style.XOffset.Unit)},
			},
		})
	}

	return json.MarshalIndent(out, "", "  ")
}

// Document is a decoded day layout document, as produced by [RenderJSON].
type Document struct {
	Date   string
	Source string
	Items  []layout.Styled[event.Event]
	Grid   *timegrid.Grid
}

// ParseJSON decodes a layout document back into positioned events and the
// grid they were computed against, so a saved layout can be re-rendered
// without recomputing it.
func ParseJSON(data []byte) (*Document, error) {
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout document")
	}

	windowStart, err := time.Parse(time.RFC3339, out.WindowStart)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid window_start")
	}
	windowEnd, err := time.Parse(time.RFC3339, out.WindowEnd)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid window_end")
	}

	y, m, d := windowStart.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, windowStart.Location())
	grid, err := timegrid.New(timegrid.Config{
		Day:         windowStart,
		StartMinute: int(windowStart.Sub(midnight).Minutes()),
		EndMinute:   int(windowEnd.Sub(midnight).Minutes()),
		StepMinutes: out.StepMinutes,
	})
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Date:   out.Date,
		Source: out.Source,
		Grid:   grid,
		Items:  make([]layout.Styled[event.Event], 0, len(out.Events)),
	}
	for _, e := range out.Events {
		doc.Items = append(doc.Items, layout.Styled[event.Event]{
			Event: event.Event{
				ID:       e.ID,
				Title:    e.Title,
				Location: e.Location,
				Type:     e.Type,
				AllDay:   e.AllDay,
				Start:    e.Start,
				End:      e.End,
			},
			Style: layout.Style{
				Top:     e.Style.Top,
				Height:  e.Style.Height,
				Width:   layout.Dimension{Value: e.Style.Width.Value, Unit: layout.Unit(e.Style.Width.Unit)},
				XOffset: layout.Dimension{Value: e.Style.XOffset.Value, Unit: layout.Unit(e.Style.XOffset.Unit)},
			},
		})
	}
	return doc, nil
}
