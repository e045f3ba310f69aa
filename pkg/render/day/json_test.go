package day

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/travelboss/daygrid/pkg/event"
	"github.com/travelboss/daygrid/pkg/layout"
)

func TestRenderJSON(t *testing.T) {
	grid := testGrid(t)
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	items := []layout.Styled[event.Event]{
		styledItem("ev1", "Planning", day.Add(9*time.Hour), day.Add(10*time.Hour), layout.Style{
			Top: 10, Height: 10,
			Width:   layout.Dimension{Value: 100, Unit: layout.UnitPercent},
			XOffset: layout.Dimension{Value: 0, Unit: layout.UnitPercent},
		}),
	}

	data, err := RenderJSON(items, grid, WithJSONDate("2024-03-15"), WithJSONSource("work"))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out struct {
		Date        string `json:"date"`
		Source      string `json:"source"`
		StepMinutes int    `json:"step_minutes"`
		Events      []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
			Style struct {
				Top   float64 `json:"top"`
				Width struct {
					Value float64 `json:"value"`
					Unit  string  `json:"unit"`
				} `json:"width"`
			} `json:"style"`
		} `json:"events"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if out.Date != "2024-03-15" || out.Source != "work" {
		t.Errorf("metadata = %q %q", out.Date, out.Source)
	}
	if out.StepMinutes != 15 {
		t.Errorf("StepMinutes = %d", out.StepMinutes)
	}
	if len(out.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(out.Events))
	}
	ev := out.Events[0]
	if ev.ID != "ev1" || ev.Title != "Planning" {
		t.Errorf("event = %+v", ev)
	}
	if ev.Style.Top != 10 {
		t.Errorf("Top = %v", ev.Style.Top)
	}
	if ev.Style.Width.Value != 100 || ev.Style.Width.Unit != "%" {
		t.Errorf("Width = %+v", ev.Style.Width)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	grid := testGrid(t)

	data, err := RenderJSON(nil, grid)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out struct {
		Events []any `json:"events"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Events == nil {
		t.Error("events should marshal as an empty array, not null")
	}
}

func TestParseJSONRoundTrip(t *testing.T) {
	grid := testGrid(t)
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	items := []layout.Styled[event.Event]{
		styledItem("ev1", "Planning", day.Add(9*time.Hour), day.Add(10*time.Hour), layout.Style{
			Top: 10, Height: 10,
			Width:   layout.Dimension{Value: 100, Unit: layout.UnitPercent},
			XOffset: layout.Dimension{Value: 0, Unit: layout.UnitPercent},
		}),
	}

	data, err := RenderJSON(items, grid, WithJSONDate("2024-03-15"), WithJSONSource("work"))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	doc, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	if doc.Date != "2024-03-15" || doc.Source != "work" {
		t.Errorf("metadata = %q %q", doc.Date, doc.Source)
	}
	if len(doc.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(doc.Items))
	}
	got := doc.Items[0]
	if got.Event.ID != "ev1" || !got.Event.Start.Equal(day.Add(9*time.Hour)) {
		t.Errorf("item = %+v", got.Event)
	}
	if got.Style.Width.Unit != layout.UnitPercent || got.Style.Width.Value != 100 {
		t.Errorf("width = %+v", got.Style.Width)
	}
	if !doc.Grid.WindowStart().Equal(grid.WindowStart()) || doc.Grid.StepMinutes() != grid.StepMinutes() {
		t.Errorf("grid window = %v step %d", doc.Grid.WindowStart(), doc.Grid.StepMinutes())
	}
}

func TestParseJSONInvalid(t *testing.T) {
	if _, err := ParseJSON([]byte("{not json")); err == nil {
		t.Error("ParseJSON accepted malformed input")
	}
	if _, err := ParseJSON([]byte(`{"window_start":"noon","window_end":"later"}`)); err == nil {
		t.Error("ParseJSON accepted bad window timestamps")
	}
}
