package day

import (
	"strings"
	"testing"
	"time"

	"github.com/travelboss/daygrid/pkg/event"
	"github.com/travelboss/daygrid/pkg/layout"
	"github.com/travelboss/daygrid/pkg/timegrid"
)

func testGrid(t *testing.T) *timegrid.Grid {
	t.Helper()
	g, err := timegrid.New(timegrid.Config{
		Day:         time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		StartMinute: 8 * 60,
		EndMinute:   18 * 60,
	})
	if err != nil {
		t.Fatalf("timegrid.New: %v", err)
	}
	return g
}

func styledItem(id, title string, start, end time.Time, style layout.Style) layout.Styled[event.Event] {
	return layout.Styled[event.Event]{
		Event: event.Event{ID: id, Title: title, Start: start, End: end},
		Style: style,
	}
}

func TestRenderSVG(t *testing.T) {
	grid := testGrid(t)
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	items := []layout.Styled[event.Event]{
		styledItem("ev1", "Planning", day.Add(9*time.Hour), day.Add(10*time.Hour), layout.Style{
			Top: 10, Height: 10,
			Width:   layout.Dimension{Value: 100, Unit: layout.UnitPercent},
			XOffset: layout.Dimension{Value: 0, Unit: layout.UnitPercent},
		}),
	}

	svg := string(RenderSVG(items, grid, WithTitle("Friday"), WithSize(800, 1200)))

	if !strings.HasPrefix(svg, "<svg xmlns=") {
		t.Error("missing svg root element")
	}
	if !strings.Contains(svg, `id="event-ev1"`) {
		t.Error("missing event rect")
	}
	if !strings.Contains(svg, ">Planning</text>") {
		t.Error("missing event title text")
	}
	if !strings.Contains(svg, ">Friday</text>") {
		t.Error("missing heading")
	}
	if !strings.Contains(svg, ">09:00</text>") {
		t.Error("missing hour label")
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("unterminated svg document")
	}
}

func TestRenderSVGEscapesTitles(t *testing.T) {
	grid := testGrid(t)
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	items := []layout.Styled[event.Event]{
		styledItem("ev1", `1:1 <with> "Sam" & co`, day.Add(9*time.Hour), day.Add(10*time.Hour), layout.Style{
			Top: 10, Height: 10,
			Width: layout.Dimension{Value: 100, Unit: layout.UnitPercent},
		}),
	}

	svg := string(RenderSVG(items, grid))
	if strings.Contains(svg, "<with>") {
		t.Error("title not escaped")
	}
	if !strings.Contains(svg, "&lt;with&gt;") {
		t.Error("escaped title missing")
	}
}

func TestRenderSVGPixelOffsets(t *testing.T) {
	grid := testGrid(t)
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	// A pixel-width marker must not be scaled by the column width.
	items := []layout.Styled[event.Event]{
		styledItem("m1", "Marker", day.Add(9*time.Hour), day.Add(10*time.Hour), layout.Style{
			Top: 0, Height: 5,
			Width:   layout.Dimension{Value: 40, Unit: layout.UnitPixel},
			XOffset: layout.Dimension{Value: 0, Unit: layout.UnitPixel},
		}),
	}

	svg := string(RenderSVG(items, grid, WithSize(800, 1200), WithGutterWidth(60)))
	if !strings.Contains(svg, `width="40.0"`) {
		t.Errorf("pixel width scaled: %s", svg)
	}
	if !strings.Contains(svg, `x="60.0"`) {
		t.Error("pixel offset should start at the gutter edge")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		dim  layout.Dimension
		want float64
	}{
		{"percent", layout.Dimension{Value: 50, Unit: layout.UnitPercent}, 370},
		{"pixel", layout.Dimension{Value: 50, Unit: layout.UnitPixel}, 50},
		{"unitless", layout.Dimension{Value: 50, Unit: layout.UnitNone}, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolve(tt.dim, 740); got != tt.want {
				t.Errorf("resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}
