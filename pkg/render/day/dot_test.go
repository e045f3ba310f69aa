package day

import (
	"strings"
	"testing"
	"time"

	"github.com/travelboss/daygrid/pkg/event"
	"github.com/travelboss/daygrid/pkg/layout"
)

func TestToDOT(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	items := []layout.Styled[event.Event]{
		styledItem("a", "First", day.Add(9*time.Hour), day.Add(11*time.Hour), layout.Style{}),
		styledItem("b", "Second", day.Add(10*time.Hour), day.Add(12*time.Hour), layout.Style{}),
		styledItem("c", "Third", day.Add(14*time.Hour), day.Add(15*time.Hour), layout.Style{}),
	}

	dot := ToDOT(items, DOTOptions{})

	if !strings.HasPrefix(dot, "graph overlaps {") {
		t.Error("missing graph header")
	}
	for _, want := range []string{`"a" [`, `"b" [`, `"c" [`} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing node %s", want)
		}
	}
	if !strings.Contains(dot, `"a" -- "b";`) {
		t.Error("overlapping events should be connected")
	}
	if strings.Contains(dot, `"a" -- "c";`) || strings.Contains(dot, `"b" -- "c";`) {
		t.Error("disjoint event connected")
	}
}

func TestToDOTDetailed(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	items := []layout.Styled[event.Event]{
		styledItem("a", "First", day.Add(9*time.Hour), day.Add(10*time.Hour), layout.Style{
			Top: 12.5, Height: 25,
			Width: layout.Dimension{Value: 100, Unit: layout.UnitPercent},
		}),
	}

	dot := ToDOT(items, DOTOptions{Detailed: true})
	if !strings.Contains(dot, "09:00 - 10:00") {
		t.Error("detailed label missing times")
	}
	if !strings.Contains(dot, "top: 12.5") {
		t.Error("detailed label missing style data")
	}
}

func TestToDOTGroupedDashed(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	it := styledItem("m", "Marker", day, day.Add(24*time.Hour), layout.Style{})
	it.Event.Type = event.TypeAllDay

	dot := ToDOT([]layout.Styled[event.Event]{it}, DOTOptions{})
	if !strings.Contains(dot, "dashed") {
		t.Error("grouped event should render dashed")
	}
}
