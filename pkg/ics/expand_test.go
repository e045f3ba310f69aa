package ics

import (
	"testing"
	"time"

	"github.com/travelboss/daygrid/pkg/errors"
	"github.com/travelboss/daygrid/pkg/event"
)

func TestExpandRequiresDay(t *testing.T) {
	_, err := Expand(nil, ExpandConfig{})
	if errors.GetCode(err) != errors.ErrCodeInvalidRange {
		t.Errorf("got code %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidRange)
	}
}

func TestExpandSingleEvent(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	raw := []RawEvent{{
		UID:      "a@example.com",
		Summary:  "Review",
		Category: "work",
		Start:    time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}}

	got, err := Expand(raw, ExpandConfig{Day: day})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d instances, want 1", len(got))
	}
	ev := got[0]
	if ev.Title != "Review" || ev.UID != "a@example.com" {
		t.Errorf("instance = %+v", ev)
	}
	if ev.Type != "work" {
		t.Errorf("Type = %q, want %q", ev.Type, "work")
	}
	if ev.ID == "" {
		t.Error("instance ID empty")
	}
}

func TestExpandSkipsOtherDays(t *testing.T) {
	day := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
	raw := []RawEvent{{
		UID:   "a@example.com",
		Start: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}}
	got, err := Expand(raw, ExpandConfig{Day: day})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d instances, want 0", len(got))
	}
}

func TestExpandRecurrence(t *testing.T) {
	// Daily standup starting March 10; expanding March 15 should yield
	// exactly one instance at the same wall clock time.
	raw := []RawEvent{{
		UID:      "standup@example.com",
		Summary:  "Standup",
		Start:    time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 3, 10, 9, 15, 0, 0, time.UTC),
		RawRRule: "FREQ=DAILY;COUNT=30",
	}}
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	got, err := Expand(raw, ExpandConfig{Day: day})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d instances, want 1", len(got))
	}
	wantStart := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	if !got[0].Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", got[0].Start, wantStart)
	}
	if got[0].End.Sub(got[0].Start) != 15*time.Minute {
		t.Errorf("duration = %v, want 15m", got[0].End.Sub(got[0].Start))
	}
}

func TestExpandExDate(t *testing.T) {
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	raw := []RawEvent{{
		UID:      "standup@example.com",
		Start:    start,
		End:      start.Add(15 * time.Minute),
		RawRRule: "FREQ=DAILY;COUNT=30",
		ExDates:  []time.Time{time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)},
	}}
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	got, err := Expand(raw, ExpandConfig{Day: day})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("excluded instance still expanded: %d", len(got))
	}
}

func TestExpandOverride(t *testing.T) {
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	rid := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	raw := []RawEvent{
		{
			UID:      "standup@example.com",
			Summary:  "Standup",
			Start:    start,
			End:      start.Add(15 * time.Minute),
			RawRRule: "FREQ=DAILY;COUNT=30",
		},
		{
			UID:          "standup@example.com",
			Summary:      "Standup (moved)",
			Start:        time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC),
			End:          time.Date(2024, 3, 15, 11, 30, 0, 0, time.UTC),
			RecurrenceID: &rid,
			IsOverride:   true,
		},
	}
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	got, err := Expand(raw, ExpandConfig{Day: day})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d instances, want 1", len(got))
	}
	if got[0].Title != "Standup (moved)" {
		t.Errorf("Title = %q, override not applied", got[0].Title)
	}
	wantStart := time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC)
	if !got[0].Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", got[0].Start, wantStart)
	}
}

func TestExpandAllDay(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	raw := []RawEvent{{
		UID:     "offsite@example.com",
		Summary: "Offsite",
		Start:   day,
		End:     day.Add(24 * time.Hour),
		AllDay:  true,
	}}

	got, err := Expand(raw, ExpandConfig{Day: day})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d instances, want 1", len(got))
	}
	if got[0].Type != event.TypeAllDay {
		t.Errorf("Type = %q, want %q", got[0].Type, event.TypeAllDay)
	}
	if !got[0].AllDay {
		t.Error("AllDay flag lost")
	}
}

func TestExpandDeterministicIDs(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	raw := []RawEvent{{
		UID:   "a@example.com",
		Start: day.Add(9 * time.Hour),
		End:   day.Add(10 * time.Hour),
	}}

	first, _ := Expand(raw, ExpandConfig{Day: day})
	second, _ := Expand(raw, ExpandConfig{Day: day})
	if first[0].ID != second[0].ID {
		t.Errorf("instance IDs not stable: %s vs %s", first[0].ID, second[0].ID)
	}
}

func TestExpandSortsByStart(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	raw := []RawEvent{
		{UID: "late@example.com", Start: day.Add(14 * time.Hour), End: day.Add(15 * time.Hour)},
		{UID: "early@example.com", Start: day.Add(8 * time.Hour), End: day.Add(9 * time.Hour)},
	}

	got, err := Expand(raw, ExpandConfig{Day: day})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d instances, want 2", len(got))
	}
	if got[0].UID != "early@example.com" {
		t.Errorf("instances not sorted by start: %s first", got[0].UID)
	}
}
