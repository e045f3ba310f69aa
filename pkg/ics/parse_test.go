package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/travelboss/daygrid/pkg/errors"
)

const sampleFeed = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//test//EN
BEGIN:VEVENT
UID:standup@example.com
SUMMARY:Daily standup
DESCRIPTION:Quick sync
LOCATION:Room 4
CATEGORIES:meeting
DTSTART:20240315T090000Z
DTEND:20240315T091500Z
RRULE:FREQ=DAILY;COUNT=10
EXDATE:20240318T090000Z
END:VEVENT
BEGIN:VEVENT
UID:offsite@example.com
SUMMARY:Team offsite
DTSTART;VALUE=DATE:20240315
DTEND;VALUE=DATE:20240316
END:VEVENT
BEGIN:VEVENT
UID:standup@example.com
RECURRENCE-ID:20240316T090000Z
SUMMARY:Standup (moved)
DTSTART:20240316T100000Z
DTEND:20240316T101500Z
END:VEVENT
END:VCALENDAR
`

func TestParse(t *testing.T) {
	events, err := Parse([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	standup := events[0]
	if standup.UID != "standup@example.com" {
		t.Errorf("UID = %q", standup.UID)
	}
	if standup.Summary != "Daily standup" {
		t.Errorf("Summary = %q", standup.Summary)
	}
	if standup.Description != "Quick sync" {
		t.Errorf("Description = %q", standup.Description)
	}
	if standup.Location != "Room 4" {
		t.Errorf("Location = %q", standup.Location)
	}
	if standup.Category != "meeting" {
		t.Errorf("Category = %q", standup.Category)
	}
	if standup.AllDay {
		t.Error("timed event flagged all-day")
	}
	if standup.RawRRule != "FREQ=DAILY;COUNT=10" {
		t.Errorf("RawRRule = %q", standup.RawRRule)
	}
	if len(standup.ExDates) != 1 {
		t.Fatalf("got %d exdates, want 1", len(standup.ExDates))
	}
	wantEx := time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC)
	if !standup.ExDates[0].Equal(wantEx) {
		t.Errorf("ExDate = %v, want %v", standup.ExDates[0], wantEx)
	}
	if !standup.Start.Equal(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v", standup.Start)
	}

	offsite := events[1]
	if !offsite.AllDay {
		t.Error("VALUE=DATE event not flagged all-day")
	}

	override := events[2]
	if !override.IsOverride || override.RecurrenceID == nil {
		t.Fatal("RECURRENCE-ID event not flagged as override")
	}
	wantRid := time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC)
	if !override.RecurrenceID.Equal(wantRid) {
		t.Errorf("RecurrenceID = %v, want %v", override.RecurrenceID, wantRid)
	}
}

func TestParseEmptyBody(t *testing.T) {
	_, err := Parse(nil)
	if errors.GetCode(err) != errors.ErrCodeInvalidCalendar {
		t.Errorf("got code %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidCalendar)
	}
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse([]byte("not a calendar"))
	if err == nil {
		t.Fatal("expected error for non-ICS input")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidCalendar {
		t.Errorf("got code %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidCalendar)
	}
}

func TestParseSkipsEventWithoutUID(t *testing.T) {
	feed := `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//test//EN
BEGIN:VEVENT
SUMMARY:No UID here
DTSTART:20240315T090000Z
DTEND:20240315T100000Z
END:VEVENT
BEGIN:VEVENT
UID:ok@example.com
SUMMARY:Valid
DTSTART:20240315T110000Z
DTEND:20240315T120000Z
END:VEVENT
END:VCALENDAR
`
	events, err := Parse([]byte(feed))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].UID != "ok@example.com" {
		t.Errorf("kept wrong event: %q", events[0].UID)
	}
}

func TestParseRejectsInvalidCategory(t *testing.T) {
	feed := strings.ReplaceAll(sampleFeed, "CATEGORIES:meeting", "CATEGORIES:bad key!")
	events, err := Parse([]byte(feed))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if events[0].Category != "" {
		t.Errorf("invalid category kept: %q", events[0].Category)
	}
}

func TestParseICSTime(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  time.Time
		valid bool
	}{
		{"utc", "20240315T090000Z", time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), true},
		{"local", "20240315T090000", time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local), true},
		{"date", "20240315", time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "tomorrow", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseICSTime(tt.in)
			if tt.valid != (err == nil) {
				t.Fatalf("err = %v, want valid %v", err, tt.valid)
			}
			if tt.valid && !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
