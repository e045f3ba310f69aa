package ics

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/travelboss/daygrid/pkg/errors"
)

// RawEvent is the normalized form of a single VEVENT before recurrence
// expansion. Recurrence data (RRULE, EXDATE, RECURRENCE-ID) is carried
// unexpanded; Expand turns RawEvents into concrete instances.
type RawEvent struct {
	UID string
	Seq int

	Summary     string
	Description string
	Location    string
	Category    string

	Start  time.Time
	End    time.Time
	AllDay bool

	RawRRule     string
	ExDates      []time.Time
	RecurrenceID *time.Time
	IsOverride   bool
}

// Parse decodes an ICS payload into RawEvents.
//
// Timezone handling (VTIMEZONE, TZID) is delegated to the underlying
// library; Start and End carry proper locations. All-day events are
// detected from the DTSTART value format (VALUE=DATE or a date-only
// value). Malformed VEVENTs are skipped rather than failing the whole
// feed; a feed with no parseable structure at all is an error.
func Parse(body []byte) ([]RawEvent, error) {
	if len(body) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidCalendar, "empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCalendar, err, "failed to parse ICS feed")
	}

	events := make([]RawEvent, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		ev, perr := parseVEvent(ve)
		if perr != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func parseVEvent(ve *ical.VEvent) (RawEvent, error) {
	var out RawEvent

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, errors.New(errors.ErrCodeInvalidEvent, "VEVENT missing UID")
	}
	out.UID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySequence); p != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(p.Value)); err == nil {
			out.Seq = n
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}

	// CATEGORIES carries the grouping key. Only the first category is
	// used; grouping is single-valued.
	if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil {
		cats := strings.Split(p.Value, ",")
		if len(cats) > 0 {
			cat := strings.TrimSpace(cats[0])
			if err := errors.ValidateGroupKey(cat); err == nil {
				out.Category = cat
			}
		}
	}

	start, _ := ve.GetStartAt()
	end, _ := ve.GetEndAt()
	out.Start = start
	out.End = end

	if p := ve.GetProperty(ical.ComponentPropertyDtStart); p != nil {
		if params := p.ICalParameters; params != nil {
			if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
				out.AllDay = true
			}
		}
		if !strings.Contains(p.Value, "T") {
			out.AllDay = true
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RawRRule = p.Value
	}

	// EXDATE can appear multiple times, each with a comma-separated list.
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	if p := ve.GetProperty("RECURRENCE-ID"); p != nil {
		if t, err := parseICSTime(p.Value); err == nil {
			out.RecurrenceID = &t
			out.IsOverride = true
		}
	}

	return out, nil
}

// parseICSTime parses basic ICS DATE/DATE-TIME values for EXDATE and
// RECURRENCE-ID, where full parameter context is not available.
func parseICSTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.New(errors.ErrCodeInvalidFormat, "empty time value")
	}
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}
	if strings.Contains(v, "T") {
		return time.ParseInLocation("20060102T150405", v, time.Local)
	}
	return time.ParseInLocation("20060102", v, time.Local)
}
