package ics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/travelboss/daygrid/pkg/errors"
	"github.com/travelboss/daygrid/pkg/event"
)

// defaultMaxOccurrences caps recurrence expansion per event so a
// malformed or unbounded RRULE cannot explode a single day.
const defaultMaxOccurrences = 1000

// ExpandConfig controls recurrence expansion for a single day.
type ExpandConfig struct {
	// Day selects the calendar day to expand. Only the date component is
	// used; instances are clipped to [Day 00:00, next day 00:00).
	Day time.Time

	// Location is the display timezone for resulting instances.
	// If nil, Day's location is used.
	Location *time.Location

	// MaxOccurrences caps expansion per recurring event.
	// Zero selects defaultMaxOccurrences.
	MaxOccurrences int
}

// Expand materializes concrete event instances for one day from parsed
// VEVENTs. It handles single events, RRULE recurrence, EXDATE removal,
// and RECURRENCE-ID overrides. All-day events expand to the full day
// window and carry the all-day grouping key. Results are sorted by start
// time for deterministic downstream processing.
func Expand(raw []RawEvent, cfg ExpandConfig) ([]event.Event, error) {
	if cfg.Day.IsZero() {
		return nil, errors.New(errors.ErrCodeInvalidRange, "expand day must be set")
	}
	loc := cfg.Location
	if loc == nil {
		loc = cfg.Day.Location()
	}
	if cfg.MaxOccurrences <= 0 {
		cfg.MaxOccurrences = defaultMaxOccurrences
	}

	dayStart := time.Date(cfg.Day.Year(), cfg.Day.Month(), cfg.Day.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	// Overrides replace specific instances of their base event's series.
	base := make([]RawEvent, 0, len(raw))
	overrides := make(map[string][]RawEvent)
	for _, ev := range raw {
		if ev.IsOverride && ev.RecurrenceID != nil {
			overrides[ev.UID] = append(overrides[ev.UID], ev)
			continue
		}
		base = append(base, ev)
	}

	out := make([]event.Event, 0)
	for _, ev := range base {
		instances := expandOne(ev, overrides[ev.UID], dayStart, dayEnd, loc, cfg.MaxOccurrences)
		out = append(out, instances...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func expandOne(ev RawEvent, overrides []RawEvent, dayStart, dayEnd time.Time, loc *time.Location, maxOcc int) []event.Event {
	if ev.RawRRule == "" {
		if !overlaps(ev.Start, ev.End, dayStart, dayEnd) {
			return nil
		}
		start, end, src := ev.Start, ev.End, ev
		if o, ok := overrideFor(overrides, start); ok {
			start, end, src = o.Start, o.End, o
		}
		return []event.Event{makeInstance(src, start, end, loc)}
	}

	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		return nil
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	// Between operates in the rule's own timezone. Widen the query by the
	// event duration so instances that started before midnight but run
	// into the day are still found.
	dur := ev.End.Sub(ev.Start)
	queryStart := dayStart.Add(-dur).In(ev.Start.Location())
	queryEnd := dayEnd.In(ev.Start.Location())

	times := set.Between(queryStart, queryEnd, true)
	if len(times) > maxOcc {
		times = times[:maxOcc]
	}

	out := make([]event.Event, 0, len(times))
	for _, start := range times {
		var end time.Time
		if ev.AllDay {
			start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
			end = start.Add(24 * time.Hour)
		} else {
			end = start.Add(dur)
		}
		if !overlaps(start, end, dayStart, dayEnd) {
			continue
		}
		src := ev
		if o, ok := overrideFor(overrides, start); ok {
			start, end, src = o.Start, o.End, o
		}
		out = append(out, makeInstance(src, start, end, loc))
	}
	return out
}

// overrideFor matches a RECURRENCE-ID against an instance start with
// exact time equality.
func overrideFor(overrides []RawEvent, start time.Time) (RawEvent, bool) {
	for _, ov := range overrides {
		if ov.RecurrenceID != nil && ov.RecurrenceID.In(start.Location()).Equal(start) {
			return ov, true
		}
	}
	return RawEvent{}, false
}

func makeInstance(ev RawEvent, start, end time.Time, loc *time.Location) event.Event {
	start = start.In(loc)
	end = end.In(loc)

	typ := ev.Category
	if ev.AllDay {
		typ = event.TypeAllDay
	}

	return event.Event{
		ID:          instanceID(ev.UID, start),
		UID:         ev.UID,
		Title:       ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Type:        typ,
		AllDay:      ev.AllDay,
		Start:       start,
		End:         end,
	}
}

// instanceID derives a stable per-instance identifier from the source UID
// and occurrence start. Stability matters for caching and for storing
// layouts keyed by event ID.
func instanceID(uid string, start time.Time) string {
	name := uid + "/" + start.UTC().Format(time.RFC3339)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
