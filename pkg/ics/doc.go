// Package ics loads calendar events from iCalendar (RFC 5545) feeds.
//
// Loading is a three step process:
//
//  1. [Fetch] retrieves the raw feed over HTTP (with retry and caching
//     handled by the caller).
//  2. [Parse] decodes VEVENT components into [RawEvent] values, keeping
//     recurrence data (RRULE, EXDATE, RECURRENCE-ID) unexpanded.
//  3. [Expand] materializes concrete event instances for one day,
//     applying recurrence rules, exception dates, and overrides.
//
// The output of Expand is a slice of [event.Event] ready for layout.
package ics
