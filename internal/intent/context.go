package intent

import (
	"time"

	"github.com/guni-dev/guni-chatbot-go/internal/extract"
	"github.com/guni-dev/guni-chatbot-go/internal/schedule"
)

// QueryContext is the immutable parameter bundle handed to the query
// dispatcher. It is built once per request and only the fields relevant to
// the intent are populated.
type QueryContext struct {
	Intent    Intent
	Message   string
	Timestamp time.Time

	// PersonLookup
	Person extract.PersonIdentifier

	// BatchTimetable / WhereIsBatch / TimetableView
	ClassBatch extract.ClassBatchRef
	Day        schedule.DayCode // empty when the message names no day

	// RoomAvailability
	Window *schedule.TimeWindow
}

// Builder assembles QueryContexts. The clock is injected: timestamps and
// relative day resolution must be deterministic under test.
type Builder struct {
	days *schedule.Resolver
	now  func() time.Time
}

// NewBuilder creates a context builder around the given day resolver.
func NewBuilder(days *schedule.Resolver, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{days: days, now: now}
}

// Build extracts intent-specific parameters from the message.
//
// Defaulting policies differ on purpose and both are preserved:
//   - WhereIsBatch with no resolvable day defaults to the current day (the
//     question is about right now), never the configured fallback day.
//   - Timetable intents leave Day empty; the dispatcher decides between the
//     configured fallback and asking the user.
//   - RoomAvailability with no parseable time window defaults to "now".
func (b *Builder) Build(text string, it Intent) QueryContext {
	qc := QueryContext{
		Intent:    it,
		Message:   text,
		Timestamp: b.now(),
	}

	switch it {
	case PersonLookup:
		qc.Person = extract.Person(text)

	case RoomAvailability:
		qc.Window = schedule.ParseTimeWindow(text)
		if qc.Window == nil {
			qc.Window = &schedule.TimeWindow{IsNow: true}
		}

	case BatchTimetable, WhereIsBatch, TimetableView:
		qc.ClassBatch = extract.ClassBatch(text)
		if day, ok := b.days.ResolveDay(text); ok {
			qc.Day = day
		} else if it == WhereIsBatch {
			qc.Day = b.days.Today()
		}
	}

	return qc
}
