// Package intent classifies free-form chat messages into a closed set of
// query intents and assembles the per-request parameter bundle.
//
// Classification is an explicit ordered list of (predicate, intent) rules
// evaluated first-match-wins. The ordering is load-bearing and part of the
// contract: greeting short-circuits everything, room availability is checked
// before the where-is-batch phrases (both can mention "right now"), and the
// batch pattern is checked before the looser class pattern that would
// otherwise swallow it. Each position in the cascade is pinned by a
// regression test.
package intent

// Intent is the closed enumeration of query intents. Every non-empty message
// maps to exactly one intent; nothing above General matching means General.
type Intent string

// Query intents.
const (
	PersonLookup     Intent = "PERSON_LOOKUP"
	BatchTimetable   Intent = "BATCH_TIMETABLE"
	WhereIsBatch     Intent = "WHERE_IS_BATCH"
	RoomAvailability Intent = "ROOM_AVAILABILITY"
	TimetableView    Intent = "TIMETABLE_VIEW"
	General          Intent = "GENERAL"
	Greeting         Intent = "GREETING"
)

// String returns the wire label of the intent.
func (i Intent) String() string {
	return string(i)
}
