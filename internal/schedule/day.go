// Package schedule provides day and clock-time normalization for timetable
// queries. It resolves day-of-week references (including "today"/"tomorrow"
// against an injected clock) and maps weekdays to the six-bit day encoding
// used by the timetable schema.
package schedule

import (
	"strings"
	"time"
)

// DayCode is a canonical three-letter weekday code.
type DayCode string

// Weekday codes. Sunday exists as a code (the clock can land on it) but has
// no slot in the binary encoding: the academic week is six days.
const (
	DayMon DayCode = "MON"
	DayTue DayCode = "TUE"
	DayWed DayCode = "WED"
	DayThu DayCode = "THU"
	DayFri DayCode = "FRI"
	DaySat DayCode = "SAT"
	DaySun DayCode = "SUN"
)

// DefaultFallbackDay is used when a timetable query names no day.
// Arbitrary but stable; overridable via config (FALLBACK_DAY).
const DefaultFallbackDay = DayFri

// dayBinary maps weekdays to the one-hot encoding stored in the card table.
// Sunday is intentionally absent (six-day week schema).
var dayBinary = map[DayCode]string{
	DayMon: "100000",
	DayTue: "010000",
	DayWed: "001000",
	DayThu: "000100",
	DayFri: "000010",
	DaySat: "000001",
}

// dayNames maps codes to full names for user-facing text.
var dayNames = map[DayCode]string{
	DayMon: "Monday",
	DayTue: "Tuesday",
	DayWed: "Wednesday",
	DayThu: "Thursday",
	DayFri: "Friday",
	DaySat: "Saturday",
	DaySun: "Sunday",
}

// dayKeyword pairs a literal keyword with its code. Resolution scans this
// list in order and the first substring hit wins, so full names must come
// before their abbreviations.
type dayKeyword struct {
	token string
	code  DayCode
}

var dayKeywords = []dayKeyword{
	{"monday", DayMon}, {"mon", DayMon},
	{"tuesday", DayTue}, {"tue", DayTue},
	{"wednesday", DayWed}, {"wed", DayWed},
	{"thursday", DayThu}, {"thu", DayThu},
	{"friday", DayFri}, {"fri", DayFri},
	{"saturday", DaySat}, {"sat", DaySat},
}

// DayBinary returns the six-bit encoding for a weekday.
// ok is false for Sunday and unknown codes; callers must treat Sunday as
// "no classes" rather than inventing a seventh bit.
func DayBinary(code DayCode) (string, bool) {
	b, ok := dayBinary[code]
	return b, ok
}

// DayName returns the full English day name, or the code itself if unknown.
func DayName(code DayCode) string {
	if name, ok := dayNames[code]; ok {
		return name
	}
	return string(code)
}

// weekdayCode converts time.Weekday to a DayCode.
func weekdayCode(wd time.Weekday) DayCode {
	switch wd {
	case time.Monday:
		return DayMon
	case time.Tuesday:
		return DayTue
	case time.Wednesday:
		return DayWed
	case time.Thursday:
		return DayThu
	case time.Friday:
		return DayFri
	case time.Saturday:
		return DaySat
	default:
		return DaySun
	}
}

// Resolver resolves day references against an injected clock.
// The clock is injected so "today"/"tomorrow" are deterministic in tests.
type Resolver struct {
	now      func() time.Time
	fallback DayCode
}

// NewResolver creates a day resolver. now must not be nil; fallback is the
// day used by FallbackDay when a query names no day (empty = Friday).
func NewResolver(now func() time.Time, fallback DayCode) *Resolver {
	if now == nil {
		now = time.Now
	}
	if fallback == "" {
		fallback = DefaultFallbackDay
	}
	return &Resolver{now: now, fallback: fallback}
}

// Today returns the current weekday per the injected clock.
func (r *Resolver) Today() DayCode {
	return weekdayCode(r.now().Weekday())
}

// Tomorrow returns the next weekday per the injected clock.
func (r *Resolver) Tomorrow() DayCode {
	return weekdayCode(r.now().AddDate(0, 0, 1).Weekday())
}

// FallbackDay returns the configured default day for timetable queries that
// name no day.
func (r *Resolver) FallbackDay() DayCode {
	return r.fallback
}

// ResolveDay scans text for a day reference and returns its code.
// Literal day names and abbreviations are matched as case-insensitive
// substrings in a fixed order (full names before abbreviations); the relative
// words "today" and "tomorrow" resolve against the injected clock. The first
// keyword hit wins. ok is false when no day reference is present.
func (r *Resolver) ResolveDay(text string) (DayCode, bool) {
	lower := strings.ToLower(text)
	for _, kw := range dayKeywords {
		if strings.Contains(lower, kw.token) {
			return kw.code, true
		}
	}
	if strings.Contains(lower, "today") {
		return r.Today(), true
	}
	if strings.Contains(lower, "tomorrow") {
		return r.Tomorrow(), true
	}
	return "", false
}
