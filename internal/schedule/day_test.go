package schedule

import (
	"testing"
	"time"
)

// fixedClock returns a clock pinned to the given date.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// 2025-11-05 is a Wednesday.
var wednesday = time.Date(2025, 11, 5, 10, 30, 0, 0, time.UTC)

func TestResolveDayLiterals(t *testing.T) {
	r := NewResolver(fixedClock(wednesday), "")

	tests := []struct {
		name   string
		input  string
		want   DayCode
		wantOK bool
	}{
		{"Full name", "timetable for Monday", DayMon, true},
		{"Abbreviation", "classes on TUE", DayTue, true},
		{"Code equals full name", "MON", DayMon, true},
		{"Mixed case", "ThUrSdAy please", DayThu, true},
		{"Saturday", "free on saturday?", DaySat, true},
		{"Sunday not a keyword", "timetable for sunday", "", false},
		{"No day", "details of 7CE-A-2", "", false},
		{"Empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.ResolveDay(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ResolveDay(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveDayIdempotent(t *testing.T) {
	r := NewResolver(fixedClock(wednesday), "")

	first, _ := r.ResolveDay("Monday")
	second, _ := r.ResolveDay("Monday")
	abbrev, _ := r.ResolveDay("MON")

	if first != second || first != abbrev || first != DayMon {
		t.Errorf("day resolution not idempotent: %q, %q, %q", first, second, abbrev)
	}
}

func TestResolveDayRelative(t *testing.T) {
	r := NewResolver(fixedClock(wednesday), "")

	if got, ok := r.ResolveDay("where is 7CE-A today"); !ok || got != DayWed {
		t.Errorf("today = (%q, %v), want (WED, true)", got, ok)
	}
	if got, ok := r.ResolveDay("timetable tomorrow"); !ok || got != DayThu {
		t.Errorf("tomorrow = (%q, %v), want (THU, true)", got, ok)
	}

	// Saturday rolls into Sunday; the code exists even without a binary slot.
	sat := time.Date(2025, 11, 8, 9, 0, 0, 0, time.UTC)
	r2 := NewResolver(fixedClock(sat), "")
	if got, _ := r2.ResolveDay("tomorrow"); got != DaySun {
		t.Errorf("tomorrow from Saturday = %q, want SUN", got)
	}
}

func TestResolveDayLiteralBeatsRelative(t *testing.T) {
	r := NewResolver(fixedClock(wednesday), "")

	// Literal day keywords are scanned before "today".
	got, ok := r.ResolveDay("timetable for monday, not today")
	if !ok || got != DayMon {
		t.Errorf("got (%q, %v), want (MON, true)", got, ok)
	}
}

func TestDayBinary(t *testing.T) {
	tests := []struct {
		code   DayCode
		want   string
		wantOK bool
	}{
		{DayMon, "100000", true},
		{DayTue, "010000", true},
		{DayWed, "001000", true},
		{DayThu, "000100", true},
		{DayFri, "000010", true},
		{DaySat, "000001", true},
		{DaySun, "", false}, // six-day week: Sunday has no slot
		{DayCode("XXX"), "", false},
	}

	for _, tt := range tests {
		got, ok := DayBinary(tt.code)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("DayBinary(%q) = (%q, %v), want (%q, %v)", tt.code, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDayName(t *testing.T) {
	if got := DayName(DayMon); got != "Monday" {
		t.Errorf("DayName(MON) = %q, want Monday", got)
	}
	if got := DayName(DaySun); got != "Sunday" {
		t.Errorf("DayName(SUN) = %q, want Sunday", got)
	}
	if got := DayName(DayCode("???")); got != "???" {
		t.Errorf("DayName(unknown) = %q, want passthrough", got)
	}
}

func TestFallbackDay(t *testing.T) {
	if got := NewResolver(nil, "").FallbackDay(); got != DayFri {
		t.Errorf("default fallback = %q, want FRI", got)
	}
	if got := NewResolver(nil, DayMon).FallbackDay(); got != DayMon {
		t.Errorf("configured fallback = %q, want MON", got)
	}
}
