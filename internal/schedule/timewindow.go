package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TimeWindow is a parsed clock-time range. IsNow short-circuits Start/End:
// when set, the caller should query against the current time and ignore both.
// Times are 24-hour "HH:MM:SS" strings matching the periods table.
type TimeWindow struct {
	Start string
	End   string
	IsNow bool
}

var (
	nowPattern   = regexp.MustCompile(`right now|currently|now|at present`)
	clockPattern = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
)

// ParseTimeWindow extracts a time range from free text.
//
// If the text contains a "now" phrase, the window is IsNow regardless of any
// clock tokens elsewhere in the message. Otherwise every clock-time token
// (H, H:MM, with optional am/pm) is normalized to 24-hour form and the first
// two matches become start and end; a single match implies a one-hour window.
// Returns nil when nothing time-like is present so the caller can apply its
// own default.
func ParseTimeWindow(text string) *TimeWindow {
	lower := strings.ToLower(text)

	if nowPattern.MatchString(lower) {
		return &TimeWindow{IsNow: true}
	}

	var times []string
	for _, m := range clockPattern.FindAllStringSubmatch(lower, -1) {
		if t, ok := normalizeClock(m[1], m[2], m[3]); ok {
			times = append(times, t)
		}
		if len(times) == 2 {
			break
		}
	}

	switch len(times) {
	case 0:
		return nil
	case 1:
		return &TimeWindow{Start: times[0], End: addHour(times[0])}
	default:
		return &TimeWindow{Start: times[0], End: times[1]}
	}
}

// normalizeClock converts a matched clock token to "HH:MM:SS".
// A bare digit run without am/pm or minutes is not a time (it could be a
// batch number or phone fragment) and is rejected.
func normalizeClock(hourStr, minStr, meridiem string) (string, bool) {
	if meridiem == "" && minStr == "" {
		return "", false
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour > 23 {
		return "", false
	}
	minute := 0
	if minStr != "" {
		minute, err = strconv.Atoi(minStr)
		if err != nil || minute > 59 {
			return "", false
		}
	}

	// 12am is midnight, 12pm stays noon, other pm hours shift by 12.
	switch meridiem {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 {
		return "", false
	}

	return fmt.Sprintf("%02d:%02d:00", hour, minute), true
}

// addHour shifts an "HH:MM:SS" time one hour later. Inputs are daytime
// queries, so wrap-around past midnight is not handled.
func addHour(t string) string {
	hour, err := strconv.Atoi(t[:2])
	if err != nil {
		return t
	}
	hour++
	if hour > 23 {
		hour = 23
	}
	return fmt.Sprintf("%02d%s", hour, t[2:])
}
