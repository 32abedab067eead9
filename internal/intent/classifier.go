package intent

import (
	"regexp"
	"strings"

	"github.com/guni-dev/guni-chatbot-go/internal/extract"
)

// rule is one entry in the classification cascade. match receives the
// lowercased trimmed message.
type rule struct {
	name   string
	intent Intent
	match  func(lower string) bool
}

var (
	greetingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(hi|hello|hey|heyy|greetings|good morning|good afternoon|good evening|namaste)\b`),
		regexp.MustCompile(`^(thanks|thank you|bye|goodbye|tata)\b`),
	}

	roomPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(free|available|empty|vacant|unoccupied).*(classroom|room|lab)`),
		regexp.MustCompile(`(classroom|room|lab).*(free|available|empty|vacant)`),
		regexp.MustCompile(`which.*(classroom|room|lab).*(available|free)`),
	}

	whereIsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`where\s+(is|are)`),
		regexp.MustCompile(`(current|now|right now).*(location|place|room)`),
		regexp.MustCompile(`(batch|class).*(right now|currently|now)`),
		regexp.MustCompile(`location\s+of`),
	}

	timetableWordPattern = regexp.MustCompile(`timetable|schedule|time\s*table`)

	personKeywordPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(detail|details|info|information)\b`),
		regexp.MustCompile(`\b(who\s+is|who's)\b`),
		regexp.MustCompile(`\btell\s+me\s+about\b`),
		regexp.MustCompile(`\b(fetch|show|get|find|search)\b.*\b(student|teacher|person|name)\b`),
		regexp.MustCompile(`\b(student|teacher|professor|faculty)\b.*\b(detail|info|name)\b`),
		regexp.MustCompile(`\bphone\s*(number|no)?\b`),
		regexp.MustCompile(`\bemail\b`),
		regexp.MustCompile(`\benrollment\b`),
	}

	bareDigitRunPattern = regexp.MustCompile(`\b\d{10,11}\b`)

	terseLookupPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(details?\s+of|info\s+of|about)\s+\w+`),
		regexp.MustCompile(`^who\s+is\s+\w+`),
		regexp.MustCompile(`^find\s+\w+`),
		regexp.MustCompile(`^search\s+\w+`),
	}
)

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// cascade is the ordered rule list. First match wins; later rules are never
// evaluated for a matched message.
var cascade = []rule{
	{
		name:   "greeting",
		intent: Greeting,
		match: func(lower string) bool {
			return matchAny(greetingPatterns, lower)
		},
	},
	{
		name:   "room_availability",
		intent: RoomAvailability,
		match: func(lower string) bool {
			return matchAny(roomPatterns, lower)
		},
	},
	{
		// A locational phrase alone is not enough: without a class-shaped
		// token the message falls through to the rules below.
		name:   "where_is_batch",
		intent: WhereIsBatch,
		match: func(lower string) bool {
			return matchAny(whereIsPatterns, lower) && extract.HasClassToken(lower)
		},
	},
	{
		name:   "batch_timetable",
		intent: BatchTimetable,
		match: func(lower string) bool {
			return extract.HasBatchToken(lower)
		},
	},
	{
		name:   "timetable_view",
		intent: TimetableView,
		match: func(lower string) bool {
			return extract.HasClassToken(lower) || timetableWordPattern.MatchString(lower)
		},
	},
	{
		// A person keyword alone is enough: when no identifier can be
		// extracted afterwards, the "no identifier" failure is reported by
		// the extraction step, not by refusing the intent here.
		name:   "person_keyword",
		intent: PersonLookup,
		match: func(lower string) bool {
			return matchAny(personKeywordPatterns, lower)
		},
	},
	{
		name:   "bare_digit_run",
		intent: PersonLookup,
		match: func(lower string) bool {
			return bareDigitRunPattern.MatchString(lower)
		},
	},
	{
		name:   "terse_lookup",
		intent: PersonLookup,
		match: func(lower string) bool {
			return matchAny(terseLookupPatterns, lower)
		},
	},
}

// Classify resolves a message to exactly one intent by walking the cascade.
// Messages matching nothing classify as General. The caller is responsible
// for rejecting empty messages before classification.
func Classify(text string) Intent {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, r := range cascade {
		if r.match(lower) {
			return r.intent
		}
	}
	return General
}

// RuleNames returns the cascade's rule names in evaluation order.
// Exposed so ordering regressions are testable without reflection.
func RuleNames() []string {
	names := make([]string, len(cascade))
	for i, r := range cascade {
		names[i] = r.name
	}
	return names
}
