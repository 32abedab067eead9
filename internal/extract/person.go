// Package extract pulls structured parameters out of free-form chat text:
// person identifiers (enrollment numbers, staff IDs, phones, emails, names)
// and class/batch designators. Extraction is a strict precedence cascade;
// the ordering is part of the contract and pinned by tests, not an
// implementation detail.
package extract

import (
	"regexp"
	"strings"
)

// IdentifierKind tags which variant of a person identifier was found.
type IdentifierKind string

// Identifier kinds in extraction precedence order.
const (
	IdentStudentEnrollment IdentifierKind = "student_enrollment"
	IdentTeacherID         IdentifierKind = "teacher_id"
	IdentPhone             IdentifierKind = "phone"
	IdentEmail             IdentifierKind = "email"
	IdentName              IdentifierKind = "name"
	IdentUnknown           IdentifierKind = "unknown"
)

// PersonIdentifier is a tagged variant: exactly one kind with its canonical
// value, or IdentUnknown with an empty value.
type PersonIdentifier struct {
	Kind  IdentifierKind
	Value string
}

// IsUnknown reports whether no identifier could be extracted.
func (p PersonIdentifier) IsUnknown() bool {
	return p.Kind == IdentUnknown || p.Value == ""
}

var (
	enrollmentPattern = regexp.MustCompile(`\b(\d{11})\b`)
	teacherIDPattern  = regexp.MustCompile(`\b(\d{5,6})\b`)
	phonePattern      = regexp.MustCompile(`\b(\d{10})\b`)
	emailPattern      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// Name extraction: text following a trigger word, on lowercased input.
	nameTriggerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:details?\s+of|info\s+of|about|for|who\s+is|who's|named?)\s+([a-z]+(?:\s+[a-z]+)*)`),
		regexp.MustCompile(`(?:find|search|show|get|fetch)\s+([a-z]+(?:\s+[a-z]+)*)`),
	}

	capitalizedPattern = regexp.MustCompile(`\b([A-Z][a-z]+)\b`)
	contentWordPattern = regexp.MustCompile(`\b([a-zA-Z]{2,})\b`)
)

// nameStopWords are filtered out of trigger-word name candidates.
var nameStopWords = map[string]bool{
	"details": true, "detail": true, "info": true, "information": true,
	"of": true, "about": true, "for": true, "who": true, "is": true,
	"the": true, "a": true, "an": true, "student": true, "teacher": true,
	"professor": true, "faculty": true, "person": true, "find": true,
	"search": true, "show": true, "get": true, "fetch": true,
	"phone": true, "number": true, "email": true, "enrollment": true,
	"name": true, "named": true,
}

// capitalizedBlocklist excludes day and subject words from the
// capitalized-token name fallback.
var capitalizedBlocklist = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
	"Computer": true, "Engineering": true, "Science": true,
}

// Person extracts a person identifier from raw text.
//
// The cascade is strict, first match wins, no backtracking:
//  1. 11-digit run  -> student enrollment
//  2. 5-6 digit run -> teacher ID
//  3. 10-digit run  -> phone
//  4. email token   -> email
//  5. name: trigger-word extraction, then capitalized tokens, then the last
//     content word of at least 3 letters
//
// The numeric checks are unconditional substring scans: an 11-digit run
// anywhere in the message is always an enrollment number, even embedded in
// other content. That precedence is deliberate and covered by tests.
func Person(text string) PersonIdentifier {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	if m := enrollmentPattern.FindStringSubmatch(trimmed); m != nil {
		return PersonIdentifier{Kind: IdentStudentEnrollment, Value: m[1]}
	}
	if m := teacherIDPattern.FindStringSubmatch(trimmed); m != nil {
		return PersonIdentifier{Kind: IdentTeacherID, Value: m[1]}
	}
	if m := phonePattern.FindStringSubmatch(trimmed); m != nil {
		return PersonIdentifier{Kind: IdentPhone, Value: m[1]}
	}
	if m := emailPattern.FindString(trimmed); m != "" {
		return PersonIdentifier{Kind: IdentEmail, Value: m}
	}

	if name := nameAfterTrigger(lower); name != "" {
		return PersonIdentifier{Kind: IdentName, Value: name}
	}
	if name := capitalizedName(trimmed); name != "" {
		return PersonIdentifier{Kind: IdentName, Value: name}
	}
	if name := lastContentWord(lower); name != "" {
		return PersonIdentifier{Kind: IdentName, Value: name}
	}

	return PersonIdentifier{Kind: IdentUnknown}
}

// nameAfterTrigger extracts the words following a trigger phrase, with stop
// words removed. Returns "" when nothing usable remains.
func nameAfterTrigger(lower string) string {
	for _, pattern := range nameTriggerPatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		var kept []string
		for _, w := range strings.Fields(m[1]) {
			if !nameStopWords[w] {
				kept = append(kept, w)
			}
		}
		name := strings.Join(kept, " ")
		if len(name) >= 2 {
			return name
		}
	}
	return ""
}

// capitalizedName collects capitalized tokens from the case-preserved text,
// skipping the day/subject blocklist.
func capitalizedName(original string) string {
	var kept []string
	for _, m := range capitalizedPattern.FindAllStringSubmatch(original, -1) {
		if !capitalizedBlocklist[m[1]] {
			kept = append(kept, m[1])
		}
	}
	return strings.Join(kept, " ")
}

// lastContentWord returns the last alphabetic word of at least three letters
// that is not a stop word. Last resort before giving up on a name.
func lastContentWord(lower string) string {
	var last string
	for _, m := range contentWordPattern.FindAllStringSubmatch(lower, -1) {
		w := m[1]
		if len(w) >= 3 && !nameStopWords[w] {
			last = w
		}
	}
	return last
}
