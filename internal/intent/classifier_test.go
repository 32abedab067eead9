package intent

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Intent
	}{
		// Greeting
		{"Hi", "hi", Greeting},
		{"Good morning", "good morning!", Greeting},
		{"Thanks", "thanks a lot", Greeting},
		{"Namaste", "namaste", Greeting},

		// Room availability
		{"Free classroom", "any free classroom?", RoomAvailability},
		{"Lab available", "is the lab available at 10am", RoomAvailability},
		{"Which rooms free", "which rooms are free", RoomAvailability},
		{"Vacant room", "vacant rooms right now", RoomAvailability},

		// Where is batch
		{"Where is batch", "where is 7CE-A-2", WhereIsBatch},
		{"Where is class", "where is 7CE-A right now", WhereIsBatch},
		{"Location of", "location of 7ce-a-2", WhereIsBatch},
		{"Class currently", "which room is class 7CE-A in currently", WhereIsBatch},

		// Batch timetable
		{"Batch timetable", "timetable of 7CE-A-2", BatchTimetable},
		{"Batch only", "7CE-A-2", BatchTimetable},
		{"Batch with day", "Timetable of 7CE-A-2 for Monday", BatchTimetable},

		// Timetable view
		{"Class timetable", "timetable of 7CE-A for Monday", TimetableView},
		{"Timetable word", "show me the timetable", TimetableView},
		{"Time table spaced", "time table please", TimetableView},
		{"Schedule word", "what's my schedule", TimetableView},

		// Person lookup
		{"Details keyword", "details of ramesh", PersonLookup},
		{"Who is name", "who is ramesh patel", PersonLookup},
		{"Phone keyword", "phone number of ramesh", PersonLookup},
		{"Enrollment keyword", "enrollment of ramesh", PersonLookup},
		{"Keyword no identifier", "show me the student info", PersonLookup},
		{"Bare enrollment", "12345678901", PersonLookup},
		{"Bare phone", "9876543210", PersonLookup},
		{"Terse find", "find ramesh", PersonLookup},

		// General
		{"General question", "when was the university established", General},
		{"Unrelated", "what courses can I take next year", General},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.input); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

// Each test below pins one ordering decision in the cascade.

func TestGreetingBeatsPersonLookup(t *testing.T) {
	got := Classify("hi, can you tell me about 12345678901")
	if got != Greeting {
		t.Errorf("got %s, want GREETING (greeting check runs first)", got)
	}
}

func TestRoomAvailabilityBeatsWhereIsBatch(t *testing.T) {
	got := Classify("is the lab free right now")
	if got != RoomAvailability {
		t.Errorf("got %s, want ROOM_AVAILABILITY (room check precedes where-is)", got)
	}
}

func TestWhereIsWithoutClassTokenFallsThrough(t *testing.T) {
	// Locational phrase but nothing class-shaped: must not force WhereIsBatch.
	got := Classify("where is the admin office")
	if got == WhereIsBatch {
		t.Fatalf("got WHERE_IS_BATCH for a message with no class token")
	}
}

func TestBatchPatternBeatsClassPattern(t *testing.T) {
	// The batch rule fires before the looser class rule; a full batch
	// reference never classifies as TimetableView.
	inputs := []string{
		"timetable of 7CE-A-2",
		"7CE-A-2 on Monday",
		"schedule of 5CSE-B-1",
	}
	for _, input := range inputs {
		if got := Classify(input); got != BatchTimetable {
			t.Errorf("Classify(%q) = %s, want BATCH_TIMETABLE", input, got)
		}
	}
}

func TestTimetableBeatsPersonRules(t *testing.T) {
	// No person keyword present: rule order sends this to the class rule.
	got := Classify("timetable of 7CE-A for Monday")
	if got != TimetableView {
		t.Errorf("got %s, want TIMETABLE_VIEW", got)
	}
}

func TestAmbiguousBatchWithPersonKeyword(t *testing.T) {
	// Ambiguous by design: resolved by rule precedence, not semantics.
	// The batch pattern outranks the person-keyword rule.
	got := Classify("details of 7CE-A-2's teacher")
	if got != BatchTimetable {
		t.Errorf("got %s, want BATCH_TIMETABLE (precedence is the contract)", got)
	}
}

func TestRuleOrder(t *testing.T) {
	want := []string{
		"greeting",
		"room_availability",
		"where_is_batch",
		"batch_timetable",
		"timetable_view",
		"person_keyword",
		"bare_digit_run",
		"terse_lookup",
	}
	got := RuleNames()
	if len(got) != len(want) {
		t.Fatalf("cascade has %d rules, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rule[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
