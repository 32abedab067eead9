package extract

import "testing"

func TestClassBatch(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind RefKind
		wantName string
	}{
		{"Batch with suffix", "timetable of 7CE-A-2", RefBatch, "7CE-A-2"},
		{"Batch lowercased input", "where is 7ce-a-2", RefBatch, "7CE-A-2"},
		{"Bare class", "timetable of 7CE-A", RefClass, "7CE-A"},
		{"Three letter branch", "schedule for 5CSE-B-1", RefBatch, "5CSE-B-1"},
		{"No reference", "who is ramesh", RefNone, ""},
		{"Empty", "", RefNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassBatch(tt.input)
			if got.Kind != tt.wantKind || got.Name != tt.wantName {
				t.Errorf("ClassBatch(%q) = {%s %q}, want {%s %q}",
					tt.input, got.Kind, got.Name, tt.wantKind, tt.wantName)
			}
		})
	}
}

// Batch references must never be reported as bare classes: the class pattern
// is a prefix subset of the batch pattern and is deliberately tried second.
func TestBatchCheckedBeforeClass(t *testing.T) {
	got := ClassBatch("details of 7CE-A-2 for Monday")
	if got.Kind != RefBatch || got.Name != "7CE-A-2" {
		t.Errorf("got {%s %q}, want {batch 7CE-A-2}", got.Kind, got.Name)
	}
}

func TestHasClassToken(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"where is 7CE-A right now", true},
		{"where is 7CE-A-2 right now", true}, // batch names contain a class token
		{"where is the library", false},
	}

	for _, tt := range tests {
		if got := HasClassToken(tt.input); got != tt.want {
			t.Errorf("HasClassToken(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestHasBatchToken(t *testing.T) {
	if !HasBatchToken("timetable of 7ce-a-2") {
		t.Error("expected batch token in 7ce-a-2")
	}
	if HasBatchToken("timetable of 7CE-A") {
		t.Error("bare class must not count as a batch token")
	}
}
