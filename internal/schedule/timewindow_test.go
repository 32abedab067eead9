package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeWindowRange(t *testing.T) {
	w := ParseTimeWindow("free rooms from 10am to 2pm")
	require.NotNil(t, w)
	assert.Equal(t, "10:00:00", w.Start)
	assert.Equal(t, "14:00:00", w.End)
	assert.False(t, w.IsNow)
}

func TestParseTimeWindowNowShortCircuits(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"right now", "free rooms right now"},
		{"currently", "which labs are currently empty"},
		{"now with digits elsewhere", "is room 101 free now at 10am"},
		{"at present", "vacant classrooms at present"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ParseTimeWindow(tt.input)
			require.NotNil(t, w)
			assert.True(t, w.IsNow)
			assert.Empty(t, w.Start)
			assert.Empty(t, w.End)
		})
	}
}

func TestParseTimeWindowSingleTimeImpliesHour(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStart string
		wantEnd   string
	}{
		{"Morning", "free rooms at 10am", "10:00:00", "11:00:00"},
		{"Afternoon", "any lab free at 2:30pm", "14:30:00", "15:30:00"},
		{"Noon", "rooms at 12pm", "12:00:00", "13:00:00"},
		{"Midnight", "rooms at 12am", "00:00:00", "01:00:00"},
		{"24h colon form", "rooms at 14:00", "14:00:00", "15:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ParseTimeWindow(tt.input)
			require.NotNil(t, w)
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, tt.wantEnd, w.End)
			assert.False(t, w.IsNow)
		})
	}
}

func TestParseTimeWindowNothingTimeLike(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"No digits", "which rooms are free"},
		{"Bare digits are not times", "details of 7CE-A-2"},
		{"Enrollment number", "who is 12345678901"},
		{"Empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ParseTimeWindow(tt.input))
		})
	}
}

func TestParseTimeWindowFirstTwoMatchesWin(t *testing.T) {
	w := ParseTimeWindow("free between 9am and 11am, or maybe 3pm")
	require.NotNil(t, w)
	assert.Equal(t, "09:00:00", w.Start)
	assert.Equal(t, "11:00:00", w.End)
}
