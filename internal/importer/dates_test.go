package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate_SupportedLayouts(t *testing.T) {
	expected := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	cases := []string{
		"2026-01-15",
		"15/01/2026",
		"15-01-2026",
		"2026/01/15",
		"Jan 15, 2026",
		"15 Jan 2026",
	}
	for _, raw := range cases {
		parsed, ok := ParseDate(raw)
		assert.True(t, ok, raw)
		assert.True(t, expected.Equal(parsed), raw)
	}
}

func TestParseDate_DayFirstWinsAmbiguity(t *testing.T) {
	// Both day-first and month-first layouts could parse this; day-first is
	// earlier in the layout list so it must win.
	parsed, ok := ParseDate("03/04/2026")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseDate_MonthFirstWhenDayAboveTwelve(t *testing.T) {
	parsed, ok := ParseDate("12/25/2026")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseDate_TrimsWhitespace(t *testing.T) {
	parsed, ok := ParseDate("  2026-01-15  ")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseDate_Invalid(t *testing.T) {
	for _, raw := range []string{"", "not a date", "32/01/2026", "2026-13-01"} {
		_, ok := ParseDate(raw)
		assert.False(t, ok, raw)
	}
}
