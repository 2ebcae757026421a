package importer

import (
	"strings"
	"time"
)

// dateLayouts is tried in order; the first layout that parses wins. The order
// is load-bearing: day-first layouts come before month-first, so an ambiguous
// value like "03/04/2026" parses as 3 April 2026, never 4 March. Statements
// that use month-first dates only parse correctly when the day is above 12.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDate parses a statement date string against the supported layouts.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
