package domain

import (
	"time"
)

// WireDateFormat is the canonical timestamp layout sent to the server.
const WireDateFormat = time.RFC3339

// dueDateLayouts are the layouts accepted for user and server supplied due
// dates, tried in order.
var dueDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"02-01-2006",
}

// ParseDueDate parses a due date in any accepted layout. For longer strings
// that fail every layout, a final attempt parses the first ten characters as
// a calendar date.
func ParseDueDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	if len(value) > 10 {
		if t, err := time.Parse("2006-01-02", value[:10]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeDueDate converts a raw due date to the canonical wire timestamp.
// Empty or unparsable input falls back to the current time rather than
// failing the operation.
func NormalizeDueDate(value string, now func() time.Time) string {
	if t, ok := ParseDueDate(value); ok {
		return t.Format(WireDateFormat)
	}
	return now().Format(WireDateFormat)
}

// FormatDueDate renders a due date in the canonical wire layout.
func FormatDueDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(WireDateFormat)
}

// SameCalendarDay reports whether two timestamps fall on the same calendar
// day in UTC.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
