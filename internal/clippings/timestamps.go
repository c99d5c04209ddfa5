package clippings

import (
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	// Kindle "Added on ..." variants, with the prefix removed
	"Monday, January 2, 2006 3:04:05 PM",
	"Monday, January 2, 2006 15:04:05",
	"Monday, 2 January 2006 3:04:05 PM",
	"Monday, 2 January 2006 15:04:05",
	"January 2, 2006 3:04:05 PM",
	"2 January 2006 15:04:05",
}

// ParseTimestamp interprets a timestamp string taken from an export.
// The second return value is false when no known layout matches.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) >= len("added on") && strings.EqualFold(s[:len("added on")], "added on") {
		s = strings.TrimSpace(s[len("added on"):])
	}
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
