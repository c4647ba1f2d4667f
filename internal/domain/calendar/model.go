package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Max length constants shared by events and activities.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
	MaxVenueLength       = 200
)

// dateLayouts are the accepted wire formats for event and activity dates.
// Date-only values come from <input type="date">, the minute form from datetime-local.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	time.RFC3339,
}

// ParseDate parses a client-supplied date in any accepted layout.
// PRE: none
// POST: returns the parsed time or an error naming the bad value
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// IsValidDate reports whether s parses with ParseDate.
func IsValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}
