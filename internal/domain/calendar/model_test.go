package calendar_test

import (
	"testing"

	"aiclub/internal/domain/calendar"
)

// TestParseDate covers every accepted layout and a few rejects.
func TestParseDate(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"2025-03-14", true},
		{" 2025-03-14 ", true},
		{"2025-03-14T18:30", true},
		{"2025-03-14T18:30:00Z", true},
		{"2025-03-14T18:30:00+13:00", true},
		{"", false},
		{"14/03/2025", false},
		{"2025-02-30", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := calendar.IsValidDate(tt.in); got != tt.valid {
				t.Errorf("IsValidDate(%q) = %v, want %v", tt.in, got, tt.valid)
			}
		})
	}
}
