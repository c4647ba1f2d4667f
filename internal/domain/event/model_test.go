package event_test

import (
	"strings"
	"testing"

	"aiclub/internal/domain/event"
)

// TestEvent_Validate tests validation of Event.
func TestEvent_Validate(t *testing.T) {
	valid := func() event.Event {
		return event.Event{ID: "e1", Title: "Hackathon", Date: "2025-05-01", Status: event.StatusUpcoming}
	}
	tests := []struct {
		name    string
		mutate  func(e *event.Event)
		wantErr error
	}{
		{"valid", func(e *event.Event) {}, nil},
		{"valid active with venue", func(e *event.Event) { e.Status = event.StatusActive; e.Venue = "Lab 3" }, nil},
		{"missing title", func(e *event.Event) { e.Title = "  " }, event.ErrTitleAndDateRequired},
		{"missing date", func(e *event.Event) { e.Date = "" }, event.ErrTitleAndDateRequired},
		{"bad date", func(e *event.Event) { e.Date = "next friday" }, event.ErrInvalidDate},
		{"bad status", func(e *event.Event) { e.Status = "archived" }, event.ErrInvalidStatus},
		{"long title", func(e *event.Event) { e.Title = strings.Repeat("t", 201) }, event.ErrTitleTooLong},
		{"long venue", func(e *event.Event) { e.Venue = strings.Repeat("v", 201) }, event.ErrVenueTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.mutate(&e)
			if err := e.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
