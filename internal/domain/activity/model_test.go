package activity_test

import (
	"testing"

	"aiclub/internal/domain/activity"
)

// TestActivity_Validate tests validation of Activity.
func TestActivity_Validate(t *testing.T) {
	valid := func() activity.Activity {
		return activity.Activity{ID: "a1", Title: "Robotics tour", Date: "2025-06-01T10:00", TotalSeats: 20, Status: activity.StatusOpen}
	}
	tests := []struct {
		name    string
		mutate  func(a *activity.Activity)
		wantErr error
	}{
		{"valid", func(a *activity.Activity) {}, nil},
		{"closed", func(a *activity.Activity) { a.Status = activity.StatusClosed }, nil},
		{"no title", func(a *activity.Activity) { a.Title = "" }, activity.ErrTitleAndDateRequired},
		{"no date", func(a *activity.Activity) { a.Date = " " }, activity.ErrTitleAndDateRequired},
		{"zero seats", func(a *activity.Activity) { a.TotalSeats = 0 }, activity.ErrInvalidSeats},
		{"negative seats", func(a *activity.Activity) { a.TotalSeats = -3 }, activity.ErrInvalidSeats},
		{"bad status", func(a *activity.Activity) { a.Status = "full" }, activity.ErrInvalidStatus},
		{"bad date", func(a *activity.Activity) { a.Date = "soon" }, activity.ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid()
			tt.mutate(&a)
			if err := a.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestActivity_CheckBookable verifies the failure priority: state, capacity, conflict.
func TestActivity_CheckBookable(t *testing.T) {
	tests := []struct {
		name          string
		status        string
		booked        int
		alreadyBooked bool
		wantErr       error
	}{
		{"open with room", activity.StatusOpen, 1, false, nil},
		{"closed", activity.StatusClosed, 0, false, activity.ErrNotOpen},
		{"completed and full", activity.StatusCompleted, 2, true, activity.ErrNotOpen},
		{"full", activity.StatusOpen, 2, false, activity.ErrNoSeats},
		{"full and already booked", activity.StatusOpen, 2, true, activity.ErrNoSeats},
		{"already booked with room", activity.StatusOpen, 1, true, activity.ErrAlreadyBooked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := activity.Activity{TotalSeats: 2, Status: tt.status}
			if err := a.CheckBookable(tt.booked, tt.alreadyBooked); err != tt.wantErr {
				t.Errorf("CheckBookable() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestActivity_SeatsLeft never goes negative.
func TestActivity_SeatsLeft(t *testing.T) {
	a := activity.Activity{TotalSeats: 3}
	for booked, want := range map[int]int{0: 3, 2: 1, 3: 0, 5: 0} {
		if got := a.SeatsLeft(booked); got != want {
			t.Errorf("SeatsLeft(%d) = %d, want %d", booked, got, want)
		}
	}
}
