package score_test

import (
	"math"
	"testing"

	"aiclub/internal/domain/score"
)

// TestScore_Validate tests range and reference checks.
func TestScore_Validate(t *testing.T) {
	base := score.Score{ID: "s1", TeamID: "t1", EventID: "e1", AssignedBy: "admin"}
	tests := []struct {
		name    string
		value   float64
		teamID  string
		wantErr error
	}{
		{"zero", 0, "t1", nil},
		{"ten", 10, "t1", nil},
		{"fractional", 7.5, "t1", nil},
		{"negative", -0.1, "t1", score.ErrOutOfRange},
		{"above ten", 10.01, "t1", score.ErrOutOfRange},
		{"nan", math.NaN(), "t1", score.ErrOutOfRange},
		{"inf", math.Inf(1), "t1", score.ErrOutOfRange},
		{"missing team", 5, "", score.ErrMissingRefs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			s.Value = tt.value
			s.TeamID = tt.teamID
			if err := s.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestScore_Validate_RequiresActor ensures assigned_by is always recorded.
func TestScore_Validate_RequiresActor(t *testing.T) {
	s := score.Score{TeamID: "t1", EventID: "e1", Value: 3}
	if err := s.Validate(); err != score.ErrMissingActor {
		t.Errorf("Validate() = %v, want ErrMissingActor", err)
	}
}
