package listutil

import (
	"errors"
	"net/url"
	"testing"
)

func TestParseLimit(t *testing.T) {
	p := LimitParams{Default: 50, Max: 100}
	tests := []struct {
		name    string
		query   url.Values
		want    int
		wantErr bool
	}{
		{"absent uses default", url.Values{}, 50, false},
		{"within range", url.Values{"limit": {"7"}}, 7, false},
		{"clamped to max", url.Values{"limit": {"500"}}, 100, false},
		{"zero", url.Values{"limit": {"0"}}, 0, true},
		{"negative", url.Values{"limit": {"-3"}}, 0, true},
		{"not a number", url.Values{"limit": {"ten"}}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLimit(tt.query, p)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLimit) {
					t.Fatalf("err = %v, want ErrInvalidLimit", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("limit = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseChoice(t *testing.T) {
	allowed := []string{"failed", "pending"}

	if v, ok := ParseChoice(url.Values{}, "status", allowed); !ok || v != "failed" {
		t.Errorf("absent: got %q, %v", v, ok)
	}
	if v, ok := ParseChoice(url.Values{"status": {"pending"}}, "status", allowed); !ok || v != "pending" {
		t.Errorf("pending: got %q, %v", v, ok)
	}
	if _, ok := ParseChoice(url.Values{"status": {"done"}}, "status", allowed); ok {
		t.Error("expected unknown value to be rejected")
	}
}
