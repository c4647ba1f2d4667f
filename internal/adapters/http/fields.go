package web

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"aiclub/internal/domain/activity"
)

var jsonNull = []byte("null")

// looseID accepts an identifier sent either as a JSON string or as a bare number.
type looseID string

func (id *looseID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, jsonNull) {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = looseID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = looseID(n.String())
	return nil
}

// seatCount accepts total_seats as a number or as the numeric string an HTML input yields.
// INVARIANT: anything that is not a whole number decodes to activity.ErrInvalidSeats
type seatCount int

func (c *seatCount) UnmarshalJSON(b []byte) error {
	raw := string(b)
	if bytes.Equal(b, jsonNull) {
		raw = ""
	} else if s, err := strconv.Unquote(raw); err == nil {
		raw = s
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return activity.ErrInvalidSeats
	}
	*c = seatCount(n)
	return nil
}

// firstID returns the first non-empty identifier, so a body may use either key spelling.
func firstID(ids ...looseID) string {
	for _, id := range ids {
		if id != "" {
			return string(id)
		}
	}
	return ""
}
