// Package listutil parses list query parameters shared by admin listings.
package listutil

import (
	"net/url"
	"strconv"

	"aiclub/internal/domain/apperr"
)

// ErrInvalidLimit is returned for a limit that is not a positive integer.
var ErrInvalidLimit = apperr.Validation("limit must be a positive integer")

// LimitParams bounds how many rows one listing may return.
type LimitParams struct {
	Default int // used when the query omits limit
	Max     int // larger requests are clamped
}

// ParseLimit extracts limit from URL query values.
// PRE: p.Default > 0, p.Max >= p.Default
// POST: returns a value in [1, p.Max], or ErrInvalidLimit
func ParseLimit(q url.Values, p LimitParams) (int, error) {
	raw := q.Get("limit")
	if raw == "" {
		return p.Default, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, ErrInvalidLimit
	}
	return min(n, p.Max), nil
}

// ParseChoice returns the query value for key when it is one of allowed.
// An absent value yields allowed[0].
// PRE: len(allowed) > 0
// POST: ok is false only for a present value outside allowed
func ParseChoice(q url.Values, key string, allowed []string) (string, bool) {
	v := q.Get(key)
	if v == "" {
		return allowed[0], true
	}
	for _, a := range allowed {
		if v == a {
			return v, true
		}
	}
	return "", false
}
