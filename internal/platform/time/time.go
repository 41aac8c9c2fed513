// Package time contains time related helpers
package time

import (
	"bytes"
	"encoding/json"
	"time"

	perr "galaxy/internal/platform/errors"
)

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// layouts accepted for request timestamps; zone-less values are UTC
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Parse reads a timestamp in any accepted layout
func Parse(s string) (time.Time, error) {
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, perr.Validationf("timestamp %q must be a date or an RFC3339 datetime", s)
}

// Stamp is a request timestamp that also accepts a bare date or a zone-less datetime
// null and "" leave it zero
type Stamp struct {
	time.Time
}

// At wraps t as a Stamp
func At(t time.Time) Stamp { return Stamp{Time: t.UTC()} }

// UnmarshalJSON parses a JSON string in any accepted layout
func (s *Stamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*s = Stamp{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return perr.Wrap(err, perr.ErrorCodeValidation, "timestamp must be a string")
	}
	if raw == "" {
		*s = Stamp{}
		return nil
	}
	t, err := Parse(raw)
	if err != nil {
		return err
	}
	s.Time = t
	return nil
}

// MarshalJSON renders RFC3339 in UTC
func (s Stamp) MarshalJSON() ([]byte, error) {
	if s.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(s.UTC().Format(time.RFC3339))
}
