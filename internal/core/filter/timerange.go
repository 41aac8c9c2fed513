package filter

import (
	"strconv"
	"time"

	perr "galaxy/internal/platform/errors"
)

// Common span limits
const (
	Day   = 24 * time.Hour
	Month = 30 * Day
)

// TimeRange is an inclusive window over a timestamp column
type TimeRange struct {
	From time.Time
	To   time.Time
}

// IsZero reports whether neither bound is set
func (r TimeRange) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Span returns To - From
func (r TimeRange) Span() time.Duration { return r.To.Sub(r.From) }

// Contains reports whether t falls inside the range, bounds included
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// Validate checks ordering and, when max > 0, the span limit
func (r TimeRange) Validate(max time.Duration) error {
	if r.From.IsZero() || r.To.IsZero() {
		return perr.WithField(perr.Validationf("both from_timestamp and to_timestamp are required"), "from_timestamp")
	}
	if r.From.After(r.To) {
		return perr.WithField(perr.Validationf("timestamp difference must be positive"), "to_timestamp")
	}
	if max > 0 && r.Span() > max {
		return perr.WithField(perr.Validationf("statistics is available for a maximum period of %s", humanSpan(max)), "to_timestamp")
	}
	return nil
}

func humanSpan(d time.Duration) string {
	switch {
	case d == Day:
		return "1 day"
	case d == Month:
		return "1 month"
	case d%Day == 0:
		return strconv.Itoa(int(d/Day)) + " days"
	default:
		return d.String()
	}
}

// Between renders column BETWEEN from AND to; a zero range gives the empty fragment
func Between(column string, r TimeRange) Fragment {
	if err := checkColumn(column); err != nil {
		return Broken(err)
	}
	if r.IsZero() {
		return Fragment{}
	}
	return Expr(column+" BETWEEN ? AND ?", r.From, r.To)
}

// Since renders column >= t; a zero t gives the empty fragment
func Since(column string, t time.Time) Fragment {
	if err := checkColumn(column); err != nil {
		return Broken(err)
	}
	if t.IsZero() {
		return Fragment{}
	}
	return Expr(column+" >= ?", t)
}

// Until renders column <= t; a zero t gives the empty fragment
func Until(column string, t time.Time) Fragment {
	if err := checkColumn(column); err != nil {
		return Broken(err)
	}
	if t.IsZero() {
		return Fragment{}
	}
	return Expr(column+" <= ?", t)
}

// ThroughDay renders column < the midnight after t, so the whole UTC day of t
// is included; a zero t gives the empty fragment
func ThroughDay(column string, t time.Time) Fragment {
	if err := checkColumn(column); err != nil {
		return Broken(err)
	}
	if t.IsZero() {
		return Fragment{}
	}
	y, m, d := t.UTC().Date()
	return Expr(column+" < ?", time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC))
}
