package report

import (
	"time"

	perr "galaxy/internal/platform/errors"
)

// IssueType is a validation status flagged on a feature
type IssueType string

const (
	IssueBadGeom    IssueType = "badgeom"
	IssueBadValue   IssueType = "badvalue"
	IssueIncomplete IssueType = "incomplete"
	IssueNoTags     IssueType = "notags"
	IssueComplete   IssueType = "complete"
	IssueOrphan     IssueType = "orphan"
	IssueOverlaping IssueType = "overlaping"
	IssueDuplicate  IssueType = "duplicate"
	// IssueAll expands to the default issue set
	IssueAll IssueType = "all"
)

var knownIssues = map[IssueType]bool{
	IssueBadGeom: true, IssueBadValue: true, IssueIncomplete: true, IssueNoTags: true,
	IssueComplete: true, IssueOrphan: true, IssueOverlaping: true, IssueDuplicate: true, IssueAll: true,
}

// ParseIssueTypes validates names and expands "all"; the result keeps first appearance order
func ParseIssueTypes(in []string) ([]IssueType, error) {
	out := make([]IssueType, 0, len(in))
	seen := map[IssueType]bool{}
	add := func(t IssueType) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, s := range in {
		t := IssueType(s)
		if !knownIssues[t] {
			return nil, perr.WithField(perr.Validationf("unknown issue type %q", s), "issue_types")
		}
		if t == IssueAll {
			add(IssueBadValue)
			add(IssueBadGeom)
			continue
		}
		add(t)
	}
	if len(out) == 0 {
		return nil, perr.WithField(perr.Validationf("at least one issue type is required"), "issue_types")
	}
	return out, nil
}

func issueStrings(in []IssueType) []string {
	out := make([]string, len(in))
	for i, t := range in {
		out[i] = string(t)
	}
	return out
}

// Frequency is the bucket width of the organization hashtag report
type Frequency string

const (
	Weekly    Frequency = "w"
	Monthly   Frequency = "m"
	Quarterly Frequency = "q"
	Yearly    Frequency = "y"
)

// ParseFrequency accepts w, m, q or y
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(s); f {
	case Weekly, Monthly, Quarterly, Yearly:
		return f, nil
	}
	return "", perr.WithField(perr.Validationf("frequency must be one of w, m, q, y"), "frequency")
}

// Unit is the date_trunc field for the frequency
func (f Frequency) Unit() string {
	switch f {
	case Monthly:
		return "month"
	case Quarterly:
		return "quarter"
	case Yearly:
		return "year"
	}
	return "week"
}

// MinSpan is the smallest date range that fills one bucket
func (f Frequency) MinSpan() time.Duration {
	day := 24 * time.Hour
	switch f {
	case Monthly:
		return 30 * day
	case Quarterly:
		return 90 * day
	case Yearly:
		return 365 * day
	}
	return 7 * day
}

// BucketEnd returns the exclusive end of the bucket starting at start
func (f Frequency) BucketEnd(start time.Time) time.Time {
	switch f {
	case Monthly:
		return start.AddDate(0, 1, 0)
	case Quarterly:
		return start.AddDate(0, 3, 0)
	case Yearly:
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 0, 7)
}

// FreshnessTarget selects which table's recency is reported
type FreshnessTarget string

const (
	FreshChangesets FreshnessTarget = "changesets"
	FreshValidation FreshnessTarget = "validation"
)

// ParseFreshnessTarget accepts changesets or validation
func ParseFreshnessTarget(s string) (FreshnessTarget, error) {
	switch t := FreshnessTarget(s); t {
	case FreshChangesets, FreshValidation:
		return t, nil
	}
	return "", perr.WithField(perr.Validationf("unknown status target %q, want changesets or validation", s), "target")
}
