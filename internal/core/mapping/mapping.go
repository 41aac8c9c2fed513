// Package mapping turns raw result rows into report records
//
// Nullable aggregates are coalesced to zero, stored units are converted once and coded
// columns are decoded into their labels. Unknown codes are mapping errors, never guesses.
package mapping

import (
	"math"

	"github.com/jackc/pgx/v5/pgtype"

	perr "galaxy/internal/platform/errors"
)

// Zero returns *p, or the zero value when p is nil (a NULL aggregate)
func Zero[T any](p *T) T {
	if p == nil {
		var z T
		return z
	}
	return *p
}

// Count coalesces a numeric SUM and rounds it to a whole count
func Count(p *float64) int64 { return int64(math.Round(Zero(p))) }

// MetersToKm converts a stored meter total to kilometres
func MetersToKm(m float64) float64 { return m / 1000 }

// Seconds converts an interval aggregate to seconds; NULL is zero
// months count as 30 days, matching how postgres justifies intervals
func Seconds(iv pgtype.Interval) float64 {
	if !iv.Valid {
		return 0
	}
	days := float64(iv.Days) + float64(iv.Months)*30
	return float64(iv.Microseconds)/1e6 + days*86400
}

// NonNegative clamps counts that went negative through deletions
func NonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}

type codeTable struct {
	name   string
	labels map[int]string
}

func (t codeTable) decode(code int) (string, error) {
	if l, ok := t.labels[code]; ok {
		return l, nil
	}
	return "", perr.Mappingf("unknown %s code %d", t.name, code)
}

func (t codeTable) encode(label string) (int, bool) {
	for code, l := range t.labels {
		if l == label {
			return code, true
		}
	}
	return 0, false
}

var (
	mappingLevels = codeTable{"mapping level", map[int]string{1: "beginner", 2: "intermediate", 3: "advanced"}}
	projectStatus = codeTable{"project status", map[int]string{0: "archived", 1: "published", 2: "draft"}}
	teamFunctions = codeTable{"team member function", map[int]string{1: "manager", 2: "member"}}
)

// MappingLevel decodes a tasking manager mapping level
func MappingLevel(code int) (string, error) { return mappingLevels.decode(code) }

// ProjectStatus decodes a tasking manager project status
func ProjectStatus(code int) (string, error) { return projectStatus.decode(code) }

// ProjectStatusCode is the inverse of ProjectStatus
func ProjectStatusCode(label string) (int, bool) { return projectStatus.encode(label) }

// TeamFunction decodes a team member function
func TeamFunction(code int) (string, error) { return teamFunctions.decode(code) }
