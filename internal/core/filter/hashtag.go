package filter

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	perr "galaxy/internal/platform/errors"
)

// ProjectTagPrefix is the synthetic hashtag the tasking manager stamps on changesets
const ProjectTagPrefix = "hotosm-project-"

// ProjectTag returns the synthetic hashtag for a tasking manager project id
func ProjectTag(id int64) string { return ProjectTagPrefix + strconv.FormatInt(id, 10) }

// HashtagSet is what a mapathon style report matches changesets against
type HashtagSet struct {
	Hashtags   []string
	ProjectIDs []int64
}

// Empty reports whether the set has neither hashtags nor project ids
func (s HashtagSet) Empty() bool { return len(s.Hashtags) == 0 && len(s.ProjectIDs) == 0 }

// Validate rejects blank hashtags, case-insensitive duplicates and non positive project ids
func (s HashtagSet) Validate() error {
	fold := cases.Fold()
	seen := make(map[string]struct{}, len(s.Hashtags))
	for _, h := range s.Hashtags {
		if strings.TrimSpace(h) == "" {
			return perr.WithField(perr.Validationf("hashtag cannot be empty"), "hashtags")
		}
		k := fold.String(h)
		if _, dup := seen[k]; dup {
			return perr.WithField(perr.Validationf("duplicate hashtag %q", h), "hashtags")
		}
		seen[k] = struct{}{}
	}
	for _, id := range s.ProjectIDs {
		if id <= 0 {
			return perr.WithField(perr.Validationf("project id must be positive, got %d", id), "project_ids")
		}
	}
	return nil
}

// Hashtags trims and lowercases tags, dropping blanks and case-insensitive repeats.
// Changeset hashtags are stored lowercase, so exact matches bind this form
func Hashtags(tags []string) []string {
	var out []string
	fold := cases.Fold()
	seen := make(map[string]struct{}, len(tags))
	for _, h := range tags {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		k := fold.String(h)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, h)
	}
	return out
}

// groups splits the candidates into the user hashtag group and the project tag group
// project tags already present among the hashtags are not repeated
func (s HashtagSet) groups() (tags, projects []string) {
	tags = Hashtags(s.Hashtags)
	seen := make(map[string]struct{}, len(tags)+len(s.ProjectIDs))
	for _, h := range tags {
		seen[h] = struct{}{}
	}
	for _, id := range s.ProjectIDs {
		t := ProjectTag(id)
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		projects = append(projects, t)
	}
	return tags, projects
}

// Candidates returns hashtags first, then each project's synthetic tag, without duplicates
func (s HashtagSet) Candidates() []string {
	tags, projects := s.groups()
	return append(tags, projects...)
}

// ProjectIDsWithTags returns the explicit project ids plus those embedded in
// hotosm-project-<id> hashtags, first appearance wins
func (s HashtagSet) ProjectIDsWithTags() []int64 {
	out := make([]int64, 0, len(s.ProjectIDs))
	seen := map[int64]struct{}{}
	add := func(id int64) {
		if _, ok := seen[id]; ok || id <= 0 {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range s.ProjectIDs {
		add(id)
	}
	for _, h := range s.Hashtags {
		h = strings.ToLower(strings.TrimSpace(h))
		if !strings.HasPrefix(h, ProjectTagPrefix) {
			continue
		}
		if id, err := strconv.ParseInt(h[len(ProjectTagPrefix):], 10, 64); err == nil {
			add(id)
		}
	}
	return out
}

// FreeTextColumns names the text columns scanned by the free text strategy
type FreeTextColumns struct {
	Hashtags string
	Comment  string
}

// positional suffixes: followed by a separator, followed by a space, or at the end
var freeTextSuffixes = [...]string{";%", " %", ""}

// FreeText matches candidates as substrings of delimited text columns
// every candidate yields three patterns against both columns; the hashtag group is
// OR-ed with the project group. An empty set gives the empty fragment
func FreeText(cols FreeTextColumns, s HashtagSet) Fragment {
	for _, c := range []string{cols.Hashtags, cols.Comment} {
		if err := checkLookup(c); err != nil {
			return Broken(err)
		}
	}
	tags, projects := s.groups()
	group := func(vals []string) Fragment {
		preds := make([]Fragment, 0, len(vals)*6)
		for _, v := range vals {
			v = escapeLike(v)
			for _, col := range []string{cols.Hashtags, cols.Comment} {
				for _, suffix := range freeTextSuffixes {
					preds = append(preds, Expr(col+" ILIKE ?", "%"+v+suffix))
				}
			}
		}
		return Or(preds...)
	}
	return Or(group(tags), group(projects))
}

// AnyOf matches candidates exactly against an array column
func AnyOf(column string, s HashtagSet) Fragment {
	if err := checkColumn(column); err != nil {
		return Broken(err)
	}
	tags, projects := s.groups()
	group := func(vals []string) Fragment {
		preds := make([]Fragment, 0, len(vals))
		for _, v := range vals {
			preds = append(preds, Expr("? = ANY("+column+")", v))
		}
		return Or(preds...)
	}
	return Or(group(tags), group(projects))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so a candidate only ever matches literally
func escapeLike(s string) string { return likeEscaper.Replace(s) }
