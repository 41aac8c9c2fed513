// Package report assembles filter fragments into complete, parameterized report statements
package report

import "strings"

// Source is the logical database a report reads from
type Source uint8

const (
	// SourceUnderpass is the derived store: normalized changesets with array hashtags
	// and tag bags, users, validation issues and training records
	SourceUnderpass Source = iota + 1
	// SourceTaskingManager is the project management store: projects, task history, teams
	SourceTaskingManager
	// SourceRaw is the raw edit history mirror with free text hstore tags
	SourceRaw
)

// Sources lists every source in a stable order
var Sources = []Source{SourceUnderpass, SourceTaskingManager, SourceRaw}

func (s Source) String() string {
	switch s {
	case SourceUnderpass:
		return "underpass"
	case SourceTaskingManager:
		return "tm"
	case SourceRaw:
		return "raw"
	}
	return "unknown"
}

// Ordering is the row order a report guarantees
type Ordering uint8

const (
	// OrderNatural is for single row or key ordered lookups
	OrderNatural Ordering = iota
	// OrderCountDesc puts the largest aggregate first, ties broken by key
	OrderCountDesc
	// OrderKeyAsc is the audit style order by feature or record key
	OrderKeyAsc
	// OrderBucketAsc puts the oldest time bucket first
	OrderBucketAsc
)

func (o Ordering) String() string {
	switch o {
	case OrderCountDesc:
		return "count_desc"
	case OrderKeyAsc:
		return "key_asc"
	case OrderBucketAsc:
		return "bucket_asc"
	}
	return "natural"
}

// terms renders ORDER BY terms; count is ignored unless ordering by count
func (o Ordering) terms(count string, keys ...string) []string {
	out := make([]string, 0, len(keys)+1)
	if o == OrderCountDesc && count != "" {
		out = append(out, count+" DESC")
	}
	for _, k := range keys {
		out = append(out, k+" ASC")
	}
	return out
}

// Kind identifies a report type
type Kind uint8

const (
	KindMapathonSummary Kind = iota + 1
	KindMapathonDetail
	KindTaskActivity
	KindChangesets
	KindQualityByHashtag
	KindQualityHashtagSummary
	KindQualityByUsername
	KindQualityByProject
	KindOrganizationHashtag
	KindUserStatistics
	KindUserList
	KindValidatorStats
	KindTeams
	KindTeamMembers
	KindTrainingOrganisations
	KindTrainings
	KindFreshness
)

type kindInfo struct {
	name   string
	source Source
	order  Ordering
}

// source and ordering are fixed per kind
var kinds = map[Kind]kindInfo{
	KindMapathonSummary:       {"mapathon_summary", SourceUnderpass, OrderCountDesc},
	KindMapathonDetail:        {"mapathon_detail", SourceUnderpass, OrderKeyAsc},
	KindTaskActivity:          {"task_activity", SourceTaskingManager, OrderKeyAsc},
	KindChangesets:            {"changesets", SourceRaw, OrderKeyAsc},
	KindQualityByHashtag:      {"quality_by_hashtag", SourceUnderpass, OrderKeyAsc},
	KindQualityHashtagSummary: {"quality_hashtag_summary", SourceUnderpass, OrderCountDesc},
	KindQualityByUsername:     {"quality_by_username", SourceUnderpass, OrderKeyAsc},
	KindQualityByProject:      {"quality_by_project", SourceUnderpass, OrderKeyAsc},
	KindOrganizationHashtag:   {"organization_hashtag", SourceUnderpass, OrderBucketAsc},
	KindUserStatistics:        {"user_statistics", SourceUnderpass, OrderNatural},
	KindUserList:              {"user_list", SourceUnderpass, OrderKeyAsc},
	KindValidatorStats:        {"validator_stats", SourceTaskingManager, OrderKeyAsc},
	KindTeams:                 {"teams", SourceTaskingManager, OrderKeyAsc},
	KindTeamMembers:           {"team_members", SourceTaskingManager, OrderKeyAsc},
	KindTrainingOrganisations: {"training_organisations", SourceUnderpass, OrderKeyAsc},
	KindTrainings:             {"trainings", SourceUnderpass, OrderKeyAsc},
	KindFreshness:             {"freshness", SourceUnderpass, OrderNatural},
}

func (k Kind) String() string {
	if ki, ok := kinds[k]; ok {
		return ki.name
	}
	return "unknown"
}

// Source returns the database this kind of report reads
func (k Kind) Source() Source { return kinds[k].source }

// Ordering returns the row order this kind of report guarantees
func (k Kind) Ordering() Ordering { return kinds[k].order }

// ParseSource maps a source name back to its value
func ParseSource(s string) (Source, bool) {
	for _, src := range Sources {
		if strings.EqualFold(src.String(), s) {
			return src, true
		}
	}
	return 0, false
}
