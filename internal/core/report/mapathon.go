package report

import (
	sq "github.com/Masterminds/squirrel"

	"galaxy/internal/core/filter"
)

// matching selects changesets created inside r that carry one of the candidate tags
// alias prefixes the changesets columns when the select joins other tables
func matching(r filter.TimeRange, tags filter.HashtagSet, alias string) (filter.Fragment, error) {
	col := func(c string) string {
		if alias == "" {
			return c
		}
		return alias + "." + c
	}
	ts := filter.Between(col("created_at"), r)
	if err := filter.Require(ts, "timestamp filter"); err != nil {
		return filter.Fragment{}, err
	}
	hs := filter.AnyOf(col("hashtags"), tags)
	if err := filter.Require(hs, "hashtag filter"); err != nil {
		return filter.Fragment{}, err
	}
	return filter.And(ts, hs), nil
}

// MapathonSummary is the feature histogram and contributor count of a mapathon
type MapathonSummary struct {
	Range filter.TimeRange
	Tags  filter.HashtagSet
}

func (MapathonSummary) Kind() Kind { return KindMapathonSummary }

func (s MapathonSummary) statements() ([]statement, error) {
	m, err := matching(s.Range, s.Tags, "")
	if err != nil {
		return nil, err
	}
	order := s.Kind().Ordering()

	features := with(
		psql.Select("feature", "action", "SUM(value) AS count").
			From("t2").
			GroupBy("feature", "action").
			OrderBy(order.terms("count", "feature", "action")...),
		cte{"t1", where(sq.Select("added", "modified", "deleted").From("changesets"), m)},
		cte{"t2", tagBagActions()},
	)
	contributors := with(
		psql.Select("COUNT(DISTINCT user_id) AS contributors_count").From("t1"),
		cte{"t1", where(sq.Select("user_id").From("changesets"), m)},
	)
	return []statement{
		{"mapped_features", features},
		{"contributors_count", contributors},
	}, nil
}

// MapathonDetail breaks a mapathon down per contributor
type MapathonDetail struct {
	Range filter.TimeRange
	Tags  filter.HashtagSet
}

func (MapathonDetail) Kind() Kind { return KindMapathonDetail }

func (s MapathonDetail) statements() ([]statement, error) {
	m, err := matching(s.Range, s.Tags, "c")
	if err != nil {
		return nil, err
	}
	order := s.Kind().Ordering()

	features := with(
		psql.Select("feature", "action", "user_id", "username", "SUM(value) AS count").
			From("t2").
			GroupBy("feature", "action", "user_id", "username").
			OrderBy(order.terms("count", "feature", "action", "username", "user_id")...),
		cte{"t1", where(
			sq.Select("c.added", "c.modified", "c.deleted", "c.user_id", "u.username").
				From("changesets c").
				Join("users u ON u.id = c.user_id"), m)},
		cte{"t2", tagBagActions("t1.user_id", "t1.username")},
	)

	// only changesets that added buildings count towards a contributor
	contributors := with(
		psql.Select("t3.user_id", "t3.username", "t2.editors", "SUM(t3.buildings) AS total_buildings").
			From("t3").
			Join("t2 ON t2.user_id = t3.user_id").
			GroupBy("t3.user_id", "t3.username", "t2.editors").
			OrderBy(order.terms("total_buildings", "t3.user_id")...),
		cte{"t1", where(sq.Select("c.user_id", "c.editor", "c.added").From("changesets c"), m)},
		cte{"t2", sq.Select("user_id", "ARRAY_AGG(DISTINCT editor ORDER BY editor) AS editors").
			From("t1").
			GroupBy("user_id")},
		cte{"t3", sq.Select("t1.user_id", "u.username", "(t1.added -> 'building')::numeric AS buildings").
			From("t1").
			Join("users u ON u.id = t1.user_id").
			Where("t1.added -> 'building' IS NOT NULL")},
	)
	return []statement{
		{"mapped_features", features},
		{"contributors", contributors},
	}, nil
}

// task history action codes
const (
	actionMapped          = "MAPPED"
	actionValidated       = "VALIDATED"
	actionLockMapping     = "LOCKED_FOR_MAPPING"
	actionAutoUnlockMap   = "AUTO_UNLOCKED_FOR_MAPPING"
	actionLockValidation  = "LOCKED_FOR_VALIDATION"
	actionAutoUnlockValid = "AUTO_UNLOCKED_FOR_VALIDATION"
	actionStateChange     = "STATE_CHANGE"
)

// TaskActivity is tasking manager activity on a set of projects inside a window
type TaskActivity struct {
	Range      filter.TimeRange
	ProjectIDs []int64
}

func (TaskActivity) Kind() Kind { return KindTaskActivity }

func (s TaskActivity) statements() ([]statement, error) {
	ts := filter.Between("action_date", s.Range)
	if err := filter.Require(ts, "timestamp filter"); err != nil {
		return nil, err
	}
	ps := filter.In("project_id", s.ProjectIDs)
	if err := filter.Require(ps, "project filter"); err != nil {
		return nil, err
	}
	order := s.Kind().Ordering()

	counted := func(text string) sq.Sqlizer {
		return psql.Select("user_id", "COUNT(*) AS tasks").
			From("task_history").
			Where(filter.And(filter.Equal("action", actionStateChange), filter.Equal("action_text", text), ts, ps)).
			GroupBy("user_id").
			OrderBy(order.terms("", "user_id")...)
	}
	// lock actions record the time spent as HH:MM:SS in action_text
	spent := func(actions ...string) sq.Sqlizer {
		return psql.Select("user_id", "SUM(CAST(action_text AS INTERVAL)) AS spent").
			From("task_history").
			Where(filter.And(filter.In("action", actions), ts, ps)).
			GroupBy("user_id").
			OrderBy(order.terms("", "user_id")...)
	}
	return []statement{
		{"tasks_mapped", counted(actionMapped)},
		{"tasks_validated", counted(actionValidated)},
		{"time_mapping", spent(actionLockMapping, actionAutoUnlockMap)},
		{"time_validating", spent(actionLockValidation, actionAutoUnlockValid)},
	}, nil
}

// RawColumns are the free text columns of the raw changeset mirror
var RawColumns = filter.FreeTextColumns{Hashtags: "tags -> 'hashtags'", Comment: "tags -> 'comment'"}

// Changesets lists raw changesets matched with the free text strategy
type Changesets struct {
	Range filter.TimeRange
	Tags  filter.HashtagSet
}

func (Changesets) Kind() Kind { return KindChangesets }

func (s Changesets) statements() ([]statement, error) {
	ts := filter.Between("created_at", s.Range)
	if err := filter.Require(ts, "timestamp filter"); err != nil {
		return nil, err
	}
	ft := filter.FreeText(RawColumns, s.Tags)
	if err := filter.Require(ft, "hashtag filter"); err != nil {
		return nil, err
	}
	q := with(
		psql.Select("id AS changeset_id", "user_id", "user_name AS username", "created_at").
			From("t1").
			OrderBy(s.Kind().Ordering().terms("", "id")...),
		cte{"t1", sq.Select("id", "user_id", "user_name", "created_at").
			From("osm_changeset").
			Where(filter.And(ts, ft))},
	)
	return []statement{{"changesets", q}}, nil
}
