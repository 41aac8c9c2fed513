package report

import (
	sq "github.com/Masterminds/squirrel"

	"galaxy/internal/core/filter"
)

// hashtagChangesets is the matching changesets CTE of the hashtag quality reports
// hashtags are unnested so they can be matched exactly; without hashtags the CTE is
// only bounded by time
func hashtagChangesets(r filter.TimeRange, hashtags []string) (sq.Sqlizer, error) {
	hashtags = filter.Hashtags(hashtags)
	ts := filter.Between("created_at", r)
	if err := filter.Require(ts, "timestamp filter"); err != nil {
		return nil, err
	}
	if len(hashtags) == 0 {
		return sq.Select("id", "created_at").From("changesets").Where(ts), nil
	}
	unnested := sq.Select("id", "created_at", "unnest(hashtags) AS unnest_hashtags").
		From("changesets").
		Where(ts)
	return sq.Select("id", "created_at").
		Distinct().
		FromSelect(unnested, "c").
		Where(filter.In("unnest_hashtags", hashtags)), nil
}

// QualityByHashtag lists features flagged by validation inside changesets of a hashtag
type QualityByHashtag struct {
	Range    filter.TimeRange
	Hashtags []string
	Issues   []IssueType
	Geometry *filter.Geometry
}

func (QualityByHashtag) Kind() Kind { return KindQualityByHashtag }

func (s QualityByHashtag) statements() ([]statement, error) {
	t2, err := hashtagChangesets(s.Range, s.Hashtags)
	if err != nil {
		return nil, err
	}
	geom := filter.Within("v.location", s.Geometry)
	if err := filter.Require(filter.Or(filter.In("unnest_hashtags", filter.Hashtags(s.Hashtags)), geom), "hashtag or geometry filter"); err != nil {
		return nil, err
	}
	issues := filter.In("t1.unnest_status", issueStrings(s.Issues))
	if err := filter.Require(issues, "issue filter"); err != nil {
		return nil, err
	}

	t1 := where(
		sq.Select("v.osm_id", "v.change_id", "v.values", "ST_Y(v.location) AS lat", "ST_X(v.location) AS lon", "unnest(v.status)::text AS unnest_status").
			From("validation v"),
		geom)
	q := with(
		psql.Select("t1.osm_id", "t1.change_id AS changeset_id", "t1.values", "t1.lat", "t1.lon", "t2.created_at",
			"ARRAY_AGG(t1.unnest_status ORDER BY t1.unnest_status) AS issues").
			From("t1").
			Join("t2 ON t1.change_id = t2.id").
			Where(issues).
			GroupBy("t1.osm_id", "t1.change_id", "t1.values", "t1.lat", "t1.lon", "t2.created_at").
			OrderBy(s.Kind().Ordering().terms("", "t2.created_at", "t1.osm_id")...),
		cte{"t1", t1},
		cte{"t2", t2},
	)
	return []statement{{"issues", q}}, nil
}

// QualityHashtagSummary counts flagged values per validation source
type QualityHashtagSummary struct {
	Range    filter.TimeRange
	Hashtags []string
	Issues   []IssueType
	Geometry *filter.Geometry
}

func (QualityHashtagSummary) Kind() Kind { return KindQualityHashtagSummary }

func (s QualityHashtagSummary) statements() ([]statement, error) {
	t2, err := hashtagChangesets(s.Range, s.Hashtags)
	if err != nil {
		return nil, err
	}
	geom := filter.Within("v.location", s.Geometry)
	if err := filter.Require(filter.Or(filter.In("unnest_hashtags", filter.Hashtags(s.Hashtags)), geom), "hashtag or geometry filter"); err != nil {
		return nil, err
	}
	issues := filter.In("t1.unnest_status", issueStrings(s.Issues))
	if err := filter.Require(issues, "issue filter"); err != nil {
		return nil, err
	}

	// values and status are parallel arrays; unnesting both pairs them up
	t1 := where(
		sq.Select("v.change_id", "v.source", "unnest(v.values) AS unnest_value", "unnest(v.status)::text AS unnest_status").
			From("validation v"),
		geom)
	q := with(
		psql.Select("t1.unnest_value AS value", "t1.source", "COUNT(*) AS count").
			From("t1").
			Join("t2 ON t1.change_id = t2.id").
			Where(issues).
			GroupBy("t1.unnest_value", "t1.source").
			OrderBy(s.Kind().Ordering().terms("count", "value", "t1.source")...),
		cte{"t1", t1},
		cte{"t2", t2},
	)
	return []statement{{"summary", q}}, nil
}

// QualityByUsername lists flagged features edited by the given users
type QualityByUsername struct {
	Range     filter.TimeRange
	Usernames []string
	Hashtags  filter.HashtagSet
	Issues    []IssueType
}

func (QualityByUsername) Kind() Kind { return KindQualityByUsername }

func (s QualityByUsername) statements() ([]statement, error) {
	users := filter.In("username", s.Usernames)
	if err := filter.Require(users, "username filter"); err != nil {
		return nil, err
	}
	ts := filter.Between("created_at", s.Range)
	if err := filter.Require(ts, "timestamp filter"); err != nil {
		return nil, err
	}
	issues := filter.In("t2.unnest_status", issueStrings(s.Issues))
	if err := filter.Require(issues, "issue filter"); err != nil {
		return nil, err
	}

	q := with(
		psql.Select("t2.osm_id", "t2.change_id AS changeset_id", "t1.username", "t2.timestamp", "t2.lat", "t2.lon",
			"ARRAY_AGG(t2.unnest_status ORDER BY t2.unnest_status) AS issues").
			From("t2").
			Join("t1 ON t2.user_id = t1.id").
			Join("t3 ON t2.change_id = t3.id").
			Where(issues).
			GroupBy("t2.osm_id", "t2.change_id", "t1.username", "t2.timestamp", "t2.lat", "t2.lon").
			OrderBy(s.Kind().Ordering().terms("", "t2.timestamp", "t2.osm_id")...),
		cte{"t1", sq.Select("id", "username").From("users").Where(users)},
		cte{"t2", sq.Select("v.osm_id", "v.change_id", "v.user_id", "v.timestamp",
			"ST_Y(v.location) AS lat", "ST_X(v.location) AS lon", "unnest(v.status)::text AS unnest_status").
			From("validation v").
			Join("t1 ON v.user_id = t1.id")},
		cte{"t3", sq.Select("id").From("changesets").Where(filter.And(ts, filter.AnyOf("hashtags", s.Hashtags)))},
	)
	return []statement{{"issues", q}}, nil
}

// QualityByProject lists flagged features inside changesets of tasking manager projects
type QualityByProject struct {
	ProjectIDs []int64
	Issues     []IssueType
}

func (QualityByProject) Kind() Kind { return KindQualityByProject }

func (s QualityByProject) statements() ([]statement, error) {
	tags := filter.AnyOf("hashtags", filter.HashtagSet{ProjectIDs: s.ProjectIDs})
	if err := filter.Require(tags, "project filter"); err != nil {
		return nil, err
	}
	issues := filter.In("t2.unnest_status", issueStrings(s.Issues))
	if err := filter.Require(issues, "issue filter"); err != nil {
		return nil, err
	}

	q := with(
		psql.Select("t2.osm_id", "t2.change_id AS changeset_id", "t2.timestamp", "t2.lat", "t2.lon",
			"ARRAY_AGG(t2.unnest_status ORDER BY t2.unnest_status) AS issues").
			From("t2").
			Where(issues).
			GroupBy("t2.osm_id", "t2.change_id", "t2.timestamp", "t2.lat", "t2.lon").
			OrderBy(s.Kind().Ordering().terms("", "t2.timestamp", "t2.osm_id")...),
		cte{"t1", sq.Select("id").From("changesets").Where(tags)},
		cte{"t2", sq.Select("v.osm_id", "v.change_id", "v.timestamp",
			"ST_Y(v.location) AS lat", "ST_X(v.location) AS lon", "unnest(v.status)::text AS unnest_status").
			From("validation v").
			Join("t1 ON v.change_id = t1.id")},
	)
	return []statement{{"issues", q}}, nil
}
