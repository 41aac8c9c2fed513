package report

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"galaxy/internal/core/filter"
	perr "galaxy/internal/platform/errors"
)

// OrganizationHashtag buckets contribution totals per hashtag over time
// Start and End are optional; the report is then bounded by the hashtags alone.
// End covers its whole day
type OrganizationHashtag struct {
	Hashtags  []string
	Frequency Frequency
	Start     time.Time
	End       time.Time
}

func (OrganizationHashtag) Kind() Kind { return KindOrganizationHashtag }

func (s OrganizationHashtag) statements() ([]statement, error) {
	hashtags := filter.Hashtags(s.Hashtags)
	tags := filter.In("t1.hashtag", hashtags)
	if err := filter.Require(tags, "hashtag filter"); err != nil {
		return nil, err
	}
	if s.Frequency == "" {
		return nil, perr.QueryBuildf("frequency is required")
	}
	bounded := filter.And(
		filter.Expr("closed_at IS NOT NULL"),
		filter.AnyOf("hashtags", filter.HashtagSet{Hashtags: hashtags}),
		filter.Since("closed_at", s.Start),
		filter.ThroughDay("closed_at", s.End),
	)

	q := with(
		psql.Select("hashtag", "bucket_start",
			"COUNT(DISTINCT user_id) AS total_unique_contributors",
			"SUM((added -> 'building')::numeric) AS total_new_buildings",
			"SUM((added -> 'amenity')::numeric) AS total_new_amenities",
			"SUM((added -> 'place')::numeric) AS total_new_places",
			"SUM((added -> 'highway_km')::numeric) AS total_new_road_m").
			From("t2").
			GroupBy("hashtag", "bucket_start").
			OrderBy(s.Kind().Ordering().terms("", "bucket_start", "hashtag")...),
		cte{"t1", sq.Select("user_id", "closed_at", "added", "unnest(hashtags) AS hashtag").
			From("changesets").
			Where(bounded)},
		cte{"t2", sq.Select("t1.hashtag", "t1.user_id", "t1.added").
			Column(sq.Expr("date_trunc(?, t1.closed_at) AS bucket_start", s.Frequency.Unit())).
			From("t1").
			Where(tags)},
	)
	return []statement{{"buckets", q}}, nil
}

// UserStatistics totals one user's building and highway edits inside a window
type UserStatistics struct {
	Range  filter.TimeRange
	UserID int64
	Tags   filter.HashtagSet
}

func (UserStatistics) Kind() Kind { return KindUserStatistics }

func (s UserStatistics) statements() ([]statement, error) {
	ts := filter.Between("created_at", s.Range)
	if err := filter.Require(ts, "timestamp filter"); err != nil {
		return nil, err
	}
	if s.UserID <= 0 {
		return nil, perr.QueryBuildf("user id is required")
	}
	q := with(
		psql.Select(
			"SUM((added -> 'building')::numeric) AS added_buildings",
			"SUM((modified -> 'building')::numeric) AS modified_buildings",
			"SUM((added -> 'highway')::numeric) AS added_highway",
			"SUM((modified -> 'highway')::numeric) AS modified_highway",
			"SUM((added -> 'highway_km')::numeric) AS added_highway_m",
			"SUM((modified -> 'highway_km')::numeric) AS modified_highway_m").
			From("t1"),
		cte{"t1", sq.Select("added", "modified").
			From("changesets").
			Where(filter.And(ts, filter.Equal("user_id", s.UserID), filter.AnyOf("hashtags", s.Tags)))},
	)
	return []statement{{"statistics", q}}, nil
}

// UserList resolves usernames to ids for users active inside a window
type UserList struct {
	Range     filter.TimeRange
	Usernames []string
}

func (UserList) Kind() Kind { return KindUserList }

func (s UserList) statements() ([]statement, error) {
	ts := filter.Between("c.created_at", s.Range)
	if err := filter.Require(ts, "timestamp filter"); err != nil {
		return nil, err
	}
	names := filter.In("u.username", s.Usernames)
	if err := filter.Require(names, "username filter"); err != nil {
		return nil, err
	}
	q := psql.Select("c.user_id", "u.username").
		Distinct().
		From("changesets c").
		Join("users u ON u.id = c.user_id").
		Where(filter.And(ts, names)).
		OrderBy(s.Kind().Ordering().terms("", "c.user_id")...)
	return []statement{{"users", q}}, nil
}

// Freshness reports how far a derived table lags behind now
type Freshness struct {
	Target FreshnessTarget
}

func (Freshness) Kind() Kind { return KindFreshness }

func (s Freshness) statements() ([]statement, error) {
	var col, table string
	switch s.Target {
	case FreshChangesets:
		col, table = "c.updated_at", "changesets c"
	case FreshValidation:
		col, table = "v.timestamp", "validation v"
	default:
		return nil, perr.QueryBuildf("unknown freshness target %q", s.Target)
	}
	q := psql.Select("MAX("+col+") AS last_updated", "NOW() - MAX("+col+") AS lag").From(table)
	return []statement{{"freshness", q}}, nil
}
