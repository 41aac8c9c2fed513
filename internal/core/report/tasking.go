package report

import (
	sq "github.com/Masterminds/squirrel"

	"galaxy/internal/core/filter"
)

// ValidatorStats counts validated tasks per validator, project and year
type ValidatorStats struct {
	// AfterYear keeps projects created after this year
	AfterYear    int
	Country      string
	Organisation string
	// Status is an optional project status code
	Status *int
}

func (ValidatorStats) Kind() Kind { return KindValidatorStats }

func (s ValidatorStats) statements() ([]statement, error) {
	projects := filter.And(
		filter.Expr("date_part('year', created) > ?", s.AfterYear),
		orgFilter(s.Organisation),
		countryFilter(s.Country),
		statusFilter(s.Status),
	)
	q := with(
		psql.Select("v.user_id", "u.username", "u.mapping_level", "v.project_id",
			"p.status AS project_status", "ARRAY_TO_STRING(p.country, ',') AS countries",
			"p.tasks_mapped", "p.tasks_validated", "v.year", "v.validated").
			From("v").
			Join("p ON p.id = v.project_id").
			Join("users u ON u.id = v.user_id").
			OrderBy(s.Kind().Ordering().terms("", "u.username", "v.project_id", "v.year")...),
		cte{"p", sq.Select("id", "country", "status", "tasks_mapped", "tasks_validated").
			From("projects").
			Where(projects)},
		cte{"v", sq.Select("th.project_id", "th.user_id", "date_part('year', th.action_date)::int AS year", "COUNT(*) AS validated").
			From("task_history th").
			Join("p ON p.id = th.project_id").
			Where(filter.And(filter.Equal("th.action", actionStateChange), filter.Equal("th.action_text", actionValidated))).
			GroupBy("th.project_id", "th.user_id", "year")},
	)
	return []statement{{"validators", q}}, nil
}

func orgFilter(name string) filter.Fragment {
	if name == "" {
		return filter.Fragment{}
	}
	return filter.Expr("organisation_id IN (SELECT id FROM organisations WHERE name = ?)", name)
}

func countryFilter(c string) filter.Fragment {
	if c == "" {
		return filter.Fragment{}
	}
	return filter.ArrayHas("country", c)
}

func statusFilter(st *int) filter.Fragment {
	if st == nil {
		return filter.Fragment{}
	}
	return filter.Equal("status", *st)
}

// team member function code of a manager
const teamManager = 1

// project_teams role code of a validating team
const validatorRole = 1

// validatorTeams keeps teams that validate at least one project
func validatorTeams() cte {
	return cte{"vt", sq.Select("team_id AS id").
		Distinct().
		From("project_teams").
		Where(filter.Equal("role", validatorRole))}
}

// Teams lists validating teams with their managers and member counts
type Teams struct{}

func (Teams) Kind() Kind { return KindTeams }

func (s Teams) statements() ([]statement, error) {
	q := with(
		psql.Select("t.id", "t.organisation_id", "o.name AS organisation_name", "t.name AS team_name",
			"m.managers", "c.members_count").
			From("teams t").
			Join("vt ON vt.id = t.id").
			Join("organisations o ON o.id = t.organisation_id").
			LeftJoin("m ON m.team_id = t.id").
			LeftJoin("c ON c.team_id = t.id").
			OrderBy(s.Kind().Ordering().terms("", "t.id")...),
		validatorTeams(),
		cte{"m", sq.Select("tm.team_id", "STRING_AGG(u.username, ',' ORDER BY u.username) AS managers").
			From("team_members tm").
			Join("users u ON u.id = tm.user_id").
			Where(filter.Equal("tm.function", teamManager)).
			GroupBy("tm.team_id")},
		cte{"c", sq.Select("team_id", "COUNT(*) AS members_count").
			From("team_members").
			Where("active").
			GroupBy("team_id")},
	)
	return []statement{{"teams", q}}, nil
}

// TeamMembers lists members of one validating team, or of every one when TeamID is zero
type TeamMembers struct {
	TeamID int64
}

func (TeamMembers) Kind() Kind { return KindTeamMembers }

func (s TeamMembers) statements() ([]statement, error) {
	var team filter.Fragment
	if s.TeamID > 0 {
		team = filter.Equal("t.id", s.TeamID)
	}
	q := where(
		psql.Select("t.id AS team_id", "t.name AS team_name", "o.id AS organisation_id", "o.name AS organisation_name",
			"u.id AS user_id", "u.username", "tm.function", "tm.active").
			From("teams t").
			Join("vt ON vt.id = t.id").
			Join("organisations o ON o.id = t.organisation_id").
			Join("team_members tm ON tm.team_id = t.id").
			Join("users u ON u.id = tm.user_id"),
		team,
	).OrderBy(s.Kind().Ordering().terms("", "t.id", "u.username")...)
	return []statement{{"members", with(q, validatorTeams())}}, nil
}
