package report

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"galaxy/internal/core/filter"
	perr "galaxy/internal/platform/errors"
)

// Query is one executable statement with $n placeholders
type Query struct {
	Kind Kind
	Name string
	SQL  string
	Args []any
}

// Source returns the database the statement must run against
func (q Query) Source() Source { return q.Kind.Source() }

// Plan is every statement a report needs, in a fixed order
type Plan struct {
	Kind    Kind
	Queries []Query
}

// Source returns the database the plan targets
func (p Plan) Source() Source { return p.Kind.Source() }

// Lookup finds a statement by name
func (p Plan) Lookup(name string) (Query, bool) {
	for _, q := range p.Queries {
		if q.Name == name {
			return q, true
		}
	}
	return Query{}, false
}

// Must returns the named statement or a construction error
func (p Plan) Must(name string) (Query, error) {
	if q, ok := p.Lookup(name); ok {
		return q, nil
	}
	return Query{}, perr.QueryBuildf("%s: no statement named %q", p.Kind, name)
}

// Spec is a validated report request
type Spec interface {
	Kind() Kind
	statements() ([]statement, error)
}

type statement struct {
	name string
	sql  sq.Sqlizer
}

// Build renders every statement of a spec; identical specs give byte-identical SQL
func Build(s Spec) (Plan, error) {
	k := s.Kind()
	if _, ok := kinds[k]; !ok {
		return Plan{}, perr.QueryBuildf("unknown report kind %d", k)
	}
	stmts, err := s.statements()
	if err != nil {
		return Plan{}, perr.WithOp(asBuild(err), k.String())
	}
	p := Plan{Kind: k, Queries: make([]Query, 0, len(stmts))}
	for _, st := range stmts {
		sql, args, err := st.sql.ToSql()
		if err != nil {
			return Plan{}, perr.WithOp(asBuild(err), k.String()+"."+st.name)
		}
		p.Queries = append(p.Queries, Query{Kind: k, Name: st.name, SQL: sql, Args: args})
	}
	return p, nil
}

// asBuild keeps classified errors and tags everything else as a construction failure
func asBuild(err error) error {
	if _, ok := perr.As(err); ok {
		return err
	}
	return perr.Wrap(err, perr.ErrorCodeQueryConstruction, "assemble statement")
}

// psql is the top level builder; CTE bodies use plain sq.Select so placeholders are
// numbered once over the whole statement
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type cte struct {
	name string
	body sq.Sqlizer
}

// with prefixes a final select with named CTEs
func with(final sq.SelectBuilder, ctes ...cte) sq.SelectBuilder {
	if len(ctes) == 0 {
		return final
	}
	parts := make([]string, len(ctes))
	args := make([]any, len(ctes))
	for i, c := range ctes {
		parts[i] = c.name + " AS (?)"
		args[i] = c.body
	}
	return final.PrefixExpr(sq.Expr("WITH "+strings.Join(parts, ", "), args...))
}

// where adds f unless it is empty
func where(b sq.SelectBuilder, f filter.Fragment) sq.SelectBuilder {
	if f.Empty() {
		return b
	}
	return b.Where(f)
}

// tagBagActions unnests the added, modified and deleted tag bags of t1 into
// (feature, action, value) rows, carrying extra columns through
func tagBagActions(extra ...string) sq.Sqlizer {
	carry := ""
	if len(extra) > 0 {
		carry = ", " + strings.Join(extra, ", ")
	}
	part := func(col, action string) string {
		return "SELECT e.key AS feature, '" + action + "' AS action, e.value::numeric AS value" + carry +
			" FROM t1, each(t1." + col + ") AS e"
	}
	return sq.Expr(part("added", "create") + " UNION ALL " + part("modified", "modify") + " UNION ALL " + part("deleted", "delete"))
}
