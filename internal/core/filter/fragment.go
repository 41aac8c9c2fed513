// Package filter turns validated report parameters into parameterized SQL predicates
//
// Fragments carry SQL with ? placeholders and their bound values. Nothing user supplied
// is ever interpolated into the SQL text; the statement assembler rewrites placeholders
// to $n once the whole statement is known.
package filter

import (
	"regexp"

	sq "github.com/Masterminds/squirrel"

	perr "galaxy/internal/platform/errors"
)

// Fragment is a single boolean predicate
// The zero value is the empty fragment: no predicate was produced. It is distinct from
// False, which always renders and matches nothing
type Fragment struct {
	expr sq.Sqlizer
	err  error
}

// Empty reports whether no predicate was produced
func (f Fragment) Empty() bool { return f.expr == nil && f.err == nil }

// Err returns a deferred construction error, if any
func (f Fragment) Err() error { return f.err }

// ToSql implements squirrel.Sqlizer
func (f Fragment) ToSql() (string, []any, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	if f.expr == nil {
		return "", nil, perr.QueryBuildf("empty filter fragment rendered")
	}
	return f.expr.ToSql()
}

// Expr wraps raw SQL with ? placeholders
func Expr(sql string, args ...any) Fragment { return Fragment{expr: sq.Expr(sql, args...)} }

// False matches no rows
func False() Fragment { return Fragment{expr: sq.Expr("FALSE")} }

// Broken returns a fragment whose rendering fails with err
func Broken(err error) Fragment { return Fragment{err: err} }

// And joins non empty fragments with AND; the first broken fragment wins
func And(fs ...Fragment) Fragment { return join(false, fs) }

// Or joins non empty fragments with OR; the first broken fragment wins
func Or(fs ...Fragment) Fragment { return join(true, fs) }

func join(or bool, fs []Fragment) Fragment {
	parts := make([]sq.Sqlizer, 0, len(fs))
	for _, f := range fs {
		if f.err != nil {
			return f
		}
		if f.Empty() {
			continue
		}
		parts = append(parts, f)
	}
	switch len(parts) {
	case 0:
		return Fragment{}
	case 1:
		return parts[0].(Fragment)
	}
	if or {
		return Fragment{expr: sq.Or(parts)}
	}
	return Fragment{expr: sq.And(parts)}
}

// Require turns an empty fragment into a query construction error
// what names the missing predicate in the message
func Require(f Fragment, what string) error {
	if f.err != nil {
		return f.err
	}
	if f.Empty() {
		return perr.QueryBuildf("%s: required filter produced no predicate", what)
	}
	return nil
}

var (
	identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*(\.[a-z_][a-z0-9_]*)?$`)
	// hstore lookups such as tags -> 'hashtags'
	lookupRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*(\.[a-z_][a-z0-9_]*)?( -> '[a-z_]+')?$`)
)

func checkColumn(col string) error {
	if !identRe.MatchString(col) {
		return perr.QueryBuildf("invalid column identifier %q", col)
	}
	return nil
}

func checkLookup(col string) error {
	if !lookupRe.MatchString(col) {
		return perr.QueryBuildf("invalid column expression %q", col)
	}
	return nil
}

// In matches column against a list of values; no values gives the empty fragment
func In[T any](column string, values []T) Fragment {
	if err := checkColumn(column); err != nil {
		return Broken(err)
	}
	if len(values) == 0 {
		return Fragment{}
	}
	return Fragment{expr: sq.Eq{column: values}}
}

// Equal matches column against one bound value
func Equal(column string, v any) Fragment {
	if err := checkColumn(column); err != nil {
		return Broken(err)
	}
	return Fragment{expr: sq.Expr(column+" = ?", v)}
}

// ArrayHas matches rows whose array column holds v
func ArrayHas(column string, v any) Fragment {
	if err := checkColumn(column); err != nil {
		return Broken(err)
	}
	return Fragment{expr: sq.Expr("? = ANY("+column+")", v)}
}
