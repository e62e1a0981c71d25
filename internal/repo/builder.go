package repo

import (
	"fmt"
	"strings"
)

// selectBuilder assembles a SELECT statement whose shape depends on which
// optional filters were supplied. Clause fragments are written with `?`
// placeholders and their parameters are appended to one shared slice in the
// same left-to-right order, so placeholder positions and parameter
// positions cannot drift apart. The `?` marks are renumbered to Postgres
// `$n` form once, when the final text is assembled.
type selectBuilder struct {
	selectClause   string
	fromClause     string
	conds          []string
	params         []any
	fromParamCount int
	groupBy        string
	orderBy        string
}

// newSelect starts a builder. fromParams bind any `?` placeholders inside
// the FROM/JOIN clause itself (e.g. a join scoped by the caller's id); they
// precede every WHERE parameter in the final list.
func newSelect(selectClause, fromClause string, fromParams ...any) *selectBuilder {
	return &selectBuilder{
		selectClause:   selectClause,
		fromClause:     fromClause,
		params:         append([]any{}, fromParams...),
		fromParamCount: len(fromParams),
	}
}

// Where appends one condition and its parameters.
func (b *selectBuilder) Where(cond string, args ...any) *selectBuilder {
	b.conds = append(b.conds, cond)
	b.params = append(b.params, args...)
	return b
}

func (b *selectBuilder) GroupBy(expr string) *selectBuilder {
	b.groupBy = expr
	return b
}

func (b *selectBuilder) OrderBy(expr string) *selectBuilder {
	b.orderBy = expr
	return b
}

func (b *selectBuilder) text() string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(b.selectClause)
	sb.WriteString(" FROM ")
	sb.WriteString(b.fromClause)
	if len(b.conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.conds, " AND "))
	}
	if b.groupBy != "" {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(b.groupBy)
	}
	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}
	return sb.String()
}

// SQL returns the statement and its parameters without pagination.
func (b *selectBuilder) SQL() (string, []any) {
	return numberPlaceholders(b.text()), b.params
}

// PagedSQL appends LIMIT/OFFSET as the two final parameters.
func (b *selectBuilder) PagedSQL(limit, offset int) (string, []any) {
	params := append(append([]any{}, b.params...), limit, offset)
	return numberPlaceholders(b.text() + " LIMIT ? OFFSET ?"), params
}

// CountSQL builds the companion COUNT statement over the same WHERE
// conditions. Its parameter list is the WHERE-only suffix of the shared
// slice, taken by slicing rather than by recomputing the filters, so the
// two statements cannot diverge. countFrom is the join-free FROM clause the
// count runs against; it must not introduce parameters of its own.
func (b *selectBuilder) CountSQL(countFrom string) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) FROM ")
	sb.WriteString(countFrom)
	if len(b.conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.conds, " AND "))
	}
	return numberPlaceholders(sb.String()), b.params[b.fromParamCount:]
}

// numberPlaceholders rewrites each `?` into $1, $2, ... in text order.
func numberPlaceholders(sql string) string {
	var sb strings.Builder
	n := 0
	for _, r := range sql {
		if r == '?' {
			n++
			fmt.Fprintf(&sb, "$%d", n)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
