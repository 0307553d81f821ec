// Package querybuilder renders the small set of postgres statements the
// repositories need with numbered placeholders.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// args accumulates bound values and hands out the next $n placeholder.
type args struct {
	values []any
}

func (a *args) bind(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

// Condition renders one WHERE term. Terms are joined with AND.
type Condition func(a *args) string

func Eq(column string, value any) Condition {
	return func(a *args) string {
		return column + " = " + a.bind(value)
	}
}

// Expr renders raw SQL, binding each '?' to the next value in order.
// Surplus '?' characters are kept literally.
func Expr(expr string, values ...any) Condition {
	return func(a *args) string {
		if len(values) == 0 {
			return expr
		}

		var b strings.Builder
		next := 0
		for _, r := range expr {
			if r == '?' && next < len(values) {
				b.WriteString(a.bind(values[next]))
				next++
				continue
			}
			b.WriteRune(r)
		}
		return b.String()
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var (
		sql   strings.Builder
		bound args
	)
	sql.WriteString("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	for i, cond := range b.where {
		if i == 0 {
			sql.WriteString(" WHERE ")
		} else {
			sql.WriteString(" AND ")
		}
		sql.WriteString(cond(&bound))
	}
	if len(b.orderBy) > 0 {
		sql.WriteString(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		sql.WriteString(" LIMIT " + strconv.Itoa(b.limit))
	}

	return sql.String(), bound.values, nil
}

// Insert renders a single-row INSERT. suffix is appended verbatim, typically
// an ON CONFLICT clause.
func Insert(table string, columns []string, values []any, suffix string) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(columns) != len(values) {
		return "", nil, fmt.Errorf("insert has %d values for %d columns", len(values), len(columns))
	}

	var bound args
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = bound.bind(v)
	}

	sql := "INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")"
	if suffix = strings.TrimSpace(suffix); suffix != "" {
		sql += " " + suffix
	}
	return sql, bound.values, nil
}
