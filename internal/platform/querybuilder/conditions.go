package querybuilder

import (
	"strconv"
	"strings"
)

// Condition renders one predicate of a WHERE clause. Placeholders are
// numbered from argIndex and their values appended to args.
type Condition interface {
	appendSQL(buf *strings.Builder, args *[]any, argIndex *int)
}

type compareCondition struct {
	column string
	op     string
	value  any
}

func Eq(column string, value any) Condition { return compareCondition{column: column, op: "=", value: value} }
func Ne(column string, value any) Condition { return compareCondition{column: column, op: "<>", value: value} }
func Lt(column string, value any) Condition { return compareCondition{column: column, op: "<", value: value} }
func Gt(column string, value any) Condition { return compareCondition{column: column, op: ">", value: value} }
func Lte(column string, value any) Condition { return compareCondition{column: column, op: "<=", value: value} }
func Gte(column string, value any) Condition { return compareCondition{column: column, op: ">=", value: value} }

func (c compareCondition) appendSQL(buf *strings.Builder, args *[]any, argIndex *int) {
	buf.WriteString(c.column)
	buf.WriteByte(' ')
	buf.WriteString(c.op)
	buf.WriteByte(' ')
	bind(buf, c.value, args, argIndex)
}

type inCondition struct {
	column string
	values []any
}

func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

func (c inCondition) appendSQL(buf *strings.Builder, args *[]any, argIndex *int) {
	if len(c.values) == 0 {
		buf.WriteString("1=0")
		return
	}
	buf.WriteString(c.column)
	buf.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			buf.WriteString(", ")
		}
		bind(buf, v, args, argIndex)
	}
	buf.WriteByte(')')
}

type nullCondition struct {
	column string
	not    bool
}

func IsNull(column string) Condition { return nullCondition{column: column} }
func IsNotNull(column string) Condition { return nullCondition{column: column, not: true} }

func (c nullCondition) appendSQL(buf *strings.Builder, _ *[]any, _ *int) {
	buf.WriteString(c.column)
	if c.not {
		buf.WriteString(" IS NOT NULL")
		return
	}
	buf.WriteString(" IS NULL")
}

type exprCondition struct {
	expr string
	args []any
}

// Expr embeds raw SQL; each '?' is replaced by the next numbered placeholder.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) appendSQL(buf *strings.Builder, args *[]any, argIndex *int) {
	buf.WriteString(rewritePlaceholders(c.expr, c.args, args, argIndex))
}

type orCondition struct {
	parts []Condition
}

// Or groups conditions into a parenthesised disjunction.
func Or(conditions ...Condition) Condition {
	return orCondition{parts: conditions}
}

func (c orCondition) appendSQL(buf *strings.Builder, args *[]any, argIndex *int) {
	if len(c.parts) == 0 {
		buf.WriteString("1=0")
		return
	}
	buf.WriteByte('(')
	for i, part := range c.parts {
		if i > 0 {
			buf.WriteString(" OR ")
		}
		part.appendSQL(buf, args, argIndex)
	}
	buf.WriteByte(')')
}

func appendWhereClause(buf *strings.Builder, conditions []Condition, args *[]any, argIndex *int) {
	if len(conditions) == 0 {
		return
	}
	buf.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			buf.WriteString(" AND ")
		}
		c.appendSQL(buf, args, argIndex)
	}
}

func bind(buf *strings.Builder, value any, args *[]any, argIndex *int) {
	buf.WriteString(placeholder(*argIndex))
	*args = append(*args, value)
	*argIndex++
}

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}

func rewritePlaceholders(expr string, exprArgs []any, args *[]any, argIndex *int) string {
	if len(exprArgs) == 0 {
		return expr
	}

	var out strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] != '?' || next >= len(exprArgs) {
			out.WriteByte(expr[i])
			continue
		}
		bind(&out, exprArgs[next], args, argIndex)
		next++
	}
	return out.String()
}
