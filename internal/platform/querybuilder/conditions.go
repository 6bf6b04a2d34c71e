package querybuilder

import "strings"

// Condition renders one predicate of a WHERE clause.
type Condition interface {
	render(w *writer)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) render(w *writer) {
	w.raw(c.column, " = ")
	w.bind(c.value)
}

type inCondition struct {
	column string
	values []any
}

func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

// InStrings is In for the common case of id lists.
func InStrings(column string, values []string) Condition {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return inCondition{column: column, values: out}
}

func (c inCondition) render(w *writer) {
	if len(c.values) == 0 {
		w.raw("1=0")
		return
	}

	w.raw(c.column, " IN (")
	for i, v := range c.values {
		if i > 0 {
			w.raw(", ")
		}
		w.bind(v)
	}
	w.raw(")")
}

type isNullCondition struct {
	column string
	not    bool
}

func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func IsNotNull(column string) Condition {
	return isNullCondition{column: column, not: true}
}

func (c isNullCondition) render(w *writer) {
	if c.not {
		w.raw(c.column, " IS NOT NULL")
		return
	}
	w.raw(c.column, " IS NULL")
}

type exprCondition struct {
	expr string
	args []any
}

// Expr embeds raw SQL; each ? is bound to the next arg.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) render(w *writer) {
	w.expr(c.expr, c.args)
}

type orCondition struct {
	parts []Condition
}

func Or(parts ...Condition) Condition {
	return orCondition{parts: parts}
}

func (c orCondition) render(w *writer) {
	if len(c.parts) == 0 {
		w.raw("1=0")
		return
	}
	w.raw("(")
	for i, p := range c.parts {
		if i > 0 {
			w.raw(" OR ")
		}
		p.render(w)
	}
	w.raw(")")
}

func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

type eqLiteralCondition struct {
	column string
	value  string
}

// EqLiteral inlines value as a quoted literal instead of binding it.
func EqLiteral(column, value string) Condition {
	return eqLiteralCondition{column: column, value: value}
}

func (c eqLiteralCondition) render(w *writer) {
	w.raw(c.column, " = ", quoteLiteral(c.value))
}
