package querybuilder

import (
	"strconv"
	"strings"
)

// writer accumulates SQL text and positional ($n) arguments.
type writer struct {
	buf  strings.Builder
	args []any
}

func (w *writer) raw(parts ...string) {
	for _, p := range parts {
		w.buf.WriteString(p)
	}
}

func (w *writer) bind(v any) {
	w.args = append(w.args, v)
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

// expr copies expr verbatim, binding each ? in order. Surplus ? are left untouched.
func (w *writer) expr(expr string, args []any) {
	if len(args) == 0 {
		w.buf.WriteString(expr)
		return
	}
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(args) {
			w.bind(args[next])
			next++
			continue
		}
		w.buf.WriteByte(expr[i])
	}
}

func (w *writer) where(conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.raw(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.raw(" AND ")
		}
		c.render(w)
	}
}

func (w *writer) list(keyword string, items []string) {
	if len(items) == 0 {
		return
	}
	w.raw(" ", keyword, " ", strings.Join(items, ", "))
}

func (w *writer) suffix(s string) {
	if s == "" {
		return
	}
	w.raw(" ")
	w.expr(s, nil)
}

func (w *writer) result() (string, []any, error) {
	return w.buf.String(), w.args, nil
}
