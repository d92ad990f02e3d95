package utils

import (
	"strconv"
	"strings"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// WhereBuilder collects filter clauses with positional ($n) arguments.
// Clauses use "?" for their single argument: Add("p.author_id = ?", id)
type WhereBuilder struct {
	clauses []string
	args    []any
}

func (w *WhereBuilder) Add(clause string, arg any) *WhereBuilder {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, strings.Replace(clause, "?", "$"+strconv.Itoa(len(w.args)), 1))
	return w
}

// SQL returns " WHERE ..." or "" when nothing was added
func (w *WhereBuilder) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + JoinWithAnd(w.clauses)
}

// Args returns the collected arguments followed by extra (LIMIT/OFFSET)
func (w *WhereBuilder) Args(extra ...any) []any {
	out := make([]any, 0, len(w.args)+len(extra))
	out = append(out, w.args...)
	return append(out, extra...)
}

// Next is the placeholder number of the next argument appended after the filters
func (w *WhereBuilder) Next() int {
	return len(w.args) + 1
}
