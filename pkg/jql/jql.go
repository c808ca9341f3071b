// Package jql assembles JQL query text. It is the only place in the
// service where query syntax is built, so escaping lives here.
package jql

import (
	"fmt"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// CurrentUser is the JQL function resolving to the authenticated caller.
const CurrentUser = "currentUser()"

// Quote wraps a value in single quotes, escaping embedded quotes.
func Quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "\\'") + "'"
}

// Eq builds `field = 'value'`. Function values (ending in "()") such as
// currentUser() are not quoted.
func Eq(field, value string) string {
	if strings.HasSuffix(value, "()") {
		return fmt.Sprintf("%s = %s", field, value)
	}
	return fmt.Sprintf("%s = %s", field, Quote(value))
}

// In builds `field IN ('a', 'b')`, collapsing a single value to Eq.
func In(field string, values []string) string {
	if len(values) == 1 {
		return Eq(field, values[0])
	}
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, Quote(v))
	}
	return fmt.Sprintf("%s IN (%s)", field, strings.Join(quoted, ", "))
}

// Contains builds a free-text match `field ~ 'value'`.
func Contains(field, value string) string {
	return fmt.Sprintf("%s ~ %s", field, Quote(value))
}

// Between builds an inclusive date-range constraint on field.
func Between(field string, start, end time.Time) string {
	return fmt.Sprintf("%s >= %s AND %s <= %s",
		field, Quote(start.Format(dateFormat)),
		field, Quote(end.Format(dateFormat)))
}

// Or joins clauses with OR inside parentheses. Empty clauses are skipped;
// a single clause is returned bare.
func Or(clauses ...string) string {
	return join(" OR ", clauses)
}

// And joins clauses with AND. Empty clauses are skipped.
func And(clauses ...string) string {
	kept := compact(clauses)
	return strings.Join(kept, " AND ")
}

// OrderBy appends an ORDER BY clause to a query body. An empty body yields
// just the ordering, which is valid JQL.
func OrderBy(body, field, direction string) string {
	order := fmt.Sprintf("ORDER BY %s %s", field, direction)
	if body == "" {
		return order
	}
	return body + " " + order
}

func join(sep string, clauses []string) string {
	kept := compact(clauses)
	switch len(kept) {
	case 0:
		return ""
	case 1:
		return kept[0]
	}
	return "(" + strings.Join(kept, sep) + ")"
}

func compact(clauses []string) []string {
	kept := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if c != "" {
			kept = append(kept, c)
		}
	}
	return kept
}
