package challenge

import (
	"fmt"
	"regexp"
	"strings"
)

// aggregateHead matches the start of "SELECT MAX(" style queries.
var aggregateHead = regexp.MustCompile(`(?is)^\s*SELECT\s+(MAX|MIN|SUM|AVG|COUNT)\s*\(`)

// overKeyword finds a window clause inside an aggregate argument.
var overKeyword = regexp.MustCompile(`(?i)\bOVER\s*\(`)

// Runnable returns a form of query that the supported engines accept.
//
// The question bank phrases answers as an aggregate over a window
// expression, e.g. SELECT MAX(SUM(price) OVER (ORDER BY launch_date)) FROM
// product. Engines reject a window function nested in an aggregate, so the
// window expression is moved into a derived table and aggregated outside:
//
//	SELECT MAX(windowed) FROM (SELECT SUM(price) OVER (...) AS windowed FROM product) AS w
//
// The WHERE clause stays inside, where it filters rows before the window is
// computed, as in the original form. Queries of any other shape are
// returned unchanged.
func Runnable(query string) string {
	q := strings.TrimRight(strings.TrimSpace(query), "; \t\r\n")
	head := aggregateHead.FindStringSubmatchIndex(q)
	if head == nil {
		return query
	}
	agg := strings.ToUpper(q[head[2]:head[3]])

	open := head[1] - 1
	closeAt := matchingParen(q, open)
	if closeAt < 0 {
		return query
	}
	inner := strings.TrimSpace(q[open+1 : closeAt])
	if !overKeyword.MatchString(inner) {
		return query
	}

	rest := q[closeAt+1:]
	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(rest)), "FROM ") {
		return query
	}
	// Anything after the table and filter would change meaning once nested.
	upper := strings.ToUpper(rest)
	for _, kw := range []string{" GROUP BY ", " HAVING ", " ORDER BY ", " LIMIT ", " UNION "} {
		if strings.Contains(upper, kw) {
			return query
		}
	}

	return fmt.Sprintf("SELECT %s(windowed) FROM (SELECT %s AS windowed %s) AS w",
		agg, inner, strings.TrimSpace(rest))
}

// matchingParen returns the index of the parenthesis closing the one at
// open, skipping quoted text, or -1.
func matchingParen(s string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
