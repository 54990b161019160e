package challenge

import (
	"fmt"
	"strings"
)

// Category identifies one of the supported window-function kinds.
type Category string

const (
	CategoryCumulativeSum          Category = "cumulative-sum"
	CategoryRowNumber              Category = "row-number"
	CategoryAverage                Category = "average"
	CategoryCount                  Category = "count"
	CategoryRank                   Category = "rank"
	CategoryLead                   Category = "lead"
	CategoryLag                    Category = "lag"
	CategoryFirstValue             Category = "first-value"
	CategoryLastValue              Category = "last-value"
	CategoryNthValue               Category = "nth-value"
	CategoryPercentRank            Category = "percent-rank"
	CategoryCumulativeDistribution Category = "cumulative-distribution"
	CategoryPercentileContinuous   Category = "percentile-continuous"
	CategoryPercentileDiscrete     Category = "percentile-discrete"
)

// allCategories lists categories in canonical order.
var allCategories = []Category{
	CategoryCumulativeSum,
	CategoryRowNumber,
	CategoryAverage,
	CategoryCount,
	CategoryRank,
	CategoryLead,
	CategoryLag,
	CategoryFirstValue,
	CategoryLastValue,
	CategoryNthValue,
	CategoryPercentRank,
	CategoryCumulativeDistribution,
	CategoryPercentileContinuous,
	CategoryPercentileDiscrete,
}

// labels are the SQL forms shown to the learner.
var labels = map[Category]string{
	CategoryCumulativeSum:          "SUM() OVER()",
	CategoryRowNumber:              "ROW_NUMBER()",
	CategoryAverage:                "AVG() OVER()",
	CategoryCount:                  "COUNT() OVER()",
	CategoryRank:                   "RANK()",
	CategoryLead:                   "LEAD()",
	CategoryLag:                    "LAG()",
	CategoryFirstValue:             "FIRST_VALUE()",
	CategoryLastValue:              "LAST_VALUE()",
	CategoryNthValue:               "NTH_VALUE()",
	CategoryPercentRank:            "PERCENT_RANK()",
	CategoryCumulativeDistribution: "CUME_DIST()",
	CategoryPercentileContinuous:   "PERCENTILE_CONT()",
	CategoryPercentileDiscrete:     "PERCENTILE_DISC()",
}

// Categories returns every category in canonical order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// OrderedSet reports whether the category's reference queries use an
// ordered-set aggregate (WITHIN GROUP) as a window function.
func (c Category) OrderedSet() bool {
	return c == CategoryPercentileContinuous || c == CategoryPercentileDiscrete
}

// DefaultCategories returns the categories drawn when none are configured:
// every category except the ordered-set ones. PostgreSQL and MySQL reject
// WITHIN GROUP aggregates used with OVER, and SQLite accepts them only in
// builds with optional extensions. They remain available when named
// explicitly.
func DefaultCategories() []Category {
	out := make([]Category, 0, len(allCategories))
	for _, c := range allCategories {
		if !c.OrderedSet() {
			out = append(out, c)
		}
	}
	return out
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := labels[c]
	return ok
}

// Label returns the window-function form, e.g. "LAG()".
func (c Category) Label() string {
	return labels[c]
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory accepts either the identifier ("percent-rank") or the SQL
// label ("PERCENT_RANK()"), case-insensitively.
func ParseCategory(s string) (Category, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if c := Category(norm); c.Valid() {
		return c, nil
	}
	for c, label := range labels {
		if strings.EqualFold(label, norm) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown window-function category %q", s)
}

// ParseCategories converts a list of names. An empty list yields
// DefaultCategories.
func ParseCategories(names []string) ([]Category, error) {
	if len(names) == 0 {
		return DefaultCategories(), nil
	}
	out := make([]Category, 0, len(names))
	for _, n := range names {
		c, err := ParseCategory(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
