package sqlgen

import (
	"regexp"
	"sort"
	"strings"
)

// aliasSuffix strips a trailing " AS alias" label from an expression for
// preview display.
var aliasSuffix = regexp.MustCompile(`(?i)\s+as\s+.*$`)

// emptyPreview is shown when the request selected nothing at all.
const emptyPreview = "No selections defined yet."

// BuildPreview restates the assembled query in plain language.
//
// SELECT expressions are classified as aggregate or simple by the textual
// aggregate-call rule; each non-empty section is emitted on its own line in
// fixed order: Columns, Aggregates, Filters, Grouped by, Ordered by. Group
// keys are deduplicated and sorted, matching the GROUP BY clause the SQL
// will carry.
func BuildPreview(selects, wheres, groups, orders []string) string {
	var parts []string

	var simple, aggregates []string
	for _, s := range selects {
		if ContainsAggregate(s) {
			aggregates = append(aggregates, stripAlias(s))
		} else {
			simple = append(simple, stripAlias(s))
		}
	}

	if len(simple) > 0 {
		parts = append(parts, "Columns: "+strings.Join(simple, ", ")+".")
	}
	if len(aggregates) > 0 {
		parts = append(parts, "Aggregates: "+strings.Join(aggregates, ", ")+".")
	}
	if len(wheres) > 0 {
		parts = append(parts, "Filters: "+strings.Join(wheres, "; "))
	}
	if len(groups) > 0 {
		parts = append(parts, "Grouped by: "+strings.Join(dedupeSorted(groups), ", "))
	}
	if len(orders) > 0 {
		parts = append(parts, "Ordered by: "+strings.Join(orders, ", "))
	}

	if len(parts) == 0 {
		return emptyPreview
	}
	return strings.Join(parts, "\n")
}

func stripAlias(expr string) string {
	return strings.TrimSpace(aliasSuffix.ReplaceAllString(expr, ""))
}

// dedupeSorted returns the unique items in sorted order.
func dedupeSorted(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	sort.Strings(out)
	return out
}
