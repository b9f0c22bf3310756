package sqlgen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/waferq/waferq/internal/request"
)

// aliasSanitizer collapses runs of non-alphanumeric characters when a
// default alias is derived from the target text.
var aliasSanitizer = regexp.MustCompile(`[^0-9a-zA-Z]+`)

// LinkAggregates appends derived-aggregate expressions to a resolution.
//
// Each row's target is resolved against the aliases produced so far: a
// known alias stands for its underlying expression, anything else is taken
// literally as a SQL column or expression. Aggregating an expression that
// is already an aggregate or a ratio is rejected hard with
// CodeAggregateTarget; the dialect's single-pass GROUP BY cannot nest them.
//
// Rows with an empty target are skipped. When no explicit alias is given
// the produced expression is labeled <func_lowercase>_<target> with
// non-alphanumeric runs replaced by underscores.
func LinkAggregates(res *Resolution, aggregates []request.Aggregate) error {
	for _, agg := range aggregates {
		if agg.Target == "" {
			continue
		}

		expr := agg.Target
		if aliased, ok := res.Aliases[agg.Target]; ok {
			if IsRatioExpr(aliased) || ContainsAggregate(aliased) {
				return &Error{
					Code:    CodeAggregateTarget,
					Field:   agg.Target,
					Message: "cannot aggregate a derived ratio or an existing aggregate",
				}
			}
			expr = aliased
		}

		alias := agg.Alias
		if alias == "" {
			alias = strings.ToLower(agg.Func) + "_" + aliasSanitizer.ReplaceAllString(agg.Target, "_")
		}

		res.Selects = append(res.Selects, fmt.Sprintf("%s(%s) AS %s", agg.Func, expr, alias))
		res.HasAggregate = true
	}
	return nil
}
