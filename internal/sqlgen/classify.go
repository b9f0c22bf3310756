package sqlgen

import "regexp"

// Expression classification over generated SQL fragments.
//
// The derived-aggregate linker must reject aggregating an expression that is
// already an aggregate or a ratio/percentage, and the preview builder sorts
// expressions into "simple" and "aggregate" buckets. Both checks are textual
// by contract: the detection rules below are part of the assembler's
// observable behavior and live here so they stay in one place.

var (
	// aggregateCall matches a call to one of the dialect's aggregate
	// functions anywhere in the expression.
	aggregateCall = regexp.MustCompile(`(?i)\b(SUM|AVG|MIN|MAX|COUNT)\s*\(`)

	// ratioShape matches the percentage/ratio expression shapes the
	// resolver emits: anything built on NULLIF, a ROUND(SUM prefix, or a
	// SUM(...)/SUM(...) division.
	ratioShape = regexp.MustCompile(`(?i)NULLIF\(|/\s*NULLIF\(|ROUND\s*\(\s*SUM|SUM\s*\(.*\)\s*/\s*SUM\s*\(`)
)

// ContainsAggregate reports whether expr contains an aggregate function
// call.
func ContainsAggregate(expr string) bool {
	return aggregateCall.MatchString(expr)
}

// IsRatioExpr reports whether expr has a ratio/percentage shape. Such
// expressions cannot be aggregated again in a single-pass GROUP BY.
func IsRatioExpr(expr string) bool {
	return ratioShape.MatchString(expr)
}
