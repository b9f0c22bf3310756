// Package sqlgen assembles analytical SQL against the fixed probe schema
// from a structured request.
//
// The assembler is a pure function of (catalog, request): no I/O, no shared
// state, deterministic output. It runs in four stages — filter compilation,
// column resolution, derived-aggregate linking and clause assembly — each
// independently testable. Any stage failure aborts the whole assembly;
// partial SQL is never returned.
package sqlgen

import (
	"fmt"
	"strings"

	"github.com/waferq/waferq/internal/catalog"
	"github.com/waferq/waferq/internal/request"
)

// The FROM clause is intrinsic to the single supported schema: per-die bin
// measurements joined to per-wafer metadata on the composite lot-sequence /
// wafer-id key.
const fromClause = "\nFROM\n    vmerge_Bin_zone v\nINNER JOIN\n    wafer w ON v.lot_seq = w.lot_seq AND v.wafer_id = w.wafer_id"

// Result is the assembler's output: the final SQL statement and the
// parallel natural-language preview.
type Result struct {
	SQL     string
	Preview string
}

// Assemble produces the SQL statement and preview for a request.
//
// The catalog is read-only; concurrent assemblies may share one. Errors
// carry a Code from this package, or are a *request.GoodBinsError when the
// good-bins specification itself is malformed.
func Assemble(cat *catalog.Catalog, req request.Request) (Result, error) {
	conditions, err := CompileFilters(cat, req.Filters)
	if err != nil {
		return Result{}, err
	}

	goodBins, err := request.ParseGoodBins(req.GoodBins)
	if err != nil {
		return Result{}, err
	}

	res, err := ResolveColumns(cat, req, goodBins)
	if err != nil {
		return Result{}, err
	}
	if err := LinkAggregates(res, req.Aggregates); err != nil {
		return Result{}, err
	}

	if len(res.Selects) == 0 {
		return Result{}, &Error{Code: CodeNoSelection, Message: "no columns selected to display"}
	}

	orderConditions := make([]string, 0, len(req.OrderBy))
	for _, o := range req.OrderBy {
		orderConditions = append(orderConditions, fmt.Sprintf("%s %s", o.Column, o.Direction))
	}

	sql := renderSQL(res, conditions, orderConditions, req.Distinct)
	preview := BuildPreview(res.Selects, conditions, res.GroupBy, orderConditions)
	return Result{SQL: sql, Preview: preview}, nil
}

// renderSQL concatenates the clauses in fixed order, trims trailing
// whitespace per line and terminates the statement with a semicolon.
func renderSQL(res *Resolution, conditions, orderConditions []string, distinct bool) string {
	var b strings.Builder

	// DISTINCT and GROUP BY are mutually exclusive here: with aggregates
	// present the grouping already guarantees distinct rows.
	prefix := ""
	if distinct && !res.HasAggregate {
		prefix = "DISTINCT "
	}
	b.WriteString("SELECT " + prefix + "\n")
	b.WriteString(formatClauseList(res.Selects, 1, "    "))

	b.WriteString(fromClause)

	if len(conditions) > 0 {
		b.WriteString("\nWHERE\n    " + strings.Join(conditions, "\n    AND "))
	}

	if res.HasAggregate && len(res.GroupBy) > 0 {
		b.WriteString("\nGROUP BY\n" + formatClauseList(dedupeSorted(res.GroupBy), 4, "    "))
	}

	if len(orderConditions) > 0 {
		b.WriteString("\nORDER BY\n" + formatClauseList(orderConditions, 3, "    "))
	}

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n") + ";"
}
