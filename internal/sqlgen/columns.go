package sqlgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/waferq/waferq/internal/catalog"
	"github.com/waferq/waferq/internal/request"
)

// Physical column references of the probe schema. Catalog templates refer
// to these through placeholders; bin aggregates use them directly.
const (
	binColumn     = "v.bin"
	totalColumn   = "v.total"
	waferIDColumn = "v.wafer_id"
)

// Resolution is the column resolver's output, consumed by the linker and
// the clause assembler.
type Resolution struct {
	// Selects holds SELECT expression strings (with AS alias where the
	// catalog defines one), in emission order.
	Selects []string

	// GroupBy holds the raw grouping keys contributed by scalar columns,
	// in emission order. Deduplication and sorting happen at clause
	// assembly time.
	GroupBy []string

	// HasAggregate is true once any aggregate expression was emitted.
	HasAggregate bool

	// Aliases maps each produced alias to its underlying expression.
	// Only aliased expressions are referenceable by derived aggregates.
	Aliases map[string]string
}

// ResolveColumns turns selected catalog entries plus bin aggregate requests
// into SELECT expressions.
//
// Emission order: selected columns in request order, then auto-range bins
// ascending (count before percentage per bin), then explicit custom bin
// rows in request order. Custom bin rows whose bin value does not parse as
// an integer are dropped silently; they originate from free-form rows that
// may be transiently invalid.
func ResolveColumns(cat *catalog.Catalog, req request.Request, goodBins []string) (*Resolution, error) {
	res := &Resolution{Aliases: make(map[string]string)}

	goodBinsSQL := "NULL"
	if len(goodBins) > 0 {
		goodBinsSQL = strings.Join(goodBins, ",")
	}
	expand := strings.NewReplacer(
		catalog.PlaceholderGoodBins, goodBinsSQL,
		catalog.PlaceholderBinCol, binColumn,
		catalog.PlaceholderTotalCol, totalColumn,
		catalog.PlaceholderWaferCol, waferIDColumn,
	)

	for _, name := range req.Columns {
		spec, ok := cat.Column(name)
		if !ok {
			// Unknown names are dropped like stale custom-bin rows:
			// the request may reference a column from a catalog it
			// was authored against.
			continue
		}
		if spec.Aggregate {
			template := spec.Template
			if template == "" {
				template = spec.SQL
			}
			if template == "" {
				return nil, &Error{
					Code:    CodeBadTemplate,
					Field:   name,
					Message: "aggregate column has neither template nor sql expression",
				}
			}
			res.append(expand.Replace(template), spec.Alias)
			res.HasAggregate = true
		} else {
			res.append(spec.SQL, spec.Alias)
			res.GroupBy = append(res.GroupBy, spec.GroupKeyFor())
		}
	}

	if req.AutoRange != nil {
		ar := req.AutoRange
		if ar.Start > ar.End {
			return nil, &Error{
				Code:    CodeBinRange,
				Field:   "auto range",
				Message: fmt.Sprintf("start bin %d greater than end bin %d", ar.Start, ar.End),
			}
		}
		res.HasAggregate = true
		for n := ar.Start; n <= ar.End; n++ {
			res.appendBin(n, ar.Count, ar.Percent)
		}
	}

	for _, row := range req.CustomBins {
		n, err := strconv.Atoi(strings.TrimSpace(row.Bin))
		if err != nil {
			continue
		}
		res.HasAggregate = true
		res.appendBin(n, row.Count, row.Percent)
	}

	return res, nil
}

// append records a SELECT expression, with its alias when one exists.
func (r *Resolution) append(expr, alias string) {
	if alias != "" {
		r.Selects = append(r.Selects, expr+" AS "+alias)
		r.Aliases[alias] = expr
	} else {
		r.Selects = append(r.Selects, expr)
	}
}

// appendBin emits the count and/or percentage aggregate for one bin number.
// Aliases are deterministic: bin_<n>count and bin<n>_pct.
func (r *Resolution) appendBin(n int, count, percent bool) {
	if count {
		expr := fmt.Sprintf("SUM(CASE WHEN %s = %d THEN %s ELSE 0 END)", binColumn, n, totalColumn)
		r.append(expr, fmt.Sprintf("bin_%dcount", n))
	}
	if percent {
		expr := fmt.Sprintf("ROUND(SUM(CASE WHEN %s = %d THEN %s ELSE 0 END) / NULLIF(SUM(%s), 0) * 100, 2)",
			binColumn, n, totalColumn, totalColumn)
		r.append(expr, fmt.Sprintf("bin%d_pct", n))
	}
}
