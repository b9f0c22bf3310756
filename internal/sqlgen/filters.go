package sqlgen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/waferq/waferq/internal/catalog"
	"github.com/waferq/waferq/internal/request"
)

// Date and time layouts for the date filter domain. Values arrive as
// YYYY-MM-DD plus an optional HH:MM:SS; the emitted literal uses the Oracle
// DD-MON-YYYY HH24:MI:SS form with an upper-case month abbreviation.
const (
	dateInputLayout  = "2006-01-02"
	timeInputLayout  = "15:04:05"
	dateOracleLayout = "02-Jan-2006"

	defaultTimeOfDay    = "00:00:00"
	upperBoundTimeOfDay = "23:59:59"
)

// numericToken matches an optionally signed, optionally decimal number.
// Used for IN-list tokens only; full numeric filter values go through
// strconv.ParseFloat.
var numericToken = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)$`)

// CompileFilters turns predicate rows into SQL boolean conditions.
//
// Conditions come back in request order; rows with an empty value are
// skipped (filters are opt-in), and an IN row whose token list comes up
// empty is skipped too. Any malformed date, time or numeric literal aborts
// with a CodeFilterValue error naming the filter and the raw value.
func CompileFilters(cat *catalog.Catalog, filters []request.Filter) ([]string, error) {
	var conditions []string
	for _, f := range filters {
		if f.Value == "" {
			continue
		}

		spec, ok := cat.Filter(f.Name)
		if !ok {
			return nil, &Error{
				Code:    CodeFilterValue,
				Field:   f.Name,
				Message: "unknown filter",
			}
		}

		cond, err := compileFilter(spec, f)
		if err != nil {
			return nil, err
		}
		if cond != "" {
			conditions = append(conditions, cond)
		}
	}
	return conditions, nil
}

// compileFilter renders one predicate row. Returns "" (no error) when the
// row compiles to nothing, as with an empty IN list.
func compileFilter(spec catalog.FilterSpec, f request.Filter) (string, error) {
	switch {
	case spec.Kind == catalog.KindDate:
		return compileDateFilter(spec, f)
	case f.Op == "IN":
		return compileInFilter(spec, f), nil
	case spec.Kind == catalog.KindNumeric:
		if _, err := strconv.ParseFloat(f.Value, 64); err != nil {
			return "", filterValueError(f)
		}
		return fmt.Sprintf("%s %s %s", spec.SQLColumn, f.Op, f.Value), nil
	default:
		escaped := strings.ReplaceAll(f.Value, "'", "''")
		return fmt.Sprintf("%s %s '%s'", spec.SQLColumn, f.Op, escaped), nil
	}
}

// compileDateFilter renders a date predicate as an Oracle TO_DATE literal.
// The time-of-day defaults to 00:00:00, or 23:59:59 for a filter marked as
// an inclusive upper bound used with <= (so a day range covers the whole
// closing day).
func compileDateFilter(spec catalog.FilterSpec, f request.Filter) (string, error) {
	timeStr := f.Time
	if timeStr == "" {
		if spec.UpperBound && f.Op == "<=" {
			timeStr = upperBoundTimeOfDay
		} else {
			timeStr = defaultTimeOfDay
		}
	}
	if _, err := time.Parse(timeInputLayout, timeStr); err != nil {
		return "", filterValueError(f)
	}

	day, err := time.Parse(dateInputLayout, f.Value)
	if err != nil {
		return "", filterValueError(f)
	}
	oracleDate := strings.ToUpper(day.Format(dateOracleLayout))

	return fmt.Sprintf("%s %s TO_DATE('%s %s','DD-MON-YYYY HH24:MI:SS')",
		spec.SQLColumn, f.Op, oracleDate, timeStr), nil
}

// compileInFilter renders an IN predicate. The raw value is split on
// commas; numeric tokens and tokens the user already quoted pass through
// verbatim, everything else is quoted with embedded quotes doubled. An
// empty resulting list drops the condition entirely.
func compileInFilter(spec catalog.FilterSpec, f request.Filter) string {
	var items []string
	for _, tok := range strings.Split(f.Value, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		switch {
		case numericToken.MatchString(tok):
			items = append(items, tok)
		case len(tok) >= 2 && strings.HasPrefix(tok, "'") && strings.HasSuffix(tok, "'"):
			items = append(items, tok)
		default:
			items = append(items, "'"+strings.ReplaceAll(tok, "'", "''")+"'")
		}
	}
	if len(items) == 0 {
		return ""
	}
	return fmt.Sprintf("%s %s (%s)", spec.SQLColumn, f.Op, strings.Join(items, ", "))
}

func filterValueError(f request.Filter) *Error {
	return &Error{
		Code:    CodeFilterValue,
		Field:   f.Name,
		Message: fmt.Sprintf("invalid value %q", f.Value),
	}
}
