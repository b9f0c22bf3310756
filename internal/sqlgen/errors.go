package sqlgen

import (
	"errors"
	"fmt"
)

// Code categorizes assembly errors. All codes except CodeBadTemplate are
// user-input validation failures; CodeBadTemplate indicates a broken catalog
// definition and is a configuration bug, not something the user can correct
// by editing the request.
type Code string

const (
	// CodeFilterValue indicates a malformed date, time or numeric literal
	// in a filter value.
	CodeFilterValue Code = "FILTER_VALUE"

	// CodeNoSelection indicates the request produced zero SELECT
	// expressions.
	CodeNoSelection Code = "NO_SELECTION"

	// CodeBinRange indicates invalid auto-range settings (start > end).
	CodeBinRange Code = "BIN_RANGE"

	// CodeAggregateTarget indicates a derived aggregate whose target
	// resolves to an expression that is itself an aggregate or a ratio.
	CodeAggregateTarget Code = "AGGREGATE_TARGET"

	// CodeBadTemplate indicates an aggregate catalog entry with no usable
	// expression template.
	CodeBadTemplate Code = "BAD_TEMPLATE"
)

// Error is an assembly failure. Any stage failure aborts the whole assembly;
// partial SQL is never returned alongside an Error.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Field names the offending filter, column or settings group.
	Field string

	// Message is a human-readable description including the offending
	// raw value where one exists.
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCode reports whether err is (or wraps) an assembly Error with the given
// code.
func IsCode(err error, code Code) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
