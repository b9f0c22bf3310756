package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

// Error code constants for catalog loading.
const (
	ErrCodeNotFound    = "E101" // Path not found / not a directory
	ErrCodeNoFiles     = "E102" // No CUE files found
	ErrCodeLoadFailed  = "E103" // CUE load failed
	ErrCodeBuildFailed = "E104" // CUE build failed
	ErrCodeBadColumn   = "E105" // Invalid column definition
	ErrCodeBadFilter   = "E106" // Invalid filter definition
	ErrCodeEmpty       = "E107" // No columns or filters defined
)

// LoadError represents an error that occurred while loading a catalog
// definition directory.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load builds a catalog from a directory of CUE files.
//
// The directory is loaded as a single CUE instance. Columns live under a
// top-level "column" struct and filters under "filter", keyed by display
// name:
//
//	column: "Lot": {sql: "v.lot", group: "v.lot", default: true}
//	filter: "Lot (v.lot)": {column: "v.lot", kind: "text", default_op: "="}
//
// Field order in the CUE source is preserved as catalog order.
func Load(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalog directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing catalog directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	var columns []ColumnSpec
	columnsVal := value.LookupPath(cue.ParsePath("column"))
	if columnsVal.Exists() {
		iter, iterErr := columnsVal.Fields()
		if iterErr != nil {
			return nil, &LoadError{Code: ErrCodeBadColumn, Message: fmt.Sprintf("iterating columns: %v", iterErr)}
		}
		for iter.Next() {
			spec, parseErr := parseColumn(iter.Label(), iter.Value())
			if parseErr != nil {
				return nil, parseErr
			}
			columns = append(columns, spec)
		}
	}

	var filters []FilterSpec
	filtersVal := value.LookupPath(cue.ParsePath("filter"))
	if filtersVal.Exists() {
		iter, iterErr := filtersVal.Fields()
		if iterErr != nil {
			return nil, &LoadError{Code: ErrCodeBadFilter, Message: fmt.Sprintf("iterating filters: %v", iterErr)}
		}
		for iter.Next() {
			spec, parseErr := parseFilter(iter.Label(), iter.Value())
			if parseErr != nil {
				return nil, parseErr
			}
			filters = append(filters, spec)
		}
	}

	if len(columns) == 0 && len(filters) == 0 {
		return nil, &LoadError{Code: ErrCodeEmpty, Message: "no columns or filters found in catalog definitions"}
	}

	return New(columns, filters), nil
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// parseColumn parses one column struct into a ColumnSpec.
func parseColumn(name string, v cue.Value) (ColumnSpec, *LoadError) {
	spec := ColumnSpec{Name: name}

	var err *LoadError
	if spec.SQL, err = stringField(v, "sql", ErrCodeBadColumn); err != nil {
		return spec, err
	}
	if spec.Template, err = stringField(v, "template", ErrCodeBadColumn); err != nil {
		return spec, err
	}
	if spec.Alias, err = stringField(v, "alias", ErrCodeBadColumn); err != nil {
		return spec, err
	}
	if spec.GroupKey, err = stringField(v, "group", ErrCodeBadColumn); err != nil {
		return spec, err
	}
	if spec.Aggregate, err = boolField(v, "aggregate"); err != nil {
		return spec, err
	}
	if spec.Default, err = boolField(v, "default"); err != nil {
		return spec, err
	}

	if spec.SQL == "" && spec.Template == "" {
		return spec, &LoadError{
			Code:    ErrCodeBadColumn,
			Message: fmt.Sprintf("column %q: sql or template is required", name),
			Pos:     v.Pos(),
		}
	}
	if !spec.Aggregate && spec.SQL == "" {
		return spec, &LoadError{
			Code:    ErrCodeBadColumn,
			Message: fmt.Sprintf("column %q: scalar columns require sql", name),
			Pos:     v.Pos(),
		}
	}
	if spec.Aggregate && spec.GroupKey != "" {
		return spec, &LoadError{
			Code:    ErrCodeBadColumn,
			Message: fmt.Sprintf("column %q: aggregate columns cannot have a group key", name),
			Pos:     v.Pos(),
		}
	}
	return spec, nil
}

// parseFilter parses one filter struct into a FilterSpec.
func parseFilter(name string, v cue.Value) (FilterSpec, *LoadError) {
	spec := FilterSpec{Name: name}

	var err *LoadError
	if spec.SQLColumn, err = stringField(v, "column", ErrCodeBadFilter); err != nil {
		return spec, err
	}
	if spec.SQLColumn == "" {
		return spec, &LoadError{
			Code:    ErrCodeBadFilter,
			Message: fmt.Sprintf("filter %q: column is required", name),
			Pos:     v.Pos(),
		}
	}

	kind, err := stringField(v, "kind", ErrCodeBadFilter)
	if err != nil {
		return spec, err
	}
	switch Kind(kind) {
	case KindText, "":
		spec.Kind = KindText
	case KindNumeric, KindDate:
		spec.Kind = Kind(kind)
	default:
		return spec, &LoadError{
			Code:    ErrCodeBadFilter,
			Message: fmt.Sprintf("filter %q: unknown kind %q (want text, numeric or date)", name, kind),
			Pos:     v.Pos(),
		}
	}

	if spec.DefaultOp, err = stringField(v, "default_op", ErrCodeBadFilter); err != nil {
		return spec, err
	}
	if spec.DefaultValue, err = stringField(v, "default_value", ErrCodeBadFilter); err != nil {
		return spec, err
	}
	if spec.Hint, err = stringField(v, "hint", ErrCodeBadFilter); err != nil {
		return spec, err
	}
	if spec.UpperBound, err = boolField(v, "upper_bound"); err != nil {
		return spec, err
	}

	opsVal := v.LookupPath(cue.ParsePath("operators"))
	if opsVal.Exists() {
		list, listErr := opsVal.List()
		if listErr != nil {
			return spec, &LoadError{
				Code:    ErrCodeBadFilter,
				Message: fmt.Sprintf("filter %q: operators must be a list: %v", name, listErr),
				Pos:     opsVal.Pos(),
			}
		}
		for list.Next() {
			op, opErr := list.Value().String()
			if opErr != nil {
				return spec, &LoadError{
					Code:    ErrCodeBadFilter,
					Message: fmt.Sprintf("filter %q: operator must be a string: %v", name, opErr),
					Pos:     list.Value().Pos(),
				}
			}
			spec.Operators = append(spec.Operators, op)
		}
	}
	if len(spec.Operators) == 0 {
		spec.Operators = defaultOperators(spec.Kind)
	}
	return spec, nil
}

// defaultOperators returns the operator vocabulary for a value domain.
func defaultOperators(kind Kind) []string {
	switch kind {
	case KindNumeric:
		return NumericOperators
	case KindDate:
		return DateOperators
	default:
		return TextOperators
	}
}

// stringField reads an optional string field, returning "" when absent.
func stringField(v cue.Value, field, code string) (string, *LoadError) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", &LoadError{
			Code:    code,
			Message: fmt.Sprintf("field %q must be a string: %v", field, err),
			Pos:     fv.Pos(),
		}
	}
	return s, nil
}

// boolField reads an optional bool field, returning false when absent.
func boolField(v cue.Value, field string) (bool, *LoadError) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return false, nil
	}
	b, err := fv.Bool()
	if err != nil {
		return false, &LoadError{
			Code:    ErrCodeBadColumn,
			Message: fmt.Sprintf("field %q must be a bool: %v", field, err),
			Pos:     fv.Pos(),
		}
	}
	return b, nil
}
