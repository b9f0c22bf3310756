package cli

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/waferq/waferq/internal/catalog"
	"github.com/waferq/waferq/internal/request"
	"github.com/waferq/waferq/internal/sqlgen"
)

// Error codes for request loading, alongside the catalog loader's E1xx and
// the assembler's semantic codes.
const (
	ErrCodeRequestRead  = "E201" // Request file unreadable
	ErrCodeRequestParse = "E202" // Request file not valid YAML
	ErrCodeGoodBins     = "GOOD_BINS"
	ErrCodeGeneric      = "E001"
)

// loadCatalog returns the active catalog: the CUE definition directory when
// --catalog was given, otherwise the built-in default.
func loadCatalog(opts *RootOptions) (*catalog.Catalog, error) {
	if opts.Catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(opts.Catalog)
}

// readRequest decodes a YAML request file.
func readRequest(path string) (request.Request, error) {
	var req request.Request

	data, err := os.ReadFile(path)
	if err != nil {
		return req, WrapExitError(ExitCommandError, fmt.Sprintf("reading request file %s", path), err)
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, WrapExitError(ExitCommandError, fmt.Sprintf("parsing request file %s", path), err)
	}
	return req, nil
}

// errorCode maps an assembly or load error to its output code.
func errorCode(err error) string {
	var asmErr *sqlgen.Error
	if errors.As(err, &asmErr) {
		return string(asmErr.Code)
	}
	var gbErr *request.GoodBinsError
	if errors.As(err, &gbErr) {
		return ErrCodeGoodBins
	}
	var loadErr *catalog.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	return ErrCodeGeneric
}
