package request

import (
	"fmt"
	"strconv"
	"strings"
)

// GoodBinsError reports a malformed good-bins specification. Unlike custom
// bin rows (which are dropped when invalid), the good-bins list is validated
// strictly: a typo here would silently change every yield figure.
type GoodBinsError struct {
	Raw string
}

func (e *GoodBinsError) Error() string {
	return fmt.Sprintf("invalid good bins list %q: must be comma-separated integers", e.Raw)
}

// ParseGoodBins splits a comma-separated good-bins specification into
// normalized integer literals. Empty input (or input that is all
// whitespace/commas) yields an empty list, not an error.
func ParseGoodBins(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var bins []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, &GoodBinsError{Raw: raw}
		}
		bins = append(bins, strconv.Itoa(n))
	}
	return bins, nil
}
