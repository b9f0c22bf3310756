// Package request defines the structured description of one query the user
// wants assembled: selected columns, filter rows, bin aggregates, derived
// aggregates and ordering.
//
// A Request is constructed fresh per generate action (decoded from a YAML
// request file or JSON history record), consumed once by the assembler and
// never mutated by it.
package request

// Request is the full set of user selections for one assembly.
type Request struct {
	// Columns lists selected catalog column names, in request order.
	Columns []string `yaml:"columns" json:"columns"`

	// Filters lists predicate rows, in request order.
	Filters []Filter `yaml:"filters,omitempty" json:"filters,omitempty"`

	// CustomBins lists explicit per-bin aggregate rows, in request order.
	CustomBins []CustomBin `yaml:"custom_bins,omitempty" json:"custom_bins,omitempty"`

	// AutoRange, when set, expands to per-bin aggregates over an
	// inclusive integer range.
	AutoRange *AutoRange `yaml:"auto_range,omitempty" json:"auto_range,omitempty"`

	// Aggregates lists derived-aggregate rows, in request order.
	Aggregates []Aggregate `yaml:"aggregates,omitempty" json:"aggregates,omitempty"`

	// OrderBy lists ordering pairs, in request order. No implicit sort is
	// added when empty.
	OrderBy []Order `yaml:"order_by,omitempty" json:"order_by,omitempty"`

	// Distinct requests a DISTINCT projection. Ignored when any
	// aggregate is present, since GROUP BY already deduplicates at the
	// grouping granularity.
	Distinct bool `yaml:"distinct,omitempty" json:"distinct,omitempty"`

	// GoodBins is the comma-separated list of bin numbers counted as
	// yield, e.g. "1,2".
	GoodBins string `yaml:"good_bins,omitempty" json:"good_bins,omitempty"`
}

// Filter is one predicate row referencing a catalog filter by name.
type Filter struct {
	Name  string `yaml:"name" json:"name"`
	Op    string `yaml:"op" json:"op"`
	Value string `yaml:"value" json:"value"`

	// Time is the optional time-of-day for date filters, "HH:MM:SS".
	// When empty the filter's bound kind picks the default.
	Time string `yaml:"time,omitempty" json:"time,omitempty"`
}

// CustomBin is one explicit bin-aggregate row. Bin is kept as a string
// because rows originate from free-form input and may be transiently
// invalid; rows that do not parse as integers are dropped, not rejected.
type CustomBin struct {
	Bin     string `yaml:"bin" json:"bin"`
	Count   bool   `yaml:"count,omitempty" json:"count,omitempty"`
	Percent bool   `yaml:"percent,omitempty" json:"percent,omitempty"`
}

// AutoRange expands to one or two aggregate expressions per bin number in
// [Start, End].
type AutoRange struct {
	Start   int  `yaml:"start" json:"start"`
	End     int  `yaml:"end" json:"end"`
	Count   bool `yaml:"count,omitempty" json:"count,omitempty"`
	Percent bool `yaml:"percent,omitempty" json:"percent,omitempty"`
}

// Aggregate is one derived-aggregate row: a SQL aggregate function applied
// to a raw column or to the alias of a previously produced expression.
type Aggregate struct {
	Func   string `yaml:"func" json:"func"`
	Target string `yaml:"target" json:"target"`
	Alias  string `yaml:"alias,omitempty" json:"alias,omitempty"`
}

// Order is one ORDER BY pair.
type Order struct {
	Column    string `yaml:"column" json:"column"`
	Direction string `yaml:"direction" json:"direction"`
}
