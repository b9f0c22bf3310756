// Package catalog defines the column and filter descriptors a query is
// assembled from.
//
// A Catalog is an immutable value: it is loaded once (either the built-in
// default or a CUE definition directory) and passed explicitly into the
// assembler on every call. Nothing in this package mutates a catalog after
// construction, so a single catalog may be shared by concurrent assemblies.
package catalog

// Kind is the value domain of a filter.
type Kind string

const (
	KindText    Kind = "text"
	KindNumeric Kind = "numeric"
	KindDate    Kind = "date"
)

// Operator vocabularies per value domain. The UI/request layer picks from
// these; the assembler tolerates any operator string and fails safely on
// semantically invalid combinations.
var (
	TextOperators    = []string{"=", "LIKE", "IN", "!="}
	NumericOperators = []string{"=", "!=", ">", "<", ">=", "<="}
	DateOperators    = []string{">=", "<=", "=", ">", "<"}
)

// Template placeholders substituted by the column resolver.
//
// {good_bins} expands to the comma-joined good-bin list (or NULL when the
// list is empty). The column-role placeholders expand to fixed physical
// column references of the probe schema.
const (
	PlaceholderGoodBins = "{good_bins}"
	PlaceholderBinCol   = "{bin_col}"
	PlaceholderTotalCol = "{total_col}"
	PlaceholderWaferCol = "{wafer_id_col}"
)

// ColumnSpec describes one selectable output column.
//
// Scalar columns carry a direct SQL expression and a grouping key; aggregate
// columns carry either a direct expression or a parameterized template
// (Template wins when both are set). An aggregate column never has a
// grouping key.
type ColumnSpec struct {
	// Name is the display name and catalog key.
	Name string

	// SQL is the direct SELECT expression.
	SQL string

	// Template is a parameterized aggregate expression. May reference the
	// Placeholder* constants.
	Template string

	// Alias is the optional AS label. Only aliased expressions are
	// referenceable by later derived aggregates.
	Alias string

	// Aggregate marks columns whose expression uses a SQL aggregate
	// function.
	Aggregate bool

	// GroupKey is the GROUP BY contribution of a scalar column. Defaults
	// to SQL when empty. Ignored for aggregate columns.
	GroupKey string

	// Default marks columns selected by default in a fresh request.
	Default bool
}

// FilterSpec describes one available WHERE predicate.
type FilterSpec struct {
	// Name is the display name and catalog key.
	Name string

	// SQLColumn is the physical column the predicate targets.
	SQLColumn string

	// Kind is the value domain (text, numeric, date).
	Kind Kind

	// Operators lists the comparison operators offered for this filter.
	Operators []string

	// DefaultOp and DefaultValue seed a fresh filter row.
	DefaultOp    string
	DefaultValue string

	// Hint is a free-form usage hint for the request author.
	Hint string

	// UpperBound marks date filters that close an inclusive range. When
	// combined with a <= operator the filter's default time-of-day is
	// 23:59:59 instead of 00:00:00. This is an explicit flag rather than
	// a display-name convention so new catalog entries cannot get it
	// wrong silently.
	UpperBound bool
}

// Catalog is an ordered, immutable set of column and filter descriptors.
type Catalog struct {
	columnOrder []string
	columns     map[string]ColumnSpec
	filterOrder []string
	filters     map[string]FilterSpec
}

// New builds a catalog from ordered descriptor slices. Later duplicates of
// a name replace earlier ones but keep the original position.
func New(columns []ColumnSpec, filters []FilterSpec) *Catalog {
	c := &Catalog{
		columns: make(map[string]ColumnSpec, len(columns)),
		filters: make(map[string]FilterSpec, len(filters)),
	}
	for _, col := range columns {
		if _, seen := c.columns[col.Name]; !seen {
			c.columnOrder = append(c.columnOrder, col.Name)
		}
		c.columns[col.Name] = col
	}
	for _, f := range filters {
		if _, seen := c.filters[f.Name]; !seen {
			c.filterOrder = append(c.filterOrder, f.Name)
		}
		c.filters[f.Name] = f
	}
	return c
}

// Column looks up a column descriptor by display name.
func (c *Catalog) Column(name string) (ColumnSpec, bool) {
	spec, ok := c.columns[name]
	return spec, ok
}

// Filter looks up a filter descriptor by display name.
func (c *Catalog) Filter(name string) (FilterSpec, bool) {
	spec, ok := c.filters[name]
	return spec, ok
}

// ColumnNames returns the column display names in catalog order.
func (c *Catalog) ColumnNames() []string {
	names := make([]string, len(c.columnOrder))
	copy(names, c.columnOrder)
	return names
}

// FilterNames returns the filter display names in catalog order.
func (c *Catalog) FilterNames() []string {
	names := make([]string, len(c.filterOrder))
	copy(names, c.filterOrder)
	return names
}

// DefaultColumns returns the names of columns marked default-selected, in
// catalog order.
func (c *Catalog) DefaultColumns() []string {
	var names []string
	for _, name := range c.columnOrder {
		if c.columns[name].Default {
			names = append(names, name)
		}
	}
	return names
}

// GroupKeyFor returns the GROUP BY key of a scalar column, falling back to
// its SQL expression when no explicit key is set.
func (s ColumnSpec) GroupKeyFor() string {
	if s.GroupKey != "" {
		return s.GroupKey
	}
	return s.SQL
}
