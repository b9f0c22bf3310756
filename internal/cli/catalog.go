package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// ColumnInfo is one row of the columns listing.
type ColumnInfo struct {
	Name      string `json:"name"`
	SQL       string `json:"sql,omitempty"`
	Template  string `json:"template,omitempty"`
	Alias     string `json:"alias,omitempty"`
	Aggregate bool   `json:"aggregate"`
	Default   bool   `json:"default"`
}

// FilterInfo is one row of the filters listing.
type FilterInfo struct {
	Name      string   `json:"name"`
	SQLColumn string   `json:"sql_column"`
	Kind      string   `json:"kind"`
	Operators []string `json:"operators"`
	DefaultOp string   `json:"default_op"`
	Hint      string   `json:"hint,omitempty"`
}

// NewColumnsCommand creates the columns command: list the active catalog's
// selectable output columns.
func NewColumnsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "columns",
		Short:         "List catalog output columns",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(rootOpts, cmd)
		},
	}
}

// NewFiltersCommand creates the filters command: list the active catalog's
// filter predicates.
func NewFiltersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "filters",
		Short:         "List catalog filter predicates",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilters(rootOpts, cmd)
		},
	}
}

func runColumns(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	cat, err := loadCatalog(opts)
	if err != nil {
		formatter.Error(errorCode(err), err.Error(), nil)
		return NewExitError(ExitCommandError, "catalog load failed")
	}

	var infos []ColumnInfo
	for _, name := range cat.ColumnNames() {
		spec, _ := cat.Column(name)
		infos = append(infos, ColumnInfo{
			Name:      spec.Name,
			SQL:       spec.SQL,
			Template:  spec.Template,
			Alias:     spec.Alias,
			Aggregate: spec.Aggregate,
			Default:   spec.Default,
		})
	}

	if opts.Format == "json" {
		return formatter.Success(infos)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tEXPRESSION\tALIAS\tDEFAULT")
	for _, info := range infos {
		kind := "scalar"
		if info.Aggregate {
			kind = "aggregate"
		}
		expr := info.SQL
		if info.Template != "" {
			expr = info.Template
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n", info.Name, kind, expr, info.Alias, info.Default)
	}
	return w.Flush()
}

func runFilters(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	cat, err := loadCatalog(opts)
	if err != nil {
		formatter.Error(errorCode(err), err.Error(), nil)
		return NewExitError(ExitCommandError, "catalog load failed")
	}

	var infos []FilterInfo
	for _, name := range cat.FilterNames() {
		spec, _ := cat.Filter(name)
		infos = append(infos, FilterInfo{
			Name:      spec.Name,
			SQLColumn: spec.SQLColumn,
			Kind:      string(spec.Kind),
			Operators: spec.Operators,
			DefaultOp: spec.DefaultOp,
			Hint:      spec.Hint,
		})
	}

	if opts.Format == "json" {
		return formatter.Success(infos)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOLUMN\tKIND\tOPERATORS\tDEFAULT OP")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", info.Name, info.SQLColumn, info.Kind, strings.Join(info.Operators, " "), info.DefaultOp)
	}
	return w.Flush()
}
