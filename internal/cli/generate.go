package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/waferq/waferq/internal/history"
	"github.com/waferq/waferq/internal/request"
	"github.com/waferq/waferq/internal/sqlgen"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Output      string // output file path for the SQL text
	ShowPreview bool
	HistoryDB   string // append the result to this history database
}

// GenerateResult is the success payload of the generate command.
type GenerateResult struct {
	SQL     string `json:"sql"`
	Preview string `json:"preview,omitempty"`
	Saved   bool   `json:"saved,omitempty"` // true when a new history row was written
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <request.yaml>",
		Short: "Assemble SQL from a request file",
		Long: `Assemble the SQL statement and preview described by a YAML request file.

The request selects catalog columns, filter predicates, bin aggregates,
derived aggregates and ordering; the assembled statement is printed to
stdout or written with --output.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the SQL text to this file")
	cmd.Flags().BoolVar(&opts.ShowPreview, "preview", false, "also print the plain-language preview")
	cmd.Flags().StringVar(&opts.HistoryDB, "history", "", "append the generated query to this history database")

	return cmd
}

func runGenerate(opts *GenerateOptions, requestPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cat, err := loadCatalog(opts.RootOptions)
	if err != nil {
		formatter.Error(errorCode(err), err.Error(), nil)
		return NewExitError(ExitCommandError, "catalog load failed")
	}

	req, err := readRequest(requestPath)
	if err != nil {
		return err
	}
	formatter.VerboseLog("Loaded request %s: %d column(s), %d filter(s)", requestPath, len(req.Columns), len(req.Filters))

	result, err := sqlgen.Assemble(cat, req)
	if err != nil {
		formatter.Error(errorCode(err), err.Error(), nil)
		return NewExitError(ExitFailure, "assembly failed")
	}

	saved := false
	if opts.HistoryDB != "" {
		saved, err = appendHistory(cmd, opts.HistoryDB, req, result)
		if err != nil {
			return WrapExitError(ExitCommandError, "recording history", err)
		}
		if saved {
			formatter.VerboseLog("Recorded in history %s", opts.HistoryDB)
		} else {
			formatter.VerboseLog("Identical request already in history %s", opts.HistoryDB)
		}
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(result.SQL+"\n"), 0o644); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("writing output file %s", opts.Output), err)
		}
		formatter.VerboseLog("Wrote SQL to %s", opts.Output)
	}

	if opts.Format == "json" {
		payload := GenerateResult{SQL: result.SQL, Saved: saved}
		if opts.ShowPreview {
			payload.Preview = result.Preview
		}
		return formatter.Success(payload)
	}

	out := cmd.OutOrStdout()
	if opts.Output == "" {
		fmt.Fprintln(out, result.SQL)
	}
	if opts.ShowPreview {
		fmt.Fprintln(out)
		fmt.Fprintln(out, result.Preview)
	}
	return nil
}

func appendHistory(cmd *cobra.Command, path string, req request.Request, result sqlgen.Result) (bool, error) {
	store, err := history.Open(path)
	if err != nil {
		return false, err
	}
	defer store.Close()

	entry, err := history.NewEntry(req, result.SQL, result.Preview)
	if err != nil {
		return false, err
	}
	return store.Append(cmd.Context(), entry)
}
