package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waferq/waferq/internal/sqlgen"
)

// ValidateResult is the success payload of the validate command.
type ValidateResult struct {
	Valid   bool   `json:"valid"`
	Columns int    `json:"columns"`
	Filters int    `json:"filters"`
	Request string `json:"request"`
}

func (r ValidateResult) String() string {
	return fmt.Sprintf("OK: %s (%d column(s), %d filter(s))", r.Request, r.Columns, r.Filters)
}

// NewValidateCommand creates the validate command. It runs the full
// assembly but reports only success or the coded failure, never the SQL.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <request.yaml>",
		Short: "Check a request file without printing SQL",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, requestPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cat, err := loadCatalog(opts)
	if err != nil {
		formatter.Error(errorCode(err), err.Error(), nil)
		return NewExitError(ExitCommandError, "catalog load failed")
	}

	req, err := readRequest(requestPath)
	if err != nil {
		return err
	}

	if _, err := sqlgen.Assemble(cat, req); err != nil {
		formatter.Error(errorCode(err), err.Error(), nil)
		return NewExitError(ExitFailure, "request invalid")
	}

	return formatter.Success(ValidateResult{
		Valid:   true,
		Columns: len(req.Columns),
		Filters: len(req.Filters),
		Request: requestPath,
	})
}
