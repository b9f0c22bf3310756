package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/waferq/waferq/internal/history"
)

// HistoryOptions holds flags shared by the history subcommands.
type HistoryOptions struct {
	*RootOptions
	DB    string
	Limit int
}

// EntryInfo is one row of the history listing.
type EntryInfo struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Favorite  bool   `json:"favorite"`
	Label     string `json:"label,omitempty"`
	Preview   string `json:"preview"`
}

// NewHistoryCommand creates the history command group.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the query history database",
	}
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "waferq-history.db", "history database path")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List recent queries",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(opts, cmd, false)
		},
	}
	list.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum entries to list")

	favorites := &cobra.Command{
		Use:           "favorites",
		Short:         "List saved queries",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(opts, cmd, true)
		},
	}

	show := &cobra.Command{
		Use:           "show <id>",
		Short:         "Print one entry's SQL",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(opts, cmd, args[0])
		},
	}

	save := &cobra.Command{
		Use:           "save <id> [label]",
		Short:         "Mark an entry as a saved query",
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			label := ""
			if len(args) == 2 {
				label = args[1]
			}
			return runHistorySave(opts, cmd, args[0], label)
		},
	}

	export := &cobra.Command{
		Use:           "export",
		Short:         "Write the history as JSON to stdout",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryExport(opts, cmd)
		},
	}

	cmd.AddCommand(list, favorites, show, save, export)
	return cmd
}

func openStore(opts *HistoryOptions) (*history.Store, error) {
	store, err := history.Open(opts.DB)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("opening history database %s", opts.DB), err)
	}
	return store, nil
}

func runHistoryList(opts *HistoryOptions, cmd *cobra.Command, favoritesOnly bool) error {
	store, err := openStore(opts)
	if err != nil {
		return err
	}
	defer store.Close()

	var entries []history.Entry
	if favoritesOnly {
		entries, err = store.Favorites(cmd.Context())
	} else {
		entries, err = store.Recent(cmd.Context(), opts.Limit)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "reading history", err)
	}

	infos := make([]EntryInfo, 0, len(entries))
	for _, e := range entries {
		infos = append(infos, EntryInfo{
			ID:        e.ID,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
			Favorite:  e.Favorite,
			Label:     e.Label,
			Preview:   e.Preview,
		})
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(infos)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tFAV\tLABEL")
	for _, info := range infos {
		fav := ""
		if info.Favorite {
			fav = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.ID, info.CreatedAt, fav, info.Label)
	}
	return w.Flush()
}

func runHistoryShow(opts *HistoryOptions, cmd *cobra.Command, id string) error {
	store, err := openStore(opts)
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Get(cmd.Context(), id)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading history", err)
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(entry)
	}
	fmt.Fprintln(cmd.OutOrStdout(), entry.SQL)
	return nil
}

func runHistorySave(opts *HistoryOptions, cmd *cobra.Command, id, label string) error {
	store, err := openStore(opts)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SetFavorite(cmd.Context(), id, true, label); err != nil {
		return WrapExitError(ExitCommandError, "saving entry", err)
	}
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success(fmt.Sprintf("saved %s", id))
}

func runHistoryExport(opts *HistoryOptions, cmd *cobra.Command) error {
	store, err := openStore(opts)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ExportJSON(cmd.Context(), cmd.OutOrStdout()); err != nil {
		return WrapExitError(ExitCommandError, "exporting history", err)
	}
	return nil
}
