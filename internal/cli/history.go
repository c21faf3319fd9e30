package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eladbash/jdx/internal/history"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// NewHistoryCommand creates the history command and its subcommands.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage recorded query history",
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to history database (defaults to the user config dir)")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List recent queries, most recent first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(s *history.Store) error {
				entries, err := s.Recent(context.Background(), opts.Limit)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to list history", err)
				}
				return printEntries(opts, cmd, entries)
			})
		},
	}
	list.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "max entries to show")

	search := &cobra.Command{
		Use:           "search <pattern>",
		Short:         "Search history for queries containing a substring",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(s *history.Store) error {
				entries, err := s.Search(context.Background(), args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to search history", err)
				}
				return printEntries(opts, cmd, entries)
			})
		},
	}

	clear := &cobra.Command{
		Use:           "clear",
		Short:         "Delete all recorded queries",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(s *history.Store) error {
				if err := s.Clear(context.Background()); err != nil {
					return WrapExitError(ExitCommandError, "failed to clear history", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
				return nil
			})
		},
	}

	cmd.AddCommand(list, search, clear)
	return cmd
}

// withStore opens the history database, runs fn, and closes it.
func withStore(opts *HistoryOptions, fn func(*history.Store) error) error {
	path := opts.Database
	if path == "" {
		var err error
		path, err = historyPath()
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to locate history database", err)
		}
	}

	s, err := history.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history database", err)
	}
	defer s.Close()

	return fn(s)
}

func printEntries(opts *HistoryOptions, cmd *cobra.Command, entries []history.Entry) error {
	out := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	if out.Format == "json" {
		type jsonEntry struct {
			Query     string `json:"query"`
			CreatedAt string `json:"created_at"`
		}
		payload := make([]jsonEntry, len(entries))
		for i, e := range entries {
			payload[i] = jsonEntry{Query: e.Query, CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00")}
		}
		return out.Success(payload)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out.Writer, "(no history)")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintln(out.Writer, e.Query)
	}
	return nil
}
