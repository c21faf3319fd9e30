package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eladbash/jdx/internal/history"
)

// BookmarkOptions holds flags for the bookmark command.
type BookmarkOptions struct {
	*RootOptions
	Database string
}

// NewBookmarkCommand creates the bookmark command and its subcommands.
func NewBookmarkCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BookmarkOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bookmark",
		Short: "Manage named saved queries",
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to history database (defaults to the user config dir)")

	add := &cobra.Command{
		Use:           "add <label> <expression>",
		Short:         "Save a query under a label (replaces an existing label)",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBookmarkStore(opts, func(s *history.Store) error {
				if err := s.AddBookmark(context.Background(), args[0], args[1]); err != nil {
					return WrapExitError(ExitCommandError, "failed to add bookmark", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", args[0])
				return nil
			})
		},
	}

	list := &cobra.Command{
		Use:           "list",
		Short:         "List saved bookmarks",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBookmarkStore(opts, func(s *history.Store) error {
				bookmarks, err := s.Bookmarks(context.Background())
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to list bookmarks", err)
				}
				return printBookmarks(opts, cmd, bookmarks)
			})
		},
	}

	rm := &cobra.Command{
		Use:           "rm <label>",
		Short:         "Delete a bookmark",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBookmarkStore(opts, func(s *history.Store) error {
				err := s.RemoveBookmark(context.Background(), args[0])
				if errors.Is(err, history.ErrBookmarkNotFound) {
					return WrapExitError(ExitFailure, "bookmark not found", err)
				}
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to remove bookmark", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(add, list, rm)
	return cmd
}

func withBookmarkStore(opts *BookmarkOptions, fn func(*history.Store) error) error {
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

func printBookmarks(opts *BookmarkOptions, cmd *cobra.Command, bookmarks []history.Bookmark) error {
	out := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	if out.Format == "json" {
		type jsonBookmark struct {
			Label string `json:"label"`
			Query string `json:"query"`
		}
		payload := make([]jsonBookmark, len(bookmarks))
		for i, b := range bookmarks {
			payload[i] = jsonBookmark{Label: b.Label, Query: b.Query}
		}
		return out.Success(payload)
	}

	if len(bookmarks) == 0 {
		fmt.Fprintln(out.Writer, "(no bookmarks)")
		return nil
	}
	for _, b := range bookmarks {
		fmt.Fprintf(out.Writer, "%s\t%s\n", b.Label, b.Query)
	}
	return nil
}
