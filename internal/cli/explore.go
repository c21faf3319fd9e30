package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/eladbash/jdx/internal/config"
	"github.com/eladbash/jdx/internal/history"
	"github.com/eladbash/jdx/internal/tui"
)

// NewExploreCommand creates the explore command.
func NewExploreCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore <file>",
		Short: "Open a JSON document in the interactive explorer",
		Long: `Open the full-screen interactive explorer. Results update on every
keystroke; Tab accepts the inline completion, Ctrl+S toggles the schema
view, Ctrl+Y copies the current result, and the document reloads
automatically when the file changes on disk.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(rootOpts, args[0])
		},
	}

	return cmd
}

func runExplore(opts *RootOptions, inputPath string) error {
	root, err := loadInput(inputPath)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	// History persistence is best effort: the explorer works without it.
	var store *history.Store
	if path, err := historyPath(); err == nil {
		if s, err := history.Open(path); err == nil {
			store = s
			defer s.Close()
		}
	}

	model := tui.New(root, inputPath, cfg, store)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return WrapExitError(ExitCommandError, "explorer failed", err)
	}
	return nil
}
