package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eladbash/jdx/internal/eval"
	"github.com/eladbash/jdx/internal/query"
)

// NewKeysCommand creates the keys command.
func NewKeysCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys <file|-> [expression]",
		Short: "List the keys available at a query path",
		Long: `List what can be typed next at a path: sorted field names for an
object, index placeholders for an array.

Examples:
  jdx keys data.json
  jdx keys data.json '.users[0]'`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := ""
			if len(args) == 2 {
				expr = args[1]
			}
			return runKeys(rootOpts, cmd, args[0], expr)
		},
	}

	return cmd
}

func runKeys(opts *RootOptions, cmd *cobra.Command, inputPath, expr string) error {
	root, err := loadInput(inputPath)
	if err != nil {
		return err
	}

	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	target := root
	if expr != "" {
		result, err := eval.Run(root, expr)
		if err != nil {
			_ = out.Error("bad_expression", err.Error(), nil)
			return WrapExitError(ExitFailure, "query failed", err)
		}
		if result.Value == nil {
			_ = out.Error("no_match", fmt.Sprintf("no value at %s", expr), nil)
			return NewExitError(ExitFailure, "no match")
		}
		target = result.Value
	}

	keys := query.AvailableKeys(target)

	if out.Format == "json" {
		return out.Success(keys)
	}
	if len(keys) == 0 {
		fmt.Fprintln(out.Writer, "(no keys: scalar value)")
		return nil
	}
	fmt.Fprintln(out.Writer, strings.Join(keys, "\n"))
	return nil
}
