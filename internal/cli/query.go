package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eladbash/jdx/internal/eval"
	"github.com/eladbash/jdx/internal/jsonval"
	"github.com/eladbash/jdx/internal/query"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Compact bool
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <file|-> <expression>",
		Short: "Evaluate a query expression against a JSON document",
		Long: `Evaluate a dot-notation query expression, optionally followed by a
transform chain, and print the result.

The expression grammar:
  .key            object field access
  [0] [-1]        array index (negative counts from the end)
  [1:3] [:2]      array slice
  [*]             wildcard (all values)
  [price < 10]    filter predicate
  :cmd args       transform commands, chained with spaces

Examples:
  jdx query data.json '.users[0].name'
  jdx query data.json '.users :filter age > 30 :sort name'
  cat data.json | jdx query - '.items[*] :pick name,price'`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, cmd, args[0], args[1])
		},
	}

	cmd.Flags().BoolVarP(&opts.Compact, "compact", "c", false, "compact single-line output")

	return cmd
}

func runQuery(opts *QueryOptions, cmd *cobra.Command, inputPath, expr string) error {
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

	result, err := eval.Run(root, expr)
	if err != nil {
		_ = out.Error("bad_expression", err.Error(), nil)
		return WrapExitError(ExitFailure, "query failed", err)
	}

	if result.Value == nil {
		msg := fmt.Sprintf("no value at %s", expr)
		if keys := query.AvailableKeys(result.Parent); len(keys) > 0 {
			msg += fmt.Sprintf(" (available: %s)", strings.Join(keys, ", "))
		}
		_ = out.Error("no_match", msg, nil)
		return NewExitError(ExitFailure, "no match")
	}

	return printValue(out, result.Value, opts.Compact)
}

// printValue renders a result value: raw JSON inside the envelope for json
// format, pretty (or compact) JSON for text format.
func printValue(out *OutputFormatter, v jsonval.Value, compact bool) error {
	if out.Format == "json" {
		return out.Success(json.RawMessage(jsonval.Encode(v)))
	}
	if compact {
		fmt.Fprintln(out.Writer, jsonval.Encode(v))
		return nil
	}
	fmt.Fprintln(out.Writer, jsonval.EncodeIndent(v))
	return nil
}
