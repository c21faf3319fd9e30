package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eladbash/jdx/internal/config"
	"github.com/eladbash/jdx/internal/eval"
	"github.com/eladbash/jdx/internal/schema"
)

// SchemaOptions holds flags for the schema command.
type SchemaOptions struct {
	*RootOptions
	MaxSamples int
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SchemaOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "schema <file|-> [expression]",
		Short: "Infer and print the shape of a JSON document",
		Long: `Infer the schema of a document, or of the value a query expression
resolves to. Field types, numeric ranges, string samples, array length
ranges, and optional fields are reported.

Examples:
  jdx schema data.json
  jdx schema data.json '.users'
  jdx schema data.json --samples 50`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := ""
			if len(args) == 2 {
				expr = args[1]
			}
			return runSchema(opts, cmd, args[0], expr)
		},
	}

	cmd.Flags().IntVar(&opts.MaxSamples, "samples", 0,
		"max array elements sampled per array (0 uses the configured default)")

	return cmd
}

func runSchema(opts *SchemaOptions, cmd *cobra.Command, inputPath, expr string) error {
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

	maxSamples := opts.MaxSamples
	if maxSamples <= 0 {
		cfg, err := config.Load()
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
		maxSamples = cfg.Display.SchemaMaxSamples
	}

	rendered := schema.Format(schema.Infer(target, maxSamples), 0)
	return out.Success(rendered)
}
