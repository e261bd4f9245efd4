package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowter/pkg/errors"
	"github.com/matzehuels/flowter/pkg/pipeline"
)

// exportCommand creates the export command for DOT and Mermaid output.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
		validate bool
		flags    pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "export [chart.yaml]",
		Short: "Export flowchart topology as Graphviz DOT or Mermaid",
		Long: `Export flowchart topology as Graphviz DOT or Mermaid.

Rows become ranks and edges keep their labels, so the chart can be pasted
into Markdown (Mermaid) or post-processed with Graphviz tooling (DOT).
Output goes to stdout unless --output is given.

With --validate the DOT output is parsed by an embedded Graphviz before it
is written.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: documentArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != pipeline.FormatDOT && format != pipeline.FormatMermaid {
				return errors.New(errors.ErrCodeInvalidFormat, "export format must be dot or mermaid, got %q", format)
			}
			opts := c.options(cmd, &flags, args[0])
			opts.Formats = []string{format}
			opts.Detailed = detailed
			opts.ValidateDOT = validate
			return c.runExport(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatMermaid, "export format: mermaid, dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include row and size details in node labels")
	cmd.Flags().BoolVar(&validate, "validate", false, "check DOT output with Graphviz")
	flags.registerLayout(cmd)
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{pipeline.FormatMermaid, pipeline.FormatDOT}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runExport lays out the document and writes the textual export.
func (c *CLI) runExport(ctx context.Context, opts pipeline.Options, output string) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	data := result.Artifacts[opts.Formats[0]]

	if output == "" || output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := writeFile(output, data); err != nil {
		return err
	}
	printSuccess("Exported %s", opts.Formats[0])
	printFile(output)
	return nil
}
