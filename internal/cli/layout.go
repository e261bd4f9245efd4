package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowter/pkg/core/render/flowchart/sink"
	"github.com/matzehuels/flowter/pkg/graph"
	"github.com/matzehuels/flowter/pkg/pipeline"
)

// layoutCommand creates the layout command for computing flowchart geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [chart.yaml]",
		Short: "Compute flowchart geometry as JSON",
		Long: `Compute flowchart geometry as JSON.

The layout command places every node in a row, routes every edge and writes
the resulting geometry (positions, sizes, SVG paths, edge directions and label
anchors) to <input>.layout.json. Use "-o -" to write to stdout.

The output is the same document served by the HTTP API at POST /v1/layout.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: documentArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &flags, args[0])
			return c.runLayout(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	flags.registerLayout(cmd)

	return cmd
}

// runLayout parses the document, computes the layout and writes the geometry.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string) error {
	if err := opts.ValidateForParse(); err != nil {
		return err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, hash, err := pipeline.Parse(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.InputPath, err)
	}
	prog.step("parsed", "hash", hash[:12])

	runner := pipeline.NewRunner(nil, nil, logger)
	l, err := runner.Layout(ctx, doc, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.step("laid out", "rows", len(l.Rows))
	geometry, err := sink.Export(l)
	if err != nil {
		return fmt.Errorf("export geometry: %w", err)
	}

	if output == "-" {
		data, err := graph.MarshalLayout(geometry)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = layoutPath(outputBase("", opts.InputPath))
	}
	if err := graph.WriteLayoutFile(geometry, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	prog.done("Computed layout")

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(pipeline.Stats{
		NodeCount: len(l.Order),
		EdgeCount: len(l.Edges),
		RowCount:  len(l.Rows),
	}, pipeline.CacheInfo{}, false)
	printNewline()
	printNextStep("Render", appName+" render "+opts.InputPath)

	return nil
}

// layoutPath names the geometry file for base. The double extension keeps
// it from clobbering a JSON input document.
func layoutPath(base string) string {
	return strings.TrimSuffix(base, ".layout") + ".layout.json"
}
