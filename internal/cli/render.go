package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/flowter/pkg/core/render"
	"github.com/matzehuels/flowter/pkg/pipeline"
)

// renderCommand creates the render command: document(s) to visual output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		jobs   int
		flags  pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "render [chart.yaml...]",
		Short: "Render flowchart documents to SVG, PNG, PDF and more",
		Long: `Render flowchart documents to SVG, PNG, PDF and more.

Each document is parsed, laid out and rendered to every requested format.
Output files are named after the input (chart.yaml -> chart.svg, chart.png).
JSON geometry is written to <input>.layout.json.

Several documents render concurrently, bounded by --jobs. PNG and PDF
conversion requires rsvg-convert; converted artifacts are cached locally.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: documentArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) > 1 {
				return fmt.Errorf("--output cannot be used with %d inputs", len(args))
			}
			if !cmd.Flags().Changed("jobs") {
				jobs = c.Config.Render.Jobs
			}
			return c.runRender(cmd, args, &flags, output, jobs)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", defaultJobs, "documents rendered concurrently")
	flags.registerLayout(cmd)
	flags.registerRender(cmd)

	return cmd
}

// renderOutcome is the result of rendering one document.
type renderOutcome struct {
	input  string
	result *pipeline.Result
	paths  []string
}

// runRender renders every input, at most jobs at a time.
func (c *CLI) runRender(cmd *cobra.Command, inputs []string, flags *pipelineFlags, output string, jobs int) error {
	ctx := cmd.Context()

	probe := c.options(cmd, flags, "")
	if err := pipeline.ValidateFormats(probe.Formats); err != nil {
		return err
	}
	if needsConverter(probe.Formats) && !render.Available() {
		printWarning("%s not found on PATH; PNG and PDF can only be served from cache", render.Converter)
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", plural(len(inputs), "document")))
	spinner.Start()
	prog := newProgress(c.Logger)

	var (
		mu       sync.Mutex
		outcomes []renderOutcome
	)
	g, gctx := errgroup.WithContext(ctx)
	if jobs <= 0 {
		jobs = defaultJobs
	}
	g.SetLimit(jobs)

	for _, input := range inputs {
		g.Go(func() error {
			opts := c.options(cmd, flags, input)
			opts.Logger = loggerFromContext(gctx).With("input", input)

			result, err := runner.Execute(gctx, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			paths, err := writeArtifacts(artifactWriteParams{
				artifacts: result.Artifacts,
				formats:   opts.Formats,
				input:     input,
				output:    output,
			})
			if err != nil {
				return err
			}

			mu.Lock()
			outcomes = append(outcomes, renderOutcome{input: input, result: result, paths: paths})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	if len(inputs) > 1 {
		prog.done(fmt.Sprintf("Rendered %s", plural(len(inputs), "document")))
	}

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].input < outcomes[j].input })
	for _, o := range outcomes {
		printSuccess("Rendered %s", o.input)
		for _, p := range o.paths {
			printFile(p)
		}
		printStats(o.result.Stats, o.result.CacheInfo, needsConverter(probe.Formats))
	}
	return nil
}

// needsConverter reports whether any format goes through rsvg-convert.
func needsConverter(formats []string) bool {
	for _, f := range formats {
		if pipeline.IsCacheable(f) {
			return true
		}
	}
	return false
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes one file per format and returns the paths in
// format order. A single format with an explicit output is written to
// exactly that path.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if len(p.formats) == 1 && p.output != "" {
		if err := writeFile(p.output, p.artifacts[p.formats[0]]); err != nil {
			return nil, err
		}
		return []string{p.output}, nil
	}

	base := outputBase(p.output, p.input)
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		path := artifactPath(base, format)
		if err := writeFile(path, p.artifacts[format]); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactPath names the file for format next to base.
func artifactPath(base, format string) string {
	if format == pipeline.FormatJSON {
		return layoutPath(base)
	}
	return base + pipeline.Extensions[format]
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// renderOnce renders a single document for commands that loop, such as
// watch. It returns the written paths.
func (c *CLI) renderOnce(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string) (*pipeline.Result, []string, error) {
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.InputPath,
		output:    output,
	})
	return result, paths, err
}
