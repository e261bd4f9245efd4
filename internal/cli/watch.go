package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowter/internal/watch"
	"github.com/matzehuels/flowter/pkg/errors"
)

// watchCommand creates the watch command that re-renders on save.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		debounce time.Duration
		flags    pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "watch [chart.yaml...]",
		Short: "Re-render flowchart documents whenever they change",
		Long: `Re-render flowchart documents whenever they change.

Every document is rendered once at startup and again after each save. Bursts
of file events (editors often write several times per save) are collapsed
into a single render per document. Invalid documents are reported and the
watcher keeps running. Press Ctrl+C to stop.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: documentArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd, args, &flags, debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before re-rendering")
	flags.registerLayout(cmd)
	flags.registerRender(cmd)

	return cmd
}

func (c *CLI) runWatch(cmd *cobra.Command, inputs []string, flags *pipelineFlags, debounce time.Duration) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	rebuild := func(ctx context.Context, path string) {
		opts := c.options(cmd, flags, path)
		result, paths, err := c.renderOnce(ctx, runner, opts, "")
		if err != nil {
			printError("%s: %s", path, errors.UserMessage(err))
			loggerFromContext(ctx).Debug("render failed", "input", path, "error", err)
			return
		}
		printSuccess("Rendered %s (%s)", path, (result.Stats.LayoutTime + result.Stats.RenderTime).Round(time.Millisecond))
		for _, p := range paths {
			printFile(p)
		}
	}

	for _, input := range inputs {
		rebuild(ctx, input)
	}

	w, err := watch.New(inputs, func(ctx context.Context, paths []string) {
		for _, p := range paths {
			rebuild(ctx, p)
		}
	}, watch.Options{Debounce: debounce, Logger: c.Logger})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Stop()

	printInfo("Watching %s (Ctrl+C to stop)", plural(len(inputs), "document"))
	<-ctx.Done()
	printNewline()
	return nil
}
