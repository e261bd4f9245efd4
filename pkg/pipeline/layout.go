package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/flowter/pkg/core/flowchart"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/layout"
	"github.com/matzehuels/flowter/pkg/graph"
	"github.com/matzehuels/flowter/pkg/observability"
)

// Layout converts doc into layout input, applies the option overrides and
// computes the geometry.
func Layout(ctx context.Context, doc graph.Document, opts Options) (layout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, err
	}

	fc, cfg, err := doc.Flowchart()
	if err != nil {
		return layout.Layout{}, err
	}
	if opts.Mode != "" {
		cfg.Mode = flowchart.Mode(opts.Mode)
	}
	if opts.Namespace != "" {
		cfg.Namespace = opts.Namespace
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, string(cfg.Mode), len(fc.Nodes))
	start := time.Now()

	l, err := layout.Build(fc, cfg)

	hooks.OnLayoutComplete(ctx, string(cfg.Mode), len(l.Order), len(l.Edges), time.Since(start), err)
	return l, err
}
