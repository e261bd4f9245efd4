package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/flowter/pkg/core/render"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/layout"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/sink"
	"github.com/matzehuels/flowter/pkg/core/render/nodelink"
	"github.com/matzehuels/flowter/pkg/observability"
)

// Render generates every requested format from l without caching.
func Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	svg, err := RenderSVG(l, opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, l, svg, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderSVG draws l as SVG with the render options applied.
func RenderSVG(l layout.Layout, opts Options) ([]byte, error) {
	return sink.RenderSVG(l, svgOptions(opts)...)
}

// renderFormat produces one artifact. svg is the already rendered SVG of l;
// PNG and PDF are converted from it.
func renderFormat(ctx context.Context, l layout.Layout, svg []byte, format string, opts Options) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data = svg
	case FormatPNG:
		data, err = render.ToPNG(ctx, svg, opts.Scale)
	case FormatPDF:
		data, err = render.ToPDF(ctx, svg)
	case FormatJSON:
		data, err = sink.RenderJSON(l)
	case FormatDOT:
		dot := nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed})
		if opts.ValidateDOT {
			err = nodelink.ValidateDOT(ctx, dot)
		}
		data = []byte(dot)
	case FormatMermaid:
		data = []byte(nodelink.ToMermaid(l, nodelink.Options{Detailed: opts.Detailed}))
	default:
		err = ValidateFormat(format)
	}

	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

func svgOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	if opts.NoEdges {
		svgOpts = append(svgOpts, sink.WithoutEdges())
	}
	return svgOpts
}
