package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowter/pkg/pipeline"
)

// pipelineFlags are the flags shared by every command that runs documents
// through the pipeline. Unset flags fall back to the config file.
type pipelineFlags struct {
	inputFormat string
	mode        string
	namespace   string
	formats     string
	background  string
	scale       float64
	noEdges     bool
	noCache     bool
	refresh     bool
}

// registerLayout adds the document and layout flags to cmd.
func (f *pipelineFlags) registerLayout(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.inputFormat, "input-format", "", "document format: json, yaml, toml (default: from extension)")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "flow direction: vertical (default), horizontal")
	cmd.Flags().StringVar(&f.namespace, "namespace", "", "prefix for generated SVG ids")
}

// registerRender adds the render flags to cmd.
func (f *pipelineFlags) registerRender(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, mermaid (comma-separated)")
	cmd.Flags().StringVar(&f.background, "background", "", "canvas background color (e.g. #ffffff)")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "PNG resolution multiplier (default 2)")
	cmd.Flags().BoolVar(&f.noEdges, "no-edges", false, "draw nodes only")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-convert PNG/PDF even when cached")
}

// options merges the flags of cmd with the config file into pipeline
// options for input. Render defaults are applied so callers can rely on
// Formats being set.
func (c *CLI) options(cmd *cobra.Command, f *pipelineFlags, input string) pipeline.Options {
	cfg := c.Config
	opts := pipeline.Options{
		InputPath:   input,
		InputFormat: f.inputFormat,
		Mode:        cfg.Layout.Mode,
		Namespace:   cfg.Layout.Namespace,
		Formats:     cfg.Render.Formats,
		Background:  cfg.Render.Background,
		Scale:       cfg.Render.Scale,
		NoEdges:     cfg.Render.NoEdges,
		Refresh:     f.refresh,
		Logger:      c.Logger,
	}

	changed := cmd.Flags().Changed
	if changed("mode") {
		opts.Mode = f.mode
	}
	if changed("namespace") {
		opts.Namespace = f.namespace
	}
	if changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if changed("background") {
		opts.Background = f.background
	}
	if changed("scale") {
		opts.Scale = f.scale
	}
	if changed("no-edges") {
		opts.NoEdges = f.noEdges
	}
	opts.SetRenderDefaults()
	return opts
}
