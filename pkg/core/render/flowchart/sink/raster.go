package sink

import (
	"context"

	"github.com/matzehuels/flowter/pkg/core/render"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/layout"
)

// DefaultScale is the PNG scale factor used when none is given.
const DefaultScale = 2.0

// RasterOption configures PNG and PDF rendering.
type RasterOption func(*raster)

type raster struct {
	svgOpts []SVGOption
	scale   float64
}

// WithSVGOptions passes options through to the SVG that is converted.
func WithSVGOptions(opts ...SVGOption) RasterOption {
	return func(r *raster) { r.svgOpts = append(r.svgOpts, opts...) }
}

// WithScale sets the PNG scale factor. PDF output ignores it.
func WithScale(s float64) RasterOption {
	return func(r *raster) { r.scale = s }
}

// RenderPNG renders the layout to SVG and converts it to PNG.
func RenderPNG(ctx context.Context, l layout.Layout, opts ...RasterOption) ([]byte, error) {
	r, svg, err := rasterSVG(l, opts)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, r.scale)
}

// RenderPDF renders the layout to SVG and converts it to PDF.
func RenderPDF(ctx context.Context, l layout.Layout, opts ...RasterOption) ([]byte, error) {
	_, svg, err := rasterSVG(l, opts)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

func rasterSVG(l layout.Layout, opts []RasterOption) (raster, []byte, error) {
	r := raster{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	svg, err := RenderSVG(l, r.svgOpts...)
	return r, svg, err
}
