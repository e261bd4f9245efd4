// Package sink writes a computed flowchart layout to output formats.
//
// [RenderSVG] produces a standalone SVG document. Each edge is drawn on its
// own nested <svg> surface whose viewBox matches the edge geometry, so edge
// path data stays relative to the edge. Nodes are drawn after edges so that
// arrowheads touching a node outline stay visible.
//
// [RenderPNG] and [RenderPDF] convert that SVG with rsvg-convert, which must
// be on PATH:
//
//	brew install librsvg        # macOS
//	apt install librsvg2-bin    # Debian/Ubuntu
//
// Every renderer takes functional options, for example:
//
//	svg, err := sink.RenderSVG(l, sink.WithStyle(styles.Simple{}), sink.WithBackground("#fafafa"))
package sink
