package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/flowter/pkg/core/flowchart"
	"github.com/matzehuels/flowter/pkg/core/geom"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/layout"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/shapes"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/styles"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      styles.Style
	background string
	edges      bool
}

// WithStyle draws nodes and edges with s instead of the simple style.
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithBackground fills the canvas with color.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithoutEdges draws nodes only.
func WithoutEdges() SVGOption { return func(r *svgRenderer) { r.edges = false } }

// RenderSVG draws l as an SVG document.
func RenderSVG(l layout.Layout, opts ...SVGOption) ([]byte, error) {
	r := newSVGRenderer(opts...)

	nodes, err := buildNodes(l)
	if err != nil {
		return nil, err
	}

	var (
		edges   []styles.Edge
		markers []styles.Marker
	)
	if r.edges {
		edges, markers, err = buildEdges(l)
		if err != nil {
			return nil, err
		}
	}

	origin := l.Origin()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		geom.FormatFloat(origin.X), geom.FormatFloat(origin.Y),
		geom.FormatFloat(l.Width), geom.FormatFloat(l.Height),
		geom.FormatFloat(l.Width), geom.FormatFloat(l.Height))

	r.style.RenderDefs(&buf, markers)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			geom.FormatFloat(origin.X), geom.FormatFloat(origin.Y),
			geom.FormatFloat(l.Width), geom.FormatFloat(l.Height), styles.EscapeXML(r.background))
	}

	for _, e := range edges {
		r.style.RenderEdge(&buf, e)
	}
	for _, n := range nodes {
		r.style.RenderNode(&buf, n)
	}
	for _, n := range nodes {
		r.style.RenderText(&buf, n)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, edges: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func buildNodes(l layout.Layout) ([]styles.Node, error) {
	cfg := l.Config
	all := l.Nodes()
	nodes := make([]styles.Node, 0, len(all))
	for _, n := range all {
		d, err := shapes.NodePath(n.Symbol, n.Width, n.Height, cfg.StrokeWidth)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, styles.Node{
			ID:          n.ID,
			Label:       n.Text,
			X:           n.X,
			Y:           n.Y,
			W:           n.Width,
			H:           n.Height,
			Path:        d,
			Fill:        n.BGColor,
			Stroke:      cfg.StrokeColor,
			StrokeWidth: cfg.StrokeWidth,
			FontSize:    n.FontSize,
		})
	}
	return nodes, nil
}

func buildEdges(l layout.Layout) ([]styles.Edge, []styles.Marker, error) {
	cfg := l.Config
	opts := shapes.EdgeOptions{Namespace: cfg.Namespace, StrokeWidth: cfg.StrokeWidth}

	edges := make([]styles.Edge, 0, len(l.Edges))
	var markers []styles.Marker
	for _, e := range l.Edges {
		g, err := shapes.RenderEdge(e, opts)
		if err != nil {
			return nil, nil, err
		}

		color := edgeColor(e.Edge, cfg)
		se := styles.Edge{
			FromID:      e.From,
			ToID:        e.To,
			X:           g.Position.X,
			Y:           g.Position.Y,
			W:           g.Width,
			H:           g.Height,
			ViewBox:     g.ViewBox(),
			Path:        g.Path,
			Color:       color,
			StrokeWidth: cfg.StrokeWidth,
			Label:       e.Text,
			LabelX:      g.Label.X,
			LabelY:      g.Label.Y,
			LabelAnchor: g.LabelAnchor,
			FontSize:    e.FontSize,
		}
		if g.MarkerStart {
			se.MarkerStart = g.ArrowID
		}
		if g.MarkerEnd {
			se.MarkerEnd = g.ArrowID
		}
		if g.MarkerStart || g.MarkerEnd {
			markers = append(markers, styles.Marker{ID: g.ArrowID, Color: color})
		}
		edges = append(edges, se)
	}
	return edges, markers, nil
}

func edgeColor(e flowchart.Edge, cfg flowchart.Config) string {
	if e.Color != "" {
		return e.Color
	}
	return cfg.StrokeColor
}
