package layout

import (
	"github.com/matzehuels/flowter/pkg/core/flowchart"
	"github.com/matzehuels/flowter/pkg/core/geom"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/ordering"
)

// Layout is the complete geometry of a flowchart.
type Layout struct {
	Mode   flowchart.Mode
	Config flowchart.Config

	Rows    []Row
	Details map[string]NodeDetails
	// Order lists node ids by first appearance in the edge list.
	Order []string
	Edges []RenderedEdge

	// Bounds covers every node. Width and Height add the configured margins
	// on both ends of each axis.
	Bounds geom.Bounds
	Width  float64
	Height float64
}

// Origin is the top-left corner of the canvas in layout coordinates.
func (l Layout) Origin() geom.Point {
	wm, hm := l.Config.Margins()
	return geom.Pt(l.Bounds.X.Min-wm, l.Bounds.Y.Min-hm)
}

// Node returns the laid-out node with the given id.
func (l Layout) Node(id string) (*flowchart.RenderedNode, bool) {
	d, ok := l.Details[id]
	if !ok {
		return nil, false
	}
	return d.Node, true
}

// Nodes returns every laid-out node in row order.
func (l Layout) Nodes() []*flowchart.RenderedNode {
	var out []*flowchart.RenderedNode
	for _, row := range l.Rows {
		out = append(out, row.Nodes...)
	}
	return out
}

// Build lays out fc under cfg. Unset config fields take their defaults.
// Any error aborts the run and no partial layout is returned.
func Build(fc flowchart.Flowchart, cfg flowchart.Config) (Layout, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return Layout{}, err
	}

	ord := ordering.OrderNodes(fc.Edges)

	rows, ext, err := BuildRows(ord, fc.Nodes, cfg)
	if err != nil {
		return Layout{}, err
	}
	if err := LayoutRows(rows, ext, cfg); err != nil {
		return Layout{}, err
	}

	bounds := ComputeBounds(rows)
	widthMargin, heightMargin := cfg.Margins()
	details := Details(rows, ord)

	edges, err := resolveEdges(fc.Edges, details, cfg)
	if err != nil {
		return Layout{}, err
	}

	return Layout{
		Mode:    cfg.Mode,
		Config:  cfg,
		Rows:    rows,
		Details: details,
		Order:   ord.Order,
		Edges:   edges,
		Bounds:  bounds,
		Width:   bounds.Width() + 2*widthMargin,
		Height:  bounds.Height() + 2*heightMargin,
	}, nil
}

// resolveEdges emits one rendered edge per connected pair, in declaration
// order. Repeated pairs collapse onto the last declared edge.
func resolveEdges(edges []flowchart.Edge, details map[string]NodeDetails, cfg flowchart.Config) ([]RenderedEdge, error) {
	type pair struct{ from, to string }
	seen := make(map[pair]bool, len(edges))

	out := make([]RenderedEdge, 0, len(edges))
	for _, e := range edges {
		p := pair{e.From, e.To}
		if seen[p] {
			continue
		}
		seen[p] = true

		from, to := details[e.From], details[e.To]
		re, err := ResolveEdge(from, to, from.To[e.To].Edge, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}
