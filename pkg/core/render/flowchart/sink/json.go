package sink

import (
	"github.com/matzehuels/flowter/pkg/core/geom"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/layout"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/shapes"
	"github.com/matzehuels/flowter/pkg/graph"
)

// Export converts a computed layout to its serialization format.
//
// Use this when the geometry leaves the process:
//   - JSON file output (via graph.WriteLayoutFile)
//   - API responses
//
// Node outlines and edge paths are shaped here, so any shaping error
// aborts the export.
func Export(l layout.Layout) (graph.Layout, error) {
	origin := l.Origin()
	out := graph.Layout{
		Mode:   string(l.Mode),
		Width:  l.Width,
		Height: l.Height,
		Origin: point(origin),
		Bounds: graph.Rect{
			X:      l.Bounds.X.Min,
			Y:      l.Bounds.Y.Min,
			Width:  l.Bounds.Width(),
			Height: l.Bounds.Height(),
		},
		Nodes: []graph.Node{},
		Rows:  make([][]string, 0, len(l.Rows)),
	}

	for _, row := range l.Rows {
		ids := make([]string, 0, len(row.Nodes))
		for col, n := range row.Nodes {
			d, err := shapes.NodePath(n.Symbol, n.Width, n.Height, l.Config.StrokeWidth)
			if err != nil {
				return graph.Layout{}, err
			}
			out.Nodes = append(out.Nodes, graph.Node{
				ID:       n.ID,
				Text:     n.Text,
				Symbol:   string(n.Symbol),
				X:        n.X,
				Y:        n.Y,
				Width:    n.Width,
				Height:   n.Height,
				BGColor:  n.BGColor,
				FontSize: n.FontSize,
				Row:      row.Index,
				Col:      col,
				Path:     d,
			})
			ids = append(ids, n.ID)
		}
		out.Rows = append(out.Rows, ids)
	}

	opts := shapes.EdgeOptions{Namespace: l.Config.Namespace, StrokeWidth: l.Config.StrokeWidth}
	for _, e := range l.Edges {
		g, err := shapes.RenderEdge(e, opts)
		if err != nil {
			return graph.Layout{}, err
		}
		ge := graph.Edge{
			From:         e.From,
			To:           e.To,
			Text:         e.Text,
			Color:        e.Color,
			Type:         string(e.EdgeTypeOrDefault()),
			Marker:       string(e.MarkerOrDefault()),
			FontSize:     e.FontSize,
			Direction:    e.Direction.String(),
			Side:         e.Side.String(),
			FromExit:     e.FromExit.String(),
			ToExit:       e.ToExit.String(),
			Circular:     e.IsCircular,
			FromPosition: point(e.FromPosition),
			ToPosition:   point(e.ToPosition),
			Shape:        string(g.Shape),
			Surface:      graph.Rect{X: g.Position.X, Y: g.Position.Y, Width: g.Width, Height: g.Height},
			Path:         g.Path,
		}
		if e.Text != "" {
			ge.Label = &graph.Label{X: g.Label.X, Y: g.Label.Y, Anchor: g.LabelAnchor}
		}
		out.Edges = append(out.Edges, ge)
	}

	return out, nil
}

// RenderJSON exports l as indented JSON.
func RenderJSON(l layout.Layout) ([]byte, error) {
	exported, err := Export(l)
	if err != nil {
		return nil, err
	}
	return graph.MarshalLayout(exported)
}

func point(p geom.Point) graph.Point { return graph.Point{X: p.X, Y: p.Y} }
