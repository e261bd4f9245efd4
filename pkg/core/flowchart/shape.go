package flowchart

import "github.com/matzehuels/flowter/pkg/core/geom"

// RenderedNode is a [Node] with every optional field resolved.
//
// X and Y hold [geom.Unset] until the row layout assigns them, unless the
// caller fixed them. After layout they are never written again.
type RenderedNode struct {
	ID       string
	Text     string
	Width    float64
	Height   float64
	X        float64
	Y        float64
	Symbol   NodeSymbol
	BGColor  string
	FontSize float64
}

// Position returns the node's top-left corner.
func (n *RenderedNode) Position() geom.Point { return geom.Pt(n.X, n.Y) }

// Center returns the middle of the node's box.
func (n *RenderedNode) Center() geom.Point {
	return geom.Pt(n.X+n.Width/2, n.Y+n.Height/2)
}

// ShapeNode resolves n against cfg. Rhombus nodes without an explicit size
// are scaled by [RhombusRatio] on both axes.
func ShapeNode(id string, n Node, cfg Config) RenderedNode {
	symbol := n.Symbol
	if symbol == "" {
		symbol = SymbolRectangle
	}

	ratio := 1.0
	if symbol == SymbolRhombus {
		ratio = RhombusRatio
	}

	return RenderedNode{
		ID:       id,
		Text:     n.Text,
		Width:    orDefault(n.Width, cfg.NodeWidth*ratio),
		Height:   orDefault(n.Height, cfg.NodeHeight*ratio),
		X:        orDefault(n.X, geom.Unset),
		Y:        orDefault(n.Y, geom.Unset),
		Symbol:   symbol,
		BGColor:  stringOr(n.BGColor, cfg.BGColor),
		FontSize: orDefault(n.FontSize, cfg.FontSize),
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func stringOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
