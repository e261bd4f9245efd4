package layout

import (
	"github.com/matzehuels/flowter/pkg/core/flowchart"
	"github.com/matzehuels/flowter/pkg/core/geom"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/ordering"
	"github.com/matzehuels/flowter/pkg/errors"
)

// =============================================================================
// Node Details
// =============================================================================

// NodeDetails locates a laid-out node within its row and links it to its
// neighbours.
type NodeDetails struct {
	Row    int
	RowLen int
	Col    int

	Node *flowchart.RenderedNode
	// Prev and Next are the adjacent nodes in the same row, nil at the ends.
	Prev *flowchart.RenderedNode
	Next *flowchart.RenderedNode

	From map[string]ordering.Link
	To   map[string]ordering.Link
}

// Details indexes every node of rows by id.
func Details(rows []Row, ord ordering.Result) map[string]NodeDetails {
	out := make(map[string]NodeDetails, ord.Len())
	for r, row := range rows {
		for c, n := range row.Nodes {
			d := NodeDetails{
				Row:    r,
				RowLen: len(row.Nodes),
				Col:    c,
				Node:   n,
			}
			if c > 0 {
				d.Prev = row.Nodes[c-1]
			}
			if c+1 < len(row.Nodes) {
				d.Next = row.Nodes[c+1]
			}
			if on, ok := ord.Nodes[n.ID]; ok {
				d.From = on.From
				d.To = on.To
			}
			out[n.ID] = d
		}
	}
	return out
}

// =============================================================================
// Edge Classification
// =============================================================================

// EdgeDirection reports where to lies relative to from. Row difference
// dominates; within a row the column order decides.
func EdgeDirection(from, to NodeDetails, mode flowchart.Mode) (geom.Direction, error) {
	sameRow := to.Row == from.Row
	switch mode {
	case flowchart.ModeVertical:
		if sameRow {
			return pick(to.Col > from.Col, geom.East, geom.West), nil
		}
		return pick(to.Row > from.Row, geom.South, geom.North), nil
	case flowchart.ModeHorizontal:
		if sameRow {
			return pick(to.Col > from.Col, geom.South, geom.North), nil
		}
		return pick(to.Row > from.Row, geom.East, geom.West), nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "unknown mode: %q", mode)
}

// EdgeSide reports which half of the chart a backward edge is routed
// through. Each endpoint's column is measured from its row's center; a
// non-negative sum selects east in vertical mode and south in horizontal
// mode.
func EdgeSide(from, to NodeDetails, mode flowchart.Mode) (geom.Direction, error) {
	start := from.Col - from.RowLen/2
	end := to.Col - to.RowLen/2
	positive := start+end >= 0

	switch mode {
	case flowchart.ModeVertical:
		return pick(positive, geom.East, geom.West), nil
	case flowchart.ModeHorizontal:
		return pick(positive, geom.South, geom.North), nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "unknown mode: %q", mode)
}

func pick(cond bool, a, b geom.Direction) geom.Direction {
	if cond {
		return a
	}
	return b
}

// =============================================================================
// Edge Resolution
// =============================================================================

// RenderedEdge is an edge with its endpoints resolved to absolute
// coordinates on the perimeters of its nodes.
type RenderedEdge struct {
	flowchart.Edge

	FromPosition geom.Point
	ToPosition   geom.Point
	// FromExit and ToExit are the perimeter sides the edge attaches to.
	FromExit geom.Direction
	ToExit   geom.Direction

	Direction  geom.Direction
	Side       geom.Direction
	IsCircular bool
	FontSize   float64
}

// ResolveEdge computes the geometry of edge e between from and to. The
// edge's own font size wins over cfg.FontSize.
func ResolveEdge(from, to NodeDetails, e flowchart.Edge, cfg flowchart.Config) (RenderedEdge, error) {
	direction, err := EdgeDirection(from, to, cfg.Mode)
	if err != nil {
		return RenderedEdge{}, err
	}
	side, err := EdgeSide(from, to, cfg.Mode)
	if err != nil {
		return RenderedEdge{}, err
	}

	fromExit, toExit, err := exits(from, to, direction, side)
	if err != nil {
		return RenderedEdge{}, err
	}

	fromOff, ok := geom.Perimeter(fromExit, from.Node.Width, from.Node.Height)
	if !ok {
		return RenderedEdge{}, errors.New(errors.ErrCodeInvalidDirection, "unknown exit direction: %q", fromExit)
	}
	toOff, ok := geom.Perimeter(toExit, to.Node.Width, to.Node.Height)
	if !ok {
		return RenderedEdge{}, errors.New(errors.ErrCodeInvalidDirection, "unknown exit direction: %q", toExit)
	}

	fontSize := cfg.FontSize
	if e.FontSize != nil {
		fontSize = *e.FontSize
	}

	return RenderedEdge{
		Edge:         e,
		FromPosition: from.Node.Position().Add(fromOff),
		ToPosition:   to.Node.Position().Add(toOff),
		FromExit:     fromExit,
		ToExit:       toExit,
		Direction:    direction,
		Side:         side,
		IsCircular:   from.Node.ID == to.Node.ID,
		FontSize:     fontSize,
	}, nil
}

// exits picks the perimeter sides for the connection pattern of from→to.
func exits(from, to NodeDetails, direction, side geom.Direction) (geom.Direction, geom.Direction, error) {
	if !direction.Valid() {
		return "", "", errors.New(errors.ErrCodeInvalidDirection, "unknown edge direction: %q", direction)
	}

	switch {
	case to.Row > from.Row:
		if direction.Vertical() {
			return geom.South, geom.North, nil
		}
		return geom.East, geom.West, nil

	case to.Row < from.Row:
		if !side.Valid() {
			return "", "", errors.New(errors.ErrCodeInvalidSide, "unknown edge side: %q", side)
		}
		return side, side, nil

	case to.Col != from.Col:
		return direction, direction.Opposite(), nil

	default:
		if direction.Vertical() {
			return geom.West, geom.East, nil
		}
		return geom.North, geom.South, nil
	}
}
