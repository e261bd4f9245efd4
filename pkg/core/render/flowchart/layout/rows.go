package layout

import (
	"github.com/matzehuels/flowter/pkg/core/flowchart"
	"github.com/matzehuels/flowter/pkg/core/geom"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/ordering"
	"github.com/matzehuels/flowter/pkg/errors"
)

// Row is the set of nodes sharing a row index, in placement order.
//
// Width and Height accumulate each node's size plus the column or row
// spacing. They measure the row for centering and are not trimmed of the
// trailing spacing.
type Row struct {
	Index  int
	Nodes  []*flowchart.RenderedNode
	Width  float64
	Height float64
}

// Extent holds the largest accumulated row width and height.
type Extent struct {
	MaxWidth  float64
	MaxHeight float64
}

// BuildRows shapes every ordered node and groups it into its row. Nodes are
// visited in [ordering.Result.Order], so the placement within a row follows
// the first appearance of each node in the edge list.
//
// An edge that references an id missing from nodes yields an
// [errors.ErrCodeUnknownNode] error.
func BuildRows(ord ordering.Result, nodes map[string]flowchart.Node, cfg flowchart.Config) ([]Row, Extent, error) {
	rows := make([]Row, ord.Rows())
	for i := range rows {
		rows[i].Index = i
	}

	rowGap, colGap := cfg.Spacing()

	var ext Extent
	for _, id := range ord.Order {
		n, ok := nodes[id]
		if !ok {
			return nil, Extent{}, errors.New(errors.ErrCodeUnknownNode, "edge references unknown node %q", id)
		}
		shaped := flowchart.ShapeNode(id, n, cfg)
		row := &rows[ord.Nodes[id].Index]

		row.Nodes = append(row.Nodes, &shaped)
		row.Width += shaped.Width + colGap
		row.Height += shaped.Height + rowGap

		ext.MaxWidth = max(ext.MaxWidth, row.Width)
		ext.MaxHeight = max(ext.MaxHeight, row.Height)
	}

	return rows, ext, nil
}

// LayoutRows assigns X and Y to every node of rows according to cfg.Mode.
// Coordinates supplied by the caller are kept.
func LayoutRows(rows []Row, ext Extent, cfg flowchart.Config) error {
	switch cfg.Mode {
	case flowchart.ModeVertical:
		layoutVertical(rows, ext.MaxWidth, cfg)
	case flowchart.ModeHorizontal:
		layoutHorizontal(rows, ext.MaxHeight, cfg)
	default:
		return errors.New(errors.ErrCodeInvalidMode, "unknown mode: %q", cfg.Mode)
	}
	return nil
}

func layoutVertical(rows []Row, maxWidth float64, cfg flowchart.Config) {
	widthMargin, heightMargin := cfg.Margins()
	rowGap, colGap := cfg.Spacing()
	cumY := heightMargin

	for _, row := range rows {
		cumX := maxWidth/2 - row.Width/2 + widthMargin
		maxHeight := 0.0

		for _, n := range row.Nodes {
			customX := !geom.IsUnset(n.X)
			if !customX {
				n.X = cumX
			}
			if geom.IsUnset(n.Y) {
				n.Y = cumY
			}
			maxHeight = max(maxHeight, n.Height)

			spacing := colGap
			if customX {
				spacing -= n.X - cumX
			}
			cumX = n.X + n.Width + spacing
		}

		cumY += maxHeight + rowGap
	}
}

func layoutHorizontal(rows []Row, maxHeight float64, cfg flowchart.Config) {
	widthMargin, heightMargin := cfg.Margins()
	rowGap, colGap := cfg.Spacing()
	cumX := widthMargin

	for _, row := range rows {
		cumY := maxHeight/2 - row.Height/2 + heightMargin
		maxWidth := 0.0

		for _, n := range row.Nodes {
			customY := !geom.IsUnset(n.Y)
			if geom.IsUnset(n.X) {
				n.X = cumX
			}
			if !customY {
				n.Y = cumY
			}
			maxWidth = max(maxWidth, n.Width)

			spacing := rowGap
			if customY {
				spacing -= n.Y - cumY
			}
			cumY = n.Y + n.Height + spacing
		}

		cumX += maxWidth + colGap
	}
}
