package layout

import "github.com/matzehuels/flowter/pkg/core/geom"

// ComputeBounds returns the smallest box covering every laid-out node.
// Rows without nodes contribute nothing; with no nodes at all the result is
// the zero Bounds.
func ComputeBounds(rows []Row) geom.Bounds {
	var (
		b     geom.Bounds
		first = true
	)
	for _, row := range rows {
		for _, n := range row.Nodes {
			if first {
				b = geom.NewBounds(n.X, n.Y, n.Width, n.Height)
				first = false
				continue
			}
			b.Include(n.X, n.Y, n.Width, n.Height)
		}
	}
	return b
}
