// Package layout computes node positions and edge endpoints for a flowchart.
//
// # Pipeline
//
// [Build] runs every stage in order and returns a [Layout]:
//
//  1. [ordering.OrderNodes] assigns rows from edge connectivity
//  2. [BuildRows] shapes each ordered node and groups it into its row
//  3. [LayoutRows] positions the nodes of every row
//  4. [ComputeBounds] measures the occupied area
//  5. [ResolveEdge] picks perimeter exit points for every edge
//
// Each stage is a pure function of its inputs, so the whole pipeline is
// rerun whenever the flowchart changes. Nothing is cached between runs.
//
// # Modes
//
// In [flowchart.ModeVertical] rows stack top to bottom and the nodes of a
// row are centered horizontally. [flowchart.ModeHorizontal] swaps the axes:
// rows stack left to right and are centered vertically.
//
// # Custom Positions
//
// A node with an explicit X or Y keeps it. The node that follows it in the
// same row is placed as if the custom node sat at its computed slot, by
// shrinking the spacing after it by the deviation. Large deviations can
// make that spacing negative, in which case nodes overlap.
//
// # Edges
//
// [EdgeDirection] and [EdgeSide] classify a connection, and [ResolveEdge]
// converts the classification into absolute endpoint coordinates:
//
//   - forward edges leave the source toward the next row and enter the
//     target from the opposite side
//   - backward edges leave and enter on the same side of the chart, so the
//     drawn path can detour around the rows in between
//   - same-row edges leave toward the target and enter from the opposite
//     side
//   - self-loops use a perpendicular pair of opposite sides
package layout
