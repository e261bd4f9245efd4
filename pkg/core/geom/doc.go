// Package geom defines the geometric vocabulary shared by the flowchart
// layout engine and its renderers.
//
// # Types
//
//   - [Point]: an absolute or container-relative coordinate
//   - [Range], [Bounds]: extents over one or two axes
//   - [Direction]: a cardinal direction (n, s, e, w), used both for layout
//     flow and for perimeter exit points on a node
//
// Coordinates follow SVG conventions: x grows to the right, y grows
// downward. A node position that has not been assigned yet holds [Unset].
package geom
