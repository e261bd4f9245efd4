// Package shapes turns laid-out nodes and edges into SVG path data.
//
// # Nodes
//
// [NodePath] draws the outline of a node symbol inside its width×height
// box, inset by half the stroke width so the stroke stays inside the box.
// Every symbol yields a closed path.
//
// # Edges
//
// [RenderEdge] draws an edge on its own surface: a padded box that covers
// both endpoints, positioned in chart coordinates. Points and path data are
// relative to that surface. The variant is chosen by [SelectEdgeShape]:
//
//   - [ShapeCircular]: self-loops, drawn as a single arc
//   - [ShapeStraight]: cross edges, a single line
//   - [ShapeBentForward]: south or east flow, three orthogonal segments
//     meeting halfway
//   - [ShapeBentBackward]: north or west flow, three orthogonal segments
//     that detour around the side the edge was routed to
//
// Backward edges get extra padding so the detour stays inside the surface.
package shapes
