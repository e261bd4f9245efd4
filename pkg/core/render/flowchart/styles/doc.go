// Package styles defines how flowchart nodes, edges and labels are drawn.
//
// A [Style] receives fully computed geometry and writes SVG fragments. It
// decides colors, stroke and typography only; positions and path data come
// from the layout and shapes packages.
//
// [Simple] is the default style: flat fills, solid strokes and a sans-serif
// label font.
package styles
