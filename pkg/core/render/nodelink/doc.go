// Package nodelink exports the topology of a laid-out flowchart to
// text-based graph formats.
//
// The exports carry nodes, edges, labels, symbols and row membership, but no
// coordinates: the receiving tool computes its own placement.
//
//   - [ToDOT]: Graphviz DOT, with one rank per layout row
//   - [ToMermaid]: a Mermaid flowchart definition
//
// [ValidateDOT] parses DOT text with Graphviz to catch syntax errors before
// the text leaves the process.
//
// # Usage
//
//	l, _ := layout.Build(fc, cfg)
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	if err := nodelink.ValidateDOT(ctx, dot); err != nil {
//	    return err
//	}
package nodelink
