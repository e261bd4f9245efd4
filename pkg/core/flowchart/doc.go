// Package flowchart defines the flowchart model consumed by the layout
// engine: input nodes and edges, their closed enumerations, the layout
// configuration and the node shaper.
//
// # Input Model
//
// A [Flowchart] is a mapping of node ids to [Node] plus an ordered slice of
// [Edge]. Node order is irrelevant; edge order matters because the first
// qualifying edge decides a node's row.
//
// # Configuration
//
// [Config] carries every global default the layout needs. Use
// [DefaultConfig] for the documented defaults and [Config.SetDefaults] to
// fill zero fields of a partially specified configuration:
//
//	cfg := flowchart.DefaultConfig()
//	cfg.Mode = flowchart.ModeHorizontal
//
// # Node Shaping
//
// [ShapeNode] resolves every optional field of a [Node] into a
// [RenderedNode]. It is total: every field has a default.
package flowchart
