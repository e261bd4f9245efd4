// Package pkg provides the core libraries of flowter, a flowchart layout
// engine.
//
// # Overview
//
// Flowter turns a flowchart document (nodes plus an ordered list of edges)
// into a laid-out diagram. Nodes are placed in rows that follow edge
// connectivity, every node is sized to its text, and every edge is given a
// cardinal direction, a side and exit points before it is drawn. The pkg
// directory is organized into these areas:
//
//  1. [core] - Domain logic (flowchart model, geometry, layout, rendering)
//  2. [graph] - Wire formats for documents and computed geometry
//  3. [pipeline] - Orchestration (parse → layout → render)
//  4. [cache] - Artifact caching for converted PNG and PDF output
//  5. [observability] - Hooks for metrics, with a Prometheus implementation
//
// # Architecture
//
// The typical data flow through flowter:
//
//	Document (JSON, YAML, TOML)
//	         ↓
//	    [graph] package (decode + validate)
//	         ↓
//	    [core/flowchart] package (nodes, edges, config)
//	         ↓
//	    [render/flowchart/ordering] package (rows from edge connectivity)
//	         ↓
//	    [render/flowchart/layout] package (positions, edge routing)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT/Mermaid output
//
// # Quick Start
//
// Lay out and render a document from disk:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/flowter/pkg/cache"
//	    "github.com/matzehuels/flowter/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	defer runner.Close()
//
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    InputPath: "chart.yaml",
//	    Formats:   []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("chart.svg", result.Artifacts["svg"], 0o644)
//
// The stages can also be driven directly:
//
//	doc, _ := graph.ReadDocumentFile("chart.yaml")
//	fc, cfg, _ := doc.Flowchart()
//	l, _ := layout.Build(fc, cfg)
//	svg, _ := sink.RenderSVG(l)
//
// # Package Organization
//
// ## Core
//
// [core/flowchart] - The flowchart model: nodes with text, symbol and
// optional fixed geometry; edges with type, marker and label; and the
// layout configuration with its documented defaults.
//
// [core/geom] - Points, bounds, directions and the cardinal arithmetic that
// edge routing is built on.
//
// [core/render] - Helpers shared by every renderer, such as converting SVG
// to PNG and PDF with rsvg-convert.
//
// ## Flowchart Rendering
//
// The rendering pipeline: ordering → layout → shapes → sink.
//
//   - [render/flowchart/ordering]: Assign nodes to rows and columns
//   - [render/flowchart/layout]: Size nodes, place rows, route edges
//   - [render/flowchart/shapes]: SVG path data for symbols and connectors
//   - [render/flowchart/styles]: Fill, stroke and label drawing
//   - [render/flowchart/sink]: Output formats (SVG, PNG, PDF, JSON)
//
// [render/nodelink] - Topology export as Graphviz DOT or Mermaid, with
// optional DOT validation through an embedded Graphviz.
//
// ## Serialization
//
// [graph] - Input documents in JSON, YAML or TOML and the JSON geometry
// export of a computed layout.
//
// ## Infrastructure
//
// [pipeline] - The parse → layout → render pipeline used by the CLI, the
// HTTP API and the file watcher. Ensures consistent behavior across all
// entry points.
//
// [cache] - Artifact caches keyed by content hash: a file cache for the CLI,
// a Redis cache for shared deployments, and a null cache.
//
// [errors] - Coded errors. Layout-time enumeration errors abort a render
// pass; the HTTP API maps input errors to 4xx responses.
//
// [observability] - Hook registry for pipeline, cache and server events.
//
// [core]: https://pkg.go.dev/github.com/matzehuels/flowter/pkg/core
// [core/flowchart]: https://pkg.go.dev/github.com/matzehuels/flowter/pkg/core/flowchart
// [core/geom]: https://pkg.go.dev/github.com/matzehuels/flowter/pkg/core/geom
// [core/render]: https://pkg.go.dev/github.com/matzehuels/flowter/pkg/core/render
// [render/flowchart/ordering]: https://pkg.go.dev/github.com/matzehuels/flowter/pkg/core/render/flowchart/ordering
// [render/flowchart/layout]: https://pkg.go.dev/github.com/matzehuels/flowter/pkg/core/render/flowchart/layout
// [render/flowchart/shapes]: https://pkg.go.dev/github.com/matzehuels/flowter/pkg/core/render/flowchart/shapes
// [render/flowchart/styles]: https://pkg.go.dev/github.com/matzehuels/flowter/pkg/core/render/flowchart/styles
// [render/flowchart/sink]: https://pkg.go.dev/github.com/matzehuels/flowter/pkg/core/render/flowchart/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/flowter/pkg/core/render/nodelink
// [graph]: https://pkg.go.dev/github.com/matzehuels/flowter/pkg/graph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flowter/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/flowter/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/flowter/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/flowter/pkg/observability
package pkg
