// Package graph provides the wire formats of flowter: input documents and
// exported layout geometry.
//
// # Documents
//
// A [Document] describes a flowchart in JSON, YAML or TOML:
//
//	mode: vertical
//	config:
//	  node_width: 160
//	nodes:
//	  start: {text: Start, symbol: ellipse}
//	  check: {text: "Ready?", symbol: rhombus}
//	  done:  {text: Done}
//	edges:
//	  - {from: start, to: check}
//	  - {from: check, to: done, text: "yes"}
//	  - {from: check, to: start, text: "no"}
//
// Edge order matters: rows are assigned in edge declaration order.
//
// Documents are checked twice. Struct validation (go-playground/validator)
// rejects missing endpoints, unknown enumeration values and non-positive
// sizes while decoding; [Document.Flowchart] then checks node ids, colors
// and edge references.
//
// Common operations:
//
//	doc, _ := graph.ReadDocumentFile("chart.yaml")   // File → Document
//	fc, cfg, _ := doc.Flowchart()                     // Document → flowchart input
//	graph.WriteDocument(w, doc, graph.FormatTOML)     // Document → TOML
//
// # Layouts
//
// [Layout] is the JSON form of a computed layout: node boxes, outline paths,
// edge surfaces and path data, all in chart coordinates. It is produced by
// the sink package and returned by the HTTP API.
//
// # Concurrency
//
// All functions are safe for concurrent use.
package graph
