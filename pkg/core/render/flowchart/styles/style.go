package styles

import "bytes"

// Style defines the visual appearance of a flowchart.
type Style interface {
	// RenderDefs writes SVG <defs> content, including arrow markers.
	RenderDefs(buf *bytes.Buffer, markers []Marker)
	// RenderNode writes the outline of a single node.
	RenderNode(buf *bytes.Buffer, n Node)
	// RenderEdge writes an edge surface with its path and label.
	RenderEdge(buf *bytes.Buffer, e Edge)
	// RenderText writes a node's label.
	RenderText(buf *bytes.Buffer, n Node)
}

// Node contains everything needed to draw a node.
type Node struct {
	ID          string
	Label       string
	X, Y, W, H  float64
	Path        string // Outline relative to (X, Y)
	Fill        string
	Stroke      string
	StrokeWidth float64
	FontSize    float64
}

// Edge contains everything needed to draw an edge surface.
type Edge struct {
	FromID, ToID string
	X, Y, W, H   float64 // Surface box in chart coordinates
	ViewBox      string
	Path         string // Relative to the surface
	Color        string
	StrokeWidth  float64
	MarkerStart  string // Marker id, empty for none
	MarkerEnd    string
	Label        string
	LabelX       float64
	LabelY       float64
	LabelAnchor  string
	FontSize     float64
}

// Marker is an arrowhead definition.
type Marker struct {
	ID    string
	Color string
}
