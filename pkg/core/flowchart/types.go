package flowchart

import (
	"github.com/matzehuels/flowter/pkg/errors"
)

// =============================================================================
// Enumerations
// =============================================================================

// Mode selects the flow direction of the layout.
type Mode string

const (
	// ModeVertical stacks rows top-to-bottom.
	ModeVertical Mode = "vertical"
	// ModeHorizontal stacks rows left-to-right.
	ModeHorizontal Mode = "horizontal"
)

// NodeSymbol is the outline drawn for a node.
type NodeSymbol string

const (
	SymbolRoundedRectangle NodeSymbol = "rounded-rectangle"
	SymbolEllipse          NodeSymbol = "ellipse"
	SymbolRectangle        NodeSymbol = "rectangle"
	SymbolParallelogram    NodeSymbol = "parallelogram"
	SymbolRhombus          NodeSymbol = "rhombus"
)

// EdgeType selects how an edge is routed.
type EdgeType string

const (
	// EdgeCross draws a straight line between the endpoints.
	EdgeCross EdgeType = "cross"
	// EdgeBent draws an orthogonal path with right-angle turns.
	EdgeBent EdgeType = "bent"
)

// EdgeMarker selects where arrowheads are drawn.
type EdgeMarker string

const (
	MarkerStart EdgeMarker = "start"
	MarkerEnd   EdgeMarker = "end"
	MarkerBoth  EdgeMarker = "both"
)

// Symbols lists every node symbol.
var Symbols = []NodeSymbol{
	SymbolRoundedRectangle, SymbolEllipse, SymbolRectangle, SymbolParallelogram, SymbolRhombus,
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m == ModeVertical || m == ModeHorizontal }

// Valid reports whether s is a known symbol.
func (s NodeSymbol) Valid() bool {
	switch s {
	case SymbolRoundedRectangle, SymbolEllipse, SymbolRectangle, SymbolParallelogram, SymbolRhombus:
		return true
	}
	return false
}

// Valid reports whether t is a known edge type.
func (t EdgeType) Valid() bool { return t == EdgeCross || t == EdgeBent }

// Valid reports whether m is a known marker.
func (m EdgeMarker) Valid() bool { return m == MarkerStart || m == MarkerEnd || m == MarkerBoth }

// ParseMode converts s into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", errors.New(errors.ErrCodeInvalidMode, "unknown mode: %q (must be vertical or horizontal)", s)
	}
	return m, nil
}

// =============================================================================
// Input Model
// =============================================================================

// Node is a flowchart node as supplied by the caller. Nil pointers and empty
// strings mean "use the default".
type Node struct {
	Text     string
	Width    *float64
	Height   *float64
	X        *float64
	Y        *float64
	Symbol   NodeSymbol
	BGColor  string
	FontSize *float64
}

// Edge is a directed connection between two node ids.
type Edge struct {
	From     string
	To       string
	Text     string
	Color    string
	Type     EdgeType
	Marker   EdgeMarker
	FontSize *float64
}

// Flowchart is the complete input to a layout pass.
type Flowchart struct {
	Nodes map[string]Node
	Edges []Edge
}

// EdgeTypeOrDefault returns the edge's type, defaulting to bent.
func (e Edge) EdgeTypeOrDefault() EdgeType {
	if e.Type == "" {
		return EdgeBent
	}
	return e.Type
}

// MarkerOrDefault returns the edge's marker, defaulting to end.
func (e Edge) MarkerOrDefault() EdgeMarker {
	if e.Marker == "" {
		return MarkerEnd
	}
	return e.Marker
}

// Validate checks the closed enumerations and the edge references of fc.
// The layout itself trusts its input; this is the boundary check callers
// run on untrusted documents.
func (fc Flowchart) Validate() error {
	for id, n := range fc.Nodes {
		if err := errors.ValidateNodeID(id); err != nil {
			return err
		}
		if n.Symbol != "" && !n.Symbol.Valid() {
			return errors.New(errors.ErrCodeInvalidSymbol, "node %q: unknown symbol %q", id, n.Symbol)
		}
		if err := errors.ValidateColor(n.BGColor); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "node %q", id)
		}
		if err := finiteFields("node "+id, map[string]*float64{
			"x": n.X, "y": n.Y, "width": n.Width, "height": n.Height, "font_size": n.FontSize,
		}); err != nil {
			return err
		}
	}
	for i, e := range fc.Edges {
		if _, ok := fc.Nodes[e.From]; !ok {
			return errors.New(errors.ErrCodeUnknownNode, "edge %d: unknown source node %q", i, e.From)
		}
		if _, ok := fc.Nodes[e.To]; !ok {
			return errors.New(errors.ErrCodeUnknownNode, "edge %d: unknown target node %q", i, e.To)
		}
		if e.Type != "" && !e.Type.Valid() {
			return errors.New(errors.ErrCodeInvalidEdgeType, "edge %d: unknown type %q", i, e.Type)
		}
		if e.Marker != "" && !e.Marker.Valid() {
			return errors.New(errors.ErrCodeInvalidMarker, "edge %d: unknown marker %q", i, e.Marker)
		}
		if err := errors.ValidateColor(e.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "edge %d", i)
		}
		if e.FontSize != nil && !finite(*e.FontSize) {
			return errors.New(errors.ErrCodeInvalidInput, "edge %d: font_size must be a finite number", i)
		}
	}
	return nil
}

// finiteFields rejects NaN and infinite values among the set fields. An
// infinite coordinate would otherwise be mistaken for an unset one.
func finiteFields(owner string, fields map[string]*float64) error {
	for name, p := range fields {
		if p != nil && !finite(*p) {
			return errors.New(errors.ErrCodeInvalidInput, "%s: %s must be a finite number, got %v", owner, name, *p)
		}
	}
	return nil
}

// Float returns a pointer to v, for populating optional fields.
func Float(v float64) *float64 { return &v }
