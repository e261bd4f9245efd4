package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/flowter/pkg/errors"
)

// =============================================================================
// Layout - Geometry Export Format
// =============================================================================

// Layout is the serialized geometry of a laid-out flowchart.
//
// Node and edge coordinates are in layout space. Origin is the top-left
// corner of the canvas in that space and Width/Height its size, margins
// included. Edge surfaces carry their own coordinate system: Path, From and
// To are relative to Surface.X/Surface.Y.
type Layout struct {
	Mode   string  `json:"mode"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Origin Point   `json:"origin"`
	Bounds Rect    `json:"bounds"`

	Nodes []Node     `json:"nodes"`
	Edges []Edge     `json:"edges,omitempty"`
	Rows  [][]string `json:"rows"`
}

// Point is a coordinate pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned box given by its top-left corner and size.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Node is a positioned node.
type Node struct {
	ID       string  `json:"id"`
	Text     string  `json:"text,omitempty"`
	Symbol   string  `json:"symbol"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	BGColor  string  `json:"bgcolor"`
	FontSize float64 `json:"font_size"`
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	Path     string  `json:"path"`
}

// Edge is a routed edge.
type Edge struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Text      string  `json:"text,omitempty"`
	Color     string  `json:"color,omitempty"`
	Type      string  `json:"type"`
	Marker    string  `json:"marker"`
	FontSize  float64 `json:"font_size"`
	Direction string  `json:"direction"`
	Side      string  `json:"side"`
	FromExit  string  `json:"from_exit"`
	ToExit    string  `json:"to_exit"`
	Circular  bool    `json:"circular,omitempty"`

	// FromPosition and ToPosition are the attachment points in layout space.
	FromPosition Point `json:"from_position"`
	ToPosition   Point `json:"to_position"`

	Shape   string `json:"shape"`
	Surface Rect   `json:"surface"`
	Path    string `json:"path"`
	Label   *Label `json:"label,omitempty"`
}

// Label places edge text inside its surface.
type Label struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Anchor string  `json:"anchor"`
}

// NodeCount returns the number of nodes.
func (l *Layout) NodeCount() int { return len(l.Nodes) }

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout. Every edge must
// reference a node of the layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}

	ids := make(map[string]bool, len(l.Nodes))
	for _, n := range l.Nodes {
		if n.ID == "" {
			return Layout{}, errors.New(errors.ErrCodeInvalidNodeID, "layout node without id")
		}
		ids[n.ID] = true
	}
	for _, e := range l.Edges {
		if !ids[e.From] {
			return Layout{}, errors.New(errors.ErrCodeUnknownNode, "edge references unknown node: %q", e.From)
		}
		if !ids[e.To] {
			return Layout{}, errors.New(errors.ErrCodeUnknownNode, "edge references unknown node: %q", e.To)
		}
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
