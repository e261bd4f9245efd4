package graph

import (
	"fmt"

	"github.com/matzehuels/flowter/pkg/core/flowchart"
)

// =============================================================================
// Document - Flowchart Input Format
// =============================================================================

// Document is the serialized form of a flowchart and its configuration.
type Document struct {
	// Mode overrides Config.Mode when set.
	Mode   string              `json:"mode,omitempty" yaml:"mode,omitempty" toml:"mode,omitempty" validate:"omitempty,oneof=vertical horizontal"`
	Config flowchart.Config    `json:"config,omitzero" yaml:"config,omitempty" toml:"config,omitempty"`
	Nodes  map[string]NodeSpec `json:"nodes" yaml:"nodes" toml:"nodes" validate:"dive"`
	Edges  []EdgeSpec          `json:"edges" yaml:"edges" toml:"edges" validate:"dive"`
}

// NodeSpec is a node as written in a document. Text may be any scalar; it
// is converted to its string form.
type NodeSpec struct {
	Text     any      `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty"`
	Width    *float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty" validate:"omitempty,gt=0"`
	Height   *float64 `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty" validate:"omitempty,gt=0"`
	X        *float64 `json:"x,omitempty" yaml:"x,omitempty" toml:"x,omitempty"`
	Y        *float64 `json:"y,omitempty" yaml:"y,omitempty" toml:"y,omitempty"`
	Symbol   string   `json:"symbol,omitempty" yaml:"symbol,omitempty" toml:"symbol,omitempty" validate:"omitempty,oneof=rounded-rectangle ellipse rectangle parallelogram rhombus"`
	BGColor  string   `json:"bgcolor,omitempty" yaml:"bgcolor,omitempty" toml:"bgcolor,omitempty"`
	FontSize *float64 `json:"font_size,omitempty" yaml:"font_size,omitempty" toml:"font_size,omitempty" validate:"omitempty,gt=0"`
}

// EdgeSpec is an edge as written in a document.
type EdgeSpec struct {
	From     string   `json:"from" yaml:"from" toml:"from" validate:"required"`
	To       string   `json:"to" yaml:"to" toml:"to" validate:"required"`
	Text     any      `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty"`
	Color    string   `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Type     string   `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty" validate:"omitempty,oneof=cross bent"`
	Marker   string   `json:"marker,omitempty" yaml:"marker,omitempty" toml:"marker,omitempty" validate:"omitempty,oneof=start end both"`
	FontSize *float64 `json:"font_size,omitempty" yaml:"font_size,omitempty" toml:"font_size,omitempty" validate:"omitempty,gt=0"`
}

// Flowchart converts d into layout input. The returned config has defaults
// applied and the document mode folded in.
func (d Document) Flowchart() (flowchart.Flowchart, flowchart.Config, error) {
	cfg := d.Config
	if d.Mode != "" {
		cfg.Mode = flowchart.Mode(d.Mode)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return flowchart.Flowchart{}, flowchart.Config{}, err
	}

	fc := flowchart.Flowchart{
		Nodes: make(map[string]flowchart.Node, len(d.Nodes)),
		Edges: make([]flowchart.Edge, 0, len(d.Edges)),
	}
	for id, n := range d.Nodes {
		fc.Nodes[id] = flowchart.Node{
			Text:     scalarText(n.Text),
			Width:    n.Width,
			Height:   n.Height,
			X:        n.X,
			Y:        n.Y,
			Symbol:   flowchart.NodeSymbol(n.Symbol),
			BGColor:  n.BGColor,
			FontSize: n.FontSize,
		}
	}
	for _, e := range d.Edges {
		fc.Edges = append(fc.Edges, flowchart.Edge{
			From:     e.From,
			To:       e.To,
			Text:     scalarText(e.Text),
			Color:    e.Color,
			Type:     flowchart.EdgeType(e.Type),
			Marker:   flowchart.EdgeMarker(e.Marker),
			FontSize: e.FontSize,
		})
	}

	if err := fc.Validate(); err != nil {
		return flowchart.Flowchart{}, flowchart.Config{}, err
	}
	return fc, cfg, nil
}

// FromFlowchart builds a Document from layout input.
func FromFlowchart(fc flowchart.Flowchart, cfg flowchart.Config) Document {
	d := Document{
		Mode:   string(cfg.Mode),
		Config: cfg,
		Nodes:  make(map[string]NodeSpec, len(fc.Nodes)),
		Edges:  make([]EdgeSpec, 0, len(fc.Edges)),
	}
	d.Config.Mode = ""
	for id, n := range fc.Nodes {
		spec := NodeSpec{
			Width:    n.Width,
			Height:   n.Height,
			X:        n.X,
			Y:        n.Y,
			Symbol:   string(n.Symbol),
			BGColor:  n.BGColor,
			FontSize: n.FontSize,
		}
		if n.Text != "" {
			spec.Text = n.Text
		}
		d.Nodes[id] = spec
	}
	for _, e := range fc.Edges {
		spec := EdgeSpec{
			From:     e.From,
			To:       e.To,
			Color:    e.Color,
			Type:     string(e.Type),
			Marker:   string(e.Marker),
			FontSize: e.FontSize,
		}
		if e.Text != "" {
			spec.Text = e.Text
		}
		d.Edges = append(d.Edges, spec)
	}
	return d
}

// scalarText renders a decoded scalar as label text. Absent text is empty.
func scalarText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
