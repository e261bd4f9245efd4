package flowchart

import (
	"math"

	"github.com/matzehuels/flowter/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidthMargin pads the canvas left and right.
	DefaultWidthMargin = 25.0

	// DefaultHeightMargin pads the canvas top and bottom.
	DefaultHeightMargin = 25.0

	// DefaultFontSize applies to nodes and edges without their own size.
	DefaultFontSize = 14.0

	// DefaultNodeWidth is the width of a node without an explicit width.
	DefaultNodeWidth = 150.0

	// DefaultNodeHeight is the height of a node without an explicit height.
	DefaultNodeHeight = 70.0

	// DefaultRowSpacing separates consecutive rows (vertical mode) or
	// consecutive nodes within a row (horizontal mode).
	DefaultRowSpacing = 70.0

	// DefaultColSpacing separates nodes within a row (vertical mode) or
	// consecutive rows (horizontal mode).
	DefaultColSpacing = 50.0

	// DefaultBGColor fills nodes without a background color.
	DefaultBGColor = "#ffffff"

	// DefaultStrokeWidth is the outline width of nodes and edges.
	DefaultStrokeWidth = 2.0

	// DefaultStrokeColor is the outline color of nodes and edges.
	DefaultStrokeColor = "#000000"

	// DefaultMode is the default flow direction.
	DefaultMode = ModeVertical
)

// RhombusRatio enlarges rhombus nodes on both axes to compensate for the
// whitespace the diamond leaves in its bounding box.
const RhombusRatio = 1.25

// =============================================================================
// Config
// =============================================================================

// Config is the explicit configuration threaded through every layout and
// shaping call.
//
// Margins and spacings are nil when unset; zero is a valid value. They are
// not range-checked: a node with a custom position reduces the spacing after
// it by its deviation, which can go negative and make nodes overlap.
type Config struct {
	Mode         Mode     `json:"mode" yaml:"mode" toml:"mode"`
	WidthMargin  *float64 `json:"width_margin,omitempty" yaml:"width_margin,omitempty" toml:"width_margin,omitempty"`
	HeightMargin *float64 `json:"height_margin,omitempty" yaml:"height_margin,omitempty" toml:"height_margin,omitempty"`
	NodeWidth    float64  `json:"node_width" yaml:"node_width" toml:"node_width"`
	NodeHeight   float64  `json:"node_height" yaml:"node_height" toml:"node_height"`
	RowSpacing   *float64 `json:"row_spacing,omitempty" yaml:"row_spacing,omitempty" toml:"row_spacing,omitempty"`
	ColSpacing   *float64 `json:"col_spacing,omitempty" yaml:"col_spacing,omitempty" toml:"col_spacing,omitempty"`
	FontSize     float64  `json:"font_size" yaml:"font_size" toml:"font_size"`
	BGColor      string   `json:"bgcolor" yaml:"bgcolor" toml:"bgcolor"`
	StrokeWidth  float64  `json:"stroke_width" yaml:"stroke_width" toml:"stroke_width"`
	StrokeColor  string   `json:"stroke_color" yaml:"stroke_color" toml:"stroke_color"`

	// Namespace prefixes generated SVG ids so several charts can share a
	// document.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty" toml:"namespace"`
}

// DefaultConfig returns a Config with every documented default applied.
func DefaultConfig() Config {
	return Config{
		Mode:         DefaultMode,
		WidthMargin:  Float(DefaultWidthMargin),
		HeightMargin: Float(DefaultHeightMargin),
		NodeWidth:    DefaultNodeWidth,
		NodeHeight:   DefaultNodeHeight,
		RowSpacing:   Float(DefaultRowSpacing),
		ColSpacing:   Float(DefaultColSpacing),
		FontSize:     DefaultFontSize,
		BGColor:      DefaultBGColor,
		StrokeWidth:  DefaultStrokeWidth,
		StrokeColor:  DefaultStrokeColor,
	}
}

// SetDefaults fills unset fields with their defaults. Margins and
// spacings are only defaulted when nil, so zero and negative values are
// kept as given.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	if c.Mode == "" {
		c.Mode = d.Mode
	}
	if c.WidthMargin == nil {
		c.WidthMargin = d.WidthMargin
	}
	if c.HeightMargin == nil {
		c.HeightMargin = d.HeightMargin
	}
	if c.NodeWidth == 0 {
		c.NodeWidth = d.NodeWidth
	}
	if c.NodeHeight == 0 {
		c.NodeHeight = d.NodeHeight
	}
	if c.RowSpacing == nil {
		c.RowSpacing = d.RowSpacing
	}
	if c.ColSpacing == nil {
		c.ColSpacing = d.ColSpacing
	}
	if c.FontSize == 0 {
		c.FontSize = d.FontSize
	}
	if c.BGColor == "" {
		c.BGColor = d.BGColor
	}
	if c.StrokeWidth == 0 {
		c.StrokeWidth = d.StrokeWidth
	}
	if c.StrokeColor == "" {
		c.StrokeColor = d.StrokeColor
	}
}

// Margins returns the width and height margins. Unset margins take their
// defaults.
func (c Config) Margins() (width, height float64) {
	return valueOr(c.WidthMargin, DefaultWidthMargin), valueOr(c.HeightMargin, DefaultHeightMargin)
}

// Spacing returns the row and column spacing. Unset spacings take their
// defaults.
func (c Config) Spacing() (row, col float64) {
	return valueOr(c.RowSpacing, DefaultRowSpacing), valueOr(c.ColSpacing, DefaultColSpacing)
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Validate checks the fields drawn from closed sets and rejects non-finite
// numbers.
func (c Config) Validate() error {
	if !c.Mode.Valid() {
		return errors.New(errors.ErrCodeInvalidMode, "unknown mode: %q (must be vertical or horizontal)", c.Mode)
	}
	wm, hm := c.Margins()
	rs, cs := c.Spacing()
	numbers := []struct {
		name string
		v    float64
	}{
		{"width_margin", wm},
		{"height_margin", hm},
		{"row_spacing", rs},
		{"col_spacing", cs},
		{"node_width", c.NodeWidth},
		{"node_height", c.NodeHeight},
		{"font_size", c.FontSize},
		{"stroke_width", c.StrokeWidth},
	}
	for _, n := range numbers {
		if !finite(n.v) {
			return errors.New(errors.ErrCodeInvalidInput, "config %s must be a finite number, got %v", n.name, n.v)
		}
	}
	if err := errors.ValidateColor(c.BGColor); err != nil {
		return err
	}
	return errors.ValidateColor(c.StrokeColor)
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
