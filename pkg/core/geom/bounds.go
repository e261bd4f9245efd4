package geom

// Range is a closed interval on a single axis.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Size returns Max - Min.
func (r Range) Size() float64 { return r.Max - r.Min }

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	X Range `json:"x"`
	Y Range `json:"y"`
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.X.Size() }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.Y.Size() }

// Include grows b to cover the rectangle at (x, y) with size w×h. The first
// call on an empty Bounds should go through [NewBounds] instead.
func (b *Bounds) Include(x, y, w, h float64) {
	b.X.Min = min(b.X.Min, x)
	b.Y.Min = min(b.Y.Min, y)
	b.X.Max = max(b.X.Max, x+w)
	b.Y.Max = max(b.Y.Max, y+h)
}

// NewBounds returns the bounds of a single w×h rectangle at (x, y).
func NewBounds(x, y, w, h float64) Bounds {
	return Bounds{
		X: Range{Min: x, Max: x + w},
		Y: Range{Min: y, Max: y + h},
	}
}

// Pad returns b expanded by dx on both horizontal ends and dy on both
// vertical ends.
func (b Bounds) Pad(dx, dy float64) Bounds {
	return Bounds{
		X: Range{Min: b.X.Min - dx, Max: b.X.Max + dx},
		Y: Range{Min: b.Y.Min - dy, Max: b.Y.Max + dy},
	}
}
