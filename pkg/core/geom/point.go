package geom

import (
	"math"
	"strconv"
)

// Unset marks a coordinate that has not been assigned. It is distinct from
// every finite coordinate a layout can produce.
var Unset = math.Inf(-1)

// IsUnset reports whether v holds the [Unset] sentinel.
func IsUnset(v float64) bool { return math.IsInf(v, -1) }

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Min returns the component-wise minimum of p and q.
func (p Point) Min(q Point) Point { return Point{X: min(p.X, q.X), Y: min(p.Y, q.Y)} }

// FormatFloat renders v in the shortest form that round-trips, which keeps
// SVG path data free of trailing zeros.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
