package geom

// Direction is a cardinal direction.
type Direction string

// Cardinal directions.
const (
	North Direction = "n"
	South Direction = "s"
	East  Direction = "e"
	West  Direction = "w"
)

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	switch d {
	case North, South, East, West:
		return true
	}
	return false
}

// Opposite returns the direction facing d. Invalid directions map to
// themselves.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return d
}

// Vertical reports whether d points along the y axis.
func (d Direction) Vertical() bool { return d == North || d == South }

// String returns the single-letter form.
func (d Direction) String() string { return string(d) }

// Perimeter returns the point where a w×h box anchored at its top-left
// corner meets direction d: top-center for north, bottom-center for south,
// right-center for east and left-center for west. ok is false for an
// invalid direction.
func Perimeter(d Direction, w, h float64) (p Point, ok bool) {
	switch d {
	case North:
		return Point{X: w / 2, Y: 0}, true
	case West:
		return Point{X: 0, Y: h / 2}, true
	case East:
		return Point{X: w, Y: h / 2}, true
	case South:
		return Point{X: w / 2, Y: h}, true
	}
	return Point{}, false
}
