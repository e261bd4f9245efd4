package shapes

import (
	"math"
	"strings"

	"github.com/matzehuels/flowter/pkg/core/flowchart"
	"github.com/matzehuels/flowter/pkg/core/geom"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/layout"
	"github.com/matzehuels/flowter/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// MinEdgeSize is the padding around every edge surface.
	MinEdgeSize = 10.0

	// DetourSize is the extra padding for north and west flowing edges.
	DetourSize = 10.0

	// ArcSizeRatio divides a self-loop's surface size into its arc radii.
	ArcSizeRatio = 2.1

	// labelOffsetRatio moves labels of routed edges off the path by a
	// multiple of the font size.
	labelOffsetRatio = 1.5
)

// EdgeShape is the drawing variant of an edge.
type EdgeShape string

const (
	ShapeStraight     EdgeShape = "straight"
	ShapeBentForward  EdgeShape = "bent-forward"
	ShapeBentBackward EdgeShape = "bent-backward"
	ShapeCircular     EdgeShape = "circular"
)

// Text anchors for edge labels, matching the SVG text-anchor values.
const (
	AnchorStart = "start"
	AnchorEnd   = "end"
)

// =============================================================================
// Geometry
// =============================================================================

// EdgeOptions configures [RenderEdge].
type EdgeOptions struct {
	// Namespace prefixes the arrow marker id.
	Namespace string
	// StrokeWidth is the line width; zero means the default.
	StrokeWidth float64
}

// EdgeGeometry is the drawable form of an edge.
type EdgeGeometry struct {
	Shape   EdgeShape
	Padding float64

	// Position is the top-left corner of the surface in chart coordinates.
	Position geom.Point
	Width    float64
	Height   float64

	// From, To and Points are relative to the surface.
	From   geom.Point
	To     geom.Point
	Points []geom.Point
	Path   string

	ArrowID     string
	MarkerStart bool
	MarkerEnd   bool

	// Label is the baseline anchor of the edge text, relative to the
	// surface, and LabelAnchor the matching SVG text-anchor.
	Label       geom.Point
	LabelAnchor string
}

// ViewBox returns the SVG viewBox of the surface.
func (g EdgeGeometry) ViewBox() string {
	return "0 0 " + geom.FormatFloat(g.Width) + " " + geom.FormatFloat(g.Height)
}

// SelectEdgeShape picks the drawing variant for e.
func SelectEdgeShape(e layout.RenderedEdge) (EdgeShape, error) {
	if e.IsCircular {
		return ShapeCircular, nil
	}
	if e.EdgeTypeOrDefault() == flowchart.EdgeCross {
		return ShapeStraight, nil
	}
	switch e.Direction {
	case geom.South, geom.East:
		return ShapeBentForward, nil
	case geom.North, geom.West:
		return ShapeBentBackward, nil
	}
	return "", errors.New(errors.ErrCodeInvalidDirection, "unknown edge direction: %q", e.Direction)
}

// PaddingSize returns the surface padding for an edge flowing in d.
func PaddingSize(d geom.Direction) (float64, error) {
	switch d {
	case geom.South, geom.East:
		return MinEdgeSize, nil
	case geom.North, geom.West:
		return MinEdgeSize + DetourSize, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidDirection, "unknown edge direction: %q", d)
}

// ArrowID returns the marker id for an edge from→to.
func ArrowID(namespace, from, to string) string {
	id := "arrow-" + from + "-" + to
	if namespace != "" {
		return namespace + "-" + id
	}
	return id
}

// RenderEdge computes the drawable geometry of e.
func RenderEdge(e layout.RenderedEdge, opts EdgeOptions) (EdgeGeometry, error) {
	if opts.StrokeWidth == 0 {
		opts.StrokeWidth = flowchart.DefaultStrokeWidth
	}

	shape, err := SelectEdgeShape(e)
	if err != nil {
		return EdgeGeometry{}, err
	}
	pad, err := PaddingSize(e.Direction)
	if err != nil {
		return EdgeGeometry{}, err
	}

	marker := e.MarkerOrDefault()
	g := EdgeGeometry{
		Shape:       shape,
		Padding:     pad,
		ArrowID:     ArrowID(opts.Namespace, e.From, e.To),
		MarkerStart: marker == flowchart.MarkerBoth,
		MarkerEnd:   marker == flowchart.MarkerEnd || marker == flowchart.MarkerBoth,
	}

	var lbl labelBox
	switch shape {
	case ShapeCircular:
		lbl, err = g.circular(e, opts.StrokeWidth)
	default:
		lbl, err = g.routed(e)
	}
	if err != nil {
		return EdgeGeometry{}, err
	}
	g.Label, g.LabelAnchor = lbl.anchor(g.Width, g.Height, e.FontSize)

	return g, nil
}

// relative places the endpoints on a surface whose unpadded corner is dom.
func (g *EdgeGeometry) relative(e layout.RenderedEdge, dom geom.Point) {
	offset := geom.Pt(g.Padding, g.Padding).Sub(dom)
	g.Position = dom.Sub(geom.Pt(g.Padding, g.Padding))
	g.From = e.FromPosition.Add(offset)
	g.To = e.ToPosition.Add(offset)
}

// routed handles the straight and bent variants, which share one surface.
func (g *EdgeGeometry) routed(e layout.RenderedEdge) (labelBox, error) {
	rel := e.ToPosition.Sub(e.FromPosition)
	g.Width = math.Abs(rel.X) + 2*g.Padding
	g.Height = math.Abs(rel.Y) + 2*g.Padding
	g.relative(e, e.FromPosition.Min(e.ToPosition))

	from, to := g.From, g.To
	half := geom.Pt(g.Width/2-e.FontSize*labelOffsetRatio, g.Height/2-e.FontSize*labelOffsetRatio)

	switch g.Shape {
	case ShapeStraight:
		g.Points = []geom.Point{from, to}
		g.Path = path("M %s %s L %s %s", from.X, from.Y, to.X, to.Y)
		if e.Direction.Vertical() {
			return labelBox{top: some(half.Y), left: some(g.Padding)}, nil
		}
		return labelBox{left: some(half.X), top: some(g.Padding)}, nil

	case ShapeBentForward:
		lbl, err := g.bentForward(e, rel, half)
		if err != nil {
			return labelBox{}, err
		}
		return lbl, g.pathFromPoints()

	case ShapeBentBackward:
		lbl, err := g.bentBackward(e, half)
		if err != nil {
			return labelBox{}, err
		}
		return lbl, g.pathFromPoints()
	}
	return labelBox{}, errors.New(errors.ErrCodeInvalidGeometry, "unknown edge shape: %q", g.Shape)
}

func (g *EdgeGeometry) bentForward(e layout.RenderedEdge, rel, half geom.Point) (labelBox, error) {
	from, to := g.From, g.To
	switch e.Direction {
	case geom.South:
		mid := (to.Y + g.Padding) * 0.5
		g.Points = []geom.Point{from, geom.Pt(from.X, mid), geom.Pt(to.X, mid), to}
		lbl := labelBox{top: some(half.Y)}
		if rel.X > 0 {
			lbl.right = some(g.Padding)
		} else {
			lbl.left = some(g.Padding)
		}
		return lbl, nil

	case geom.East:
		mid := (to.X + g.Padding) * 0.5
		g.Points = []geom.Point{from, geom.Pt(mid, from.Y), geom.Pt(mid, to.Y), to}
		lbl := labelBox{left: some(half.X)}
		if rel.Y > 0 {
			lbl.bottom = some(g.Padding)
		} else {
			lbl.top = some(g.Padding)
		}
		return lbl, nil
	}
	return labelBox{}, errors.New(errors.ErrCodeInvalidDirection, "invalid direction for bent-forward edge: %q", e.Direction)
}

// bentBackward detours half the padding beyond the endpoint on the routed
// side. When the target lies further toward that side than the source the
// path turns right away; otherwise it runs out to the target's line first.
func (g *EdgeGeometry) bentBackward(e layout.RenderedEdge, half geom.Point) (labelBox, error) {
	from, to := g.From, g.To
	detour := g.Padding / 2

	switch e.Direction {
	case geom.North:
		right := e.Side == geom.East
		if !right {
			detour = -detour
		}
		turnEarly := to.X > from.X
		if right {
			turnEarly = from.X > to.X
		}
		x := to.X + detour
		if turnEarly {
			x = from.X + detour
		}
		g.Points = []geom.Point{from, geom.Pt(x, from.Y), geom.Pt(x, to.Y), to}

		lbl := labelBox{top: some(half.Y)}
		if right {
			lbl.right = some(g.Padding)
		} else {
			lbl.left = some(g.Padding)
		}
		return lbl, nil

	case geom.West:
		bottom := e.Side == geom.South
		if !bottom {
			detour = -detour
		}
		turnEarly := to.Y > from.Y
		if bottom {
			turnEarly = from.Y > to.Y
		}
		y := to.Y + detour
		if turnEarly {
			y = from.Y + detour
		}
		g.Points = []geom.Point{from, geom.Pt(from.X, y), geom.Pt(to.X, y), to}

		lbl := labelBox{left: some(half.X)}
		if bottom {
			lbl.bottom = some(g.Padding)
		} else {
			lbl.top = some(g.Padding)
		}
		return lbl, nil
	}
	return labelBox{}, errors.New(errors.ErrCodeInvalidDirection, "invalid direction for bent-backward edge: %q", e.Direction)
}

// circular draws a self-loop as one arc between two opposite sides of the
// node, bulging toward the routed side.
func (g *EdgeGeometry) circular(e layout.RenderedEdge, stroke float64) (labelBox, error) {
	rel := e.ToPosition.Sub(e.FromPosition)

	var vertical bool
	switch {
	case e.FromPosition.X == e.ToPosition.X:
		vertical = true
	case e.FromPosition.Y == e.ToPosition.Y:
		vertical = false
	default:
		return labelBox{}, errors.New(errors.ErrCodeInvalidGeometry, "invalid circular edge position: %v -> %v", e.FromPosition, e.ToPosition)
	}

	if vertical {
		g.Width = rel.Y * 3
		g.Height = math.Abs(rel.Y) + 2*g.Padding
	} else {
		g.Width = math.Abs(rel.X) + 2*g.Padding
		g.Height = rel.X / 1.25
	}

	dom := e.FromPosition
	switch e.Side {
	case geom.West:
		dom.X -= g.Width - 2*g.Padding
	case geom.North:
		dom.Y -= g.Height - 2*g.Padding
	case geom.South, geom.East:
	default:
		return labelBox{}, errors.New(errors.ErrCodeInvalidSide, "unknown edge side: %q", e.Side)
	}
	g.relative(e, dom)

	rx := math.Floor(g.Width / ArcSizeRatio)
	ry := math.Floor(g.Height / ArcSizeRatio)
	sweep := 0.0
	if e.Side == geom.East || e.Side == geom.North {
		sweep = 1
	}

	from, to := g.From, g.To
	var apex geom.Point
	switch e.Side {
	case geom.East:
		apex = geom.Pt(2*rx-2*stroke, from.Y+rel.Y/2)
	case geom.West:
		apex = geom.Pt(g.Width-2*rx+2*stroke, from.Y+rel.Y/2)
	case geom.South:
		apex = geom.Pt(from.X+rel.X/2, 2*ry-2*stroke)
	case geom.North:
		apex = geom.Pt(from.X+rel.X/2, g.Height-2*ry+2*stroke)
	}
	g.Points = []geom.Point{from, apex, to}
	g.Path = path("M %s %s A %s %s 0 1 %s %s %s", from.X, from.Y, rx, ry, sweep, to.X, to.Y)

	switch e.Direction {
	case geom.East, geom.West:
		lbl := labelBox{top: some(g.Height/2 - e.FontSize)}
		if e.Side == geom.East {
			lbl.right = some(g.Padding)
		} else {
			lbl.left = some(g.Padding)
		}
		return lbl, nil
	case geom.North, geom.South:
		lbl := labelBox{left: some(g.Width/2 - e.FontSize)}
		if e.Side == geom.South {
			lbl.bottom = some(g.Padding)
		} else {
			lbl.top = some(g.Padding)
		}
		return lbl, nil
	}
	return labelBox{}, errors.New(errors.ErrCodeInvalidDirection, "unknown edge direction: %q", e.Direction)
}

// pathFromPoints joins g.Points into move and axis-aligned line commands.
func (g *EdgeGeometry) pathFromPoints() error {
	parts := make([]string, 0, len(g.Points))
	for i, p := range g.Points {
		if i == 0 {
			parts = append(parts, path("M %s %s", p.X, p.Y))
			continue
		}
		prev := g.Points[i-1]
		switch {
		case prev.X == p.X:
			parts = append(parts, path("V %s", p.Y))
		case prev.Y == p.Y:
			parts = append(parts, path("H %s", p.X))
		default:
			return errors.New(errors.ErrCodeInvalidGeometry, "invalid point %v after %v: segment is not axis-aligned", p, prev)
		}
	}
	g.Path = strings.Join(parts, " ")
	return nil
}

// =============================================================================
// Labels
// =============================================================================

// labelBox holds box-model offsets of an edge label within its surface.
// Unset sides are nil.
type labelBox struct {
	top, left, right, bottom *float64
}

func some(v float64) *float64 { return &v }

// anchor converts the offsets into a text baseline point.
func (b labelBox) anchor(w, h, fontSize float64) (geom.Point, string) {
	p := geom.Pt(0, fontSize)
	align := AnchorStart

	switch {
	case b.left != nil:
		p.X = *b.left
	case b.right != nil:
		p.X = w - *b.right
		align = AnchorEnd
	}
	switch {
	case b.top != nil:
		p.Y = *b.top + fontSize
	case b.bottom != nil:
		p.Y = h - *b.bottom
	}
	return p, align
}
