package shapes

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/flowter/pkg/core/flowchart"
	"github.com/matzehuels/flowter/pkg/core/geom"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/layout"
	"github.com/matzehuels/flowter/pkg/errors"
)

func TestNodePath(t *testing.T) {
	tests := []struct {
		symbol flowchart.NodeSymbol
		w, h   float64
		want   string
	}{
		{flowchart.SymbolRectangle, 150, 70, "M 1 1 H 149 V 69 H 1 Z"},
		{flowchart.SymbolParallelogram, 150, 70, "M 16 1 H 149 L 134 69 H 1 Z"},
		{flowchart.SymbolRhombus, 187.5, 87.5, "M 93.75 1 L 186.5 43.75 L 93.75 86.5 L 1 43.75 Z"},
		{flowchart.SymbolRoundedRectangle, 150, 70, "M 16 1 H 134 A 16 35 0 0 1 134 69 H 16 A 16 35 0 0 1 16 1 Z"},
		{flowchart.SymbolEllipse, 150, 70, "M 1 35 A 74 34 0 1 0 149 35 A 74 34 0 1 0 1 35 Z"},
	}
	for _, tt := range tests {
		t.Run(string(tt.symbol), func(t *testing.T) {
			got, err := NodePath(tt.symbol, tt.w, tt.h, 2)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("NodePath() = %q\nwant %q", got, tt.want)
			}
			if !strings.HasSuffix(got, "Z") {
				t.Error("path is not closed")
			}
		})
	}

	if _, err := NodePath("hexagon", 10, 10, 2); !errors.Is(err, errors.ErrCodeInvalidSymbol) {
		t.Errorf("err = %v, want INVALID_SYMBOL", err)
	}
}

func forward() layout.RenderedEdge {
	return layout.RenderedEdge{
		Edge:         flowchart.Edge{From: "a", To: "b"},
		FromPosition: geom.Pt(200, 95),
		ToPosition:   geom.Pt(100, 165),
		FromExit:     geom.South,
		ToExit:       geom.North,
		Direction:    geom.South,
		Side:         geom.West,
		FontSize:     14,
	}
}

func TestRenderEdgeBentForward(t *testing.T) {
	g, err := RenderEdge(forward(), EdgeOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if g.Shape != ShapeBentForward || g.Padding != 10 {
		t.Errorf("shape = %s pad %v", g.Shape, g.Padding)
	}
	if g.Position != geom.Pt(90, 85) || g.Width != 120 || g.Height != 90 {
		t.Errorf("surface = %v %vx%v", g.Position, g.Width, g.Height)
	}
	wantPoints := []geom.Point{{X: 110, Y: 10}, {X: 110, Y: 45}, {X: 10, Y: 45}, {X: 10, Y: 80}}
	if !reflect.DeepEqual(g.Points, wantPoints) {
		t.Errorf("points = %v, want %v", g.Points, wantPoints)
	}
	if g.Path != "M 110 10 V 45 H 10 V 80" {
		t.Errorf("path = %q", g.Path)
	}
	if g.Label != geom.Pt(10, 38) || g.LabelAnchor != AnchorStart {
		t.Errorf("label = %v %s", g.Label, g.LabelAnchor)
	}
	if g.ViewBox() != "0 0 120 90" {
		t.Errorf("viewBox = %q", g.ViewBox())
	}
}

func TestRenderEdgeStraight(t *testing.T) {
	e := forward()
	e.Type = flowchart.EdgeCross
	g, err := RenderEdge(e, EdgeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if g.Shape != ShapeStraight {
		t.Errorf("shape = %s, want straight", g.Shape)
	}
	if g.Path != "M 110 10 L 10 80" {
		t.Errorf("path = %q", g.Path)
	}
}

func TestRenderEdgeBentBackward(t *testing.T) {
	e := layout.RenderedEdge{
		Edge:         flowchart.Edge{From: "b", To: "a"},
		FromPosition: geom.Pt(175, 200),
		ToPosition:   geom.Pt(175, 60),
		FromExit:     geom.East,
		ToExit:       geom.East,
		Direction:    geom.North,
		Side:         geom.East,
		FontSize:     14,
	}
	g, err := RenderEdge(e, EdgeOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if g.Shape != ShapeBentBackward || g.Padding != 20 {
		t.Errorf("shape = %s pad %v", g.Shape, g.Padding)
	}
	if g.Position != geom.Pt(155, 40) || g.Width != 40 || g.Height != 180 {
		t.Errorf("surface = %v %vx%v", g.Position, g.Width, g.Height)
	}
	if g.Path != "M 20 160 H 30 V 20 H 20" {
		t.Errorf("path = %q", g.Path)
	}
	if g.Label != geom.Pt(20, 83) || g.LabelAnchor != AnchorEnd {
		t.Errorf("label = %v %s", g.Label, g.LabelAnchor)
	}

	e.Side = geom.West
	e.FromPosition, e.ToPosition = geom.Pt(25, 200), geom.Pt(25, 60)
	g, err = RenderEdge(e, EdgeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if g.Path != "M 20 160 H 10 V 20 H 20" {
		t.Errorf("west path = %q", g.Path)
	}
}

func TestRenderEdgeCircular(t *testing.T) {
	e := layout.RenderedEdge{
		Edge:         flowchart.Edge{From: "a", To: "a"},
		FromPosition: geom.Pt(100, 25),
		ToPosition:   geom.Pt(100, 95),
		FromExit:     geom.North,
		ToExit:       geom.South,
		Direction:    geom.West,
		Side:         geom.East,
		IsCircular:   true,
		FontSize:     14,
	}
	g, err := RenderEdge(e, EdgeOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if g.Shape != ShapeCircular {
		t.Errorf("shape = %s", g.Shape)
	}
	if g.Position != geom.Pt(80, 5) || g.Width != 210 || g.Height != 110 {
		t.Errorf("surface = %v %vx%v", g.Position, g.Width, g.Height)
	}
	if !strings.HasPrefix(g.Path, "M 20 20 A ") || !strings.HasSuffix(g.Path, " 52 0 1 1 20 90") {
		t.Errorf("path = %q", g.Path)
	}
	if g.Label != geom.Pt(190, 55) || g.LabelAnchor != AnchorEnd {
		t.Errorf("label = %v %s", g.Label, g.LabelAnchor)
	}

	e.ToPosition = geom.Pt(120, 95)
	if _, err := RenderEdge(e, EdgeOptions{}); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Errorf("err = %v, want INVALID_GEOMETRY", err)
	}
}

func TestRenderEdgeMarkers(t *testing.T) {
	tests := []struct {
		marker     flowchart.EdgeMarker
		start, end bool
	}{
		{"", false, true},
		{flowchart.MarkerEnd, false, true},
		{flowchart.MarkerBoth, true, true},
		{flowchart.MarkerStart, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.marker), func(t *testing.T) {
			e := forward()
			e.Marker = tt.marker
			g, err := RenderEdge(e, EdgeOptions{Namespace: "fc"})
			if err != nil {
				t.Fatal(err)
			}
			if g.MarkerStart != tt.start || g.MarkerEnd != tt.end {
				t.Errorf("markers = %v/%v, want %v/%v", g.MarkerStart, g.MarkerEnd, tt.start, tt.end)
			}
			if g.ArrowID != "fc-arrow-a-b" {
				t.Errorf("ArrowID = %q", g.ArrowID)
			}
		})
	}
}

func TestSelectEdgeShape(t *testing.T) {
	tests := []struct {
		name string
		edge layout.RenderedEdge
		want EdgeShape
	}{
		{"south", layout.RenderedEdge{Direction: geom.South}, ShapeBentForward},
		{"east", layout.RenderedEdge{Direction: geom.East}, ShapeBentForward},
		{"north", layout.RenderedEdge{Direction: geom.North}, ShapeBentBackward},
		{"west", layout.RenderedEdge{Direction: geom.West}, ShapeBentBackward},
		{"cross", layout.RenderedEdge{Edge: flowchart.Edge{Type: flowchart.EdgeCross}, Direction: geom.North}, ShapeStraight},
		{"loop", layout.RenderedEdge{Edge: flowchart.Edge{Type: flowchart.EdgeCross}, IsCircular: true}, ShapeCircular},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectEdgeShape(tt.edge)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("SelectEdgeShape() = %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := SelectEdgeShape(layout.RenderedEdge{Direction: "up"}); !errors.Is(err, errors.ErrCodeInvalidDirection) {
		t.Errorf("err = %v, want INVALID_DIRECTION", err)
	}
}

func TestPaddingSize(t *testing.T) {
	for d, want := range map[geom.Direction]float64{geom.South: 10, geom.East: 10, geom.North: 20, geom.West: 20} {
		got, err := PaddingSize(d)
		if err != nil || got != want {
			t.Errorf("PaddingSize(%q) = %v, %v; want %v", d, got, err, want)
		}
	}
	if _, err := PaddingSize(""); err == nil {
		t.Error("expected error for empty direction")
	}
}

func TestRenderLayoutEdges(t *testing.T) {
	fc := flowchart.Flowchart{
		Nodes: map[string]flowchart.Node{
			"a": {Text: "A"}, "b": {Text: "B"}, "c": {Text: "C"},
		},
		Edges: []flowchart.Edge{
			{From: "a", To: "b"}, {From: "a", To: "c"}, {From: "b", To: "c"},
			{From: "c", To: "a"}, {From: "c", To: "c"},
		},
	}
	for _, mode := range []flowchart.Mode{flowchart.ModeVertical, flowchart.ModeHorizontal} {
		l, err := layout.Build(fc, flowchart.Config{Mode: mode})
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range l.Edges {
			if _, err := RenderEdge(e, EdgeOptions{}); err != nil {
				t.Errorf("%s: %s->%s: %v", mode, e.From, e.To, err)
			}
		}
	}
}
