package sink

import (
	"testing"

	"github.com/matzehuels/flowter/pkg/core/flowchart"
	"github.com/matzehuels/flowter/pkg/graph"
)

func TestExport(t *testing.T) {
	l := sample(t, flowchart.Config{})
	out, err := Export(l)
	if err != nil {
		t.Fatal(err)
	}

	if out.Mode != "vertical" {
		t.Errorf("mode = %q, want vertical", out.Mode)
	}
	if out.Width != l.Width || out.Height != l.Height {
		t.Errorf("size = %vx%v, want %vx%v", out.Width, out.Height, l.Width, l.Height)
	}
	if got := len(out.Rows); got != 3 {
		t.Fatalf("rows = %d, want 3", got)
	}
	if out.Rows[0][0] != "start" || out.Rows[1][0] != "check" || out.Rows[2][0] != "done" {
		t.Errorf("rows = %v", out.Rows)
	}
	if out.NodeCount() != 3 {
		t.Errorf("nodes = %d, want 3", out.NodeCount())
	}
	for _, n := range out.Nodes {
		if n.Path == "" {
			t.Errorf("node %s has no outline path", n.ID)
		}
	}

	shapes := map[string]string{}
	labels := 0
	for _, e := range out.Edges {
		shapes[e.From+"->"+e.To] = e.Shape
		if e.Label != nil {
			labels++
		}
	}
	want := map[string]string{
		"start->check": "bent-forward",
		"check->done":  "bent-forward",
		"check->start": "bent-backward",
		"done->done":   "circular",
	}
	for k, v := range want {
		if shapes[k] != v {
			t.Errorf("edge %s shape = %q, want %q", k, shapes[k], v)
		}
	}
	if labels != 2 {
		t.Errorf("labelled edges = %d, want 2", labels)
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	data, err := RenderJSON(sample(t, flowchart.Config{Mode: flowchart.ModeHorizontal}))
	if err != nil {
		t.Fatal(err)
	}
	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if l.Mode != "horizontal" || len(l.Edges) != 4 {
		t.Errorf("layout = %+v", l)
	}
}

func TestExportEmpty(t *testing.T) {
	l := sample(t, flowchart.Config{})
	l.Rows = nil
	l.Edges = nil
	out, err := Export(l)
	if err != nil {
		t.Fatal(err)
	}
	if out.Nodes == nil || len(out.Nodes) != 0 {
		t.Errorf("nodes = %v, want empty non-nil slice", out.Nodes)
	}
}
