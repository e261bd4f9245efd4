package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/flowter/pkg/core/flowchart"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/layout"
	"github.com/matzehuels/flowter/pkg/errors"
)

func build(t *testing.T, mode flowchart.Mode) layout.Layout {
	t.Helper()
	fc := flowchart.Flowchart{
		Nodes: map[string]flowchart.Node{
			"start":  {Text: "Start", Symbol: flowchart.SymbolEllipse},
			"ask":    {Text: `Say "hi"?`, Symbol: flowchart.SymbolRhombus},
			"yes":    {Text: "Yes", BGColor: "#cfc"},
			"no-way": {Text: "No", Symbol: flowchart.SymbolParallelogram},
		},
		Edges: []flowchart.Edge{
			{From: "start", To: "ask"},
			{From: "ask", To: "yes", Text: "yes"},
			{From: "ask", To: "no-way", Marker: flowchart.MarkerBoth, Color: "#c00"},
			{From: "no-way", To: "start", Marker: flowchart.MarkerStart},
		},
	}
	l, err := layout.Build(fc, flowchart.Config{Mode: mode})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(build(t, flowchart.ModeVertical), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=TB;",
		`"start" [label="Start", shape=ellipse, fillcolor="#ffffff"];`,
		`"ask" [label="Say \"hi\"?", shape=diamond`,
		`{ rank=same; "yes"; "no-way"; }`,
		`"ask" -> "yes" [label="yes"];`,
		`"ask" -> "no-way" [color="#c00", dir=both];`,
		`"no-way" -> "start" [dir=none];`,
		`"start" -> "ask";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\nGot:\n%s", want, dot)
		}
	}
}

func TestToDOTHorizontalDetailed(t *testing.T) {
	dot := ToDOT(build(t, flowchart.ModeHorizontal), Options{Detailed: true})
	if !strings.Contains(dot, "rankdir=LR;") {
		t.Error("horizontal layout should use rankdir=LR")
	}
	if !strings.Contains(dot, `label="Yes\nid: yes\nrow: 2"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToMermaid(t *testing.T) {
	out := ToMermaid(build(t, flowchart.ModeVertical), Options{})

	for _, want := range []string{
		"flowchart TB\n",
		`    start(["Start"])`,
		`    ask{"Say #quot;hi#quot;?"}`,
		`    no_way[/"No"/]`,
		`    start --> ask`,
		`    ask -->|"yes"| yes`,
		`    ask <--> no_way`,
		`    no_way --- start`,
		`    style yes fill:#cfc`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ToMermaid() missing %q\nGot:\n%s", want, out)
		}
	}
}

func TestMermaidIDsUnique(t *testing.T) {
	fc := flowchart.Flowchart{
		Nodes: map[string]flowchart.Node{"a-b": {}, "a_b": {}, "1x": {}},
		Edges: []flowchart.Edge{{From: "a-b", To: "a_b"}, {From: "a_b", To: "1x"}},
	}
	l, err := layout.Build(fc, flowchart.Config{})
	if err != nil {
		t.Fatal(err)
	}
	ids := mermaidIDs(l)
	if ids["a-b"] != "a_b" || ids["a_b"] != "a_b_2" || ids["1x"] != "n1x" {
		t.Errorf("ids = %v", ids)
	}
}

func TestValidateDOT(t *testing.T) {
	ctx := context.Background()
	if err := ValidateDOT(ctx, ToDOT(build(t, flowchart.ModeVertical), Options{})); err != nil {
		t.Errorf("ValidateDOT() on generated DOT: %v", err)
	}
	if err := ValidateDOT(ctx, "digraph { a -> "); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateDOT() on broken DOT = %v, want INVALID_FORMAT", err)
	}
}
