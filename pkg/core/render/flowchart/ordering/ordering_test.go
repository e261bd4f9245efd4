package ordering

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/matzehuels/flowter/pkg/core/flowchart"
)

func edges(pairs ...string) []flowchart.Edge {
	out := make([]flowchart.Edge, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, flowchart.Edge{From: pairs[i], To: pairs[i+1]})
	}
	return out
}

func indexes(r Result) map[string]int {
	m := make(map[string]int, len(r.Nodes))
	for id, n := range r.Nodes {
		m[id] = n.Index
	}
	return m
}

func TestOrderNodes(t *testing.T) {
	tests := []struct {
		name      string
		edges     []flowchart.Edge
		want      map[string]int
		wantOrder []string
		wantMax   int
	}{
		{
			name:      "empty",
			edges:     nil,
			want:      map[string]int{},
			wantOrder: nil,
			wantMax:   0,
		},
		{
			name:      "fan out",
			edges:     edges("a", "b", "a", "c"),
			want:      map[string]int{"a": 0, "b": 1, "c": 1},
			wantOrder: []string{"a", "b", "c"},
			wantMax:   1,
		},
		{
			name:      "chain",
			edges:     edges("a", "b", "b", "c", "c", "d"),
			want:      map[string]int{"a": 0, "b": 1, "c": 2, "d": 3},
			wantOrder: []string{"a", "b", "c", "d"},
			wantMax:   3,
		},
		{
			name:      "back edge keeps rows",
			edges:     edges("a", "b", "b", "a"),
			want:      map[string]int{"a": 0, "b": 1},
			wantOrder: []string{"a", "b"},
			wantMax:   1,
		},
		{
			name:      "self loop",
			edges:     edges("a", "a"),
			want:      map[string]int{"a": 0},
			wantOrder: []string{"a"},
			wantMax:   0,
		},
		{
			name:      "target seen first stays put",
			edges:     edges("c", "d", "a", "b", "b", "c"),
			want:      map[string]int{"a": 0, "b": 1, "c": 0, "d": 1},
			wantOrder: []string{"c", "d", "a", "b"},
			wantMax:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrderNodes(tt.edges)
			if !reflect.DeepEqual(indexes(got), tt.want) {
				t.Errorf("indexes = %v, want %v", indexes(got), tt.want)
			}
			if !reflect.DeepEqual(got.Order, tt.wantOrder) {
				t.Errorf("order = %v, want %v", got.Order, tt.wantOrder)
			}
			if got.MaxIndex != tt.wantMax {
				t.Errorf("MaxIndex = %d, want %d", got.MaxIndex, tt.wantMax)
			}
		})
	}
}

func TestOrderNodesAdjacency(t *testing.T) {
	r := OrderNodes(edges("a", "b", "a", "c", "b", "a"))

	a, b := r.Nodes["a"], r.Nodes["b"]
	if _, ok := a.To["b"]; !ok {
		t.Error("a.To missing b")
	}
	if _, ok := a.To["c"]; !ok {
		t.Error("a.To missing c")
	}
	if _, ok := a.From["b"]; !ok {
		t.Error("a.From missing b")
	}
	if link := b.From["a"]; link.Node != a {
		t.Error("b.From[a] does not point at a")
	}
	if link := b.To["a"]; link.Node != a {
		t.Error("b.To[a] does not point at a")
	}
}

func TestOrderNodesLastEdgeWins(t *testing.T) {
	in := []flowchart.Edge{
		{From: "a", To: "b", Text: "first"},
		{From: "a", To: "b", Text: "second"},
	}
	r := OrderNodes(in)

	if got := r.Nodes["a"].To["b"].Edge.Text; got != "second" {
		t.Errorf("a.To[b].Edge.Text = %q, want second", got)
	}
	if got := r.Nodes["b"].From["a"].Edge.Text; got != "second" {
		t.Errorf("b.From[a].Edge.Text = %q, want second", got)
	}
}

func TestOrderNodesDeterministic(t *testing.T) {
	in := edges("x", "y", "y", "z", "x", "z", "z", "x")
	first := OrderNodes(in)
	for i := 0; i < 10; i++ {
		again := OrderNodes(in)
		if !reflect.DeepEqual(indexes(first), indexes(again)) || !reflect.DeepEqual(first.Order, again.Order) {
			t.Fatal("OrderNodes is not deterministic")
		}
	}
}

func TestResultRows(t *testing.T) {
	if got := OrderNodes(nil).Rows(); got != 0 {
		t.Errorf("Rows() on empty = %d, want 0", got)
	}
	if got := OrderNodes(edges("a", "b")).Rows(); got != 2 {
		t.Errorf("Rows() = %d, want 2", got)
	}
}

func ExampleOrderNodes() {
	r := OrderNodes([]flowchart.Edge{
		{From: "start", To: "check"},
		{From: "check", To: "done"},
		{From: "check", To: "start"},
	})
	for _, id := range r.Order {
		fmt.Println(id, r.Nodes[id].Index)
	}
	// Output:
	// start 0
	// check 1
	// done 2
}
