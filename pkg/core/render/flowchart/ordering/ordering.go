package ordering

import "github.com/matzehuels/flowter/pkg/core/flowchart"

// Link is one side of a connection: the neighbouring node and the edge that
// joins them.
type Link struct {
	Node *OrderedNode
	Edge flowchart.Edge
}

// OrderedNode is a node with its row index and adjacency.
type OrderedNode struct {
	ID    string
	Index int

	// From holds incoming connections keyed by source id.
	From map[string]Link
	// To holds outgoing connections keyed by target id.
	To map[string]Link
}

// Result is the output of [OrderNodes].
type Result struct {
	Nodes map[string]*OrderedNode
	// Order lists node ids by first appearance in the edge list.
	Order    []string
	MaxIndex int
}

// Len returns the number of ordered nodes.
func (r Result) Len() int { return len(r.Order) }

// Rows returns the number of rows needed to hold every node.
func (r Result) Rows() int {
	if len(r.Order) == 0 {
		return 0
	}
	return r.MaxIndex + 1
}

// OrderNodes assigns a row index to every node referenced by edges.
func OrderNodes(edges []flowchart.Edge) Result {
	res := Result{Nodes: make(map[string]*OrderedNode)}

	get := func(id string, index int) *OrderedNode {
		if n, ok := res.Nodes[id]; ok {
			return n
		}
		n := &OrderedNode{
			ID:    id,
			Index: index,
			From:  make(map[string]Link),
			To:    make(map[string]Link),
		}
		res.Nodes[id] = n
		res.Order = append(res.Order, id)
		return n
	}

	for _, e := range edges {
		from := get(e.From, 0)
		candidate := from.Index + 1
		to := get(e.To, candidate)

		from.To[to.ID] = Link{Node: to, Edge: e}
		to.From[from.ID] = Link{Node: from, Edge: e}

		if from.Index != to.Index && to.Index == candidate {
			to.Index = candidate
			res.MaxIndex = max(res.MaxIndex, candidate)
		}
	}

	return res
}
