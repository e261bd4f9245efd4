package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowter/pkg/core/flowchart"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/layout"
	"github.com/matzehuels/flowter/pkg/errors"
)

// Options configures topology exports.
type Options struct {
	// Detailed adds the node id and row index to each label.
	Detailed bool
}

var dotShapes = map[flowchart.NodeSymbol]string{
	flowchart.SymbolRectangle:        `shape=box`,
	flowchart.SymbolRoundedRectangle: `shape=box, style="rounded,filled"`,
	flowchart.SymbolEllipse:          `shape=ellipse`,
	flowchart.SymbolParallelogram:    `shape=parallelogram`,
	flowchart.SymbolRhombus:          `shape=diamond`,
}

// ToDOT converts l to Graphviz DOT. Nodes of the same layout row share a
// rank, and the rank direction follows the layout mode.
func ToDOT(l layout.Layout, opts Options) string {
	rankdir := "TB"
	if l.Mode == flowchart.ModeHorizontal {
		rankdir = "LR"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [style=filled, fontsize=%s];\n", formatNum(l.Config.FontSize))
	buf.WriteString("\n")

	for _, row := range l.Rows {
		for _, n := range row.Nodes {
			attrs := []string{
				fmt.Sprintf("label=%q", dotLabel(n, row.Index, opts.Detailed)),
				dotShape(n.Symbol),
				fmt.Sprintf("fillcolor=%q", n.BGColor),
			}
			fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("\n")
	for _, row := range l.Rows {
		if len(row.Nodes) < 2 {
			continue
		}
		ids := make([]string, len(row.Nodes))
		for i, n := range row.Nodes {
			ids[i] = fmt.Sprintf("%q", n.ID)
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
	}

	for _, e := range l.Edges {
		var attrs []string
		if e.Text != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Text))
		}
		if e.Color != "" {
			attrs = append(attrs, fmt.Sprintf("color=%q", e.Color))
		}
		switch e.MarkerOrDefault() {
		case flowchart.MarkerBoth:
			attrs = append(attrs, "dir=both")
		case flowchart.MarkerStart:
			attrs = append(attrs, "dir=none")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotShape(s flowchart.NodeSymbol) string {
	if shape, ok := dotShapes[s]; ok {
		return shape
	}
	return dotShapes[flowchart.SymbolRectangle]
}

func dotLabel(n *flowchart.RenderedNode, row int, detailed bool) string {
	if !detailed {
		return n.Text
	}
	return fmt.Sprintf("%s\nid: %s\nrow: %d", n.Text, n.ID, row)
}

func formatNum(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

// ValidateDOT parses dot with Graphviz and reports syntax errors as
// [errors.ErrCodeInvalidFormat].
func ValidateDOT(ctx context.Context, dot string) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()
	return nil
}
