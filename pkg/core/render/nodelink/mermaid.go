package nodelink

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/flowter/pkg/core/flowchart"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/layout"
)

var unsafeIDChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// mermaidShapes holds the opening and closing brackets per symbol.
var mermaidShapes = map[flowchart.NodeSymbol][2]string{
	flowchart.SymbolRectangle:        {`[`, `]`},
	flowchart.SymbolRoundedRectangle: {`(`, `)`},
	flowchart.SymbolEllipse:          {`([`, `])`},
	flowchart.SymbolParallelogram:    {`[/`, `/]`},
	flowchart.SymbolRhombus:          {`{`, `}`},
}

// ToMermaid converts l to a Mermaid flowchart definition.
func ToMermaid(l layout.Layout, opts Options) string {
	dir := "TB"
	if l.Mode == flowchart.ModeHorizontal {
		dir = "LR"
	}

	ids := mermaidIDs(l)

	var sb strings.Builder
	fmt.Fprintf(&sb, "flowchart %s\n", dir)

	for _, row := range l.Rows {
		for _, n := range row.Nodes {
			shape, ok := mermaidShapes[n.Symbol]
			if !ok {
				shape = mermaidShapes[flowchart.SymbolRectangle]
			}
			fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[n.ID], shape[0], escapeMermaid(dotLabel(n, row.Index, opts.Detailed)), shape[1])
		}
	}

	for _, e := range l.Edges {
		arrow := "-->"
		switch e.MarkerOrDefault() {
		case flowchart.MarkerBoth:
			arrow = "<-->"
		case flowchart.MarkerStart:
			arrow = "---"
		}
		if e.Text != "" {
			fmt.Fprintf(&sb, "    %s %s|\"%s\"| %s\n", ids[e.From], arrow, escapeMermaid(e.Text), ids[e.To])
			continue
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", ids[e.From], arrow, ids[e.To])
	}

	for _, n := range l.Nodes() {
		if n.BGColor != "" && n.BGColor != flowchart.DefaultBGColor {
			fmt.Fprintf(&sb, "    style %s fill:%s\n", ids[n.ID], n.BGColor)
		}
	}

	return sb.String()
}

// mermaidIDs maps node ids to unique Mermaid-safe identifiers.
func mermaidIDs(l layout.Layout) map[string]string {
	out := make(map[string]string, len(l.Order))
	used := make(map[string]bool, len(l.Order))
	for _, id := range l.Order {
		safe := sanitizeID(id)
		candidate := safe
		for i := 2; used[candidate]; i++ {
			candidate = fmt.Sprintf("%s_%d", safe, i)
		}
		used[candidate] = true
		out[id] = candidate
	}
	return out
}

func sanitizeID(id string) string {
	s := unsafeIDChars.ReplaceAllString(id, "_")
	if s == "" {
		return "node"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "n" + s
	}
	return s
}

func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, `"`, "#quot;")
	return strings.ReplaceAll(s, "\n", "<br/>")
}
