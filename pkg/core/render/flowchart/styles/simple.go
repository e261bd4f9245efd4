package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/flowter/pkg/core/geom"
)

const fontFamily = `-apple-system, BlinkMacSystemFont, 'Segoe UI', Helvetica, Arial, sans-serif`

// Simple draws flat nodes with solid outlines.
type Simple struct{}

func (Simple) RenderDefs(buf *bytes.Buffer, markers []Marker) {
	if len(markers) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	for _, m := range markers {
		fmt.Fprintf(buf, `    <marker id="%s" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse">`+"\n",
			EscapeXML(m.ID))
		fmt.Fprintf(buf, `      <path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/>`+"\n", EscapeXML(m.Color))
		buf.WriteString("    </marker>\n")
	}
	buf.WriteString("  </defs>\n")
}

func (Simple) RenderNode(buf *bytes.Buffer, n Node) {
	fmt.Fprintf(buf, `  <g id="node-%s" class="node" transform="translate(%s %s)">`+"\n",
		EscapeXML(n.ID), geom.FormatFloat(n.X), geom.FormatFloat(n.Y))
	fmt.Fprintf(buf, `    <path d="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		n.Path, EscapeXML(n.Fill), EscapeXML(n.Stroke), geom.FormatFloat(n.StrokeWidth))
	buf.WriteString("  </g>\n")
}

func (Simple) RenderEdge(buf *bytes.Buffer, e Edge) {
	fmt.Fprintf(buf, `  <svg class="edge" data-from="%s" data-to="%s" x="%s" y="%s" width="%s" height="%s" viewBox="%s" overflow="visible">`+"\n",
		EscapeXML(e.FromID), EscapeXML(e.ToID),
		geom.FormatFloat(e.X), geom.FormatFloat(e.Y), geom.FormatFloat(e.W), geom.FormatFloat(e.H), e.ViewBox)

	fmt.Fprintf(buf, `    <path d="%s" fill="none" stroke="%s" stroke-width="%s"`,
		e.Path, EscapeXML(e.Color), geom.FormatFloat(e.StrokeWidth))
	if e.MarkerStart != "" {
		fmt.Fprintf(buf, ` marker-start="url(#%s)"`, EscapeXML(e.MarkerStart))
	}
	if e.MarkerEnd != "" {
		fmt.Fprintf(buf, ` marker-end="url(#%s)"`, EscapeXML(e.MarkerEnd))
	}
	buf.WriteString("/>\n")

	if e.Label != "" {
		fmt.Fprintf(buf, `    <text x="%s" y="%s" text-anchor="%s" font-family="%s" font-size="%s" fill="%s">%s</text>`+"\n",
			geom.FormatFloat(e.LabelX), geom.FormatFloat(e.LabelY), e.LabelAnchor,
			fontFamily, geom.FormatFloat(e.FontSize), EscapeXML(e.Color), EscapeXML(e.Label))
	}
	buf.WriteString("  </svg>\n")
}

func (Simple) RenderText(buf *bytes.Buffer, n Node) {
	lines := LabelLines(n.Label)
	if len(lines) == 0 {
		return
	}
	cx, cy := n.X+n.W/2, n.Y+n.H/2

	fmt.Fprintf(buf, `  <text class="node-text" data-node="%s" x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%s">`,
		EscapeXML(n.ID), geom.FormatFloat(cx), geom.FormatFloat(cy), fontFamily, geom.FormatFloat(n.FontSize))
	if len(lines) == 1 {
		buf.WriteString(EscapeXML(lines[0]))
	} else {
		for i, line := range lines {
			dy := lineHeight
			if i == 0 {
				dy = FirstLineOffset(len(lines))
			}
			fmt.Fprintf(buf, `<tspan x="%s" dy="%sem">%s</tspan>`,
				geom.FormatFloat(cx), geom.FormatFloat(dy), EscapeXML(line))
		}
	}
	buf.WriteString("</text>\n")
}
