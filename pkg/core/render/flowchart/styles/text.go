package styles

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// lineHeight is the baseline distance between label lines, in ems.
const lineHeight = 1.2

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// LabelLines splits a label on line breaks, dropping a trailing empty line.
func LabelLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// FirstLineOffset returns the dy of the first line of an n-line block
// centered on its anchor, in ems.
func FirstLineOffset(n int) float64 {
	if n <= 1 {
		return 0
	}
	return -float64(n-1) * lineHeight / 2
}
