package shapes

import (
	"fmt"

	"github.com/matzehuels/flowter/pkg/core/flowchart"
	"github.com/matzehuels/flowter/pkg/core/geom"
	"github.com/matzehuels/flowter/pkg/errors"
)

// InsetRatio is the share of a node's width that slanted and rounded
// symbols reserve at each end.
const InsetRatio = 0.1

// NodePath returns the closed outline of symbol for a w×h node drawn with
// the given stroke width.
func NodePath(symbol flowchart.NodeSymbol, w, h, stroke float64) (string, error) {
	m := stroke / 2
	o := w * InsetRatio

	switch symbol {
	case flowchart.SymbolRectangle:
		return path("M %s %s H %s V %s H %s Z", m, m, w-m, h-m, m), nil

	case flowchart.SymbolParallelogram:
		return path("M %s %s H %s L %s %s H %s Z", m+o, m, w-m, w-(m+o), h-m, m), nil

	case flowchart.SymbolRhombus:
		return path("M %s %s L %s %s L %s %s L %s %s Z",
			w/2, m, w-m, h/2, w/2, h-m, m, h/2), nil

	case flowchart.SymbolRoundedRectangle:
		sx := m + o
		ex := w - sx
		rx, ry := sx, h/2
		return path("M %s %s H %s A %s %s 0 0 1 %s %s H %s A %s %s 0 0 1 %s %s Z",
			sx, m, ex, rx, ry, ex, h-m, sx, rx, ry, sx, m), nil

	case flowchart.SymbolEllipse:
		rx, ry := w/2-m, h/2-m
		return path("M %s %s A %s %s 0 1 0 %s %s A %s %s 0 1 0 %s %s Z",
			m, h/2, rx, ry, w-m, h/2, rx, ry, m, h/2), nil
	}

	return "", errors.New(errors.ErrCodeInvalidSymbol, "unknown node symbol: %q", symbol)
}

// path formats every value with [geom.FormatFloat] before substitution.
func path(format string, vals ...float64) string {
	args := make([]any, len(vals))
	for i, v := range vals {
		args[i] = geom.FormatFloat(v)
	}
	return fmt.Sprintf(format, args...)
}
