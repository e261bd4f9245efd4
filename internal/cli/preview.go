package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowter/pkg/core/render/flowchart/sink"
	"github.com/matzehuels/flowter/pkg/graph"
	"github.com/matzehuels/flowter/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// previewCommand creates the preview command for browsing computed geometry.
func (c *CLI) previewCommand() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "preview [chart.yaml | chart.layout.json]",
		Short: "Browse the nodes and edges of a layout in the terminal",
		Long: `Browse the nodes and edges of a layout in the terminal.

The input is either a flowchart document, which is laid out first, or a
geometry file previously written by "flowter layout". When stdout is not a
terminal the node table is printed once.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: documentArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			geometry, err := c.loadGeometry(cmd.Context(), c.options(cmd, &flags, args[0]))
			if err != nil {
				return err
			}

			m := NewPreviewModel(args[0], geometry)
			if !isTerminal(os.Stdout) {
				m.Height = len(geometry.Nodes)
				fmt.Fprintln(cmd.OutOrStdout(), m.View())
				return nil
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.registerLayout(cmd)

	return cmd
}

// loadGeometry reads a geometry file, or lays out a document.
func (c *CLI) loadGeometry(ctx context.Context, opts pipeline.Options) (graph.Layout, error) {
	if strings.HasSuffix(opts.InputPath, ".layout.json") {
		return graph.ReadLayoutFile(opts.InputPath)
	}
	if err := opts.ValidateForParse(); err != nil {
		return graph.Layout{}, err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}

	doc, _, err := pipeline.Parse(ctx, opts)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("load %s: %w", opts.InputPath, err)
	}
	l, err := pipeline.NewRunner(nil, nil, c.Logger).Layout(ctx, doc, opts)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("compute layout: %w", err)
	}
	return sink.Export(l)
}

// =============================================================================
// PreviewModel - Interactive geometry browser
// =============================================================================

// PreviewModel is the bubbletea model for browsing a layout's nodes. The
// edges touching the selected node are listed below the table.
type PreviewModel struct {
	Title  string
	Layout graph.Layout
	Cursor int
	Height int
	Offset int
}

// NewPreviewModel creates a preview model over l.
func NewPreviewModel(title string, l graph.Layout) PreviewModel {
	return PreviewModel{
		Title:  title,
		Layout: l,
		Height: 15,
	}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Layout.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString(" ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%s · %.0f×%.0f · %s · %s",
		m.Layout.Mode, m.Layout.Width, m.Layout.Height,
		plural(len(m.Layout.Nodes), "node"), plural(len(m.Layout.Edges), "edge"))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Layout.Nodes) {
		end = len(m.Layout.Nodes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Layout.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d:%d", n.Row, n.Col),
			n.ID,
			truncate(n.Text, 24),
			n.Symbol,
			fmt.Sprintf("%.0f,%.0f", n.X, n.Y),
			fmt.Sprintf("%.0f×%.0f", n.Width, n.Height),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Cell", "ID", "Text", "Symbol", "Position", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 5 || col == 6 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.Cursor < len(m.Layout.Nodes) {
		id := m.Layout.Nodes[m.Cursor].ID
		for _, e := range m.Layout.Edges {
			if e.From != id && e.To != id {
				continue
			}
			line := fmt.Sprintf("  %s %s %s  %s", e.From, iconArrow, e.To, e.Direction)
			if e.Text != "" {
				line += fmt.Sprintf("  %q", e.Text)
			}
			b.WriteString("\n")
			b.WriteString(listDimStyle.Render(line))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Layout.Nodes))))

	return b.String()
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
