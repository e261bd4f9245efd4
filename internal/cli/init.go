package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowter/pkg/core/flowchart"
	"github.com/matzehuels/flowter/pkg/graph"
)

// initCommand creates the init command that scaffolds an example document.
func (c *CLI) initCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [chart.yaml]",
		Short: "Write an example flowchart document",
		Long: `Write an example flowchart document.

The format follows the file extension (.json, .yaml, .yml or .toml); the
default file is flowchart.yaml. Existing files are kept unless --force is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "flowchart.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			return c.runInit(path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func (c *CLI) runInit(path string, force bool) error {
	format, err := graph.DetectFormat(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	data, err := graph.MarshalDocument(exampleDocument(), format)
	if err != nil {
		return err
	}
	if err := writeFile(path, data); err != nil {
		return err
	}

	printSuccess("Created %s document", format)
	printFile(path)
	printNewline()
	printNextStep("Render", appName+" render "+path)
	return nil
}

// exampleDocument is a small review loop showing every node symbol and
// both edge types.
func exampleDocument() graph.Document {
	return graph.Document{
		Mode: string(flowchart.ModeVertical),
		Nodes: map[string]graph.NodeSpec{
			"start":  {Text: "Start", Symbol: string(flowchart.SymbolEllipse)},
			"draft":  {Text: "Write draft"},
			"input":  {Text: "Collect feedback", Symbol: string(flowchart.SymbolParallelogram)},
			"review": {Text: "Approved?", Symbol: string(flowchart.SymbolRhombus), BGColor: "#fff3c4"},
			"ship":   {Text: "Publish", Symbol: string(flowchart.SymbolRectangle)},
		},
		Edges: []graph.EdgeSpec{
			{From: "start", To: "draft"},
			{From: "draft", To: "input"},
			{From: "input", To: "review"},
			{From: "review", To: "ship", Text: "yes"},
			{From: "review", To: "draft", Text: "no", Type: string(flowchart.EdgeBent), Color: "#c0392b"},
		},
	}
}
