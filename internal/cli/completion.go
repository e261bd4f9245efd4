package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// completionCommand prints a completion script for the requested shell.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for bash, zsh, fish or powershell.

  $ source <(flowter completion bash)
  $ flowter completion zsh > "${fpath[1]}/_flowter"
  $ flowter completion fish > ~/.config/fish/completions/flowter.fish
  PS> flowter completion powershell | Out-String | Invoke-Expression

Document arguments of layout, render, export, preview and watch complete to
.json, .yaml and .toml files.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionScript(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

func completionScript(root *cobra.Command, shell string, out io.Writer) error {
	switch shell {
	case "zsh":
		return root.GenZshCompletion(out)
	case "fish":
		return root.GenFishCompletion(out, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(out)
	default:
		return root.GenBashCompletionV2(out, true)
	}
}

// documentArgs completes positional arguments with flowchart documents.
func documentArgs(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"json", "yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
}
