package cli

import (
	"maps"
	"slices"

	"github.com/spf13/cobra"

	bio "github.com/matzehuels/boxtree/pkg/io"
	"github.com/matzehuels/boxtree/pkg/pipeline"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand creates the completion command.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for boxtree.

Besides commands and flags, the scripts complete the values of
--input-format, --format, --orientation and --label.

  $ source <(boxtree completion bash)
  $ boxtree completion zsh > "${fpath[1]}/_boxtree"
  $ boxtree completion fish > ~/.config/fish/completions/boxtree.fish
  PS> boxtree completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(c.out, true)
			case "zsh":
				return root.GenZshCompletion(c.out)
			case "fish":
				return root.GenFishCompletion(c.out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(c.out)
			}
		},
	}

	return cmd
}

// flagValues lists the fixed choices of each enum flag.
func flagValues() map[string][]string {
	inputs := make([]string, len(bio.Formats))
	for i, f := range bio.Formats {
		inputs[i] = string(f)
	}
	return map[string][]string{
		"input-format": inputs,
		"format":       slices.Sorted(maps.Keys(pipeline.ValidFormats)),
		"orientation":  slices.Sorted(maps.Keys(pipeline.ValidOrientations)),
		"label":        slices.Sorted(maps.Keys(pipeline.ValidLabels)),
	}
}

// completeFlagValues registers value completion for the enum flags defined
// on cmd. Call it after the flags are registered.
func completeFlagValues(cmd *cobra.Command) {
	for name, values := range flagValues() {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}
}
