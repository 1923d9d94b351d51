package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for flowlayout.

Besides subcommands and flags, the scripts complete canvas arguments with
.json files and the values of --mode and --format:

  $ flowlayout layout <TAB>               # flow.json  agents/support.json
  $ flowlayout render flow.json -f <TAB>  # svg  png  dot

To load completions:

Bash:
  $ source <(flowlayout completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ flowlayout completion bash > /etc/bash_completion.d/flowlayout
  # macOS:
  $ flowlayout completion bash > $(brew --prefix)/etc/bash_completion.d/flowlayout

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ flowlayout completion zsh > "${fpath[1]}/_flowlayout"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ flowlayout completion fish | source

  # To load completions for each session, execute once:
  $ flowlayout completion fish > ~/.config/fish/completions/flowlayout.fish

PowerShell:
  PS> flowlayout completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> flowlayout completion powershell > flowlayout.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeCanvas completes the canvas argument with .json files.
func completeCanvas(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeMode registers completion for the --mode flag.
func completeMode(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("mode",
		cobra.FixedCompletions([]string{pipeline.ModeLayered, pipeline.ModeGrid}, cobra.ShellCompDirectiveNoFileComp))
}
