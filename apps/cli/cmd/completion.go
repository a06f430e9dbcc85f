package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Write a completion script for the given shell to stdout.

Source it in the current session to try it out:

  source <(kuiper completion bash)
  kuiper completion fish | source

or install it where your shell picks it up on startup:

  kuiper completion bash > /etc/bash_completion.d/kuiper
  kuiper completion zsh  > "${fpath[1]}/_kuiper"
  kuiper completion fish > ~/.config/fish/completions/kuiper.fish

For PowerShell, add the output of "kuiper completion powershell" to your
profile.`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}
