package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// completionCmd generates shell completion scripts for Focus.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for Focus.

To install completions:

  Bash (Linux):
    focus completion bash | sudo tee /etc/bash_completion.d/focus > /dev/null

  Bash (macOS with Homebrew):
    focus completion bash > $(brew --prefix)/etc/bash_completion.d/focus

  Zsh:
    focus completion zsh > "${fpath[1]}/_focus"
    # or
    focus completion zsh > ~/.zsh/completions/_focus

  Fish:
    focus completion fish > ~/.config/fish/completions/focus.fish

  PowerShell:
    focus completion powershell > focus.ps1
    # Then add ". focus.ps1" to your PowerShell profile`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(out, true)
		case "zsh":
			return cmd.Root().GenZshCompletion(out)
		case "fish":
			return cmd.Root().GenFishCompletion(out, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(out)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
