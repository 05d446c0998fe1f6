package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// newCompletionCmd creates the completion command for generating shell completions
func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for Chunkflow CLI.

The completion script must be sourced to provide completions. After generating the
completion script, follow the instructions for your shell:

Bash:
  $ source <(chunkflow completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ chunkflow completion bash > /etc/bash_completion.d/chunkflow
  # macOS:
  $ chunkflow completion bash > $(brew --prefix)/etc/bash_completion.d/chunkflow

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ chunkflow completion zsh > "${fpath[1]}/_chunkflow"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ chunkflow completion fish | source

  # To load completions for each session, execute once:
  $ chunkflow completion fish > ~/.config/fish/completions/chunkflow.fish

PowerShell:
  PS> chunkflow completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> chunkflow completion powershell > chunkflow.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		// Skip parent's PersistentPreRunE (config loading) for completion command
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompletion(cmd, args[0])
		},
	}

	return cmd
}

// generators writes the completion script for each supported shell
var generators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error {
		return root.GenBashCompletion(w)
	},
	"zsh": func(root *cobra.Command, w io.Writer) error {
		return root.GenZshCompletion(w)
	},
	"fish": func(root *cobra.Command, w io.Writer) error {
		return root.GenFishCompletion(w, true)
	},
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

// runCompletion generates the completion script for the specified shell
func runCompletion(cmd *cobra.Command, shell string) error {
	gen, ok := generators[shell]
	if !ok {
		return fmt.Errorf("unsupported shell type %q", shell)
	}
	return gen(cmd.Root(), cmd.OutOrStdout())
}
