package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdBash creates the bash completion command.
func NewCmdBash() *cobra.Command {
	return &cobra.Command{
		Use:   "bash",
		Short: "Generate bash completion script",
		Long: `Generate bash completion script for scribe.

To load completions in your current shell session:

  source <(scribe completion bash)

To load completions for every new session:

  # Linux
  scribe completion bash > /etc/bash_completion.d/scribe

  # macOS (requires bash-completion)
  scribe completion bash > $(brew --prefix)/etc/bash_completion.d/scribe`,
		Example: `  # Load in current session
  source <(scribe completion bash)

  # Install permanently (Linux)
  scribe completion bash | sudo tee /etc/bash_completion.d/scribe > /dev/null

  # Install permanently (macOS with Homebrew)
  scribe completion bash > $(brew --prefix)/etc/bash_completion.d/scribe`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	}
}
