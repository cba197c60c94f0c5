package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdFish creates the fish completion command.
func NewCmdFish() *cobra.Command {
	return &cobra.Command{
		Use:   "fish",
		Short: "Generate fish completion script",
		Long: `Generate fish completion script for scribe.

To load completions in your current shell session:

  scribe completion fish | source

To load completions for every new session:

  scribe completion fish > ~/.config/fish/completions/scribe.fish`,
		Example: `  # Load in current session
  scribe completion fish | source

  # Install permanently
  scribe completion fish > ~/.config/fish/completions/scribe.fish`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	}
}
