// Package root provides the root command for the scribe CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/scribe-cli/internal/cmd/build"
	"github.com/open-cli-collective/scribe-cli/internal/cmd/completion"
	"github.com/open-cli-collective/scribe-cli/internal/cmd/configcmd"
	"github.com/open-cli-collective/scribe-cli/internal/cmd/importcmd"
	initcmd "github.com/open-cli-collective/scribe-cli/internal/cmd/init"
	"github.com/open-cli-collective/scribe-cli/internal/cmd/preview"
	"github.com/open-cli-collective/scribe-cli/internal/version"
)

// NewCmdRoot creates the root command for scribe.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scribe",
		Short: "A macro-driven document compiler",
		Long: `scribe compiles text documents written in a small macro language.

Sources combine literal text with $macro[argument] calls; the compiler
expands them into one or more output documents, with counters, deferred
blocks, and conditional content handled by built-in macros.

Get started by running: scribe init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ./scribe.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Set version template
	cmd.SetVersionTemplate("scribe version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(build.NewCmdBuild())
	cmd.AddCommand(preview.NewCmdPreview())
	cmd.AddCommand(importcmd.NewCmdImport())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
