package configcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/scribe-cli/internal/config"
	"github.com/open-cli-collective/scribe-cli/internal/view"
)

// NewCmdCheck creates the config check command.
func NewCmdCheck() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the configuration is usable",
		Long: `Check that the configuration file parses, validates, and refers to
directories that exist.`,
		Example: `  # Check the project config
  scribe config check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			output, _ := cmd.Flags().GetString("output")
			noColor, _ := cmd.Flags().GetBool("no-color")
			renderer := view.NewRenderer(view.Format(output), noColor)
			return runCheck(configPath, renderer)
		},
	}

	return cmd
}

func runCheck(configPath string, r *view.Renderer) error {
	if configPath == "" {
		configPath = config.DefaultFileName
	}
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		r.Error(err.Error())
		return fmt.Errorf("configuration check failed")
	}

	failed := false
	checkDir := func(label, dir string) {
		info, err := os.Stat(dir)
		switch {
		case err != nil:
			r.Error(fmt.Sprintf("%s %q does not exist", label, dir))
			failed = true
		case !info.IsDir():
			r.Error(fmt.Sprintf("%s %q is not a directory", label, dir))
			failed = true
		default:
			r.Success(fmt.Sprintf("%s %q", label, dir))
		}
	}

	checkDir("source dir", cfg.SourceDir)
	for _, name := range sortedKeys(cfg.Roots) {
		checkDir("root "+name, cfg.Roots[name])
	}

	// The output dir is created on demand; only an existing non-directory
	// is a problem.
	if info, err := os.Stat(cfg.OutputDir); err == nil && !info.IsDir() {
		r.Error(fmt.Sprintf("output dir %q is not a directory", cfg.OutputDir))
		failed = true
	} else {
		r.Success(fmt.Sprintf("output dir %q", cfg.OutputDir))
	}

	if failed {
		return fmt.Errorf("configuration check failed")
	}
	return nil
}
