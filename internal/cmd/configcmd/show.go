package configcmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/scribe-cli/internal/config"
	"github.com/open-cli-collective/scribe-cli/internal/view"
	"github.com/open-cli-collective/scribe-cli/pkg/scribe"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Long:  `Display the project configuration after defaults and environment overrides.`,
		Example: `  # Show the effective config
  scribe config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			output, _ := cmd.Flags().GetString("output")
			noColor, _ := cmd.Flags().GetBool("no-color")
			renderer := view.NewRenderer(view.Format(output), noColor)
			return runShow(configPath, renderer)
		},
	}

	return cmd
}

func runShow(configPath string, r *view.Renderer) error {
	if configPath == "" {
		configPath = config.DefaultFileName
	}
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	r.RenderKeyValue("Config file", describePath(configPath))
	r.RenderKeyValue("Source dir", annotateEnv(cfg.SourceDir, "SCRIBE_SOURCE_DIR"))
	r.RenderKeyValue("Output dir", annotateEnv(cfg.OutputDir, "SCRIBE_OUTPUT_DIR"))
	r.RenderKeyValue("Max depth", effectiveLimit(cfg.MaxDepth, scribe.DefaultMaxDepth))
	r.RenderKeyValue("Max includes", effectiveLimit(cfg.MaxIncludes, scribe.DefaultMaxIncludes))

	for _, name := range sortedKeys(cfg.Roots) {
		r.RenderKeyValue("Root "+name, cfg.Roots[name])
	}
	for _, name := range sortedKeys(cfg.Defines) {
		r.RenderKeyValue("Define "+name, cfg.Defines[name])
	}
	return nil
}

func describePath(path string) string {
	if _, err := os.Stat(path); err != nil {
		return path + " (not found, using defaults)"
	}
	return path
}

func annotateEnv(value, envVar string) string {
	if env := os.Getenv(envVar); env != "" && env == value {
		return fmt.Sprintf("%s (from %s)", value, envVar)
	}
	return value
}

func effectiveLimit(configured, fallback int) string {
	if configured == 0 {
		return strconv.Itoa(fallback) + " (default)"
	}
	return strconv.Itoa(configured)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
