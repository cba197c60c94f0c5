// Package init provides the init command for scribe.
package init

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/scribe-cli/internal/config"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var (
		sourceDir string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a scribe project",
		Long: `Scaffold a scribe project in the current directory.

This command will guide you through choosing the source and output
directories, write a scribe.yml configuration file, and create a
starter source file.`,
		Example: `  # Interactive setup
  scribe init

  # Pre-populate directories
  scribe init --source-dir src --output-dir build`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(sourceDir, outputDir)
		},
	}

	cmd.Flags().StringVar(&sourceDir, "source-dir", "", "directory holding the source files")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory receiving compiled output")

	return cmd
}

const starterSource = `# Starter document. Compile with: scribe build main
$$whitespace.skip
$branch.create.root[text][body][main.txt]
$branch.write[body][
  Hello from scribe.
]
`

func runInit(sourceDir, outputDir string) error {
	configPath := config.DefaultFileName

	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Project already initialized").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{SourceDir: sourceDir, OutputDir: outputDir}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Source directory").
				Description("Where your source files live").
				Placeholder("src").
				Value(&cfg.SourceDir).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("source directory is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Output directory").
				Description("Where compiled documents are written").
				Placeholder("build").
				Value(&cfg.OutputDir).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("output directory is required")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.SourceDir, 0755); err != nil {
		return err
	}
	starter := filepath.Join(cfg.SourceDir, "main.scr")
	if _, err := os.Stat(starter); os.IsNotExist(err) {
		if err := os.WriteFile(starter, []byte(starterSource), 0644); err != nil {
			return err
		}
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nYou're all set! Try running:")
	fmt.Println("  scribe build main")
	return nil
}
