// Package build provides the build command, the compiler front end.
package build

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/scribe-cli/internal/config"
	"github.com/open-cli-collective/scribe-cli/internal/view"
	"github.com/open-cli-collective/scribe-cli/pkg/scribe"
)

// NewCmdBuild creates the build command.
func NewCmdBuild() *cobra.Command {
	var defines []string

	cmd := &cobra.Command{
		Use:   "build <file>...",
		Short: "Compile source files into their output documents",
		Long: `Compile one or more top-level source files.

Each file is compiled as an independent unit with a fresh macro table,
counter store, and branch tree. Output files are written below the
configured output directory, one per root branch with a destination.
A unit that fails produces no output at all.`,
		Example: `  # Compile the main document
  scribe build book

  # Seed macros from the command line
  scribe build book --define format=latex --define draft=yes`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			output, _ := cmd.Flags().GetString("output")
			noColor, _ := cmd.Flags().GetBool("no-color")
			renderer := view.NewRenderer(view.Format(output), noColor)
			return runBuild(args, configPath, defines, renderer)
		},
	}

	cmd.Flags().StringArrayVarP(&defines, "define", "D", nil,
		"seed a zero-argument macro before compilation (name=value, repeatable)")

	return cmd
}

func runBuild(files []string, configPath string, defines []string, r *view.Renderer) error {
	if configPath == "" {
		configPath = config.DefaultFileName
	}
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	seeds, err := mergeDefines(cfg.Defines, defines)
	if err != nil {
		return err
	}

	resolver := &scribe.DirResolver{Dir: cfg.SourceDir, Roots: cfg.Roots}
	writer := &scribe.DirWriter{Dir: cfg.OutputDir}

	var rows [][]string
	for _, file := range files {
		outputs, err := compileUnit(file, resolver, writer, seeds, cfg)
		if err != nil {
			r.Diagnostic(err.Error())
			return fmt.Errorf("build failed: %s", file)
		}
		for _, out := range outputs {
			rows = append(rows, []string{out.Destination, strconv.Itoa(len(out.Text))})
		}
	}

	r.RenderTable([]string{"DESTINATION", "BYTES"}, rows)
	r.Success(fmt.Sprintf("compiled %d file(s) into %s", len(files), cfg.OutputDir))
	return nil
}

// compileUnit runs one top-level file through a fresh engine.
func compileUnit(file string, resolver scribe.SourceResolver, writer scribe.DestinationWriter,
	seeds map[string]string, cfg *config.Config) ([]scribe.Output, error) {

	engine, err := scribe.New(scribe.Options{
		Resolver:    resolver,
		Writer:      writer,
		Seed:        seeds,
		MaxDepth:    cfg.MaxDepth,
		MaxIncludes: cfg.MaxIncludes,
	})
	if err != nil {
		return nil, err
	}
	if err := engine.ExecuteFile(file); err != nil {
		return nil, err
	}
	return engine.Render()
}

// mergeDefines layers command-line name=value pairs over configured
// defines; the command line wins.
func mergeDefines(configured map[string]string, flags []string) (map[string]string, error) {
	merged := make(map[string]string, len(configured)+len(flags))
	for name, value := range configured {
		merged[name] = value
	}
	for _, pair := range flags {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid define %q: expected name=value", pair)
		}
		merged[strings.TrimSpace(name)] = value
	}
	return merged, nil
}
