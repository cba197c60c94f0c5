// Package preview provides the preview command, which compiles a unit and
// renders its markdown roots to HTML for inspection.
package preview

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/open-cli-collective/scribe-cli/internal/config"
	"github.com/open-cli-collective/scribe-cli/internal/view"
	"github.com/open-cli-collective/scribe-cli/pkg/scribe"
)

// NewCmdPreview creates the preview command.
func NewCmdPreview() *cobra.Command {
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Compile a file and render its markdown roots to HTML",
		Long: `Compile one source file and render every root branch created with
kind "markdown" to HTML. The engine itself is format-agnostic; this is a
convenience for checking markdown-producing macro sets in a browser.

Nothing is written to the configured output directory: HTML files are
placed next to it under <output_dir>/preview/.`,
		Example: `  # Render markdown roots of book.scr to HTML
  scribe preview book

  # Print the HTML to stdout instead
  scribe preview book --stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			output, _ := cmd.Flags().GetString("output")
			noColor, _ := cmd.Flags().GetBool("no-color")
			renderer := view.NewRenderer(view.Format(output), noColor)
			return runPreview(args[0], configPath, toStdout, renderer)
		},
	}

	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print HTML to stdout instead of writing files")

	return cmd
}

func runPreview(file, configPath string, toStdout bool, r *view.Renderer) error {
	if configPath == "" {
		configPath = config.DefaultFileName
	}
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	engine, err := scribe.New(scribe.Options{
		Resolver:    &scribe.DirResolver{Dir: cfg.SourceDir, Roots: cfg.Roots},
		Seed:        cfg.Defines,
		MaxDepth:    cfg.MaxDepth,
		MaxIncludes: cfg.MaxIncludes,
	})
	if err != nil {
		return err
	}
	if err := engine.ExecuteFile(file); err != nil {
		r.Diagnostic(err.Error())
		return fmt.Errorf("preview failed: %s", file)
	}
	outputs, err := engine.Render()
	if err != nil {
		r.Diagnostic(err.Error())
		return fmt.Errorf("preview failed: %s", file)
	}

	previewed := 0
	for _, out := range outputs {
		if out.Kind != "markdown" {
			continue
		}
		html, err := renderHTML(out.Text)
		if err != nil {
			return err
		}
		previewed++

		if toStdout {
			r.RenderText(html)
			continue
		}
		dest := filepath.Join(cfg.OutputDir, "preview", htmlName(out.Destination))
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(dest, []byte(html), 0644); err != nil {
			return err
		}
		r.RenderKeyValue(out.Branch, dest)
	}

	if previewed == 0 {
		r.RenderText("no markdown roots to preview")
	}
	return nil
}

// renderHTML converts markdown to HTML with GFM extensions.
func renderHTML(markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// htmlName swaps the destination's extension for .html.
func htmlName(destination string) string {
	ext := filepath.Ext(destination)
	return destination[:len(destination)-len(ext)] + ".html"
}
