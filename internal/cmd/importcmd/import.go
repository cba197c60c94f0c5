// Package importcmd provides the import command, which converts an HTML
// document into macro source as a starting point for a source tree.
package importcmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/scribe-cli/internal/view"
)

// NewCmdImport creates the import command.
func NewCmdImport() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "import <file.html>",
		Short: "Convert an HTML document into macro source",
		Long: `Convert an existing HTML document into a markdown-flavored source
file. Characters with structural meaning in macro source are
backtick-escaped, so the converted text expands to itself until macros
are layered in by hand.`,
		Example: `  # Convert a document, writing chapter.scr next to it
  scribe import chapter.html

  # Choose the output file
  scribe import chapter.html --out src/chapter.scr`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			noColor, _ := cmd.Flags().GetBool("no-color")
			renderer := view.NewRenderer(view.Format(output), noColor)
			return runImport(args[0], outFile, renderer)
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "", "output file (default: input name with .scr)")

	return cmd
}

func runImport(inFile, outFile string, r *view.Renderer) error {
	data, err := os.ReadFile(inFile)
	if err != nil {
		return err
	}

	markdown, err := htmltomarkdown.ConvertString(string(data))
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", inFile, err)
	}

	source := EscapeSource(markdown)

	if outFile == "" {
		ext := filepath.Ext(inFile)
		outFile = inFile[:len(inFile)-len(ext)] + ".scr"
	}
	if err := os.WriteFile(outFile, []byte(source), 0644); err != nil {
		return err
	}

	r.Success(fmt.Sprintf("imported %s to %s", inFile, outFile))
	return nil
}

// sourceEscaper backtick-escapes every character the tokenizer treats
// specially, so imported text expands to itself.
var sourceEscaper = strings.NewReplacer(
	"`", "``",
	"$", "`$",
	"[", "`[",
	"]", "`]",
	"#", "`#",
)

// EscapeSource makes arbitrary text safe for inclusion in macro source.
func EscapeSource(text string) string {
	return sourceEscaper.Replace(text)
}
