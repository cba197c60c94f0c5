package importcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/scribe-cli/internal/view"
	"github.com/open-cli-collective/scribe-cli/pkg/scribe"
)

func TestEscapeSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"sigil", "costs $5", "costs `$5"},
		{"brackets", "a [link] here", "a `[link`] here"},
		{"hash", "# heading", "`# heading"},
		{"backtick", "code `x`", "code ``x``"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeSource(tt.in))
		})
	}
}

func TestEscapeSource_ResultExpandsToItself(t *testing.T) {
	original := "price $10, see [notes] # footnote `1`"

	g, err := scribe.New(scribe.Options{})
	require.NoError(t, err)
	require.NoError(t, g.Execute(
		"$branch.create.root[text][body][out.txt]$branch.write[body]["+
			EscapeSource(original)+"]", "test.scr"))

	outputs := renderOutputs(t, g)
	assert.Equal(t, original, outputs["out.txt"])
}

func renderOutputs(t *testing.T, g *scribe.Engine) map[string]string {
	t.Helper()
	outs, err := g.Render()
	require.NoError(t, err)
	m := make(map[string]string, len(outs))
	for _, out := range outs {
		m[out.Destination] = out.Text
	}
	return m
}

func TestRunImport_WritesEscapedSource(t *testing.T) {
	dir := t.TempDir()
	inFile := filepath.Join(dir, "page.html")
	html := "<h1>Title</h1><p>Costs $5 [sometimes].</p>"
	require.NoError(t, os.WriteFile(inFile, []byte(html), 0644))

	r := view.NewRenderer(view.FormatPlain, true)
	var buf bytes.Buffer
	r.SetWriter(&buf)
	require.NoError(t, runImport(inFile, "", r))

	data, err := os.ReadFile(filepath.Join(dir, "page.scr"))
	require.NoError(t, err)
	source := string(data)
	assert.Contains(t, source, "Title")
	assert.Contains(t, source, "`$5")
	assert.Contains(t, source, "`[sometimes`]")
	// The markdown heading marker must be escaped too.
	assert.Contains(t, source, "`#")
}

func TestRunImport_MissingInput(t *testing.T) {
	r := view.NewRenderer(view.FormatPlain, true)
	r.SetWriter(&bytes.Buffer{})
	assert.Error(t, runImport(filepath.Join(t.TempDir(), "nope.html"), "", r))
}
