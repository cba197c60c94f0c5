package scribe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirResolver_ResolvePath(t *testing.T) {
	r := &DirResolver{Dir: "/src", Roots: map[string]string{"lib": "/shared/lib"}}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"relative with extension", "chapter.scr", "/src/chapter.scr"},
		{"default extension added", "chapter", "/src/chapter.scr"},
		{"subdirectory", "parts/intro", "/src/parts/intro.scr"},
		{"root variable", "${lib}/defs", "/shared/lib/defs.scr"},
		{"absolute path untouched", "/etc/defs.scr", "/etc/defs.scr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.resolvePath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestDirResolver_UnknownRootVariable(t *testing.T) {
	r := &DirResolver{Dir: "/src"}
	_, err := r.resolvePath("${nowhere}/defs")
	assert.ErrorContains(t, err, "unknown source root")
}

func TestDirResolver_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.scr"), []byte("$title"), 0644))

	r := &DirResolver{Dir: dir}
	source, err := r.Resolve("main")
	require.NoError(t, err)
	assert.Equal(t, "$title", source)
}

func TestDirWriter_WritesBelowDir(t *testing.T) {
	dir := t.TempDir()
	w := &DirWriter{Dir: dir}
	require.NoError(t, w.Write("text", "out/book.txt", "content"))

	data, err := os.ReadFile(filepath.Join(dir, "out", "book.txt"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestDirWriter_RejectsEscapingDestination(t *testing.T) {
	w := &DirWriter{Dir: t.TempDir()}
	assert.Error(t, w.Write("text", "../escape.txt", "content"))
}

func TestDirWriter_RejectsDuplicateDestination(t *testing.T) {
	w := &DirWriter{Dir: t.TempDir()}
	require.NoError(t, w.Write("text", "book.txt", "one"))
	assert.Error(t, w.Write("text", "book.txt", "two"))
}

func TestMapWriter_CollectsOutputs(t *testing.T) {
	w := &MapWriter{}
	require.NoError(t, w.Write("text", "b.txt", "2"))
	require.NoError(t, w.Write("text", "a.txt", "1"))
	assert.Error(t, w.Write("text", "a.txt", "again"))
	assert.Equal(t, []string{"a.txt", "b.txt"}, w.Destinations())
}
