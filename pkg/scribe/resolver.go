// resolver.go defines the host collaborator interfaces and their standard
// implementations: file-system backed for the CLI, map backed for tests.
package scribe

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// SourceResolver returns source text for a logical include path. Path
// variables referencing host-configured roots are substituted by the
// resolver, not by the engine.
type SourceResolver interface {
	Resolve(path string) (string, error)
}

// DestinationWriter persists the flattened text of a root branch. kind is
// the opaque value given at branch creation; destination is the branch's
// logical output name. The engine performs exactly one flatten-and-emit per
// root branch, and never calls the writer for a unit that failed.
type DestinationWriter interface {
	Write(kind, destination, text string) error
}

// DefaultSourceExt is appended to logical paths without an extension.
const DefaultSourceExt = ".scr"

var rootVarRegexp = regexp.MustCompile(`\$\{([a-zA-Z0-9._-]+)\}`)

// DirResolver resolves logical paths against a base directory, substituting
// ${name} variables from a configured root map and appending the default
// source extension to extension-less paths.
type DirResolver struct {
	Dir   string
	Roots map[string]string
	Ext   string // defaults to DefaultSourceExt
}

// Resolve reads the file for a logical path.
func (r *DirResolver) Resolve(path string) (string, error) {
	resolved, err := r.resolvePath(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *DirResolver) resolvePath(path string) (string, error) {
	var substErr error
	path = rootVarRegexp.ReplaceAllStringFunc(path, func(match string) string {
		name := rootVarRegexp.FindStringSubmatch(match)[1]
		root, ok := r.Roots[name]
		if !ok {
			substErr = fmt.Errorf("unknown source root: %q", name)
			return match
		}
		return root
	})
	if substErr != nil {
		return "", substErr
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.Dir, path)
	}
	ext := r.Ext
	if ext == "" {
		ext = DefaultSourceExt
	}
	if filepath.Ext(path) == "" {
		path += ext
	}
	return filepath.Clean(path), nil
}

// MapResolver serves sources from memory. Paths match exactly.
type MapResolver struct {
	Sources map[string]string
}

func (r *MapResolver) Resolve(path string) (string, error) {
	source, ok := r.Sources[path]
	if !ok {
		return "", fmt.Errorf("source not found: %q", path)
	}
	return source, nil
}

// DirWriter writes flattened output below a directory, one file per
// destination tag. Destination tags must stay below the directory.
type DirWriter struct {
	Dir     string
	written map[string]bool
}

func (w *DirWriter) Write(kind, destination, text string) error {
	full := filepath.Clean(filepath.Join(w.Dir, destination))
	base := filepath.Clean(w.Dir)
	if full != base && !strings.HasPrefix(full, base+string(filepath.Separator)) {
		return fmt.Errorf("invalid destination %q: must be below the output directory", destination)
	}
	if w.written[full] {
		return fmt.Errorf("destination already written: %q", destination)
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(full, []byte(text), 0644); err != nil {
		return err
	}
	if w.written == nil {
		w.written = make(map[string]bool)
	}
	w.written[full] = true
	return nil
}

// MapWriter collects outputs in memory, keyed by destination tag.
type MapWriter struct {
	Outputs map[string]string
}

func (w *MapWriter) Write(kind, destination, text string) error {
	if w.Outputs == nil {
		w.Outputs = make(map[string]string)
	}
	if _, dup := w.Outputs[destination]; dup {
		return fmt.Errorf("destination already written: %q", destination)
	}
	w.Outputs[destination] = text
	return nil
}

// Destinations returns the written destination tags in sorted order.
func (w *MapWriter) Destinations() []string {
	tags := make([]string, 0, len(w.Outputs))
	for tag := range w.Outputs {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
