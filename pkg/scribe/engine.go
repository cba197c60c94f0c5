// Package scribe implements a macro-expansion engine that compiles a
// sigil-and-bracket text-substitution language into one or more target
// documents. The engine knows nothing about specific document formats:
// format behavior is expressed as ordinary macros layered on the core
// primitives (macro table, counters, branch tree, conditionals, modes).
package scribe

import (
	"fmt"
	"sort"
)

// Options configures a compilation unit.
type Options struct {
	// Resolver supplies source text for include paths. Required if any
	// source uses $include or ExecuteFile is called.
	Resolver SourceResolver
	// Writer persists flattened root branches. May be nil; outputs are
	// still returned by Render.
	Writer DestinationWriter
	// Seed defines initial zero-argument macros (e.g. an output-format
	// selector) before expansion begins.
	Seed map[string]string
	// MaxDepth bounds the macro invocation chain; DefaultMaxDepth if zero.
	MaxDepth int
	// MaxIncludes bounds the include chain; DefaultMaxIncludes if zero.
	MaxIncludes int
}

// Output is one flattened root branch.
type Output struct {
	Branch      string
	Kind        string
	Destination string
	Text        string
}

// Engine owns the mutable state of one compilation run: the macro table,
// the counter store, and the branch tree. It is created at run start,
// driven through Execute/ExecuteFile, finished with Render, and then
// discarded. All expansion is synchronous and single-threaded.
type Engine struct {
	expander *Expander
	writer   DestinationWriter
	rendered bool
}

// SystemBranch is the initially active root branch. It has no destination;
// text written outside any created branch is discarded at render time.
const SystemBranch = "system"

// New creates an engine for one compilation unit.
func New(opts Options) (*Engine, error) {
	table := NewMacroTable()
	RegisterBuiltins(table)

	branches := NewBranchManager()
	system, err := branches.CreateRoot("text", SystemBranch, "")
	if err != nil {
		return nil, err
	}

	maxDepth := opts.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	maxIncludes := opts.MaxIncludes
	if maxIncludes == 0 {
		maxIncludes = DefaultMaxIncludes
	}

	e := &Expander{
		macros:      table,
		counters:    NewCounterStore(),
		branches:    branches,
		resolver:    opts.Resolver,
		maxDepth:    maxDepth,
		maxIncludes: maxIncludes,
		current:     system,
	}

	names := make([]string, 0, len(opts.Seed))
	for name := range opts.Seed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m := &Macro{Name: name, Body: []Node{&TextNode{Text: opts.Seed[name]}}}
		if err := table.Define(Location{}, m); err != nil {
			return nil, fmt.Errorf("invalid seed definition: %w", err)
		}
	}

	return &Engine{expander: e, writer: opts.Writer}, nil
}

// Execute tokenizes, parses, and expands source text. file is used in
// error locations. Definitions and side effects persist across calls.
func (g *Engine) Execute(source, file string) error {
	nodes, err := ParseString(source, file)
	if err != nil {
		return err
	}
	return g.expander.ExpandNodes(nodes)
}

// ExecuteFile resolves a logical path through the source resolver and
// expands it, exactly as $include does.
func (g *Engine) ExecuteFile(path string) error {
	if g.expander.resolver == nil {
		return fmt.Errorf("no source resolver configured")
	}
	return g.expander.include(Location{}, path)
}

// Render flattens every root branch that carries a destination and emits
// each one through the destination writer. All branches are flattened
// before anything is written: a unit that fails produces no output at all.
// Render may be called once per engine.
func (g *Engine) Render() ([]Output, error) {
	if g.rendered {
		return nil, fmt.Errorf("compilation unit already rendered")
	}

	var outputs []Output
	for _, root := range g.expander.branches.Roots() {
		if root.Destination == "" {
			continue
		}
		text, err := g.expander.branches.Flatten(root.Name)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, Output{
			Branch:      root.Name,
			Kind:        root.Kind,
			Destination: root.Destination,
			Text:        text,
		})
	}

	if g.writer != nil {
		for _, out := range outputs {
			if err := g.writer.Write(out.Kind, out.Destination, out.Text); err != nil {
				return nil, err
			}
		}
	}
	g.rendered = true
	return outputs, nil
}
