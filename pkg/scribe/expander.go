// expander.go is the expansion driver.
//
// The expander consumes parsed nodes, resolves macro calls with call-by-name
// argument binding, evaluates built-ins, and writes the resulting literal
// text into the currently active branch. Expansion is single-threaded and
// strictly sequential: definition order, counter mutations, and branch
// writes happen in left-to-right, depth-first textual order.
package scribe

import "strings"

// Default limits, matching the recursion and include guards of the engine.
const (
	DefaultMaxDepth    = 100
	DefaultMaxIncludes = 25
)

// argBinding is a call-by-name parameter binding: the caller's unexpanded
// node sequence together with the caller's frame. The nodes are re-expanded
// at every reference to the parameter; nothing is cached between references.
type argBinding struct {
	nodes []Node
	env   *frame
}

// frame holds the parameter bindings of one macro invocation. Its parent is
// the frame captured when the macro was DEFINED, not the caller's frame: a
// body sees its own parameters plus those of the definitions enclosing it,
// and nothing from unrelated callers.
type frame struct {
	macro  *Macro
	params map[string]argBinding
	parent *frame
}

// PreviousName is the reserved alias under which a wrapped macro's prior
// binding stays reachable inside the wrapping body.
const PreviousName = "previous"

// Expander drives macro expansion for one compilation unit.
type Expander struct {
	macros   *MacroTable
	counters *CounterStore
	branches *BranchManager
	resolver SourceResolver

	maxDepth    int
	maxIncludes int

	modes        modes
	current      *Branch
	frame        *frame
	depth        int
	chain        []string
	includeStack []string
	textOut      *strings.Builder
}

// ExpandNodes expands a node sequence in the current context.
func (e *Expander) ExpandNodes(nodes []Node) error {
	for _, node := range nodes {
		var err error
		switch n := node.(type) {
		case *TextNode:
			e.appendLiteral(n.Text)
		case *DirectiveNode:
			err = e.applyDirective(n)
		case *CallNode:
			err = e.call(n)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// EvalText expands nodes into plain text without touching any branch.
// Escape modes do not apply: the result is raw text for comparisons,
// computed names, and numeric values.
func (e *Expander) EvalText(nodes []Node) (string, error) {
	var buf strings.Builder
	old := e.textOut
	e.textOut = &buf
	err := e.ExpandNodes(nodes)
	e.textOut = old
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// appendLiteral captures a literal text run from source, applying the
// whitespace mode active at capture time. Text produced by macros goes
// through appendText directly and is never whitespace-stripped.
func (e *Expander) appendLiteral(text string) {
	if e.modes.whitespace == WhitespaceSkip {
		text = skipLineWhitespace(text)
	}
	e.appendText(text)
}

// appendText captures text under the escape mode active at capture time.
func (e *Expander) appendText(text string) {
	if e.textOut != nil {
		e.textOut.WriteString(text)
		return
	}
	e.branches.AppendText(e.current, escapeText(text, e.modes.escape))
}

func (e *Expander) applyDirective(n *DirectiveNode) error {
	switch n.Name {
	case "whitespace.preserve":
		e.modes.whitespace = WhitespacePreserve
	case "whitespace.skip":
		e.modes.whitespace = WhitespaceSkip
	case "escape.none":
		e.modes.escape = EscapeNone
	case "escape.all":
		e.modes.escape = EscapeAll
	case "escape.latex":
		e.modes.escape = EscapeLatex
	default:
		return &SyntaxError{Loc: n.Loc, Msg: "unknown directive: $$" + n.Name +
			" (known: $$escape.all, $$escape.latex, $$escape.none, $$whitespace.preserve, $$whitespace.skip)"}
	}
	return nil
}

// call resolves a macro name in the active contexts: parameter bindings of
// the enclosing definitions shadow the table, and the prior-binding aliases
// of wrapped or overridden macros shadow both.
func (e *Expander) call(n *CallNode) error {
	if b, ok := e.lookupParam(n.Name); ok {
		if len(n.Args) != 0 {
			return &ArityError{Loc: n.Loc, Name: n.Name, Want: 0, Got: len(n.Args)}
		}
		return e.expandBinding(n, b)
	}
	if prev := e.lookupPrevious(n.Name); prev != nil {
		return e.invoke(prev, n)
	}
	m, ok := e.macros.Lookup(n.Name)
	if !ok {
		return &UndefinedMacroError{Loc: n.Loc, Name: n.Name}
	}
	return e.invoke(m, n)
}

// invoke runs a resolved macro against a call node.
func (e *Expander) invoke(m *Macro, n *CallNode) error {
	if err := e.enter(n.Name, n.Loc); err != nil {
		return err
	}
	defer e.leave()

	if m.Run != nil {
		return m.Run(e, n)
	}

	if len(n.Args) != len(m.Params) {
		return &ArityError{Loc: n.Loc, Name: n.Name, Want: len(m.Params), Got: len(n.Args)}
	}
	// The body runs in the definition frame plus the arguments; the
	// arguments themselves re-expand in the caller's frame.
	fr := &frame{macro: m, parent: m.env}
	if len(m.Params) > 0 {
		fr.params = make(map[string]argBinding, len(m.Params))
		for i, param := range m.Params {
			fr.params[param] = argBinding{nodes: n.Args[i], env: e.frame}
		}
	}
	old := e.frame
	e.frame = fr
	err := e.ExpandNodes(m.Body)
	e.frame = old
	return err
}

// expandBinding re-expands a parameter's bound nodes in the frame that was
// active at the call site.
func (e *Expander) expandBinding(n *CallNode, b argBinding) error {
	if err := e.enter(n.Name, n.Loc); err != nil {
		return err
	}
	defer e.leave()

	old := e.frame
	e.frame = b.env
	err := e.ExpandNodes(b.nodes)
	e.frame = old
	return err
}

func (e *Expander) lookupParam(name string) (argBinding, bool) {
	for fr := e.frame; fr != nil; fr = fr.parent {
		if b, ok := fr.params[name]; ok {
			return b, true
		}
	}
	return argBinding{}, false
}

// lookupPrevious finds the prior binding of the nearest enclosing wrapped
// or overridden macro invocation whose alias matches name.
func (e *Expander) lookupPrevious(name string) *Macro {
	for fr := e.frame; fr != nil; fr = fr.parent {
		if fr.macro != nil && fr.macro.Prev != nil && fr.macro.prevAlias == name {
			return fr.macro.Prev
		}
	}
	return nil
}

// enter pushes an invocation onto the active chain, enforcing the
// recursion-depth guard.
func (e *Expander) enter(name string, loc Location) error {
	if e.depth >= e.maxDepth {
		chain := make([]string, len(e.chain), len(e.chain)+1)
		copy(chain, e.chain)
		return &CycleError{Loc: loc, Msg: "too many nested macro calls", Chain: append(chain, name)}
	}
	e.depth++
	e.chain = append(e.chain, name)
	return nil
}

func (e *Expander) leave() {
	e.depth--
	e.chain = e.chain[:len(e.chain)-1]
}

// withBranch expands nodes with another branch active, restoring the
// previous branch afterwards.
func (e *Expander) withBranch(b *Branch, nodes []Node) error {
	old := e.current
	e.current = b
	err := e.ExpandNodes(nodes)
	e.current = old
	return err
}

// include resolves a logical path through the source resolver and expands
// the resulting text against the same macro table, counter store, and
// branch tree. Definitions made by the included file persist.
func (e *Expander) include(loc Location, path string) error {
	if len(e.includeStack) >= e.maxIncludes {
		chain := make([]string, len(e.includeStack), len(e.includeStack)+1)
		copy(chain, e.includeStack)
		return &CycleError{Loc: loc, Msg: "too many nested includes", Chain: append(chain, path)}
	}
	source, err := e.resolver.Resolve(path)
	if err != nil {
		return &IncludeResolutionError{Loc: loc, Path: path, Err: err}
	}
	nodes, err := ParseString(source, path)
	if err != nil {
		return err
	}
	e.includeStack = append(e.includeStack, path)
	err = e.ExpandNodes(nodes)
	e.includeStack = e.includeStack[:len(e.includeStack)-1]
	return err
}
