// macro.go holds macro definitions and the flat, dynamically scoped table.
package scribe

import (
	"fmt"
	"regexp"
	"strings"
)

// BuiltinFunc is the implementation of a built-in macro. It receives the
// raw, unexpanded call node and expands arguments itself as needed.
type BuiltinFunc func(e *Expander, call *CallNode) error

// Macro is a named, parameterized text-producing definition.
//
// Exactly one of Run and Body is meaningful: built-ins carry a Run function,
// user macros carry an unexpanded Body with Params bound call-by-name at
// invocation time. Prev links to the binding replaced by a wrap or override,
// reachable from the new body under prevAlias ($previous for wraps).
//
// env is the frame that was active when the macro was defined. The body
// executes in that frame augmented with the arguments, so a definition made
// inside another macro's body keeps access to the enclosing parameters.
type Macro struct {
	Name   string
	Params []string
	Body   []Node
	Run    BuiltinFunc
	Prev   *Macro

	prevAlias string
	env       *frame
}

// MacroTable is the single mutable name-to-definition mapping of a
// compilation unit. Definitions are visible to every invocation occurring
// after them in expansion order, regardless of call site.
type MacroTable struct {
	macros map[string]*Macro
}

// NewMacroTable returns an empty table.
func NewMacroTable() *MacroTable {
	return &MacroTable{macros: make(map[string]*Macro)}
}

// Define installs a new macro. It fails with a RedefinitionError if the
// name is already bound.
func (t *MacroTable) Define(loc Location, m *Macro) error {
	if _, exists := t.macros[m.Name]; exists {
		return &RedefinitionError{Loc: loc, Name: m.Name, Msg: "macro already defined"}
	}
	t.macros[m.Name] = m
	return nil
}

// Bind installs a macro unconditionally, replacing any existing binding.
// Used for generated bindings that are rebound by design, such as the
// reference macros of auto-uniquified branch ids.
func (t *MacroTable) Bind(m *Macro) {
	t.macros[m.Name] = m
}

// Wrap replaces an existing binding with a new one, keeping the previous
// binding reachable through the new macro's Prev link as $previous. It
// fails with a RedefinitionError if the name is not bound.
func (t *MacroTable) Wrap(loc Location, name string, params []string, body []Node, env *frame) error {
	return t.Override(loc, name, PreviousName, params, body, env)
}

// Override replaces an existing binding like Wrap, with the prior binding
// reachable under a caller-chosen alias instead of $previous.
func (t *MacroTable) Override(loc Location, name, alias string, params []string, body []Node, env *frame) error {
	prev, exists := t.macros[name]
	if !exists {
		return &RedefinitionError{Loc: loc, Name: name, Msg: "cannot override an undefined macro"}
	}
	t.macros[name] = &Macro{
		Name:      name,
		Params:    params,
		Body:      body,
		Prev:      prev,
		prevAlias: alias,
		env:       env,
	}
	return nil
}

// Lookup resolves a name. Resolution happens per invocation, never at
// definition time.
func (t *MacroTable) Lookup(name string) (*Macro, bool) {
	m, ok := t.macros[name]
	return m, ok
}

// Names returns all bound names, for error messages.
func (t *MacroTable) Names() []string {
	names := make([]string, 0, len(t.macros))
	for name := range t.macros {
		names = append(names, name)
	}
	return names
}

var nameRegexp = regexp.MustCompile(`^[a-zA-Z0-9._]+$`)

// validName reports whether name is acceptable as a macro name.
func validName(name string) bool {
	return nameRegexp.MatchString(name)
}

var signatureRegexp = regexp.MustCompile(
	`^\s*([a-zA-Z0-9._]+)\s*(?:\(\s*((?:[a-zA-Z0-9._]+\s*,\s*)*[a-zA-Z0-9._]+\s*)?\))?\s*$`)

// ParseSignature parses a macro signature of the form "name", "name()" or
// "name(a,b,c)". Spaces between tokens are ignored.
func ParseSignature(signature string) (name string, params []string, err error) {
	m := signatureRegexp.FindStringSubmatch(signature)
	if m == nil {
		return "", nil, fmt.Errorf("invalid macro signature: %q", signature)
	}
	name = m[1]
	if m[2] != "" {
		for _, param := range strings.Split(m[2], ",") {
			params = append(params, strings.TrimSpace(param))
		}
	}
	seen := make(map[string]bool, len(params))
	for _, param := range params {
		if seen[param] {
			return "", nil, fmt.Errorf("duplicate parameter in signature: %q", param)
		}
		seen[param] = true
	}
	return name, params, nil
}
