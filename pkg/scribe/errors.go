// errors.go defines the fatal error taxonomy of the engine.
//
// Every error aborts the enclosing compilation unit; there is no local
// recovery. All errors carry a source location where one exists.
package scribe

import (
	"fmt"
	"strings"
)

// SyntaxError reports malformed source: unbalanced brackets, an unterminated
// escape, a malformed or unknown directive.
type SyntaxError struct {
	Loc Location
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", e.Loc, e.Msg)
}

// UndefinedMacroError reports an invocation of a name that is not bound in
// the macro table or in any active call frame.
type UndefinedMacroError struct {
	Loc  Location
	Name string
}

func (e *UndefinedMacroError) Error() string {
	return fmt.Sprintf("%s: macro not found: $%s", e.Loc, e.Name)
}

// RedefinitionError reports a define of an existing name, or a wrap of a
// missing one.
type RedefinitionError struct {
	Loc  Location
	Name string
	Msg  string
}

func (e *RedefinitionError) Error() string {
	return fmt.Sprintf("%s: $%s: %s", e.Loc, e.Name, e.Msg)
}

// ArityError reports a macro call with the wrong number of argument groups.
type ArityError struct {
	Loc  Location
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: $%s: arguments count mismatch: expected %d, got %d",
		e.Loc, e.Name, e.Want, e.Got)
}

// CycleError reports runaway recursion: a macro invocation chain past the
// depth limit, an include chain past the include limit, or a branch that
// transitively references itself. Chain holds the offending names in order.
type CycleError struct {
	Loc   Location
	Msg   string
	Chain []string
}

func (e *CycleError) Error() string {
	var b strings.Builder
	if e.Loc != (Location{}) {
		fmt.Fprintf(&b, "%s: ", e.Loc)
	}
	b.WriteString(e.Msg)
	if len(e.Chain) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Chain, " -> "))
	}
	return b.String()
}

// IncludeResolutionError reports a source resolver failure for an include path.
type IncludeResolutionError struct {
	Loc  Location
	Path string
	Err  error
}

func (e *IncludeResolutionError) Error() string {
	return fmt.Sprintf("%s: unable to include %q: %v", e.Loc, e.Path, e.Err)
}

func (e *IncludeResolutionError) Unwrap() error { return e.Err }
