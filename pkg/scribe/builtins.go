// builtins.go registers the built-in macro set.
//
// Built-ins receive the raw call node and expand argument groups themselves,
// which is what makes the conditionals lazy: an unselected block is never
// expanded, so an undefined reference inside it raises no error.
package scribe

import (
	"fmt"
	"strconv"
	"strings"
)

// RegisterBuiltins installs every built-in macro into a fresh table.
func RegisterBuiltins(t *MacroTable) {
	builtins := map[string]BuiltinFunc{
		"empty":     builtinEmpty,
		"newline":   builtinNewline,
		"eval.text": builtinEvalText,

		"macro.new":      builtinMacroNew,
		"macro.wrap":     builtinMacroWrap,
		"macro.override": builtinMacroOverride,
		"macro.call":     builtinMacroCall,

		"if.def": builtinIfDef,
		"if.eq":  builtinIfEq,
		"repeat": builtinRepeat,

		"case.lower":  builtinCaseLower,
		"case.upper":  builtinCaseUpper,
		"roman":       builtinRoman,
		"alpha.latin": builtinAlphaLatin,
		"number":      builtinNumber,

		"counter.create": builtinCounterCreate,

		"include":      builtinInclude,
		"include.text": builtinIncludeText,

		"branch.create.root": builtinBranchCreateRoot,
		"branch.create.sub":  builtinBranchCreateSub,
		"branch.write":       builtinBranchWrite,
		"branch.append":      builtinBranchAppend,
	}
	for name, run := range builtins {
		if err := t.Define(Location{}, &Macro{Name: name, Run: run}); err != nil {
			panic(err) // duplicate built-in name, programming error
		}
	}
}

// checkArity validates the argument-group count of a built-in call.
// max < 0 means unlimited.
func checkArity(n *CallNode, min, max int) error {
	got := len(n.Args)
	if got < min || (max >= 0 && got > max) {
		want := min
		if max > min {
			want = max
		}
		return &ArityError{Loc: n.Loc, Name: n.Name, Want: want, Got: got}
	}
	return nil
}

// textArg expands argument group i to plain text.
func (e *Expander) textArg(n *CallNode, i int) (string, error) {
	return e.EvalText(n.Args[i])
}

// intArg expands argument group i and parses it as an integer.
func (e *Expander) intArg(n *CallNode, i int) (int, error) {
	text, err := e.textArg(n, i)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, macroErr(n, fmt.Errorf("invalid integer value: %q", text))
	}
	return value, nil
}

// macroErr prefixes an error with the failing call's location and name.
func macroErr(n *CallNode, err error) error {
	return fmt.Errorf("%s: $%s: %w", n.Loc, n.Name, err)
}

func builtinEmpty(e *Expander, n *CallNode) error {
	return checkArity(n, 0, 0)
}

// builtinNewline emits a line break regardless of the whitespace mode.
func builtinNewline(e *Expander, n *CallNode) error {
	if err := checkArity(n, 0, 0); err != nil {
		return err
	}
	e.appendText("\n")
	return nil
}

func builtinEvalText(e *Expander, n *CallNode) error {
	if err := checkArity(n, 1, 1); err != nil {
		return err
	}
	text, err := e.textArg(n, 0)
	if err != nil {
		return err
	}
	e.appendText(text)
	return nil
}

// builtinMacroNew defines a new macro: $macro.new[name(a,b)][body].
// The body stays unexpanded until invocation.
func builtinMacroNew(e *Expander, n *CallNode) error {
	if err := checkArity(n, 2, 2); err != nil {
		return err
	}
	signature, err := e.textArg(n, 0)
	if err != nil {
		return err
	}
	name, params, err := ParseSignature(signature)
	if err != nil {
		return &SyntaxError{Loc: n.Loc, Msg: err.Error()}
	}
	return e.macros.Define(n.Loc, &Macro{Name: name, Params: params, Body: n.Args[1], env: e.frame})
}

// builtinMacroWrap redefines an existing macro, keeping the prior binding
// reachable as $previous inside the new body.
func builtinMacroWrap(e *Expander, n *CallNode) error {
	if err := checkArity(n, 2, 2); err != nil {
		return err
	}
	signature, err := e.textArg(n, 0)
	if err != nil {
		return err
	}
	name, params, err := ParseSignature(signature)
	if err != nil {
		return &SyntaxError{Loc: n.Loc, Msg: err.Error()}
	}
	return e.macros.Wrap(n.Loc, name, params, n.Args[1], e.frame)
}

// builtinMacroOverride redefines an existing macro like macro.wrap, with
// the prior binding reachable under a caller-chosen alias:
// $macro.override[name(a)][alias][body].
func builtinMacroOverride(e *Expander, n *CallNode) error {
	if err := checkArity(n, 3, 3); err != nil {
		return err
	}
	signature, err := e.textArg(n, 0)
	if err != nil {
		return err
	}
	name, params, err := ParseSignature(signature)
	if err != nil {
		return &SyntaxError{Loc: n.Loc, Msg: err.Error()}
	}
	alias, err := e.textArg(n, 1)
	if err != nil {
		return err
	}
	alias = strings.TrimSpace(alias)
	if !validName(alias) {
		return &SyntaxError{Loc: n.Loc, Msg: fmt.Sprintf("invalid alias for the previous binding: %q", alias)}
	}
	for _, param := range params {
		if param == alias {
			return &SyntaxError{Loc: n.Loc, Msg: fmt.Sprintf("alias conflicts with a parameter: %q", alias)}
		}
	}
	return e.macros.Override(n.Loc, name, alias, params, n.Args[2], e.frame)
}

// builtinMacroCall invokes a macro whose name is computed at expansion
// time: $macro.call[name][arg]...
func builtinMacroCall(e *Expander, n *CallNode) error {
	if err := checkArity(n, 1, -1); err != nil {
		return err
	}
	name, err := e.textArg(n, 0)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return &SyntaxError{Loc: n.Loc, Msg: "expected non-empty macro name"}
	}
	return e.call(&CallNode{Loc: n.Loc, Name: name, Args: n.Args[1:]})
}

func builtinIfDef(e *Expander, n *CallNode) error {
	if err := checkArity(n, 2, 3); err != nil {
		return err
	}
	name, err := e.textArg(n, 0)
	if err != nil {
		return err
	}
	_, bound := e.lookupParam(name)
	if !bound {
		_, bound = e.macros.Lookup(name)
	}
	if bound {
		return e.ExpandNodes(n.Args[1])
	}
	if len(n.Args) == 3 {
		return e.ExpandNodes(n.Args[2])
	}
	return nil
}

func builtinIfEq(e *Expander, n *CallNode) error {
	if err := checkArity(n, 3, 4); err != nil {
		return err
	}
	a, err := e.textArg(n, 0)
	if err != nil {
		return err
	}
	b, err := e.textArg(n, 1)
	if err != nil {
		return err
	}
	if a == b {
		return e.ExpandNodes(n.Args[2])
	}
	if len(n.Args) == 4 {
		return e.ExpandNodes(n.Args[3])
	}
	return nil
}

func builtinRepeat(e *Expander, n *CallNode) error {
	if err := checkArity(n, 2, 2); err != nil {
		return err
	}
	count, err := e.intArg(n, 0)
	if err != nil {
		return err
	}
	if count < 0 {
		return macroErr(n, fmt.Errorf("negative repeat count: %d", count))
	}
	for i := 0; i < count; i++ {
		if err := e.ExpandNodes(n.Args[1]); err != nil {
			return err
		}
	}
	return nil
}

func builtinCaseLower(e *Expander, n *CallNode) error {
	if err := checkArity(n, 1, 1); err != nil {
		return err
	}
	text, err := e.textArg(n, 0)
	if err != nil {
		return err
	}
	e.appendText(strings.ToLower(text))
	return nil
}

func builtinCaseUpper(e *Expander, n *CallNode) error {
	if err := checkArity(n, 1, 1); err != nil {
		return err
	}
	text, err := e.textArg(n, 0)
	if err != nil {
		return err
	}
	e.appendText(strings.ToUpper(text))
	return nil
}

func builtinRoman(e *Expander, n *CallNode) error {
	if err := checkArity(n, 1, 1); err != nil {
		return err
	}
	value, err := e.intArg(n, 0)
	if err != nil {
		return err
	}
	text, err := romanNumeral(value)
	if err != nil {
		return macroErr(n, err)
	}
	e.appendText(text)
	return nil
}

func builtinAlphaLatin(e *Expander, n *CallNode) error {
	if err := checkArity(n, 1, 1); err != nil {
		return err
	}
	value, err := e.intArg(n, 0)
	if err != nil {
		return err
	}
	text, err := alphaLatin(value)
	if err != nil {
		return macroErr(n, err)
	}
	e.appendText(text)
	return nil
}

// builtinNumber formats a numeric literal: $number[1234.5][english].
func builtinNumber(e *Expander, n *CallNode) error {
	if err := checkArity(n, 2, 2); err != nil {
		return err
	}
	value, err := e.textArg(n, 0)
	if err != nil {
		return err
	}
	mode, err := e.textArg(n, 1)
	if err != nil {
		return err
	}
	text, err := formatNumber(strings.TrimSpace(value), strings.TrimSpace(mode))
	if err != nil {
		return macroErr(n, err)
	}
	e.appendText(text)
	return nil
}

// builtinCounterCreate creates a counter and its accessor macro family:
// $c, $c.set[v], $c.incr, and $c.if.positive[block].
func builtinCounterCreate(e *Expander, n *CallNode) error {
	if err := checkArity(n, 1, 1); err != nil {
		return err
	}
	name, err := e.textArg(n, 0)
	if err != nil {
		return err
	}
	if err := e.counters.Create(name); err != nil {
		return &RedefinitionError{Loc: n.Loc, Name: name, Msg: "counter already created"}
	}

	accessors := map[string]BuiltinFunc{
		name: func(e *Expander, n *CallNode) error {
			if err := checkArity(n, 0, 0); err != nil {
				return err
			}
			value, err := e.counters.Read(name)
			if err != nil {
				return macroErr(n, err)
			}
			e.appendText(strconv.Itoa(value))
			return nil
		},
		name + ".set": func(e *Expander, n *CallNode) error {
			if err := checkArity(n, 1, 1); err != nil {
				return err
			}
			value, err := e.intArg(n, 0)
			if err != nil {
				return err
			}
			return e.counters.Set(name, value)
		},
		name + ".incr": func(e *Expander, n *CallNode) error {
			if err := checkArity(n, 0, 0); err != nil {
				return err
			}
			return e.counters.Increment(name)
		},
		name + ".if.positive": func(e *Expander, n *CallNode) error {
			if err := checkArity(n, 1, 1); err != nil {
				return err
			}
			positive, err := e.counters.Positive(name)
			if err != nil {
				return macroErr(n, err)
			}
			if positive {
				return e.ExpandNodes(n.Args[0])
			}
			return nil
		},
	}
	for macroName, run := range accessors {
		if err := e.macros.Define(n.Loc, &Macro{Name: macroName, Run: run}); err != nil {
			return err
		}
	}
	return nil
}

func builtinInclude(e *Expander, n *CallNode) error {
	if err := checkArity(n, 1, 1); err != nil {
		return err
	}
	path, err := e.textArg(n, 0)
	if err != nil {
		return err
	}
	return e.include(n.Loc, strings.TrimSpace(path))
}

// builtinIncludeText captures a resolved source verbatim: the contents are
// never tokenized, so sigils, brackets, and comment markers pass through.
func builtinIncludeText(e *Expander, n *CallNode) error {
	if err := checkArity(n, 1, 1); err != nil {
		return err
	}
	path, err := e.textArg(n, 0)
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)
	text, err := e.resolver.Resolve(path)
	if err != nil {
		return &IncludeResolutionError{Loc: n.Loc, Path: path, Err: err}
	}
	e.appendText(text)
	return nil
}

// builtinBranchCreateRoot establishes a new root branch:
// $branch.create.root[kind][id][destination]. kind is opaque data for the
// destination writer.
func builtinBranchCreateRoot(e *Expander, n *CallNode) error {
	if err := checkArity(n, 3, 3); err != nil {
		return err
	}
	kind, err := e.textArg(n, 0)
	if err != nil {
		return err
	}
	id, err := e.textArg(n, 1)
	if err != nil {
		return err
	}
	destination, err := e.textArg(n, 2)
	if err != nil {
		return err
	}
	name, err := e.resolveBranchID(n, id)
	if err != nil {
		return err
	}
	if _, err := e.branches.CreateRoot(kind, name, destination); err != nil {
		return macroErr(n, err)
	}
	return nil
}

// builtinBranchCreateSub creates a branch nested under the currently active
// branch: $branch.create.sub[id]. An id starting with '!' is
// auto-uniquified, and the generated name is published as a macro named by
// the rest of the id.
func builtinBranchCreateSub(e *Expander, n *CallNode) error {
	if err := checkArity(n, 1, 1); err != nil {
		return err
	}
	id, err := e.textArg(n, 0)
	if err != nil {
		return err
	}
	name, err := e.resolveBranchID(n, id)
	if err != nil {
		return err
	}
	if _, err := e.branches.CreateSub(e.current, name); err != nil {
		return macroErr(n, err)
	}
	return nil
}

// builtinBranchWrite expands contents with the named branch active:
// $branch.write[id][contents].
func builtinBranchWrite(e *Expander, n *CallNode) error {
	if err := checkArity(n, 2, 2); err != nil {
		return err
	}
	id, err := e.textArg(n, 0)
	if err != nil {
		return err
	}
	b, ok := e.branches.Lookup(strings.TrimSpace(id))
	if !ok {
		return macroErr(n, fmt.Errorf("branch not found: %q", id))
	}
	return e.withBranch(b, n.Args[1])
}

// builtinBranchAppend records a deferred reference to the named branch at
// the current write cursor of the active branch: $branch.append[id].
func builtinBranchAppend(e *Expander, n *CallNode) error {
	if err := checkArity(n, 1, 1); err != nil {
		return err
	}
	id, err := e.textArg(n, 0)
	if err != nil {
		return err
	}
	if err := e.branches.AppendRef(e.current, strings.TrimSpace(id)); err != nil {
		return macroErr(n, err)
	}
	return nil
}

// resolveBranchID turns a user-supplied branch id into the final branch
// name. Ids starting with '!' get a generated unique name, and a macro
// named by the remainder is bound to expand to that name. Re-creating the
// same '!' id rebinds the macro, so repeated structural contexts (one
// footnote buffer per section) each get a fresh branch under the same
// reference name.
func (e *Expander) resolveBranchID(n *CallNode, id string) (string, error) {
	id = strings.TrimSpace(id)
	if !strings.HasPrefix(id, "!") {
		return id, nil
	}
	ref := id[1:]
	if ref == "" {
		return "", &SyntaxError{Loc: n.Loc, Msg: "empty branch reference name"}
	}
	name := e.branches.AutoName()
	e.macros.Bind(&Macro{
		Name: ref,
		Body: []Node{&TextNode{Loc: n.Loc, Text: name}},
	})
	return name, nil
}
