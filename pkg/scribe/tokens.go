// tokens.go defines source locations, token types, and parsed node types.
package scribe

import "fmt"

// Location identifies a position in a source file.
type Location struct {
	File string
	Line int // 1-based
	Col  int // 1-based, in bytes
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Col)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// TokenType represents the token categories produced by the tokenizer.
type TokenType int

const (
	TokenText      TokenType = iota // literal text run
	TokenMacro                      // $name invocation head
	TokenDirective                  // $$name mode directive
	TokenLBracket                   // start of an argument group
	TokenRBracket                   // end of an argument group
)

// Token is a single token scanned from source text.
type Token struct {
	Type TokenType
	Text string // literal text, or macro/directive name without sigils
	Loc  Location
}

// Node is a parsed source element: literal text, a macro call, or a directive.
type Node interface {
	Pos() Location
}

// TextNode is a run of literal text.
type TextNode struct {
	Loc  Location
	Text string
}

func (n *TextNode) Pos() Location { return n.Loc }

// CallNode is a macro invocation with zero or more argument groups.
// Each argument group is an unexpanded node sequence.
type CallNode struct {
	Loc  Location
	Name string
	Args [][]Node
}

func (n *CallNode) Pos() Location { return n.Loc }

// DirectiveNode is a doubled-sigil mode directive. It takes no arguments and
// affects only the literal text captured after it.
type DirectiveNode struct {
	Loc  Location
	Name string
}

func (n *DirectiveNode) Pos() Location { return n.Loc }
