// tokenizer.go scans raw source text into a token stream.
//
// Recognized forms, left to right:
//   - $name            macro invocation head
//   - $$name           mode directive, no arguments
//   - [ ... ]          argument group delimiters (nesting checked by the parser)
//   - # ...            line comment, discarded through the end of line
//   - `c               escape: the next character is literal text
//   - anything else    literal text
package scribe

import "strings"

// Tokenize scans input into tokens. file is used in error locations only.
// It fails with a SyntaxError on an unterminated escape, an empty macro
// name, or a malformed directive.
func Tokenize(input, file string) ([]Token, error) {
	t := &tokenizer{input: input, file: file, line: 1, col: 1}
	return t.run()
}

type tokenizer struct {
	input string
	file  string
	pos   int
	line  int
	col   int

	tokens  []Token
	textBuf strings.Builder
	textLoc Location
}

func (t *tokenizer) run() ([]Token, error) {
	for t.pos < len(t.input) {
		switch c := t.input[t.pos]; c {
		case '#':
			t.flushText()
			t.skipComment()

		case '`':
			if t.pos+1 >= len(t.input) {
				return nil, &SyntaxError{Loc: t.loc(), Msg: "unterminated escape at end of input"}
			}
			if t.textBuf.Len() == 0 {
				t.textLoc = t.loc()
			}
			t.advance(1) // the backtick
			t.textBuf.WriteByte(t.input[t.pos])
			t.advance(1)

		case '$':
			t.flushText()
			if err := t.scanSigil(); err != nil {
				return nil, err
			}

		case '[':
			t.flushText()
			t.tokens = append(t.tokens, Token{Type: TokenLBracket, Text: "[", Loc: t.loc()})
			t.advance(1)

		case ']':
			t.flushText()
			t.tokens = append(t.tokens, Token{Type: TokenRBracket, Text: "]", Loc: t.loc()})
			t.advance(1)

		default:
			if t.textBuf.Len() == 0 {
				t.textLoc = t.loc()
			}
			t.textBuf.WriteByte(c)
			t.advance(1)
		}
	}
	t.flushText()
	return t.tokens, nil
}

// scanSigil scans a macro head or a doubled-sigil directive at t.pos.
func (t *tokenizer) scanSigil() error {
	loc := t.loc()
	t.advance(1) // '$'

	directive := false
	if t.pos < len(t.input) && t.input[t.pos] == '$' {
		directive = true
		t.advance(1)
	}

	nameStart := t.pos
	for t.pos < len(t.input) && isNameChar(t.input[t.pos]) {
		t.advance(1)
	}
	name := t.input[nameStart:t.pos]

	if directive {
		if name == "" {
			return &SyntaxError{Loc: loc, Msg: "malformed directive: missing name after '$$'"}
		}
		t.tokens = append(t.tokens, Token{Type: TokenDirective, Text: name, Loc: loc})
		// A directive swallows the line break that ends it, so toggling a
		// mode on its own line leaves no stray blank line in the output.
		if t.pos < len(t.input) && t.input[t.pos] == '\n' {
			t.advance(1)
		}
		return nil
	}
	if name == "" {
		return &SyntaxError{Loc: loc, Msg: "invalid macro name after '$'"}
	}
	t.tokens = append(t.tokens, Token{Type: TokenMacro, Text: name, Loc: loc})
	return nil
}

// skipComment discards everything from '#' through the end of line,
// including the newline itself.
func (t *tokenizer) skipComment() {
	for t.pos < len(t.input) {
		c := t.input[t.pos]
		t.advance(1)
		if c == '\n' {
			return
		}
	}
}

func (t *tokenizer) flushText() {
	if t.textBuf.Len() == 0 {
		return
	}
	t.tokens = append(t.tokens, Token{Type: TokenText, Text: t.textBuf.String(), Loc: t.textLoc})
	t.textBuf.Reset()
}

func (t *tokenizer) loc() Location {
	return Location{File: t.file, Line: t.line, Col: t.col}
}

// advance consumes n bytes, keeping line and column counters current.
func (t *tokenizer) advance(n int) {
	for i := 0; i < n; i++ {
		if t.input[t.pos] == '\n' {
			t.line++
			t.col = 1
		} else {
			t.col++
		}
		t.pos++
	}
}

// isNameChar returns true if c is valid in a macro or directive name.
// Names are flat strings; dots are conventional segment separators with no
// structural meaning.
func isNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '.' || c == '_'
}
