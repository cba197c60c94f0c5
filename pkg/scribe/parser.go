// parser.go assembles the token stream into a node tree.
//
// The grammar is small: a node sequence is text runs, directives, and macro
// calls; each call is followed by zero or more bracket groups, and each
// group recursively contains a node sequence. Nesting depth is unbounded.
package scribe

// Parse turns tokens into a node sequence. file is used for end-of-input
// error locations.
func Parse(tokens []Token, file string) ([]Node, error) {
	p := &parser{tokens: tokens, file: file}
	nodes, err := p.nodes()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		// nodes() only stops early on an RBracket it does not own.
		return nil, &SyntaxError{Loc: tok.Loc, Msg: "unmatched ']'"}
	}
	return nodes, nil
}

// ParseString tokenizes and parses source text in one step.
func ParseString(input, file string) ([]Node, error) {
	tokens, err := Tokenize(input, file)
	if err != nil {
		return nil, err
	}
	return Parse(tokens, file)
}

type parser struct {
	tokens []Token
	pos    int
	file   string
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

// nodes parses a node sequence until an RBracket or the end of input.
// The closing RBracket, if any, is left unconsumed for the caller.
func (p *parser) nodes() ([]Node, error) {
	var nodes []Node
	for {
		tok, ok := p.peek()
		if !ok || tok.Type == TokenRBracket {
			return nodes, nil
		}
		p.pos++

		switch tok.Type {
		case TokenText:
			nodes = append(nodes, &TextNode{Loc: tok.Loc, Text: tok.Text})

		case TokenDirective:
			nodes = append(nodes, &DirectiveNode{Loc: tok.Loc, Name: tok.Text})

		case TokenMacro:
			call, err := p.call(tok)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, call)

		case TokenLBracket:
			// A bracket group must follow a macro head.
			return nil, &SyntaxError{Loc: tok.Loc, Msg: "unexpected '['"}
		}
	}
}

// call parses the argument groups following a macro head token.
func (p *parser) call(head Token) (*CallNode, error) {
	call := &CallNode{Loc: head.Loc, Name: head.Text}
	for {
		tok, ok := p.peek()
		if !ok || tok.Type != TokenLBracket {
			return call, nil
		}
		p.pos++ // consume '['

		arg, err := p.nodes()
		if err != nil {
			return nil, err
		}
		closing, ok := p.peek()
		if !ok {
			return nil, &SyntaxError{Loc: tok.Loc, Msg: "macro argument not closed"}
		}
		if closing.Type != TokenRBracket {
			return nil, &SyntaxError{Loc: closing.Loc, Msg: "macro argument not closed"}
		}
		p.pos++ // consume ']'
		call.Args = append(call.Args, arg)
	}
}
