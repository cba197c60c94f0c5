// modes.go implements the process-wide whitespace and escape mode flags.
//
// Both flags are toggled by directives and consulted only at the moment a
// literal-text chunk is captured; changing a mode never reaches back into
// chunks captured earlier.
package scribe

import "strings"

// WhitespaceMode controls how line whitespace in literal text is treated.
type WhitespaceMode int

const (
	// WhitespacePreserve keeps literal text verbatim.
	WhitespacePreserve WhitespaceMode = iota
	// WhitespaceSkip drops newlines together with the indentation around
	// them, joining continuation lines.
	WhitespaceSkip
)

// EscapeMode selects the escaping table applied to captured literal text.
type EscapeMode int

const (
	// EscapeNone emits literal text verbatim.
	EscapeNone EscapeMode = iota
	// EscapeAll escapes the markup metacharacters '&', '<' and '>'.
	EscapeAll
	// EscapeLatex escapes the TeX special characters.
	EscapeLatex
)

type modes struct {
	whitespace WhitespaceMode
	escape     EscapeMode
}

// skipLineWhitespace removes every whitespace run that contains a newline,
// including the spaces and tabs around it. Runs without a newline are kept.
func skipLineWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		c := s[i]
		if c != ' ' && c != '\t' && c != '\n' {
			b.WriteByte(c)
			i++
			continue
		}
		start := i
		hasNewline := false
		for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
			if s[i] == '\n' {
				hasNewline = true
			}
			i++
		}
		if !hasNewline {
			b.WriteString(s[start:i])
		}
	}
	return b.String()
}

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var latexEscaper = strings.NewReplacer(
	"\\", `\textbackslash{}`,
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
)

func escapeText(text string, mode EscapeMode) string {
	switch mode {
	case EscapeAll:
		return markupEscaper.Replace(text)
	case EscapeLatex:
		return latexEscaper.Replace(text)
	default:
		return text
	}
}
