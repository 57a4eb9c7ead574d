// Package lexer tokenizes Python source the way the standard tokenize
// module does, closely enough to tell real comments apart from '#'
// characters inside string literals.
//
// The token stream carries NEWLINE, NL, INDENT and DEDENT tokens, which
// makes it usable both for comment location and for parsing the small
// statement language of directive blocks.
package lexer

import "fmt"

// Kind identifies the class of a token.
type Kind int

const (
	EOF     Kind = iota // end marker
	Name                // identifier or keyword
	Number              // numeric literal
	String              // string literal, prefix and quotes included
	Op                  // operator or delimiter
	Comment             // '#' up to end of line
	Newline             // end of a logical line
	NL                  // non-logical line break (blank line, comment line, inside brackets)
	Indent
	Dedent
)

var kindNames = [...]string{
	EOF:     "EOF",
	Name:    "NAME",
	Number:  "NUMBER",
	String:  "STRING",
	Op:      "OP",
	Comment: "COMMENT",
	Newline: "NEWLINE",
	NL:      "NL",
	Indent:  "INDENT",
	Dedent:  "DEDENT",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Pos is a source position. Line is 1-based, Col is a 0-based byte offset
// from the start of the line.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col+1)
}

// Token is a single lexical token.
type Token struct {
	Kind Kind
	Text string
	Pos  Pos
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Pos, t.Kind, t.Text)
}

// Is reports whether t is an operator or name token with the given text.
func (t Token) Is(text string) bool {
	return (t.Kind == Op || t.Kind == Name) && t.Text == text
}
