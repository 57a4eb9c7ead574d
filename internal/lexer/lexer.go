package lexer

import (
	"unicode"
	"unicode/utf8"
)

// tabSize matches the tab stop the Python tokenizer uses for indentation.
const tabSize = 8

// bracket remembers an open bracket for matching and error reporting.
type bracket struct {
	ch  byte
	pos Pos
}

// Lexer produces tokens from Python source with "\n" line endings.
type Lexer struct {
	cur       cursor
	brackets  []bracket
	indents   []int
	toks      []Token
	bol       bool // at the start of a physical line
	continued bool // previous physical line ended with a backslash
	logical   bool // current logical line has produced a significant token
}

// New returns a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{
		cur:     newCursor(src),
		indents: []int{0},
		bol:     true,
	}
}

// Tokenize returns every token of src, ending with an EOF token.
func Tokenize(src string) ([]Token, error) {
	return New(src).Run()
}

// Run scans the whole input. The first lexical error stops the scan.
func (lx *Lexer) Run() ([]Token, error) {
	for {
		if lx.bol {
			lx.bol = false
			if len(lx.brackets) == 0 && !lx.continued {
				if err := lx.indentation(); err != nil {
					return nil, err
				}
			}
			if !lx.cur.eof() {
				lx.continued = false
			}
		}

		lx.skipSpace()
		if lx.cur.eof() {
			break
		}
		if err := lx.next(); err != nil {
			return nil, err
		}
	}
	return lx.finish()
}

// indentation measures leading whitespace of a new logical line and emits
// INDENT/DEDENT tokens. Blank and comment-only lines do not count.
func (lx *Lexer) indentation() error {
	width, n := 0, 0
measure:
	for ; ; n++ {
		switch lx.cur.peek(n) {
		case ' ':
			width++
		case '\t':
			width = (width/tabSize + 1) * tabSize
		case '\f':
			width = 0
		default:
			break measure
		}
	}
	switch lx.cur.peek(n) {
	case '#', '\n', '\r', 0:
		return nil
	}

	lx.cur.bumpN(n)
	pos := lx.cur.pos()
	top := lx.indents[len(lx.indents)-1]
	if width > top {
		lx.indents = append(lx.indents, width)
		lx.emit(Indent, "", Pos{Line: pos.Line, Col: 0})
		return nil
	}
	for width < lx.indents[len(lx.indents)-1] {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.emit(Dedent, "", pos)
	}
	if width != lx.indents[len(lx.indents)-1] {
		return errorf(pos, "unindent does not match any outer indentation level")
	}
	return nil
}

func (lx *Lexer) skipSpace() {
	for !lx.cur.eof() {
		switch lx.cur.peek(0) {
		case ' ', '\t', '\f', '\r':
			lx.cur.bump()
		default:
			return
		}
	}
}

// next scans exactly one token (or line break) at the cursor.
func (lx *Lexer) next() error {
	c := lx.cur.peek(0)
	start := lx.cur.pos()

	switch {
	case c == '#':
		from := lx.cur.off
		for !lx.cur.eof() && lx.cur.peek(0) != '\n' {
			lx.cur.bump()
		}
		lx.emit(Comment, lx.cur.src[from:lx.cur.off], start)
		return nil

	case c == '\n':
		lx.cur.bump()
		switch {
		case len(lx.brackets) > 0 || !lx.logical:
			lx.emit(NL, "\n", start)
		default:
			lx.emit(Newline, "\n", start)
			lx.logical = false
		}
		lx.bol = true
		return nil

	case c == '\\':
		if lx.cur.peek(1) == '\n' || (lx.cur.peek(1) == '\r' && lx.cur.peek(2) == '\n') {
			for lx.cur.peek(0) != '\n' {
				lx.cur.bump()
			}
			lx.cur.bump()
			lx.bol = true
			lx.continued = true
			return nil
		}
		return errorf(start, "unexpected character after line continuation character")

	case c == '"' || c == '\'':
		return lx.scanString(start, lx.cur.off)

	case isDigit(c) || (c == '.' && isDigit(lx.cur.peek(1))):
		lx.scanNumber(start)
		return nil

	case isIdentStart(c):
		return lx.scanName(start)
	}

	return lx.scanOperator(start)
}

// scanName scans an identifier, or a string literal when the identifier
// turns out to be a string prefix.
func (lx *Lexer) scanName(start Pos) error {
	from := lx.cur.off
	for !lx.cur.eof() {
		r, size := utf8.DecodeRuneInString(lx.cur.src[lx.cur.off:])
		if r == utf8.RuneError && size <= 1 {
			return errorf(lx.cur.pos(), "invalid UTF-8 in identifier")
		}
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		lx.cur.bumpN(size)
	}
	text := lx.cur.src[from:lx.cur.off]
	if text == "" {
		r, _ := utf8.DecodeRuneInString(lx.cur.src[lx.cur.off:])
		return errorf(start, "invalid character %q", r)
	}
	if q := lx.cur.peek(0); (q == '"' || q == '\'') && isStringPrefix(text) {
		return lx.scanString(start, from)
	}
	lx.emit(Name, text, start)
	return nil
}

func (lx *Lexer) finish() ([]Token, error) {
	if len(lx.brackets) > 0 {
		open := lx.brackets[len(lx.brackets)-1]
		return nil, errorf(lx.cur.pos(), "EOF in multi-line statement: '%c' opened at line %d is never closed", open.ch, open.pos.Line)
	}
	if lx.continued {
		return nil, errorf(lx.cur.pos(), "EOF in multi-line statement")
	}
	end := lx.cur.pos()
	if lx.logical {
		lx.emit(Newline, "", end)
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.emit(Dedent, "", end)
	}
	lx.emit(EOF, "", end)
	return lx.toks, nil
}

func (lx *Lexer) emit(kind Kind, text string, pos Pos) {
	switch kind {
	case Name, Number, String, Op:
		lx.logical = true
	}
	lx.toks = append(lx.toks, Token{Kind: kind, Text: text, Pos: pos})
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
