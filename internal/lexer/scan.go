package lexer

import "strings"

// operators lists multi-byte operators longest first; single bytes are
// handled by singleOps.
var operators = []string{
	"**=", "//=", ">>=", "<<=", "...",
	"**", "//", ">>", "<<", "<=", ">=", "==", "!=", "->",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=", ":=",
}

const singleOps = "+-*/%@&|^~<>=.,:;"

var closers = map[byte]byte{')': '(', ']': '[', '}': '{'}

// isStringPrefix reports whether s is a valid string literal prefix.
func isStringPrefix(s string) bool {
	switch strings.ToLower(s) {
	case "r", "u", "b", "f", "br", "rb", "fr", "rf":
		return true
	}
	return false
}

// scanString scans a string literal whose prefix (if any) starts at byte
// offset from; the cursor sits on the opening quote.
func (lx *Lexer) scanString(start Pos, from int) error {
	q := lx.cur.peek(0)
	triple := lx.cur.peek(1) == q && lx.cur.peek(2) == q
	if triple {
		lx.cur.bumpN(3)
	} else {
		lx.cur.bump()
	}

	for {
		if lx.cur.eof() {
			if triple {
				return errorf(start, "EOF in multi-line string")
			}
			return errorf(start, "unterminated string literal")
		}
		c := lx.cur.peek(0)
		switch {
		case c == '\\':
			lx.cur.bump()
			if lx.cur.eof() {
				continue
			}
			lx.cur.bump()
		case c == '\n' && !triple:
			return errorf(start, "unterminated string literal")
		case c == q && !triple:
			lx.cur.bump()
			lx.emit(String, lx.cur.src[from:lx.cur.off], start)
			return nil
		case c == q && lx.cur.peek(1) == q && lx.cur.peek(2) == q:
			lx.cur.bumpN(3)
			lx.emit(String, lx.cur.src[from:lx.cur.off], start)
			return nil
		default:
			lx.cur.bump()
		}
	}
}

// scanNumber scans integer, float and imaginary literals, including
// 0x/0o/0b forms and '_' digit separators.
func (lx *Lexer) scanNumber(start Pos) {
	from := lx.cur.off
	if lx.cur.peek(0) == '0' && strings.IndexByte("xXoObB", lx.cur.peek(1)) >= 0 {
		lx.cur.bumpN(2)
		for isIdentByte(lx.cur.peek(0)) {
			lx.cur.bump()
		}
		lx.emit(Number, lx.cur.src[from:lx.cur.off], start)
		return
	}

	lx.digits()
	if lx.cur.peek(0) == '.' {
		lx.cur.bump()
		lx.digits()
	}
	if e := lx.cur.peek(0); e == 'e' || e == 'E' {
		next := lx.cur.peek(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(lx.cur.peek(2))) {
			lx.cur.bumpN(2)
			lx.digits()
		}
	}
	if j := lx.cur.peek(0); j == 'j' || j == 'J' {
		lx.cur.bump()
	}
	lx.emit(Number, lx.cur.src[from:lx.cur.off], start)
}

func (lx *Lexer) digits() {
	for isDigit(lx.cur.peek(0)) || lx.cur.peek(0) == '_' {
		lx.cur.bump()
	}
}

// scanOperator scans brackets and operators, keeping the bracket stack
// balanced.
func (lx *Lexer) scanOperator(start Pos) error {
	c := lx.cur.peek(0)
	switch c {
	case '(', '[', '{':
		lx.brackets = append(lx.brackets, bracket{ch: c, pos: start})
		lx.cur.bump()
		lx.emit(Op, string(c), start)
		return nil
	case ')', ']', '}':
		if len(lx.brackets) == 0 {
			return errorf(start, "unmatched '%c'", c)
		}
		open := lx.brackets[len(lx.brackets)-1]
		if open.ch != closers[c] {
			return errorf(start, "closing parenthesis '%c' does not match opening parenthesis '%c' on line %d", c, open.ch, open.pos.Line)
		}
		lx.brackets = lx.brackets[:len(lx.brackets)-1]
		lx.cur.bump()
		lx.emit(Op, string(c), start)
		return nil
	}

	for _, op := range operators {
		if lx.cur.hasPrefix(op) {
			lx.cur.bumpN(len(op))
			lx.emit(Op, op, start)
			return nil
		}
	}
	if strings.IndexByte(singleOps, c) >= 0 {
		lx.cur.bump()
		lx.emit(Op, string(c), start)
		return nil
	}
	return errorf(start, "invalid character %q", rune(c))
}
