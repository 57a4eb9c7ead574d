package lexer

// cursor walks the source byte by byte and keeps line/column in sync.
type cursor struct {
	src  string
	off  int
	line int
	col  int
}

func newCursor(src string) cursor {
	return cursor{src: src, line: 1}
}

func (c *cursor) eof() bool {
	return c.off >= len(c.src)
}

// peek returns the byte n positions ahead, or 0 past the end.
func (c *cursor) peek(n int) byte {
	if c.off+n >= len(c.src) {
		return 0
	}
	return c.src[c.off+n]
}

func (c *cursor) pos() Pos {
	return Pos{Line: c.line, Col: c.col}
}

// bump consumes one byte.
func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	if b == '\n' {
		c.line++
		c.col = 0
	} else {
		c.col++
	}
	return b
}

func (c *cursor) bumpN(n int) {
	for i := 0; i < n; i++ {
		c.bump()
	}
}

func (c *cursor) hasPrefix(s string) bool {
	return len(c.src)-c.off >= len(s) && c.src[c.off:c.off+len(s)] == s
}
