package lexer

// CommentSpan is the position where a genuine comment token begins.
type CommentSpan struct {
	Line   int // 1-based
	Column int // 0-based byte offset
}

// CommentSet holds every comment start of a document.
type CommentSet map[CommentSpan]struct{}

// Has reports whether a comment starts at line/column.
func (s CommentSet) Has(line, column int) bool {
	_, ok := s[CommentSpan{Line: line, Column: column}]
	return ok
}

// LocateComments tokenizes src and returns the start of every comment.
// A '#' inside a string literal is never reported. Lexically invalid source
// yields an *Error and no set.
func LocateComments(src string) (CommentSet, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	set := make(CommentSet)
	for _, tok := range toks {
		if tok.Kind == Comment {
			set[CommentSpan{Line: tok.Pos.Line, Column: tok.Pos.Col}] = struct{}{}
		}
	}
	return set, nil
}
