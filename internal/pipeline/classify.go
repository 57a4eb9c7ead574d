package pipeline

import (
	"strings"

	"github.com/alnah/go-lit2html/internal/lexer"
)

// BlockType is the category of a line and of the block it belongs to.
type BlockType int

const (
	// BlockNone marks the end of a block: the stream end or a blank line
	// closing a code block. It never holds lines.
	BlockNone BlockType = iota
	BlockDirective
	BlockComment
	BlockCode
)

func (t BlockType) String() string {
	switch t {
	case BlockDirective:
		return "directive"
	case BlockComment:
		return "comment"
	case BlockCode:
		return "code"
	default:
		return "none"
	}
}

// Classify decides the type of line given the previous line's type. A nil
// line is the end of input. The second result is false for ignored lines
// (#! markers), which leave the current block untouched.
//
// Marker detection only trusts '#' characters the tokenizer reported as
// comment starts, so a '#' inside a string literal is code.
func Classify(line *SourceLine, comments lexer.CommentSet, prev BlockType) (BlockType, bool) {
	if line == nil {
		return BlockNone, true
	}

	trimmed := strings.TrimSpace(line.Text)
	if strings.HasPrefix(trimmed, "#") && comments.Has(line.Index, indentWidth(line.Text)) {
		switch {
		case strings.HasPrefix(trimmed, "#!"):
			return BlockNone, false
		case strings.HasPrefix(trimmed, "##"):
			return BlockDirective, true
		default:
			return BlockComment, true
		}
	}

	if trimmed == "" && prev == BlockCode {
		return BlockNone, true
	}
	return BlockCode, true
}
