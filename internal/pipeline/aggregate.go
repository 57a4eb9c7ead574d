package pipeline

import (
	"strings"

	"github.com/alnah/go-lit2html/internal/lexer"
)

// Block is a maximal run of adjacent lines of one type.
type Block struct {
	Type  BlockType
	Lines []SourceLine
}

// Text concatenates the block's lines, terminators included.
func (b Block) Text() string {
	var sb strings.Builder
	for _, l := range b.Lines {
		sb.WriteString(l.Text)
	}
	return sb.String()
}

// StartLine returns the source line number of the first line, or 0.
func (b Block) StartLine() int {
	if len(b.Lines) == 0 {
		return 0
	}
	return b.Lines[0].Index
}

// Aggregate groups lines into blocks and hands each completed block to
// flush in source order. A terminator is appended after the last line so
// the final block is always flushed. The first flush error stops the scan.
func Aggregate(lines []SourceLine, comments lexer.CommentSet, flush func(Block) error) error {
	var cur Block

	for i := 0; i <= len(lines); i++ {
		var line *SourceLine
		if i < len(lines) {
			line = &lines[i]
		}

		typ, keep := Classify(line, comments, cur.Type)
		if !keep {
			continue
		}
		if typ == cur.Type && typ != BlockNone {
			cur.Lines = append(cur.Lines, *line)
			continue
		}

		if len(cur.Lines) > 0 {
			if err := flush(cur); err != nil {
				return err
			}
		}
		cur = Block{Type: typ}
		if typ != BlockNone {
			cur.Lines = []SourceLine{*line}
		}
	}
	return nil
}
