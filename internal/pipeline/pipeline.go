package pipeline

import (
	"fmt"

	"github.com/alnah/go-lit2html/internal/lexer"
)

// Process runs every stage up to assembly over src: line endings are
// normalized, comments located, lines classified and grouped, and each
// block rendered into state in source order.
func Process(src string, r *Renderer, state *RenderState) error {
	src = NormalizeLineEndings(src)

	comments, err := lexer.LocateComments(src)
	if err != nil {
		return fmt.Errorf("locating comments: %w", err)
	}

	return Aggregate(SplitLines(src), comments, func(b Block) error {
		return r.Render(b, state)
	})
}
