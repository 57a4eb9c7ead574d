package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrHighlight indicates the syntax highlighter failed on a code block.
var ErrHighlight = errors.New("syntax highlighting failed")

// ErrUnknownStyle indicates a highlight style chroma does not provide.
var ErrUnknownStyle = errors.New("unknown highlight style")

// HighlightOptions controls one highlighting call.
type HighlightOptions struct {
	LineNumbers bool
}

// Highlighter turns Python source into an HTML fragment.
type Highlighter interface {
	Highlight(code string, opts HighlightOptions) (string, error)
}

// ChromaHighlighter highlights Python with chroma. Output uses CSS classes,
// so the colours come from StyleCSS.
type ChromaHighlighter struct {
	lexer chroma.Lexer
}

// NewChromaHighlighter creates a Python highlighter.
func NewChromaHighlighter() *ChromaHighlighter {
	lx := lexers.Get("python")
	if lx == nil {
		lx = lexers.Fallback
	}
	return &ChromaHighlighter{lexer: chroma.Coalesce(lx)}
}

// Highlight renders code as a chroma <pre> block.
func (h *ChromaHighlighter) Highlight(code string, opts HighlightOptions) (string, error) {
	iter, err := h.lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.WithLineNumbers(opts.LineNumbers),
	)
	var sb strings.Builder
	if err := formatter.Format(&sb, styles.Fallback, iter); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}
	return sb.String(), nil
}

// StyleCSS returns the stylesheet for a chroma style name.
func StyleCSS(name string) (string, error) {
	style, ok := styles.Registry[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true))
	var sb strings.Builder
	if err := formatter.WriteCSS(&sb, style); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}
	return sb.String(), nil
}

// ValidStyle reports whether chroma knows the style name.
func ValidStyle(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

// StyleNames lists the available highlight styles, sorted.
func StyleNames() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var _ Highlighter = (*ChromaHighlighter)(nil)
