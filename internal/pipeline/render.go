package pipeline

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alnah/go-lit2html/internal/directive"
)

// Renderer turns blocks into HTML fragments and runs directive blocks.
type Renderer struct {
	highlighter Highlighter
	markdown    *MarkdownRenderer
	stdout      io.Writer
	now         func() time.Time
	getenv      func(string) (string, bool)
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithDirectiveOutput sets where directive print() writes.
func WithDirectiveOutput(w io.Writer) RendererOption {
	return func(r *Renderer) { r.stdout = w }
}

// WithClock sets the clock behind the date() builtin.
func WithClock(now func() time.Time) RendererOption {
	return func(r *Renderer) { r.now = now }
}

// WithLookupEnv sets the environment lookup behind the env() builtin.
func WithLookupEnv(fn func(string) (string, bool)) RendererOption {
	return func(r *Renderer) { r.getenv = fn }
}

// NewRenderer creates a Renderer. A nil highlighter selects chroma.
func NewRenderer(h Highlighter, opts ...RendererOption) *Renderer {
	if h == nil {
		h = NewChromaHighlighter()
	}
	r := &Renderer{
		highlighter: h,
		markdown:    NewMarkdownRenderer(),
		stdout:      io.Discard,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render appends the fragment for b to state, or executes it when b is a
// directive block. Directive errors carry absolute source line numbers.
func (r *Renderer) Render(b Block, state *RenderState) error {
	var err error
	switch b.Type {
	case BlockCode:
		err = r.renderCode(b, state)
	case BlockComment:
		err = r.renderComment(b, state)
	case BlockDirective:
		err = r.runDirective(b, state)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("rendering %s block at line %d: %w", b.Type, b.StartLine(), err)
	}
	return nil
}

func (r *Renderer) renderCode(b Block, state *RenderState) error {
	code := strings.Trim(b.Text(), "\n")
	out, err := r.highlighter.Highlight(code, HighlightOptions{
		LineNumbers: state.Params.Flag(ParamLineNos),
	})
	if err != nil {
		if !errors.Is(err, ErrHighlight) {
			err = fmt.Errorf("%w: %v", ErrHighlight, err)
		}
		return err
	}
	state.Fragments = append(state.Fragments, `<div class="syntax">`+out+`</div>`)
	return nil
}

func (r *Renderer) renderComment(b Block, state *RenderState) error {
	texts := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		texts[i] = commentText(l.Text)
	}

	if state.Params.Flag(ParamMarkdown) {
		out, err := r.markdown.Render(strings.Join(texts, "\n"))
		if err != nil {
			return err
		}
		state.Fragments = append(state.Fragments, out)
		return nil
	}
	state.Fragments = append(state.Fragments, "<p>"+strings.Join(texts, " ")+"</p>")
	return nil
}

// commentText strips indentation, the '#' marker, one following space and
// the line terminator.
func commentText(line string) string {
	s := strings.TrimLeft(line, " \t\f")
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(s, " ")
	return strings.TrimSuffix(s, "\n")
}

func (r *Renderer) runDirective(b Block, state *RenderState) error {
	in := &directive.Interp{
		Params: state.Params,
		Types:  DeclaredKinds,
		Stdout: r.stdout,
		Now:    r.now,
		Getenv: r.getenv,
	}
	err := in.Exec(DirectiveSource(b))
	var dirErr *directive.Error
	if errors.As(err, &dirErr) {
		dirErr.Line += b.StartLine() - 1
	}
	return err
}

// DirectiveSource removes the "##" marker from every line of b. The width
// of the gap after the first line's marker is removed from all lines, so
// nested suites keep their relative indentation.
func DirectiveSource(b Block) string {
	if len(b.Lines) == 0 {
		return ""
	}
	first := strings.TrimPrefix(strings.TrimLeft(b.Lines[0].Text, " \t\f"), "##")
	gap := indentWidth(first)

	var sb strings.Builder
	for _, l := range b.Lines {
		s := strings.TrimPrefix(strings.TrimLeft(l.Text, " \t\f"), "##")
		s = s[min(gap, indentWidth(s)):]
		sb.WriteString(s)
	}
	return sb.String()
}
