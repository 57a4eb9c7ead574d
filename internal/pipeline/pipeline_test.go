package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-lit2html/internal/directive"
	"github.com/alnah/go-lit2html/internal/lexer"
)

func process(t *testing.T, src string) (*RenderState, *fakeHighlighter) {
	t.Helper()

	hl := &fakeHighlighter{}
	state := NewRenderState(nil)
	if err := Process(src, NewRenderer(hl), state); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	return state, hl
}

// ---------------------------------------------------------------------------
// Document-level behavior
// ---------------------------------------------------------------------------

func TestProcess_CommentThenCode(t *testing.T) {
	t.Parallel()

	state, hl := process(t, "# Hello\n# world\n\nx = 1\n")

	want := []string{"<p>Hello world</p>", `<div class="syntax"><pre>x = 1</pre></div>`}
	if strings.Join(state.Fragments, "|") != strings.Join(want, "|") {
		t.Errorf("fragments = %q, want %q", state.Fragments, want)
	}
	if len(hl.calls) != 1 {
		t.Errorf("highlighter called %d times, want 1", len(hl.calls))
	}
}

func TestProcess_DirectiveSetsTitle(t *testing.T) {
	t.Parallel()

	state, _ := process(t, "## title = \"Foo\"\n")

	if len(state.Fragments) != 0 {
		t.Errorf("fragments = %q, want none", state.Fragments)
	}
	if got := state.Params.Str(ParamTitle); got != "Foo" {
		t.Errorf("title = %q, want %q", got, "Foo")
	}
}

func TestProcess_CodeOnlyInputIsOneFragment(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"x = 1",
		"import sys\nsys.exit(0)\n",
		"class A:\n    def f(self):\n        return '# no comment'\n",
	}
	for _, src := range inputs {
		state, hl := process(t, src)
		if len(state.Fragments) != 1 {
			t.Errorf("%q: %d fragments, want 1", src, len(state.Fragments))
			continue
		}
		if hl.calls[0] != strings.Trim(src, "\n") {
			t.Errorf("%q: highlighted %q, want the whole input", src, hl.calls[0])
		}
	}
}

func TestProcess_CommentOnlyInputIsOneParagraph(t *testing.T) {
	t.Parallel()

	state, hl := process(t, "# one\n# two\n    # three\n")

	if len(state.Fragments) != 1 || state.Fragments[0] != "<p>one two three</p>" {
		t.Errorf("fragments = %q", state.Fragments)
	}
	if len(hl.calls) != 0 {
		t.Error("highlighter was called for a comment-only input")
	}
}

func TestProcess_IgnoreLinesLeaveNoTrace(t *testing.T) {
	t.Parallel()

	with, _ := process(t, "#!/usr/bin/env python\n# a\n#! secret marker\n# b\nx = 1\n#! tail\n")
	without, _ := process(t, "# a\n# b\nx = 1\n")

	if strings.Join(with.Fragments, "\n") != strings.Join(without.Fragments, "\n") {
		t.Errorf("fragments differ:\n%q\n%q", with.Fragments, without.Fragments)
	}
	for _, f := range with.Fragments {
		if strings.Contains(f, "secret") || strings.Contains(f, "python") {
			t.Errorf("ignored line leaked into %q", f)
		}
	}
}

func TestProcess_BlankLinePolicy(t *testing.T) {
	t.Parallel()

	state, hl := process(t, "a = 1\n\nb = 2\n# note\n\nc = 3\n")

	if len(hl.calls) != 3 {
		t.Fatalf("highlighter calls = %q, want 3 code fragments", hl.calls)
	}
	if hl.calls[0] != "a = 1" || hl.calls[1] != "b = 2" || hl.calls[2] != "c = 3" {
		t.Errorf("code fragments = %q", hl.calls)
	}
	if len(state.Fragments) != 4 {
		t.Errorf("fragments = %q, want 4", state.Fragments)
	}
}

func TestProcess_DirectivesRunInOrder(t *testing.T) {
	t.Parallel()

	src := "## linenos = True\nx = 1\n## linenos = False\n\ny = 2\n"
	_, hl := process(t, src)

	if len(hl.opts) != 2 {
		t.Fatalf("highlighter calls = %d, want 2", len(hl.opts))
	}
	if !hl.opts[0].LineNumbers || hl.opts[1].LineNumbers {
		t.Errorf("line numbers = %v, %v; want true, false", hl.opts[0].LineNumbers, hl.opts[1].LineNumbers)
	}
}

func TestProcess_CRLFInput(t *testing.T) {
	t.Parallel()

	state, _ := process(t, "# Hello\r\n# world\r\n\r\nx = 1\r\n")
	if len(state.Fragments) != 2 || state.Fragments[0] != "<p>Hello world</p>" {
		t.Errorf("fragments = %q", state.Fragments)
	}
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

func TestProcess_MalformedSource(t *testing.T) {
	t.Parallel()

	hl := &fakeHighlighter{}
	state := NewRenderState(nil)
	err := Process("# doc\nx = 'unterminated\n", NewRenderer(hl), state)

	if !errors.Is(err, lexer.ErrLex) {
		t.Fatalf("Process() error = %v, want ErrLex", err)
	}
	if len(state.Fragments) != 0 || len(hl.calls) != 0 {
		t.Error("blocks were rendered before the lexer failed")
	}
}

func TestProcess_DirectiveErrorStops(t *testing.T) {
	t.Parallel()

	hl := &fakeHighlighter{}
	state := NewRenderState(nil)
	err := Process("x = 1\n\n## y = nope\nz = 2\n", NewRenderer(hl), state)

	var dirErr *directive.Error
	if !errors.As(err, &dirErr) {
		t.Fatalf("Process() error = %v, want *directive.Error", err)
	}
	if dirErr.Line != 3 {
		t.Errorf("line = %d, want 3", dirErr.Line)
	}
	if len(hl.calls) != 1 {
		t.Errorf("highlighter calls = %q, want only the block before the failure", hl.calls)
	}
}

// ---------------------------------------------------------------------------
// End to end with chroma
// ---------------------------------------------------------------------------

func TestProcess_Deterministic(t *testing.T) {
	t.Parallel()

	src := "## title = 'Circle'\n# <h1>Circle</h1>\ndef in_circle(x, y, r):\n    return x ** 2 + y ** 2 < r ** 2\n"

	render := func() string {
		state := NewRenderState(nil)
		if err := Process(src, NewRenderer(nil), state); err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		a, err := NewAssembler(testTemplate, "")
		if err != nil {
			t.Fatalf("NewAssembler() error = %v", err)
		}
		out, err := a.Assemble(state)
		if err != nil {
			t.Fatalf("Assemble() error = %v", err)
		}
		return out
	}

	first, second := render(), render()
	if first != second {
		t.Error("two conversions of the same input differ")
	}
	for _, want := range []string{"<title>Circle</title>", `<div class="syntax">`, "<h1>Circle</h1>", "in_circle"} {
		if !strings.Contains(first, want) {
			t.Errorf("document missing %q", want)
		}
	}
}
