package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	lit2html "github.com/alnah/go-lit2html"
	"github.com/alnah/go-lit2html/internal/config"
	"github.com/alnah/go-lit2html/internal/hints"
	"github.com/alnah/go-lit2html/internal/pipeline"
)

// Color modes accepted by --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// excerptContext is the number of source lines shown before a failing line.
const excerptContext = 2

// painter colors diagnostic prefixes on stderr.
type painter struct {
	err  *color.Color
	warn *color.Color
	hint *color.Color
	dim  *color.Color
}

// fdWriter is implemented by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// newPainter resolves mode against w. "auto" colors only when w is a
// terminal and NO_COLOR is unset.
func newPainter(mode string, w io.Writer, getenv func(string) string) (*painter, error) {
	var enabled bool
	switch mode {
	case colorAlways:
		enabled = true
	case colorNever:
		enabled = false
	case colorAuto, "":
		enabled = isTerminal(w) && getenv("NO_COLOR") == ""
	default:
		return nil, fmt.Errorf("%w: %q (want auto, always or never)", ErrInvalidColor, mode)
	}

	p := &painter{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		hint: color.New(color.FgCyan),
		dim:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.hint, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p, nil
}

// plainPainter never colors. Used before --color is known.
func plainPainter() *painter {
	p, _ := newPainter(colorNever, io.Discard, func(string) string { return "" })
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

func (p *painter) warnf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", p.warn.Sprint("warning:"), fmt.Sprintf(format, args...))
}

// hintEnv is what hints may consult besides the error itself.
type hintEnv struct {
	getenv     func(string) string
	configName string
}

// printError reports err on w: the message, a source excerpt when err
// points at a line of source, and hints.
func printError(w io.Writer, p *painter, err error, he hintEnv) {
	fmt.Fprintf(w, "%s %v\n", p.err.Sprint("error:"), err)

	var srcErr *sourceError
	if errors.As(err, &srcErr) {
		if line, col, ok := errorPosition(err); ok {
			printExcerpt(w, p, srcErr.Source, line, col)
		}
	}

	if h := hintFor(err, he); h != "" {
		h = strings.TrimPrefix(h, "\n")
		fmt.Fprintln(w, strings.Replace(h, "hint:", p.hint.Sprint("hint:"), 1))
	}
}

// errorPosition extracts the 1-based line and 0-based column of err.
// col is -1 when only the line is known.
func errorPosition(err error) (line, col int, ok bool) {
	var lexErr *lit2html.LexError
	if errors.As(err, &lexErr) {
		return lexErr.Line(), lexErr.Column(), true
	}
	var dirErr *lit2html.DirectiveError
	if errors.As(err, &dirErr) {
		return dirErr.Line, -1, true
	}
	return 0, 0, false
}

// printExcerpt prints the failing line with a little leading context and,
// when col is known, a caret under the failing column.
func printExcerpt(w io.Writer, p *painter, source string, line, col int) {
	lines := strings.Split(pipeline.NormalizeLineEndings(source), "\n")
	if line < 1 || line > len(lines) {
		return
	}

	first := max(line-excerptContext, 1)
	width := len(fmt.Sprint(line))
	for n := first; n <= line; n++ {
		gutter := fmt.Sprintf("%*d | ", width, n)
		text := expandTabs(lines[n-1])
		if n == line {
			fmt.Fprintf(w, "  %s%s\n", gutter, text)
		} else {
			fmt.Fprintf(w, "  %s%s\n", p.dim.Sprint(gutter), p.dim.Sprint(text))
		}
	}
	if col < 0 {
		return
	}

	prefix := lines[line-1]
	if col < len(prefix) {
		prefix = prefix[:col]
	}
	pad := len([]rune(expandTabs(prefix)))
	fmt.Fprintf(w, "  %*s | %s%s\n", width, "", strings.Repeat(" ", pad), p.err.Sprint("^"))
}

// expandTabs keeps caret alignment independent of the terminal tab width.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, he hintEnv) string {
	var missing *lit2html.MissingParameterError
	switch {
	case errors.As(err, &missing):
		return hints.ForMissingParameter(missing.Name)
	case errors.Is(err, lit2html.ErrDirective):
		return hints.ForDirective()
	case errors.Is(err, lit2html.ErrLex):
		return hints.ForLex()
	case errors.Is(err, lit2html.ErrUnknownStyle),
		errors.Is(err, config.ErrInvalidField) && strings.Contains(err.Error(), "highlight.style"):
		return hints.ForStyleNotFound(pipeline.StyleNames())
	case errors.Is(err, config.ErrConfigNotFound):
		dir, _ := os.UserConfigDir()
		return hints.ForConfigNotFound(he.configName, dir)
	case errors.Is(err, lit2html.ErrBrowserConnect):
		return hints.ForBrowserConnect(he.getenv, hints.InContainer())
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
