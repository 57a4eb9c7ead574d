package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	lit2html "github.com/alnah/go-lit2html"
	"github.com/alnah/go-lit2html/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "unexpected", err: errors.New("boom"), want: ExitGeneral},

		// Usage
		{name: "no input", err: ErrNoInput, want: ExitUsage},
		{name: "too many args", err: fmt.Errorf("%w: 3", ErrTooManyArgs), want: ExitUsage},
		{name: "bad param flag", err: ErrInvalidParamFlag, want: ExitUsage},
		{name: "bad timeout", err: ErrInvalidTimeout, want: ExitUsage},
		{name: "bad color", err: ErrInvalidColor, want: ExitUsage},
		{name: "config not found", err: fmt.Errorf("loading config: %w", config.ErrConfigNotFound), want: ExitUsage},
		{name: "config parse", err: config.ErrConfigParse, want: ExitUsage},
		{name: "config field", err: config.ErrInvalidField, want: ExitUsage},
		{name: "page size", err: lit2html.ErrInvalidPageSize, want: ExitUsage},
		{name: "missing template", err: fmt.Errorf("loading template: %w", lit2html.ErrTemplateNotFound), want: ExitUsage},
		{name: "template parse", err: lit2html.ErrTemplateParse, want: ExitUsage},
		{name: "asset path", err: lit2html.ErrInvalidAssetPath, want: ExitUsage},

		// I/O
		{name: "read input", err: fmt.Errorf("%w: x.py: %w", ErrReadInput, os.ErrNotExist), want: ExitIO},
		{name: "write output", err: ErrWriteOutput, want: ExitIO},
		{name: "permission", err: os.ErrPermission, want: ExitIO},

		// Browser
		{name: "browser connect", err: fmt.Errorf("converting to PDF: %w", lit2html.ErrBrowserConnect), want: ExitBrowser},
		{name: "pdf generation", err: lit2html.ErrPDFGeneration, want: ExitBrowser},

		// Conversion
		{name: "lex", err: &sourceError{Err: &lit2html.LexError{Msg: "unterminated string"}}, want: ExitConversion},
		{name: "directive", err: &lit2html.DirectiveError{Line: 3, Msg: "bad"}, want: ExitConversion},
		{name: "highlight", err: lit2html.ErrHighlight, want: ExitConversion},
		{name: "unknown style", err: lit2html.ErrUnknownStyle, want: ExitConversion},
		{name: "missing parameter", err: &lit2html.MissingParameterError{Name: "author"}, want: ExitConversion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
