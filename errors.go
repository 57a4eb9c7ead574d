package lit2html

import (
	"errors"

	"github.com/alnah/go-lit2html/internal/assets"
	"github.com/alnah/go-lit2html/internal/directive"
	"github.com/alnah/go-lit2html/internal/lexer"
	"github.com/alnah/go-lit2html/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInvalidParameter = errors.New("invalid parameter value")
	ErrPDFGeneration    = errors.New("PDF generation failed")
	ErrBrowserConnect   = errors.New("failed to connect to browser")
	ErrPageCreate       = errors.New("failed to create browser page")
	ErrPageLoad         = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Asset loading errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
)

// Conversion errors raised by the pipeline stages.
var (
	// ErrLex reports source text the comment locator cannot tokenize.
	ErrLex = lexer.ErrLex
	// ErrDirective reports a directive block that fails to parse or execute.
	ErrDirective = directive.ErrDirective
	// ErrHighlight reports a code block the highlighter rejects.
	ErrHighlight = pipeline.ErrHighlight
	// ErrUnknownStyle reports a highlight style chroma does not know.
	ErrUnknownStyle = pipeline.ErrUnknownStyle
	// ErrMarkdown reports a comment block goldmark fails to render.
	ErrMarkdown = pipeline.ErrMarkdown
	// ErrMissingParameter reports a template placeholder with no value.
	ErrMissingParameter = pipeline.ErrMissingParameter
	// ErrTemplateParse reports a document template that does not parse.
	ErrTemplateParse = pipeline.ErrTemplateParse
	// ErrTemplateExecute reports any other template execution failure.
	ErrTemplateExecute = pipeline.ErrTemplateExecute
)

// Positional error types, for use with errors.As.
type (
	// LexError carries the line and column where tokenization stopped.
	LexError = lexer.Error
	// DirectiveError carries the absolute source line of a failing directive.
	DirectiveError = directive.Error
	// MissingParameterError names the unbound template placeholder.
	MissingParameterError = pipeline.MissingParameterError
)
