package lit2html

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-lit2html/internal/assets"
	"github.com/alnah/go-lit2html/internal/directive"
	"github.com/alnah/go-lit2html/internal/pipeline"
)

// Compile-time interface checks.
var (
	_ pipeline.Highlighter = (*pipeline.ChromaHighlighter)(nil)
	_ pdfConverter         = (*rodConverter)(nil)
	_ pdfRenderer          = (*rodRenderer)(nil)
)

// Converter runs the classify-and-render pipeline over literate sources.
// Create with NewConverter, call Convert per document, and Close when done.
// A Converter holds no per-document state, but its browser is not safe for
// concurrent use.
type Converter struct {
	cfg          converterConfig
	assetLoader  assets.AssetLoader
	highlighter  pipeline.Highlighter
	renderer     *pipeline.Renderer
	assembler    *pipeline.Assembler
	pdfConverter pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithAssetPath, WithTemplate).
// Returns error if asset loading or template parsing fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:      defaultTimeout,
			styleName:    assets.DefaultStyleName,
			templateName: assets.DefaultTemplateName,
		},
		assetLoader: assets.NewEmbeddedLoader(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	css, err := c.assetLoader.LoadStyle(c.cfg.styleName)
	if err != nil {
		return nil, fmt.Errorf("loading style %q: %w", c.cfg.styleName, err)
	}
	tmpl, err := c.assetLoader.LoadTemplate(c.cfg.templateName)
	if err != nil {
		return nil, fmt.Errorf("loading template %q: %w", c.cfg.templateName, err)
	}
	c.assembler, err = pipeline.NewAssembler(tmpl, css)
	if err != nil {
		return nil, fmt.Errorf("loading template %q: %w", c.cfg.templateName, err)
	}

	var rendererOpts []pipeline.RendererOption
	if c.cfg.stdout != nil {
		rendererOpts = append(rendererOpts, pipeline.WithDirectiveOutput(c.cfg.stdout))
	}
	if c.cfg.now != nil {
		rendererOpts = append(rendererOpts, pipeline.WithClock(c.cfg.now))
	}
	if c.cfg.lookupEnv != nil {
		rendererOpts = append(rendererOpts, pipeline.WithLookupEnv(c.cfg.lookupEnv))
	}
	c.renderer = pipeline.NewRenderer(c.highlighter, rendererOpts...)

	// Tests inject a fake before this point.
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert runs the pipeline over input.Source and returns the assembled
// HTML document, plus a PDF when input.PDF is set. The context is checked
// before the pipeline starts and bounds the PDF stage.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	initial, err := c.validateInput(input)
	if err != nil {
		return nil, err
	}

	state := pipeline.NewRenderState(initial)
	if err := pipeline.Process(input.Source, c.renderer, state); err != nil {
		return nil, err
	}

	doc, err := c.assembler.Assemble(state)
	if err != nil {
		return nil, fmt.Errorf("assembling document: %w", err)
	}

	res := &ConvertResult{
		HTML:   []byte(doc),
		Params: state.Params.Map(),
	}
	if !input.PDF {
		return res, nil
	}

	printable, err := pipeline.ResolveLocalLinks(doc, input.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("resolving local links: %w", err)
	}
	pdfBytes, err := c.pdfConverter.ToPDF(ctx, printable, &pdfOptions{Page: input.Page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// validateInput checks page settings and converts Params to directive
// values. This is the trust boundary for library users; the CLI validates
// its config earlier but converges here.
func (c *Converter) validateInput(input Input) (directive.Params, error) {
	if err := input.Page.Validate(); err != nil {
		return nil, err
	}

	initial := make(directive.Params, len(input.Params))
	for name, raw := range input.Params {
		v, err := directive.FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidParameter, name, err)
		}
		if kind, ok := pipeline.DeclaredKinds[name]; ok && v.Kind() != kind {
			return nil, fmt.Errorf("%w: %s must be %s, got %s", ErrInvalidParameter, name, kind, v.Kind())
		}
		initial[name] = v
	}

	if style, ok := initial[pipeline.ParamStyle]; ok && !pipeline.ValidStyle(style.String()) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, style.String())
	}
	return initial, nil
}

// IsConversionError reports whether err came from the source document
// itself (lexing, directives, highlighting, markdown or the template)
// rather than from the environment.
func IsConversionError(err error) bool {
	for _, target := range []error{
		ErrLex, ErrDirective, ErrHighlight, ErrUnknownStyle, ErrMarkdown,
		ErrMissingParameter, ErrTemplateExecute, ErrInvalidParameter,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
