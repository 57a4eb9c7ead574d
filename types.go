package lit2html

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if _, ok := paperSizes[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// Input is one literate source document to convert.
type Input struct {
	Source string // literate Python source (an empty source yields an empty body)

	// Params seeds the render parameters before any directive runs.
	// Values must be strings, booleans or integers. Directives in Source
	// override them.
	Params map[string]any

	// SourceDir resolves relative img, a and link references for PDF
	// output. Empty leaves them untouched.
	SourceDir string

	PDF  bool          // also render the document to PDF (requires Chrome)
	Page *PageSettings // PDF page settings (optional, nil = defaults)
}

// ConvertResult holds the output of one conversion.
type ConvertResult struct {
	HTML []byte
	PDF  []byte // nil unless Input.PDF was set

	// Params are the parameter values after every directive ran.
	Params map[string]any
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout      time.Duration
	assetPath    string
	styleName    string
	templateName string
	stdout       io.Writer
	now          func() time.Time
	lookupEnv    func(string) (string, bool)
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("lit2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithAssetPath loads styles and templates from dir first, falling back to
// the embedded assets. The directory holds styles/{name}.css and
// templates/{name}.html.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithStyle selects the base stylesheet by name (default "default").
func WithStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.styleName = name
	}
}

// WithTemplate selects the document template by name (default "document").
func WithTemplate(name string) Option {
	return func(c *Converter) {
		c.cfg.templateName = name
	}
}

// WithDirectiveOutput sets where the print() directive builtin writes.
// Output is discarded by default.
func WithDirectiveOutput(w io.Writer) Option {
	return func(c *Converter) {
		c.cfg.stdout = w
	}
}

// WithClock sets the clock behind the date() directive builtin.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.cfg.now = now
	}
}

// WithLookupEnv sets the environment lookup behind the env() directive
// builtin. Defaults to os.LookupEnv.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(c *Converter) {
		c.cfg.lookupEnv = fn
	}
}
