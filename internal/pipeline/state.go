package pipeline

import "github.com/alnah/go-lit2html/internal/directive"

// Declared parameter names.
const (
	ParamTitle      = "title"
	ParamStylesheet = "stylesheet"
	ParamStyle      = "style"
	ParamLineNos    = "linenos"
	ParamMarkdown   = "markdown"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// DeclaredKinds fixes the kind of every declared parameter.
var DeclaredKinds = map[string]directive.Kind{
	ParamTitle:      directive.KindString,
	ParamStylesheet: directive.KindString,
	ParamStyle:      directive.KindString,
	ParamLineNos:    directive.KindBool,
	ParamMarkdown:   directive.KindBool,
}

// DefaultParams returns a fresh copy of the declared parameter defaults.
func DefaultParams() directive.Params {
	return directive.Params{
		ParamTitle:      directive.String(""),
		ParamStylesheet: directive.String(""),
		ParamStyle:      directive.String(DefaultHighlightStyle),
		ParamLineNos:    directive.Bool(false),
		ParamMarkdown:   directive.Bool(false),
	}
}

// RenderState is the per-document state shared by the renderer and the
// assembler. Only directive blocks change Params.
type RenderState struct {
	Params    directive.Params
	Fragments []string
}

// NewRenderState starts from the defaults and overlays initial values.
func NewRenderState(initial directive.Params) *RenderState {
	params := DefaultParams()
	for k, v := range initial {
		params[k] = v
	}
	return &RenderState{Params: params}
}
