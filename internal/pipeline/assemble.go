package pipeline

import (
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

// Template data keys supplied by the assembler itself.
const (
	KeyBody = "body"
	KeyCSS  = "css"
)

// Sentinel errors for document assembly.
var (
	ErrTemplateParse    = errors.New("invalid document template")
	ErrTemplateExecute  = errors.New("document template execution failed")
	ErrMissingParameter = errors.New("missing template parameter")
)

// MissingParameterError names a template placeholder with no bound value.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%v: %q", ErrMissingParameter, e.Name)
}

// Unwrap lets errors.Is match ErrMissingParameter.
func (e *MissingParameterError) Unwrap() error {
	return ErrMissingParameter
}

var missingKeyPattern = regexp.MustCompile(`map has no entry for key "([^"]*)"`)

// Assembler fills the document template from a finished RenderState.
type Assembler struct {
	tmpl    *template.Template
	baseCSS string
}

// NewAssembler parses the document template. baseCSS is emitted before
// the highlight style rules.
func NewAssembler(templateText, baseCSS string) (*Assembler, error) {
	tmpl, err := template.New("document").Option("missingkey=error").Parse(templateText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &Assembler{tmpl: tmpl, baseCSS: baseCSS}, nil
}

// Assemble joins the fragments into the body and executes the template
// with every parameter plus body and css. Body and css are trusted HTML
// and CSS; every other value is escaped by html/template.
func (a *Assembler) Assemble(state *RenderState) (string, error) {
	styleCSS, err := StyleCSS(state.Params.Str(ParamStyle))
	if err != nil {
		return "", err
	}

	data := state.Params.Map()
	data[KeyBody] = template.HTML(strings.Join(state.Fragments, "\n")) // #nosec G203 -- fragments are produced by the renderer
	data[KeyCSS] = template.CSS(a.baseCSS + "\n" + styleCSS)            // #nosec G203 -- embedded or user-supplied stylesheet

	var sb strings.Builder
	if err := a.tmpl.Execute(&sb, data); err != nil {
		if m := missingKeyPattern.FindStringSubmatch(err.Error()); m != nil {
			return "", &MissingParameterError{Name: m[1]}
		}
		return "", fmt.Errorf("%w: %v", ErrTemplateExecute, err)
	}
	return sb.String(), nil
}
