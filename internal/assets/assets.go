package assets

// DefaultStyleName is the name of the built-in base stylesheet.
const DefaultStyleName = "default"

// DefaultTemplateName is the name of the built-in document template.
const DefaultTemplateName = "document"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the embedded loader.
// The name should not include the .css extension or path components.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads an HTML template by name using the embedded loader.
// The name should not include the .html extension or path components.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
