package assets

// AssetLoader loads the stylesheets and templates a document is built from.
type AssetLoader interface {
	// LoadStyle loads a CSS stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if it doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if it doesn't exist.
	LoadTemplate(name string) (string, error)
}
