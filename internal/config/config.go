package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-lit2html/internal/assets"
	"github.com/alnah/go-lit2html/internal/confutil"
	"github.com/alnah/go-lit2html/internal/directive"
	"github.com/alnah/go-lit2html/internal/fileutil"
	"github.com/alnah/go-lit2html/internal/pipeline"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxURLLength         = 2048 // Browser limit
	MaxStyleNameLength   = 50
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
	MaxParamNameLength   = 64
	MaxParams            = 100
)

// configDirName is the directory searched under os.UserConfigDir.
const configDirName = "go-lit2html"

// Config holds all configuration for document generation.
type Config struct {
	Document  DocumentConfig  `yaml:"document" toml:"document"`
	Highlight HighlightConfig `yaml:"highlight" toml:"highlight"`
	Assets    AssetsConfig    `yaml:"assets" toml:"assets"`
	Page      PageConfig      `yaml:"page" toml:"page"`
	PDF       PDFConfig       `yaml:"pdf" toml:"pdf"`
	// Params are extra initial parameters, visible to directives and the
	// template. Values must be strings, booleans or integers.
	Params map[string]any `yaml:"params" toml:"params"`
}

// DocumentConfig sets the initial values of the document parameters.
type DocumentConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Stylesheet string `yaml:"stylesheet" toml:"stylesheet"` // href of an extra <link rel="stylesheet">
	Markdown   bool   `yaml:"markdown" toml:"markdown"`     // render comments as Markdown
}

// HighlightConfig sets code highlighting options.
type HighlightConfig struct {
	Style       string `yaml:"style" toml:"style"` // chroma style name (default: "github")
	LineNumbers bool   `yaml:"lineNumbers" toml:"lineNumbers"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath" toml:"basePath"` // Empty = use embedded assets
	Style    string `yaml:"style" toml:"style"`       // Base stylesheet name (default: "default")
	Template string `yaml:"template" toml:"template"` // Document template name (default: "document")
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size" toml:"size"`               // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation" toml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin" toml:"margin"`           // inches (default: 0.5)
}

// PDFConfig defines browser options for PDF output.
type PDFConfig struct {
	Timeout string `yaml:"timeout" toml:"timeout"` // Go duration, e.g. "30s"
}

// TimeoutDuration returns the parsed timeout, or 0 when unset.
// Validate has already rejected malformed values.
func (p PDFConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks field lengths and values. Called automatically by
// LoadConfig, but available for consumers who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.stylesheet", c.Document.Stylesheet, MaxURLLength},
		{"highlight.style", c.Highlight.Style, MaxStyleNameLength},
		{"assets.basePath", c.Assets.BasePath, MaxURLLength},
		{"assets.style", c.Assets.Style, MaxStyleNameLength},
		{"assets.template", c.Assets.Template, MaxStyleNameLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Highlight.Style != "" && !pipeline.ValidStyle(c.Highlight.Style) {
		return fmt.Errorf("%w: highlight.style: unknown style %q", ErrInvalidField, c.Highlight.Style)
	}
	if c.Assets.Style != "" {
		if err := assets.ValidateAssetName(c.Assets.Style); err != nil {
			return fmt.Errorf("%w: assets.style: %v", ErrInvalidField, err)
		}
	}
	if c.Assets.Template != "" {
		if err := assets.ValidateAssetName(c.Assets.Template); err != nil {
			return fmt.Errorf("%w: assets.template: %v", ErrInvalidField, err)
		}
	}

	if c.PDF.Timeout != "" {
		d, err := time.ParseDuration(c.PDF.Timeout)
		if err != nil {
			return fmt.Errorf("%w: pdf.timeout: %v", ErrInvalidField, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: pdf.timeout: must be positive, got %s", ErrInvalidField, c.PDF.Timeout)
		}
	}

	if len(c.Params) > MaxParams {
		return fmt.Errorf("%w: params: %d entries (max %d)", ErrInvalidField, len(c.Params), MaxParams)
	}
	for name, v := range c.Params {
		if err := validateFieldLength("params key", name, MaxParamNameLength); err != nil {
			return err
		}
		if _, err := directive.FromAny(v); err != nil {
			return fmt.Errorf("%w: params.%s: %v", ErrInvalidField, name, err)
		}
	}

	return nil
}

// InitialParams converts Params to directive values. Call after Validate.
func (c *Config) InitialParams() (directive.Params, error) {
	out := make(directive.Params, len(c.Params))
	for name, v := range c.Params {
		val, err := directive.FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("%w: params.%s: %v", ErrInvalidField, name, err)
		}
		out[name] = val
	}
	return out, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: embedded assets, default
// highlight style, no extra parameters.
func DefaultConfig() *Config {
	return &Config{
		Highlight: HighlightConfig{Style: pipeline.DefaultHighlightStyle},
		Assets: AssetsConfig{
			Style:    assets.DefaultStyleName,
			Template: assets.DefaultTemplateName,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	decode := confutil.UnmarshalYAML
	if strings.EqualFold(filepath.Ext(configPath), ".toml") {
		decode = confutil.UnmarshalTOML
	}
	if err := decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// configExtensions are tried in order for a bare config name.
var configExtensions = []string{".yaml", ".yml", ".toml"}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries locations in order: current directory, ~/.config/go-lit2html/
func resolveConfigPath(name string) (string, error) {
	triedPaths := make([]string, 0, len(configExtensions)*2)

	for _, ext := range configExtensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range configExtensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
