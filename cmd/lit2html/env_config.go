package main

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-lit2html/internal/config"
)

// envPrefix marks the environment variables lit2html reads.
const envPrefix = "LIT2HTML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
type envConfig struct {
	ConfigPath     string        // LIT2HTML_CONFIG: config file name or path
	Title          string        // LIT2HTML_TITLE: initial title
	Stylesheet     string        // LIT2HTML_STYLESHEET: extra stylesheet href
	HighlightStyle string        // LIT2HTML_HIGHLIGHT_STYLE: chroma style name
	Timeout        time.Duration // LIT2HTML_TIMEOUT: PDF generation timeout
}

// knownEnvVars lists valid LIT2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"LIT2HTML_CONFIG":          true,
	"LIT2HTML_TITLE":           true,
	"LIT2HTML_STYLESHEET":      true,
	"LIT2HTML_HIGHLIGHT_STYLE": true,
	"LIT2HTML_TIMEOUT":         true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed or non-positive timeouts are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:     getenv("LIT2HTML_CONFIG"),
		Title:          getenv("LIT2HTML_TITLE"),
		Stylesheet:     getenv("LIT2HTML_STYLESHEET"),
		HighlightStyle: getenv("LIT2HTML_HIGHLIGHT_STYLE"),
	}

	if timeout := getenv("LIT2HTML_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// unknownEnvVars returns the unrecognized LIT2HTML_* names in environ,
// sorted. Catches typos like LIT2HTML_TITEL.
func unknownEnvVars(environ []string) []string {
	var unknown []string
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// warnUnknownEnvVars prints a warning per unrecognized LIT2HTML_* variable.
func warnUnknownEnvVars(w io.Writer, environ []string, p *painter) {
	for _, name := range unknownEnvVars(environ) {
		p.warnf(w, "unknown environment variable %s (typo?)", name)
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are merged afterwards
// by mergeFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Title != "" {
		cfg.Document.Title = env.Title
	}
	if env.Stylesheet != "" {
		cfg.Document.Stylesheet = env.Stylesheet
	}
	if env.HighlightStyle != "" {
		cfg.Highlight.Style = env.HighlightStyle
	}
}
