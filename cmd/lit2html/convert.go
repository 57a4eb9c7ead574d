package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	lit2html "github.com/alnah/go-lit2html"
	"github.com/alnah/go-lit2html/internal/config"
	"github.com/alnah/go-lit2html/internal/directive"
	"github.com/alnah/go-lit2html/internal/fileutil"
	"github.com/alnah/go-lit2html/internal/pipeline"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrTooManyArgs      = errors.New("too many arguments")
	ErrReadInput        = errors.New("failed to read input file")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrInvalidParamFlag = errors.New("invalid --param value")
	ErrInvalidTimeout   = errors.New("invalid timeout")
	ErrInvalidColor     = errors.New("invalid color mode")
)

// stdioPath selects stdin for the input or stdout for the output.
const stdioPath = "-"

// filePermissions is rw-r--r--, used when the output does not exist yet.
const filePermissions = 0o644

// defaultTimeout bounds PDF generation when nothing else sets it.
const defaultTimeout = 30 * time.Second

// sourceError attaches the document source to a conversion error so that
// diagnostics can print an excerpt.
type sourceError struct {
	Path   string
	Source string
	Err    error
}

func (e *sourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *sourceError) Unwrap() error { return e.Err }

// job is one resolved conversion request.
type job struct {
	inputPath  string
	outputPath string
	pdf        bool
}

// runConvert orchestrates one conversion: configuration, input, pipeline
// and output.
func runConvert(ctx context.Context, positionalArgs []string, flags *cliFlags, env *Environment) error {
	j, err := resolveJob(positionalArgs)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.getenv)
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	params, err := buildParams(cfg, flags.document.params)
	if err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg, cfg)
	if err != nil {
		return err
	}

	source, err := readInput(j.inputPath, env.Stdin)
	if err != nil {
		return err
	}

	input := lit2html.Input{
		Source: source,
		Params: params,
		PDF:    j.pdf,
	}
	if j.pdf {
		input.Page = buildPageSettings(cfg)
		if j.inputPath != stdioPath {
			input.SourceDir = filepath.Dir(j.inputPath)
		}
	}

	directiveOut := env.Stderr
	if flags.common.quiet {
		directiveOut = io.Discard
	}
	conv, err := env.NewConverter(
		lit2html.WithTimeout(timeout),
		lit2html.WithAssetPath(cfg.Assets.BasePath),
		lit2html.WithStyle(cfg.Assets.Style),
		lit2html.WithTemplate(cfg.Assets.Template),
		lit2html.WithDirectiveOutput(directiveOut),
		lit2html.WithClock(env.Now),
		lit2html.WithLookupEnv(env.LookupEnv),
	)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	start := env.Now()
	result, err := conv.Convert(ctx, input)
	if err != nil {
		return &sourceError{Path: displayPath(j.inputPath), Source: source, Err: err}
	}

	data := result.HTML
	if j.pdf {
		data = result.PDF
	}
	if err := writeOutput(j.outputPath, data, env.Stdout); err != nil {
		return err
	}

	if j.outputPath != stdioPath && !flags.common.quiet {
		if flags.common.verbose {
			elapsed := env.Now().Sub(start).Round(time.Millisecond)
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", displayPath(j.inputPath), j.outputPath, elapsed)
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", j.outputPath)
		}
	}
	return nil
}

// resolveJob maps the positional arguments to input and output paths.
// Without an output, stdin converts to stdout and a file converts next to
// itself with an .html extension.
func resolveJob(args []string) (job, error) {
	switch {
	case len(args) == 0:
		return job{}, ErrNoInput
	case len(args) > 2:
		return job{}, fmt.Errorf("%w: expected <input> [output], got %d arguments", ErrTooManyArgs, len(args))
	}

	j := job{inputPath: args[0]}
	switch {
	case len(args) == 2:
		j.outputPath = args[1]
	case j.inputPath == stdioPath:
		j.outputPath = stdioPath
	default:
		j.outputPath = fileutil.ReplaceExt(j.inputPath, ".html")
	}
	j.pdf = strings.EqualFold(filepath.Ext(j.outputPath), ".pdf")
	return j, nil
}

// loadConfig loads the config named by the flag, else by LIT2HTML_CONFIG,
// else returns defaults.
func loadConfig(flagConfig string, envCfg *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, err
	}
	fillConfigDefaults(cfg)
	return cfg, nil
}

// fillConfigDefaults restores defaults for fields a config file left empty.
func fillConfigDefaults(cfg *config.Config) {
	def := config.DefaultConfig()
	if cfg.Highlight.Style == "" {
		cfg.Highlight.Style = def.Highlight.Style
	}
	if cfg.Assets.Style == "" {
		cfg.Assets.Style = def.Assets.Style
	}
	if cfg.Assets.Template == "" {
		cfg.Assets.Template = def.Assets.Template
	}
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	// Document flags
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.stylesheet != "" {
		cfg.Document.Stylesheet = flags.document.stylesheet
	}
	if flags.changed["markdown"] {
		cfg.Document.Markdown = flags.document.markdown
	}

	// Highlight flags
	if flags.highlight.style != "" {
		cfg.Highlight.Style = flags.highlight.style
	}
	if flags.changed["linenos"] {
		cfg.Highlight.LineNumbers = flags.highlight.lineNumbers
	}

	// Asset flags
	if flags.assets.css != "" {
		cfg.Assets.Style = flags.assets.css
	}
	if flags.assets.template != "" {
		cfg.Assets.Template = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	// Page flags
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin != 0 {
		cfg.Page.Margin = flags.page.margin
	}
}

// buildParams assembles the initial parameters: config params, then the
// declared parameters from the merged config, then --param entries.
func buildParams(cfg *config.Config, paramFlags []string) (map[string]any, error) {
	params := make(map[string]any, len(cfg.Params)+len(pipeline.DeclaredKinds)+len(paramFlags))
	for name, v := range cfg.Params {
		params[name] = v
	}

	params[pipeline.ParamTitle] = cfg.Document.Title
	params[pipeline.ParamStylesheet] = cfg.Document.Stylesheet
	params[pipeline.ParamStyle] = cfg.Highlight.Style
	params[pipeline.ParamLineNos] = cfg.Highlight.LineNumbers
	params[pipeline.ParamMarkdown] = cfg.Document.Markdown

	for _, raw := range paramFlags {
		name, value, err := parseParam(raw)
		if err != nil {
			return nil, err
		}
		params[name] = value
	}
	return params, nil
}

// parseParam splits a key=value --param entry. Declared string parameters
// keep the raw text; other values become a bool for true/false, an int
// when they parse as one, and a string otherwise.
func parseParam(raw string) (string, any, error) {
	name, value, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", nil, fmt.Errorf("%w: %q (want key=value)", ErrInvalidParamFlag, raw)
	}

	if kind, declared := pipeline.DeclaredKinds[name]; declared {
		switch kind {
		case directive.KindString:
			return name, value, nil
		case directive.KindBool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return "", nil, fmt.Errorf("%w: %s must be true or false, got %q", ErrInvalidParamFlag, name, value)
			}
			return name, b, nil
		}
	}

	switch value {
	case "true", "True":
		return name, true, nil
	case "false", "False":
		return name, false, nil
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return name, n, nil
	}
	return name, value, nil
}

// resolveTimeout picks the PDF timeout: flag, then env, then config, then
// the default.
func resolveTimeout(flagTimeout string, envCfg *envConfig, cfg *config.Config) (time.Duration, error) {
	if flagTimeout != "" {
		d, err := time.ParseDuration(flagTimeout)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidTimeout, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, flagTimeout)
		}
		return d, nil
	}
	if envCfg.Timeout > 0 {
		return envCfg.Timeout, nil
	}
	if d := cfg.PDF.TimeoutDuration(); d > 0 {
		return d, nil
	}
	return defaultTimeout, nil
}

// buildPageSettings converts config page settings, defaulting empty fields.
func buildPageSettings(cfg *config.Config) *lit2html.PageSettings {
	page := lit2html.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = cfg.Page.Size
	}
	if cfg.Page.Orientation != "" {
		page.Orientation = cfg.Page.Orientation
	}
	if cfg.Page.Margin != 0 {
		page.Margin = cfg.Page.Margin
	}
	return page
}

// readInput reads the whole source before anything is written, so an
// output path equal to the input is safe.
func readInput(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == stdioPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- user-provided path
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrReadInput, displayPath(path), err)
	}
	return string(data), nil
}

// writeOutput writes data to path atomically, or to stdout for "-".
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == stdioPath {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}
	return nil
}

func displayPath(path string) string {
	if path == stdioPath {
		return "<stdin>"
	}
	return path
}
