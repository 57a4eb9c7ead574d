package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags that shape CLI behavior rather than the document.
type commonFlags struct {
	config  string
	color   string
	quiet   bool
	verbose bool
	version bool
}

// documentFlags holds initial parameter values.
type documentFlags struct {
	title      string
	stylesheet string
	markdown   bool
	params     []string // key=value
}

// highlightFlags holds code highlighting flags.
type highlightFlags struct {
	style       string
	lineNumbers bool
}

// assetFlags holds asset-related flags (base stylesheet, template, asset path).
type assetFlags struct {
	css       string
	template  string
	assetPath string
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// cliFlags holds every lit2html flag.
type cliFlags struct {
	common    commonFlags
	document  documentFlags
	highlight highlightFlags
	assets    assetFlags
	page      pageFlags
	timeout   string

	// changed records the flags given on the command line, so that an
	// explicit --linenos=false can still override a config file.
	changed map[string]bool
}

// addCommonFlags adds CLI behavior flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.color, "color", colorAuto, "color diagnostics: auto, always, never")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
}

// addDocumentFlags adds initial parameter flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVarP(&f.title, "title", "t", "", "document title")
	fs.StringVarP(&f.stylesheet, "stylesheet", "s", "", "extra stylesheet href")
	fs.BoolVar(&f.markdown, "markdown", false, "render comments as Markdown")
	fs.StringArrayVarP(&f.params, "param", "p", nil, "initial parameter key=value (repeatable)")
}

// addHighlightFlags adds code highlighting flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.StringVar(&f.style, "highlight-style", "", "highlight style (e.g. github, monokai)")
	fs.BoolVar(&f.lineNumbers, "linenos", false, "number code lines")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.css, "css", "", "base stylesheet name")
	fs.StringVar(&f.template, "template", "", "document template name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addPageFlags adds PDF page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVar(&f.size, "page-size", "", "PDF page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "PDF orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "PDF margin in inches (0.25-3.0)")
}

// parseFlags parses command-line arguments (without the program name) and
// returns the positional arguments. -h/--help yields flag.ErrHelp.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("lit2html", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &cliFlags{}

	fs.StringVar(&f.timeout, "timeout", "", "PDF generation timeout (e.g., 30s, 2m)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addHighlightFlags(fs, &f.highlight)
	addAssetFlags(fs, &f.assets)
	addPageFlags(fs, &f.page)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.changed = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) {
		f.changed[fl.Name] = true
	})

	return f, fs.Args(), nil
}
