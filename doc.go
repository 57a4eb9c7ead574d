// Package lit2html converts literate Python sources into a single HTML
// document: comment blocks become prose, code blocks are syntax
// highlighted, and "##" directive blocks set document parameters.
//
// # Quick Start
//
// Create a converter, convert a source, and close when done:
//
//	conv, err := lit2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, lit2html.Input{
//	    Source: "## title = \"Demo\"\n# Hello\n\nx = 1\n",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("demo.html", result.HTML, 0644)
//
// # Source Format
//
// Every input line is classified once:
//
//   - a comment line starting with "##" belongs to a directive block;
//   - any other comment line belongs to a comment block, rendered as a
//     paragraph (or as Markdown when the markdown parameter is true);
//   - a comment line starting with "#!" is dropped;
//   - a blank line right after code ends the code block, while other
//     blank lines belong to code;
//   - everything else is code.
//
// A "#" inside a string literal is not a comment: comments are located by
// tokenizing the whole source first.
//
// # Directives
//
// Directive blocks run a small statement language against the document
// parameters: assignments, augmented assignments, if/elif/else, and calls
// to the builtins str, int, bool, len, upper, lower, title, date, env,
// defined and print. Values are strings, integers or booleans.
//
//	## title = "Report " + date("YYYY")
//	## if env("DRAFT", "") != "":
//	##     stylesheet = "draft.css"
//
// The declared parameters are title, stylesheet, style (a chroma style
// name), linenos and markdown. Other names are free variables and are
// visible to custom templates.
//
// # Conversion Pipeline
//
//  1. Comment location via a Python tokenizer
//  2. Line classification and block aggregation
//  3. Block rendering (chroma highlighting, paragraphs or goldmark Markdown,
//     directive execution)
//  4. Document assembly through an html/template document template
//  5. Optional PDF rendering via headless Chrome (go-rod)
//
// # Custom Assets
//
// WithAssetPath points to a directory that overrides the embedded assets:
//
//	assets/
//	├── styles/
//	│   └── default.css
//	└── templates/
//	    └── document.html
//
// A template may reference any parameter as {{.name}}; a placeholder with
// no value fails the conversion with a MissingParameterError.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package lit2html
