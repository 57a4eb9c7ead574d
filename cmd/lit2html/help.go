package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lit2html [flags] <input> [output]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a literate Python file to a highlighted HTML document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input     Python source file (- reads stdin)")
	fmt.Fprintln(w, "  output    Output file (default: input with .html extension)")
	fmt.Fprintln(w, "            - writes to stdout; a .pdf extension renders PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -t, --title <s>           Initial document title")
	fmt.Fprintln(w, "  -s, --stylesheet <href>   Extra stylesheet linked from the document")
	fmt.Fprintln(w, "  -p, --param <key=value>   Initial parameter (repeatable)")
	fmt.Fprintln(w, "      --markdown            Render comments as Markdown")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Highlighting:")
	fmt.Fprintln(w, "      --highlight-style <s> Style name (default: github)")
	fmt.Fprintln(w, "      --linenos             Number code lines")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --css <name>          Base stylesheet name (default: default)")
	fmt.Fprintln(w, "      --template <name>     Document template name (default: document)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and templates/")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w, "      --timeout <d>         Generation timeout (default: 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --color <mode>        Diagnostics color: auto, always, never")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w, "      --version             Print version and exit")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Directives:")
	fmt.Fprintln(w, "  Comment blocks starting with ## run as directives, e.g.")
	fmt.Fprintln(w, "    ## title = \"Report for \" + date(\"YYYY-MM-DD\")")
	fmt.Fprintln(w, "    ## linenos = True")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  LIT2HTML_CONFIG           Config file name or path")
	fmt.Fprintln(w, "  LIT2HTML_TITLE            Initial document title")
	fmt.Fprintln(w, "  LIT2HTML_STYLESHEET       Extra stylesheet href")
	fmt.Fprintln(w, "  LIT2HTML_HIGHLIGHT_STYLE  Highlight style name")
	fmt.Fprintln(w, "  LIT2HTML_TIMEOUT          PDF generation timeout")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN           Chrome binary for PDF output")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX=1          Disable Chrome sandbox (Docker/CI)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 general, 2 usage/config, 3 I/O, 4 browser, 5 conversion")
}
