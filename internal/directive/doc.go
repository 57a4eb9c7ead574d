// Package directive executes the statements found in "##" directive
// blocks.
//
// Directives run against a typed parameter store instead of a general
// interpreter. The language is a small Python subset:
//
//	title = "My program"
//	linenos = True
//	if env("CI", "") != "":
//	    stylesheet = "https://example.com/ci.css"
//	else:
//	    print("building", title)
//
// Supported statements are assignment (= and +=), if/elif/else, pass and
// expression statements. Expressions cover string, int and bool literals,
// names, arithmetic, comparisons, boolean operators, conditional
// expressions and a fixed set of builtin functions.
package directive
