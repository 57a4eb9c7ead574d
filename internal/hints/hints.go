// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-lit2html/internal/fileutil"
)

// ciVars are set by the CI systems whose runners need a sandbox-less Chrome.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// InContainer reports whether the process runs inside Docker, which
// creates /.dockerenv in every container.
func InContainer() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors. getenv
// reads the process environment; inContainer comes from InContainer.
func ForBrowserConnect(getenv func(string) string, inContainer bool) string {
	var hints []string

	inCI := false
	for _, name := range ciVars {
		if getenv(name) != "" {
			inCI = true
			break
		}
	}

	if (inCI || inContainer) && getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout or LIT2HTML_TIMEOUT")
}

// ForConfigNotFound suggests an explicit path, or creating the named config
// under userConfigDir when both are known.
func ForConfigNotFound(name, userConfigDir string) string {
	hint := "use --config /path/to/file.yaml"
	if name != "" && userConfigDir != "" && !fileutil.IsFilePath(name) {
		hint += " or create " + filepath.Join(userConfigDir, "go-lit2html", name+".yaml")
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the available style names.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForMissingParameter returns hints for template placeholders left unbound.
func ForMissingParameter(name string) string {
	return format(fmt.Sprintf("set it in a directive (## %s = ...) or with --param %s=VALUE", name, name))
}

// ForDirective lists the directive language subset.
func ForDirective() string {
	return format("directives support assignments, if/elif/else and calls to str, int, bool, len, upper, lower, title, date, env, defined, print")
}

// ForLex returns a hint for tokenization failures.
func ForLex() string {
	return format("check for unterminated strings or unbalanced brackets near the reported position")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
