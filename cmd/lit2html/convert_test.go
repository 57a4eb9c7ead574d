package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	lit2html "github.com/alnah/go-lit2html"
	"github.com/alnah/go-lit2html/internal/config"
)

// ---------------------------------------------------------------------------
// resolveJob
// ---------------------------------------------------------------------------

func TestResolveJob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    job
		wantErr error
	}{
		{name: "default output", args: []string{"dir/demo.py"}, want: job{inputPath: "dir/demo.py", outputPath: "dir/demo.html"}},
		{name: "no extension", args: []string{"script"}, want: job{inputPath: "script", outputPath: "script.html"}},
		{name: "explicit output", args: []string{"a.py", "b.htm"}, want: job{inputPath: "a.py", outputPath: "b.htm"}},
		{name: "in place", args: []string{"a.py", "a.py"}, want: job{inputPath: "a.py", outputPath: "a.py"}},
		{name: "pdf output", args: []string{"a.py", "out.PDF"}, want: job{inputPath: "a.py", outputPath: "out.PDF", pdf: true}},
		{name: "stdin defaults to stdout", args: []string{"-"}, want: job{inputPath: "-", outputPath: "-"}},
		{name: "stdout output", args: []string{"a.py", "-"}, want: job{inputPath: "a.py", outputPath: "-"}},
		{name: "no args", args: nil, wantErr: ErrNoInput},
		{name: "too many args", args: []string{"a", "b", "c"}, wantErr: ErrTooManyArgs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveJob(tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("resolveJob(%v) error = %v, want %v", tt.args, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveJob(%v) error = %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("resolveJob(%v) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Parameters
// ---------------------------------------------------------------------------

func TestParseParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw       string
		wantName  string
		wantValue any
		wantErr   bool
	}{
		{raw: "author=Ann", wantName: "author", wantValue: "Ann"},
		{raw: "note=a=b", wantName: "note", wantValue: "a=b"},
		{raw: "empty=", wantName: "empty", wantValue: ""},
		{raw: "year=2024", wantName: "year", wantValue: int64(2024)},
		{raw: "draft=true", wantName: "draft", wantValue: true},
		{raw: "draft=False", wantName: "draft", wantValue: false},
		{raw: " spaced =x", wantName: "spaced", wantValue: "x"},
		{raw: "title=1984", wantName: "title", wantValue: "1984"},
		{raw: "linenos=1", wantName: "linenos", wantValue: true},
		{raw: "linenos=maybe", wantErr: true},
		{raw: "novalue", wantErr: true},
		{raw: "=x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			name, value, err := parseParam(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidParamFlag) {
					t.Errorf("parseParam(%q) error = %v, want ErrInvalidParamFlag", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseParam(%q) error = %v", tt.raw, err)
			}
			if name != tt.wantName || value != tt.wantValue {
				t.Errorf("parseParam(%q) = %q, %v (%T), want %q, %v (%T)",
					tt.raw, name, value, value, tt.wantName, tt.wantValue, tt.wantValue)
			}
		})
	}
}

func TestBuildParams(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Document.Title = "Config title"
	cfg.Highlight.LineNumbers = true
	cfg.Params = map[string]any{"author": "Ann", "title": "shadowed"}

	got, err := buildParams(cfg, []string{"author=Bob", "year=2024"})
	if err != nil {
		t.Fatalf("buildParams() error = %v", err)
	}

	want := map[string]any{
		"title":      "Config title",
		"stylesheet": "",
		"style":      "github",
		"linenos":    true,
		"markdown":   false,
		"author":     "Bob",
		"year":       int64(2024),
	}
	if len(got) != len(want) {
		t.Errorf("buildParams() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("params[%q] = %v, want %v", k, got[k], v)
		}
	}

	if _, err := buildParams(cfg, []string{"broken"}); !errors.Is(err, ErrInvalidParamFlag) {
		t.Errorf("buildParams(broken) error = %v, want ErrInvalidParamFlag", err)
	}
}

// ---------------------------------------------------------------------------
// Timeout and page settings
// ---------------------------------------------------------------------------

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	withConfig := config.DefaultConfig()
	withConfig.PDF.Timeout = "45s"

	tests := []struct {
		name    string
		flag    string
		env     time.Duration
		cfg     *config.Config
		want    time.Duration
		wantErr bool
	}{
		{name: "default", cfg: config.DefaultConfig(), want: defaultTimeout},
		{name: "config", cfg: withConfig, want: 45 * time.Second},
		{name: "env beats config", env: time.Minute, cfg: withConfig, want: time.Minute},
		{name: "flag beats env", flag: "2m", env: time.Minute, cfg: withConfig, want: 2 * time.Minute},
		{name: "malformed flag", flag: "soon", cfg: withConfig, wantErr: true},
		{name: "negative flag", flag: "-1s", cfg: withConfig, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeout(tt.flag, &envConfig{Timeout: tt.env}, tt.cfg)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeout) {
					t.Errorf("resolveTimeout() error = %v, want ErrInvalidTimeout", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveTimeout() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildPageSettings(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	if got := buildPageSettings(cfg); *got != *lit2html.DefaultPageSettings() {
		t.Errorf("buildPageSettings(default) = %+v", got)
	}

	cfg.Page = config.PageConfig{Size: "a4", Margin: 1}
	got := buildPageSettings(cfg)
	want := lit2html.PageSettings{Size: "a4", Orientation: lit2html.OrientationPortrait, Margin: 1}
	if *got != want {
		t.Errorf("buildPageSettings() = %+v, want %+v", got, want)
	}
}

// ---------------------------------------------------------------------------
// runConvert - real HTML pipeline
// ---------------------------------------------------------------------------

func TestRunConvert_HTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		args     []string // flags; input path is appended
		vars     map[string]string
		contains []string
		stderr   string
	}{
		{
			name:     "directive title",
			source:   "## title = \"Demo\"\n# Hello\nx = 1\n",
			contains: []string{"<title>Demo</title>", "<p>Hello</p>", `<div class="syntax">`},
		},
		{
			name:     "title flag seeds the document",
			source:   "x = 1\n",
			args:     []string{"-t", "From flag", "-s", "site.css"},
			contains: []string{"<title>From flag</title>", `href="site.css"`},
		},
		{
			name:     "directives override the title flag",
			source:   "## title = \"From file\"\n",
			args:     []string{"-t", "From flag"},
			contains: []string{"<title>From file</title>"},
		},
		{
			name:     "env title under flag",
			source:   "x = 1\n",
			args:     []string{"--title", "Flag"},
			vars:     map[string]string{"LIT2HTML_TITLE": "Env"},
			contains: []string{"<title>Flag</title>"},
		},
		{
			name:     "env title alone",
			source:   "x = 1\n",
			vars:     map[string]string{"LIT2HTML_TITLE": "Env"},
			contains: []string{"<title>Env</title>"},
		},
		{
			name:     "param flag reaches directives",
			source:   "## title = \"Report \" + str(year)\n",
			args:     []string{"-p", "year=2024"},
			contains: []string{"<title>Report 2024</title>"},
		},
		{
			name:     "env builtin",
			source:   "## title = env(\"PROJECT\", \"none\")\n",
			vars:     map[string]string{"PROJECT": "lit"},
			contains: []string{"<title>lit</title>"},
		},
		{
			name:     "date builtin uses the injected clock",
			source:   "## title = date(\"YYYY-MM-DD\")\n",
			contains: []string{"<title>2024-03-15</title>"},
		},
		{
			name:     "print goes to stderr",
			source:   "## print(\"Processing...\")\n",
			contains: []string{"<body>"},
			stderr:   "Processing...",
		},
		{
			name:     "markdown and line numbers",
			source:   "# *emphasis*\nx = 1\n",
			args:     []string{"--markdown", "--linenos"},
			contains: []string{"<em>emphasis</em>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			input := writeFile(t, dir, "demo.py", tt.source)
			flags, positional := mustParse(t, append(tt.args, input)...)
			env, stdout, stderr := testEnv(tt.vars)

			if err := runConvert(context.Background(), positional, flags, env); err != nil {
				t.Fatalf("runConvert() error = %v\nstderr: %s", err, stderr)
			}

			output := filepath.Join(dir, "demo.html")
			data, err := os.ReadFile(output)
			if err != nil {
				t.Fatalf("output not written: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(string(data), want) {
					t.Errorf("HTML lacks %q\n%s", want, data)
				}
			}
			if !strings.Contains(stdout.String(), "Created "+output) {
				t.Errorf("stdout = %q, want a Created line", stdout)
			}
			if tt.stderr != "" && !strings.Contains(stderr.String(), tt.stderr) {
				t.Errorf("stderr = %q, want %q", stderr, tt.stderr)
			}
		})
	}
}

func TestRunConvert_StdinToStdout(t *testing.T) {
	t.Parallel()

	flags, positional := mustParse(t, "-")
	env, stdout, _ := testEnv(nil)
	env.Stdin = strings.NewReader("# piped\n")

	if err := runConvert(context.Background(), positional, flags, env); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "<p>piped</p>") {
		t.Errorf("stdout lacks the document: %q", out)
	}
	if strings.Contains(out, "Created") {
		t.Errorf("status line mixed into the document: %q", out)
	}
}

func TestRunConvert_InPlace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "page.py", "# in place\n")
	flags, positional := mustParse(t, "-q", input, input)
	env, stdout, _ := testEnv(nil)

	if err := runConvert(context.Background(), positional, flags, env); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "<p>in place</p>") {
		t.Errorf("file not replaced by its HTML: %q", data)
	}
	if stdout.Len() != 0 {
		t.Errorf("quiet run wrote %q", stdout)
	}
}

func TestRunConvert_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "lit.toml", `
[document]
title = "From TOML"

[highlight]
style = "monokai"
lineNumbers = true

[params]
author = "Ann"
`)
	input := writeFile(t, dir, "demo.py", "## title = title + \" by \" + author\nx = 1\n")

	t.Run("flag selects the config", func(t *testing.T) {
		t.Parallel()

		flags, _ := mustParse(t, "-c", cfgPath, input, "-")
		env, stdout, _ := testEnv(nil)
		fake := &fakeConverter{result: &lit2html.ConvertResult{HTML: []byte("ok")}}
		useFake(env, fake)

		if err := runConvert(context.Background(), []string{input, "-"}, flags, env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		params := fake.lastInput(t).Params
		if params["title"] != "From TOML" || params["author"] != "Ann" || params["style"] != "monokai" || params["linenos"] != true {
			t.Errorf("Params = %v", params)
		}
		if stdout.String() != "ok" {
			t.Errorf("stdout = %q, want ok", stdout)
		}
		if !fake.closed {
			t.Error("converter not closed")
		}
	})

	t.Run("env selects the config", func(t *testing.T) {
		t.Parallel()

		flags, positional := mustParse(t, input, "-")
		env, stdout, _ := testEnv(map[string]string{"LIT2HTML_CONFIG": cfgPath})

		if err := runConvert(context.Background(), positional, flags, env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		if !strings.Contains(stdout.String(), "<title>From TOML by Ann</title>") {
			t.Errorf("stdout = %s", stdout)
		}
	})

	t.Run("explicit false flag beats config", func(t *testing.T) {
		t.Parallel()

		flags, positional := mustParse(t, "-c", cfgPath, "--linenos=false", input, "-")
		env, _, _ := testEnv(nil)
		fake := &fakeConverter{result: &lit2html.ConvertResult{}}
		useFake(env, fake)

		if err := runConvert(context.Background(), positional, flags, env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		if got := fake.lastInput(t).Params["linenos"]; got != false {
			t.Errorf("linenos = %v, want false", got)
		}
	})
}

// ---------------------------------------------------------------------------
// runConvert - PDF output
// ---------------------------------------------------------------------------

func TestRunConvert_PDF(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "doc.py", "# pdf\n")
	output := filepath.Join(dir, "doc.pdf")
	flags, positional := mustParse(t, "--page-size", "a4", "--orientation", "landscape", input, output)
	env, _, _ := testEnv(nil)
	fake := &fakeConverter{result: &lit2html.ConvertResult{HTML: []byte("<html>"), PDF: []byte("%PDF-1.7 fake")}}
	useFake(env, fake)

	if err := runConvert(context.Background(), positional, flags, env); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	got := fake.lastInput(t)
	if !got.PDF {
		t.Error("Input.PDF = false for a .pdf output")
	}
	if got.SourceDir != dir {
		t.Errorf("SourceDir = %q, want %q", got.SourceDir, dir)
	}
	if got.Page == nil || got.Page.Size != "a4" || got.Page.Orientation != "landscape" || got.Page.Margin != lit2html.DefaultMargin {
		t.Errorf("Page = %+v", got.Page)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("PDF not written: %v", err)
	}
	if string(data) != "%PDF-1.7 fake" {
		t.Errorf("PDF = %q", data)
	}
}

// ---------------------------------------------------------------------------
// runConvert - errors
// ---------------------------------------------------------------------------

func TestRunConvert_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		args     []string // appended before the input
		missing  bool     // do not create the input file
		wantCode int
		wantErr  error
	}{
		{name: "missing input", missing: true, wantCode: ExitIO, wantErr: ErrReadInput},
		{name: "directive error", source: "x = 1\n## title = undefined_name\n", wantCode: ExitConversion, wantErr: lit2html.ErrDirective},
		{name: "lex error", source: "x = 'open\n", wantCode: ExitConversion, wantErr: lit2html.ErrLex},
		{name: "declared kind mismatch", source: "x = 1\n", args: []string{"-p", "markdown=yes"}, wantCode: ExitUsage, wantErr: ErrInvalidParamFlag},
		{name: "unknown highlight style", source: "x = 1\n", args: []string{"--highlight-style", "nope"}, wantCode: ExitUsage, wantErr: config.ErrInvalidField},
		{name: "unknown style from param", source: "x = 1\n", args: []string{"-p", "style=nope"}, wantCode: ExitConversion, wantErr: lit2html.ErrUnknownStyle},
		{name: "missing template", source: "x = 1\n", args: []string{"--template", "nope"}, wantCode: ExitUsage, wantErr: lit2html.ErrTemplateNotFound},
		{name: "missing config", source: "x = 1\n", args: []string{"-c", "/nonexistent/lit.yaml"}, wantCode: ExitUsage, wantErr: config.ErrConfigNotFound},
		{name: "bad timeout", source: "x = 1\n", args: []string{"--timeout", "soon"}, wantCode: ExitUsage, wantErr: ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			input := filepath.Join(dir, "demo.py")
			if !tt.missing {
				writeFile(t, dir, "demo.py", tt.source)
			}
			flags, positional := mustParse(t, append(tt.args, input)...)
			env, _, _ := testEnv(nil)

			err := runConvert(context.Background(), positional, flags, env)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("runConvert() error = %v, want %v", err, tt.wantErr)
			}
			if code := exitCodeFor(err); code != tt.wantCode {
				t.Errorf("exitCodeFor() = %d, want %d", code, tt.wantCode)
			}
			if _, statErr := os.Stat(filepath.Join(dir, "demo.html")); statErr == nil {
				t.Error("output written despite the error")
			}
		})
	}
}

func TestRunConvert_SourceErrorCarriesSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := "x = 1\n## n = 1 +\n"
	input := writeFile(t, dir, "bad.py", source)
	flags, positional := mustParse(t, input)
	env, _, _ := testEnv(nil)

	err := runConvert(context.Background(), positional, flags, env)
	var srcErr *sourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("runConvert() error = %v (%T), want *sourceError", err, err)
	}
	if srcErr.Source != source || srcErr.Path != input {
		t.Errorf("sourceError = %+v", srcErr)
	}
	line, _, ok := errorPosition(err)
	if !ok || line != 2 {
		t.Errorf("errorPosition() = %d, %v, want line 2", line, ok)
	}
}
