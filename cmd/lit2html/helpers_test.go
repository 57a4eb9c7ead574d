package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	lit2html "github.com/alnah/go-lit2html"
)

// fixedNow is the clock used by every CLI test.
var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

// fakeConverter records inputs and returns a canned result. Used where a
// real conversion would need a browser.
type fakeConverter struct {
	mu      sync.Mutex
	inputs  []lit2html.Input
	result  *lit2html.ConvertResult
	err     error
	closed  bool
	optsLen int
}

func (f *fakeConverter) Convert(_ context.Context, input lit2html.Input) (*lit2html.ConvertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeConverter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConverter) lastInput(t *testing.T) lit2html.Input {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.inputs) == 0 {
		t.Fatal("converter was never called")
	}
	return f.inputs[len(f.inputs)-1]
}

// useFake makes env build fake instead of the library converter.
func useFake(env *Environment, fake *fakeConverter) {
	env.NewConverter = func(opts ...lit2html.Option) (Converter, error) {
		fake.optsLen = len(opts)
		return fake, nil
	}
}

// testEnv returns an Environment with buffered output, a fixed clock and
// the given process environment. Conversions use the real library.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdin:  strings.NewReader(""),
		Stdout: stdout,
		Stderr: stderr,
		LookupEnv: func(name string) (string, bool) {
			v, ok := vars[name]
			return v, ok
		},
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			sort.Strings(out)
			return out
		},
		NewConverter: newLibraryConverter,
	}
	return env, stdout, stderr
}

// writeFile creates dir/name with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// mustParse parses args or fails the test.
func mustParse(t *testing.T, args ...string) (*cliFlags, []string) {
	t.Helper()
	flags, positional, err := parseFlags(args)
	if err != nil {
		t.Fatalf("parseFlags(%v) error = %v", args, err)
	}
	return flags, positional
}
