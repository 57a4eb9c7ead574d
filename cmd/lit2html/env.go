package main

import (
	"context"
	"io"
	"os"
	"time"

	lit2html "github.com/alnah/go-lit2html"
)

// Converter is the conversion service the CLI drives.
type Converter interface {
	Convert(ctx context.Context, input lit2html.Input) (*lit2html.ConvertResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*lit2html.Converter)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment, and converter construction.
type Environment struct {
	Now       func() time.Time
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	LookupEnv func(string) (string, bool)
	Environ   func() []string

	// NewConverter builds the conversion service from library options.
	NewConverter func(opts ...lit2html.Option) (Converter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:          time.Now,
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		LookupEnv:    os.LookupEnv,
		Environ:      os.Environ,
		NewConverter: newLibraryConverter,
	}
}

func newLibraryConverter(opts ...lit2html.Option) (Converter, error) {
	return lit2html.NewConverter(opts...)
}

// getenv returns the value of name, or "" when unset.
func (e *Environment) getenv(name string) string {
	v, _ := e.LookupEnv(name)
	return v
}
