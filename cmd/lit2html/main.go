package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	flags, positional, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(handleParseError(err, env))
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(maxprocsLogger(flags.common.verbose, env.Stderr)))

	ctx, stop := notifyContext(context.Background())
	code := run(ctx, flags, positional, env)
	stop()
	os.Exit(code)
}

// maxprocsLogger logs GOMAXPROCS changes only in verbose mode.
func maxprocsLogger(verbose bool, w io.Writer) func(string, ...interface{}) {
	if !verbose {
		return func(string, ...interface{}) {}
	}
	return func(format string, args ...interface{}) {
		fmt.Fprintf(w, format+"\n", args...)
	}
}

// handleParseError prints help for -h/--help or the parse error, and
// returns the exit code.
func handleParseError(err error, env *Environment) int {
	if errors.Is(err, flag.ErrHelp) {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	printError(env.Stderr, plainPainter(), err, hintEnv{getenv: env.getenv})
	fmt.Fprintln(env.Stderr, "Run 'lit2html --help' for usage.")
	return ExitUsage
}

// run executes the parsed command line and returns the exit code.
func run(ctx context.Context, flags *cliFlags, positional []string, env *Environment) int {
	he := hintEnv{getenv: env.getenv, configName: flags.common.config}
	if he.configName == "" {
		he.configName = env.getenv("LIT2HTML_CONFIG")
	}

	p, err := newPainter(flags.common.color, env.Stderr, env.getenv)
	if err != nil {
		printError(env.Stderr, plainPainter(), err, he)
		return exitCodeFor(err)
	}

	if flags.common.version {
		fmt.Fprintf(env.Stdout, "lit2html %s\n", Version)
		return ExitSuccess
	}

	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ(), p)
	}

	if err := runConvert(ctx, positional, flags, env); err != nil {
		printError(env.Stderr, p, err, he)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
