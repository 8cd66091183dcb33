// Command pylit parses Python object-literal text and prints it as JSON,
// YAML, a token dump, or a validation report.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/typist/pylit"
)

// Exit codes.
const (
	exitOK        = 0 // success
	exitError     = 1 // user error or pipeline failure
	exitViolation = 2 // check found a limit violation
)

const usage = `pylit - Python object-literal parser

Usage:
  pylit <command> [options] "<literal>"
  pylit "<literal>"              (same as: pylit json "<literal>")

Commands:
  json    Print the literal as compact JSON
  yaml    Print the literal as YAML
  tokens  Dump the token stream
  check   Validate against resource limits
  version Show version

Common options:
  -v, --verbose   Enable debug logging
  -vv             Enable trace logging (implies -v)
  -h, --help      Show help

Examples:
  pylit "[1, 2, 3]"
  pylit json "{'name': 'John', 'age': 30}"
  pylit yaml "{'a': [1, (2, 3)]}"
  pylit tokens "{1, 2, 3}"
  pylit check -max-depth 10 "[[[[1]]]]"
`

type cli struct {
	verbose  int
	helpFlag bool
}

func main() {
	os.Exit(run())
}

func run() int {
	var c cli
	args := os.Args[1:]
	var cmdArgs []string
	var cmd string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			c.helpFlag = true
		case arg == "-v" || arg == "--verbose":
			if c.verbose < 1 {
				c.verbose = 1
			}
		case arg == "-vv":
			c.verbose = 2
		case len(arg) > 0 && arg[0] == '-':
			cmdArgs = append(cmdArgs, arg)
		default:
			if cmd == "" {
				cmd = arg
			} else {
				cmdArgs = append(cmdArgs, arg)
			}
		}
	}

	if c.helpFlag && cmd == "" {
		_, _ = fmt.Fprint(os.Stdout, usage)
		return exitOK
	}

	if cmd == "" {
		_, _ = fmt.Fprint(os.Stderr, usage)
		return exitError
	}

	switch cmd {
	case "json":
		return c.cmdJSON(cmdArgs)
	case "yaml":
		return c.cmdYAML(cmdArgs)
	case "tokens":
		return c.cmdTokens(cmdArgs)
	case "check":
		return c.cmdCheck(cmdArgs)
	case "version":
		return cmdVersion()
	default:
		// A bare literal defaults to the json command.
		return c.cmdJSON(append([]string{cmd}, cmdArgs...))
	}
}

func (c *cli) setupLogger() *slog.Logger {
	if c.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.verbose >= 2 {
		level = pylit.LevelTrace
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func (c *cli) options() []pylit.Option {
	var opts []pylit.Option
	if logger := c.setupLogger(); logger != nil {
		opts = append(opts, pylit.WithLogger(logger))
	}
	return opts
}

func fail(err error) int {
	_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitError
}

func cmdVersion() int {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("pylit %s\n", version)
	return exitOK
}
