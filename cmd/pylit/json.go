package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/typist/pylit"
)

const jsonUsage = `pylit json - Print the literal as compact JSON

Usage:
  pylit json [options] "<literal>"

Options:
  -h, --help    Show help

Examples:
  pylit json "[1, 2, 3]"
  pylit json "{'name': 'John', 'age': 30}"
`

func (c *cli) cmdJSON(args []string) int {
	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, jsonUsage) }

	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		_, _ = fmt.Fprint(os.Stdout, jsonUsage)
		return exitOK
	}
	if fs.NArg() != 1 {
		_, _ = fmt.Fprint(os.Stderr, jsonUsage)
		return exitError
	}

	out, err := pylit.ToJSON(fs.Arg(0), c.options()...)
	if err != nil {
		return fail(err)
	}
	fmt.Println(out)
	return exitOK
}
