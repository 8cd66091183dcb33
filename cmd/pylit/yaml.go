package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/typist/pylit"
)

const yamlUsage = `pylit yaml - Print the literal as YAML

Usage:
  pylit yaml [options] "<literal>"

Options:
  -h, --help    Show help

Examples:
  pylit yaml "{'a': [1, 2], 'b': None}"
`

func (c *cli) cmdYAML(args []string) int {
	fs := flag.NewFlagSet("yaml", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, yamlUsage) }

	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		_, _ = fmt.Fprint(os.Stdout, yamlUsage)
		return exitOK
	}
	if fs.NArg() != 1 {
		_, _ = fmt.Fprint(os.Stderr, yamlUsage)
		return exitError
	}

	value, err := pylit.ToValue(fs.Arg(0), c.options()...)
	if err != nil {
		return fail(err)
	}
	out, err := yaml.Marshal(value)
	if err != nil {
		return fail(err)
	}
	fmt.Print(string(out))
	return exitOK
}
