package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/typist/pylit"
)

const checkUsage = `pylit check - Validate a literal against resource limits

Usage:
  pylit check [options] "<literal>"

Options:
  -max-depth N    Maximum nesting depth (default 100)
  -max-size N     Maximum elements per container (default 100000)
  -max-string N   Maximum string length in bytes (default 10000)
  -h, --help      Show help

Exit status is 2 when a limit is violated.

Examples:
  pylit check "[1, [2, [3]]]"
  pylit check -max-depth 2 "[[[1]]]"
`

func (c *cli) cmdCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, checkUsage) }

	defaults := pylit.DefaultLimits()
	maxDepth := fs.Int("max-depth", defaults.MaxDepth, "maximum nesting depth")
	maxSize := fs.Int("max-size", defaults.MaxContainerSize, "maximum elements per container")
	maxString := fs.Int("max-string", defaults.MaxStringLen, "maximum string length in bytes")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		_, _ = fmt.Fprint(os.Stdout, checkUsage)
		return exitOK
	}
	if fs.NArg() != 1 {
		_, _ = fmt.Fprint(os.Stderr, checkUsage)
		return exitError
	}

	limits := pylit.Limits{
		MaxDepth:         *maxDepth,
		MaxContainerSize: *maxSize,
		MaxStringLen:     *maxString,
	}
	report, err := pylit.Check(fs.Arg(0), limits, c.options()...)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("valid:    %v\n", report.Valid)
	if !report.Valid {
		fmt.Printf("reason:   %s\n", report.Message)
	}
	fmt.Printf("depth:    %d\n", report.MaxDepth)
	fmt.Printf("elements: %d\n", report.TotalElements)

	names := make([]string, 0, len(report.TypeCounts))
	for name := range report.TypeCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-8s %d\n", name, report.TypeCounts[name])
	}

	if !report.Valid {
		return exitViolation
	}
	return exitOK
}
