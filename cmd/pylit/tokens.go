package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/typist/pylit/internal/lexer"
)

const tokensUsage = `pylit tokens - Dump the token stream

Usage:
  pylit tokens [options] "<literal>"

Options:
  -h, --help    Show help

Examples:
  pylit tokens "{'a': 1}"
`

func (c *cli) cmdTokens(args []string) int {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, tokensUsage) }

	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		_, _ = fmt.Fprint(os.Stdout, tokensUsage)
		return exitOK
	}
	if fs.NArg() != 1 {
		_, _ = fmt.Fprint(os.Stderr, tokensUsage)
		return exitError
	}

	lex := lexer.New([]byte(fs.Arg(0)), c.setupLogger())
	tokens, err := lex.Tokenize()
	if err != nil {
		return fail(err)
	}

	for _, tok := range tokens {
		if tok.Value != nil {
			fmt.Printf("%-12s %-20v offset=%d\n", tok.Kind, tok.Value, tok.Offset())
		} else {
			fmt.Printf("%-12s %-20s offset=%d\n", tok.Kind, "-", tok.Offset())
		}
	}
	return exitOK
}
