package commands

import (
	"fmt"
	"os"

	"github.com/mamaar/rustgo/internal/cli"
)

// tokenResult is the JSON shape of one token.
type tokenResult struct {
	Kind    string `json:"kind"`
	Literal string `json:"literal"`
	Line    int    `json:"line"`
	Col     int    `json:"col"`
}

// TokensCommand prints the token stream of a Rust source file
func TokensCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Error: tokens requires exactly 1 argument: <file.rs>\n")
		fmt.Fprintf(os.Stderr, "Usage: rustgo [options] tokens main.rs\n")
		os.Exit(1)
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engine := cli.CreateEngineWithFlags()
	tokens, err := engine.Tokens(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *cli.GlobalFlags.Json {
		results := make([]tokenResult, 0, len(tokens))
		for _, tok := range tokens {
			results = append(results, tokenResult{
				Kind:    tok.Kind.String(),
				Literal: tok.Literal,
				Line:    tok.Line,
				Col:     tok.Col,
			})
		}
		OutputJSON(results)
		return
	}

	for _, tok := range tokens {
		fmt.Printf("%d:%d\t%s\n", tok.Line, tok.Col, tok)
	}
}
