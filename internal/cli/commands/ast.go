package commands

import (
	"fmt"
	"os"

	"github.com/mamaar/rustgo/internal/cli"
	"github.com/mamaar/rustgo/pkg/ast"
)

// AstCommand prints the syntax tree of a Rust source file
func AstCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Error: ast requires exactly 1 argument: <file.rs>\n")
		fmt.Fprintf(os.Stderr, "Usage: rustgo [options] ast main.rs\n")
		os.Exit(1)
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engine := cli.CreateEngineWithFlags()
	crate, err := engine.Parse(args[0], string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *cli.GlobalFlags.Json {
		OutputJSON(crate)
		return
	}

	fmt.Print(ast.Dump(crate))
}
