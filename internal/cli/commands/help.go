package commands

import (
	"fmt"
	"os"

	"github.com/mamaar/rustgo/internal/cli"
)

// HelpCommand handles help requests for specific commands
func HelpCommand(args []string) {
	if len(args) > 0 {
		cmd := args[0]
		switch cmd {
		case "build":
			fmt.Println(`Build Command - Transpile Rust source files to Go

Usage: rustgo [options] build <file.rs>...

Arguments:
  file.rs  One or more Rust source files

The build command will:
  - Lex, parse, and type-check each source file
  - Generate a .go file with the same stem next to the source
  - Format the output with goimports-style formatting

Options that affect build:
  -out <dir>    Write generated files into dir instead of next to sources
  -pkg <name>   Package clause of the generated files (default: main)
  -dry-run      Print generated code to stdout instead of writing files
  -no-format    Skip output formatting
  -skip-checks  Transpile even when semantic checks fail

Examples:
  rustgo build main.rs
  rustgo -out gen/ -pkg demo build src/lib.rs`)

		case "check":
			fmt.Println(`Check Command - Report problems without generating code

Usage: rustgo [options] check <file.rs>...

Runs the lexer, parser, and semantic checker and prints every problem
found, one per line, as file:line:col: severity: message. The exit
status is 1 when any problem is reported.

Examples:
  rustgo check main.rs
  rustgo -json check src/main.rs src/lib.rs`)

		case "tokens":
			fmt.Println(`Tokens Command - Print the token stream of a source file

Usage: rustgo [options] tokens <file.rs>

Prints one token per line with its position, kind, and literal.
Useful for debugging lexer behavior on unusual input.

Examples:
  rustgo tokens main.rs
  rustgo -json tokens main.rs`)

		case "ast":
			fmt.Println(`AST Command - Print the syntax tree of a source file

Usage: rustgo [options] ast <file.rs>

Parses the file and prints an indented tree of its declarations,
statements, and expressions. Fails on the first syntax error.

Examples:
  rustgo ast main.rs
  rustgo -json ast main.rs`)

		case "watch":
			fmt.Println(`Watch Command - Re-transpile sources as they change

Usage: rustgo [options] watch <dir>

Recursively watches dir for .rs file changes, debounces rapid edits,
and re-transpiles changed files. Removing a source deletes its
generated counterpart, but only when that file carries the
generated-code header. Hidden directories and target/ are ignored.

Options that affect watch:
  -out <dir>       Write generated files into dir
  -debounce <ms>   Debounce interval in milliseconds (default: 300)

Examples:
  rustgo watch src/
  rustgo -out gen/ -debounce 500 watch .`)

		case "version":
			fmt.Println(`Version Command - Show application version

Usage: rustgo version`)

		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
			cli.Usage()
			os.Exit(1)
		}
		return
	}

	cli.Usage()
}
