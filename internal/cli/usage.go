package cli

import (
	"flag"
	"fmt"
	"os"
)

// Usage prints the usage information for the rustgo command
func Usage() {
	fmt.Fprintf(os.Stderr, `rustgo - Rust to Go transpiler

Usage: rustgo [options] <command> [arguments]

Commands:
  build <file.rs>...
    Transpile Rust source files to Go

  check <file.rs>...
    Report lexical, syntax, and semantic problems without generating code

  tokens <file.rs>
    Print the token stream of a source file

  ast <file.rs>
    Print the syntax tree of a source file

  watch <dir>
    Watch a directory and re-transpile .rs files as they change

  version
    Show version information

  help [command]
    Show help for a command

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  # Transpile one file next to its source
  rustgo build main.rs

  # Transpile into a separate output directory
  rustgo -out gen/ build src/main.rs src/lib.rs

  # Print generated code without writing it
  rustgo -dry-run build main.rs

  # Machine-readable diagnostics
  rustgo -json check main.rs

  # Rebuild on every save
  rustgo -out gen/ watch src/
`)
}
