// Package token defines the lexical tokens of the supported Rust subset
// and their source positions.
package token

import "fmt"

// Kind classifies a lexical token.
type Kind int

const (
	// EOF marks the end of the input stream.
	EOF Kind = iota

	// IDENT is an identifier: variable, function or type name.
	IDENT

	// LIFETIME is a Rust lifetime parameter such as 'a or 'static.
	LIFETIME

	// KEYWORD is a reserved word (fn, let, struct, return, ...).
	KEYWORD

	// INT is an integer literal, including 0b/0o/0x forms, digit
	// separators and type suffixes (42u32).
	INT

	// FLOAT is a floating point literal (3.14, 1e-5, 2.0f32).
	FLOAT

	// STRING is a string literal: plain, raw (r#"..."#) or byte (b"...").
	STRING

	// CHAR is a character literal ('a', '\n').
	CHAR

	// OPERATOR covers arithmetic, comparison and logical operators.
	OPERATOR

	// PUNCT covers delimiters: braces, parens, commas, colons, paths.
	PUNCT

	// ATTRIBUTE is a Rust attribute: #[derive(Debug)] or #![no_std].
	ATTRIBUTE

	// TERMINATOR is the statement-terminating semicolon.
	TERMINATOR

	// ILLEGAL marks input the lexer could not classify.
	ILLEGAL
)

var kindNames = [...]string{
	EOF:        "EOF",
	IDENT:      "IDENT",
	LIFETIME:   "LIFETIME",
	KEYWORD:    "KEYWORD",
	INT:        "INT",
	FLOAT:      "FLOAT",
	STRING:     "STRING",
	CHAR:       "CHAR",
	OPERATOR:   "OPERATOR",
	PUNCT:      "PUNCT",
	ATTRIBUTE:  "ATTRIBUTE",
	TERMINATOR: "TERMINATOR",
	ILLEGAL:    "ILLEGAL",
}

// String returns the name of the token kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// Position is a 1-based line/column location in the source text.
type Position struct {
	Line int
	Col  int
}

// String renders the position as "line:col".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token is a single lexeme produced by the lexer. Literal holds the
// source text exactly as written.
type Token struct {
	Kind    Kind
	Literal string
	Line    int
	Col     int
}

// Pos returns the token's source position.
func (t Token) Pos() Position {
	return Position{Line: t.Line, Col: t.Col}
}

// String renders the token for diagnostics, e.g. IDENT("add_numbers").
func (t Token) String() string {
	if t.Literal == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Literal)
}
