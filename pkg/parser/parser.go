// Package parser builds a syntax tree from the lexer's token stream using
// recursive descent with error recovery: on a syntax error the parser skips
// to the next synchronization token and keeps going, so one broken statement
// does not hide the rest of the file's diagnostics.
package parser

import (
	"fmt"

	"github.com/mamaar/rustgo/pkg/ast"
	"github.com/mamaar/rustgo/pkg/token"
)

// Error is a syntax error with the offending token and its position.
type Error struct {
	Msg string
	Tok token.Token
	Pos token.Position
}

func (e Error) Error() string {
	return fmt.Sprintf("%d:%d: %s (got %q)", e.Pos.Line, e.Pos.Col, e.Msg, e.Tok.Literal)
}

// Parser consumes a token stream and accumulates syntax errors.
type Parser struct {
	stream *stream
	errors []Error
}

// New creates a Parser over tokens produced by the lexer.
func New(tokens []token.Token) *Parser {
	return &Parser{stream: newStream(tokens)}
}

// ParseFile parses the whole input and returns the crate along with all
// syntax errors found. The crate is best-effort when errors are present.
func (p *Parser) ParseFile() (*ast.Crate, []Error) {
	return p.parseCrate(), p.errors
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	p.errors = append(p.errors, Error{
		Msg: fmt.Sprintf(format, args...),
		Tok: tok,
		Pos: tok.Pos(),
	})
}

// sync skips tokens to a recovery point: it consumes through the next
// semicolon, and stops in front of a closing brace or any of the named
// stop literals so the caller can handle them.
func (p *Parser) sync(stops ...string) {
	for !p.stream.IsEOF() {
		tok := p.stream.Peek()
		if tok.Kind == token.PUNCT && tok.Literal == "}" {
			return
		}
		if tok.Kind == token.TERMINATOR {
			p.stream.Next()
			return
		}
		for _, s := range stops {
			if tok.Literal == s {
				return
			}
		}
		p.stream.Next()
	}
}

// expect consumes and returns the next token when it matches kind (and
// literal, if non-empty). Otherwise it records an error and returns the
// unconsumed token.
func (p *Parser) expect(kind token.Kind, literal, what string) token.Token {
	tok := p.stream.Peek()
	if tok.Kind == token.EOF {
		p.errorf(tok, "expected %s, found end of input", what)
		return tok
	}
	if tok.Kind != kind || (literal != "" && tok.Literal != literal) {
		p.errorf(tok, "expected %s", what)
		return tok
	}
	return p.stream.Next()
}

// accept consumes the next token if its literal matches.
func (p *Parser) accept(literal string) bool {
	if p.stream.Peek().Literal == literal {
		p.stream.Next()
		return true
	}
	return false
}
