package parser

import "github.com/mamaar/rustgo/pkg/token"

// stream is a cursor over the lexer's token slice. Reads past the end
// return EOF tokens.
type stream struct {
	tokens []token.Token
	pos    int
}

func newStream(tokens []token.Token) *stream {
	return &stream{tokens: tokens}
}

// Next returns the current token and advances.
func (s *stream) Next() token.Token {
	if s.pos >= len(s.tokens) {
		return token.Token{Kind: token.EOF}
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok
}

// Peek returns the current token without advancing.
func (s *stream) Peek() token.Token {
	if s.pos >= len(s.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return s.tokens[s.pos]
}

// IsEOF reports whether the next token is EOF.
func (s *stream) IsEOF() bool {
	return s.Peek().Kind == token.EOF
}

// Pos returns the position of the next token.
func (s *stream) Pos() token.Position {
	return s.Peek().Pos()
}
