// Package lexer turns Rust source text into a token stream. The scanner is
// rune-based so that Unicode identifiers and string contents survive intact.
package lexer

import (
	"fmt"
	"unicode"

	"github.com/mamaar/rustgo/pkg/token"
)

// Lexer scans one input string into tokens. A Lexer can be reused for
// multiple inputs; each Lex call resets its state.
type Lexer struct {
	runes   []rune
	length  int
	pos     int // index of the current rune
	readPos int // index of the next rune
	ch      rune
	line    int
	col     int
	tokens  []token.Token
	err     error
}

// New creates a Lexer.
func New() *Lexer {
	return &Lexer{}
}

// Lex scans input and returns its tokens, terminated by an EOF token.
// Scanning stops at the first lexical error.
func (l *Lexer) Lex(input string) ([]token.Token, error) {
	l.runes = []rune(input)
	l.length = len(l.runes)
	l.pos = 0
	l.readPos = 0
	l.ch = 0
	l.line = 1
	l.col = 0
	l.tokens = nil
	l.err = nil
	l.readChar()

	for l.ch != 0 {
		l.next()
		if l.err != nil {
			return nil, l.err
		}
	}

	l.tokens = append(l.tokens, token.Token{Kind: token.EOF, Line: l.line, Col: l.col})
	return l.tokens, nil
}

// readChar advances to the next rune, tracking line and column.
func (l *Lexer) readChar() {
	if l.readPos >= l.length {
		l.ch = 0
	} else {
		l.ch = l.runes[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peek returns the next rune without advancing.
func (l *Lexer) peek() rune {
	if l.readPos >= l.length {
		return 0
	}
	return l.runes[l.readPos]
}

// peekN returns the n-th rune ahead (n >= 1), or 0 past the end.
func (l *Lexer) peekN(n int) rune {
	idx := l.readPos + n - 1
	if idx < 0 || idx >= l.length {
		return 0
	}
	return l.runes[idx]
}

func (l *Lexer) errorf(format string, args ...any) {
	if l.err == nil {
		l.err = fmt.Errorf("%d:%d: %s", l.line, l.col, fmt.Sprintf(format, args...))
	}
}

func (l *Lexer) skipWhitespace() {
	for unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// skipComment consumes a line comment or a block comment. Block comments
// nest, as in Rust.
func (l *Lexer) skipComment() {
	if l.ch == '/' && l.peek() == '/' {
		for l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
		return
	}
	if l.ch == '/' && l.peek() == '*' {
		l.readChar()
		l.readChar()
		depth := 1
		for l.ch != 0 && depth > 0 {
			switch {
			case l.ch == '/' && l.peek() == '*':
				l.readChar()
				l.readChar()
				depth++
			case l.ch == '*' && l.peek() == '/':
				l.readChar()
				l.readChar()
				depth--
			default:
				l.readChar()
			}
		}
		if depth > 0 {
			l.errorf("unterminated block comment")
		}
	}
}

func isDigitInBase(ch rune, base int) bool {
	if ch >= '0' && ch <= '9' {
		return int(ch-'0') < base
	}
	if base == 16 {
		return (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
	}
	return false
}

func isIdentRune(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentRune(l.ch) {
		l.readChar()
	}
	return string(l.runes[start:l.pos])
}

// readLifetimeOrChar disambiguates 'a (lifetime) from 'a' (char literal):
// if the apostrophe-prefixed name is closed by another apostrophe it is a
// character literal.
func (l *Lexer) readLifetimeOrChar() (string, token.Kind) {
	start := l.pos
	l.readChar() // opening '\''
	if l.ch == '\\' {
		l.readChar()
		if l.ch != 0 {
			l.readChar()
		}
		if l.ch == '\'' {
			l.readChar()
			return string(l.runes[start:l.pos]), token.CHAR
		}
		l.errorf("unterminated character literal")
		return "", token.ILLEGAL
	}
	for isIdentRune(l.ch) {
		l.readChar()
	}
	if l.ch == '\'' {
		l.readChar()
		return string(l.runes[start:l.pos]), token.CHAR
	}
	return string(l.runes[start:l.pos]), token.LIFETIME
}

// readNumber consumes integer and float literals: base prefixes 0b/0o/0x,
// digit separators, fractional parts, exponents and type suffixes.
func (l *Lexer) readNumber() string {
	start := l.pos
	base := 10
	if l.ch == '0' {
		switch l.peek() {
		case 'b':
			base = 2
			l.readChar()
			l.readChar()
		case 'o':
			base = 8
			l.readChar()
			l.readChar()
		case 'x':
			base = 16
			l.readChar()
			l.readChar()
		}
	}
	for isDigitInBase(l.ch, base) || l.ch == '_' {
		l.readChar()
	}
	if base == 10 && l.ch == '.' && isDigitInBase(l.peek(), 10) {
		l.readChar()
		for unicode.IsDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}
	if base == 10 && (l.ch == 'e' || l.ch == 'E') {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for unicode.IsDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}
	// Type suffix: u32, i64, f64, ...
	for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) {
		l.readChar()
	}
	return string(l.runes[start:l.pos])
}

// readString consumes a string literal. prefix is "" for plain strings,
// "b" for byte strings, "r"/"br" for raw strings with optional # fences.
func (l *Lexer) readString(prefix string) string {
	start := l.pos - len([]rune(prefix))
	hashes := 0
	raw := prefix == "r" || prefix == "br"
	if raw {
		for l.ch == '#' {
			hashes++
			l.readChar()
		}
		if l.ch != '"' {
			l.errorf("invalid raw string literal")
			return ""
		}
	}
	l.readChar() // opening '"'
	if raw {
		for l.ch != 0 {
			if l.ch == '"' {
				l.readChar()
				matched := 0
				for matched < hashes && l.ch == '#' {
					matched++
					l.readChar()
				}
				if matched == hashes {
					return string(l.runes[start:l.pos])
				}
				continue
			}
			l.readChar()
		}
		l.errorf("unterminated raw string literal")
		return ""
	}
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			if l.ch != 0 {
				l.readChar()
			}
			continue
		}
		l.readChar()
	}
	if l.ch != '"' {
		l.errorf("unterminated string literal")
		return ""
	}
	l.readChar()
	return string(l.runes[start:l.pos])
}

// readAttribute consumes #[...] and #![...] forms, allowing nested brackets.
func (l *Lexer) readAttribute() string {
	start := l.pos
	l.readChar() // '#'
	if l.ch == '!' {
		l.readChar()
	}
	if l.ch != '[' {
		l.errorf("invalid attribute")
		return ""
	}
	l.readChar()
	depth := 1
	for l.ch != 0 && depth > 0 {
		switch l.ch {
		case '[':
			depth++
		case ']':
			depth--
		}
		l.readChar()
	}
	if depth > 0 {
		l.errorf("unterminated attribute")
	}
	return string(l.runes[start:l.pos])
}

// readOperator matches operators and punctuation longest-first:
// three runes, then two, then one.
func (l *Lexer) readOperator() string {
	start := l.pos
	one := string(l.ch)
	two := one + string(l.peek())
	three := two + string(l.peekN(2))
	if operators[three] || punctuations[three] {
		l.readChar()
		l.readChar()
		l.readChar()
		return string(l.runes[start:l.pos])
	}
	if operators[two] || punctuations[two] {
		l.readChar()
		l.readChar()
		return string(l.runes[start:l.pos])
	}
	l.readChar()
	return string(l.runes[start:l.pos])
}

func isOperatorRune(ch rune) bool {
	switch ch {
	case '+', '-', '*', '/', '%', '=', '!', '<', '>', '&', '|', '^', '~', '?':
		return true
	}
	return false
}

func isPunctRune(ch rune) bool {
	switch ch {
	case '{', '}', '(', ')', '[', ']', ',', ':', '.', '@':
		return true
	}
	return false
}

// isFloatLiteral reports whether a decimal literal has a fractional part
// or exponent. Literals with a base prefix are always integers.
func isFloatLiteral(s string) bool {
	if len(s) > 1 && s[0] == '0' && (s[1] == 'b' || s[1] == 'o' || s[1] == 'x') {
		return false
	}
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'E' {
			return true
		}
	}
	return false
}

// next scans one token (or skips whitespace/comments) and appends it.
func (l *Lexer) next() {
	l.skipWhitespace()
	if l.ch == '/' && (l.peek() == '/' || l.peek() == '*') {
		l.skipComment()
		return
	}

	tok := token.Token{Line: l.line, Col: l.col}

	switch {
	case l.ch == 0:
		return

	case l.ch == '\'':
		tok.Literal, tok.Kind = l.readLifetimeOrChar()

	case unicode.IsLetter(l.ch) || l.ch == '_':
		ident := l.readIdentifier()
		switch {
		case ident == "r" && (l.ch == '"' || l.ch == '#'):
			tok.Literal = l.readString("r")
			tok.Kind = token.STRING
		case ident == "br" && (l.ch == '"' || l.ch == '#'):
			tok.Literal = l.readString("br")
			tok.Kind = token.STRING
		case ident == "b" && l.ch == '"':
			tok.Literal = l.readString("b")
			tok.Kind = token.STRING
		case keywords[ident]:
			tok.Literal = ident
			tok.Kind = token.KEYWORD
		default:
			tok.Literal = ident
			tok.Kind = token.IDENT
		}

	case unicode.IsDigit(l.ch):
		tok.Literal = l.readNumber()
		if isFloatLiteral(tok.Literal) {
			tok.Kind = token.FLOAT
		} else {
			tok.Kind = token.INT
		}

	case l.ch == '"':
		tok.Literal = l.readString("")
		tok.Kind = token.STRING

	case l.ch == '#':
		tok.Literal = l.readAttribute()
		tok.Kind = token.ATTRIBUTE

	case l.ch == ';':
		l.readChar()
		tok.Literal = ";"
		tok.Kind = token.TERMINATOR

	case isOperatorRune(l.ch) || isPunctRune(l.ch):
		tok.Literal = l.readOperator()
		switch {
		case operators[tok.Literal]:
			tok.Kind = token.OPERATOR
		case punctuations[tok.Literal]:
			tok.Kind = token.PUNCT
		default:
			tok.Kind = token.ILLEGAL
		}

	default:
		tok.Kind = token.ILLEGAL
		tok.Literal = string(l.ch)
		l.readChar()
	}

	if l.err == nil {
		l.tokens = append(l.tokens, tok)
	}
}
