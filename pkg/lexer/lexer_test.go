package lexer

import (
	"testing"

	"github.com/mamaar/rustgo/pkg/token"
)

// lexAll is a test helper that fails the test on lexical errors.
func lexAll(t *testing.T, input string) []token.Token {
	t.Helper()
	toks, err := New().Lex(input)
	if err != nil {
		t.Fatalf("Lex(%q) failed: %v", input, err)
	}
	return toks
}

func TestLexFunctionHeader(t *testing.T) {
	toks := lexAll(t, "fn add_numbers(a: i32, b: i32) -> i32 {")

	want := []struct {
		kind    token.Kind
		literal string
	}{
		{token.KEYWORD, "fn"},
		{token.IDENT, "add_numbers"},
		{token.PUNCT, "("},
		{token.IDENT, "a"},
		{token.PUNCT, ":"},
		{token.IDENT, "i32"},
		{token.PUNCT, ","},
		{token.IDENT, "b"},
		{token.PUNCT, ":"},
		{token.IDENT, "i32"},
		{token.PUNCT, ")"},
		{token.OPERATOR, "->"},
		{token.IDENT, "i32"},
		{token.PUNCT, "{"},
		{token.EOF, ""},
	}

	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Literal != w.literal {
			t.Errorf("token %d = %v, want %s(%q)", i, toks[i], w.kind, w.literal)
		}
	}
}

func TestLexMacroInvocation(t *testing.T) {
	toks := lexAll(t, `println!("Привет, {}!", name);`)

	if toks[0].Kind != token.IDENT || toks[0].Literal != "println" {
		t.Errorf("token 0 = %v, want IDENT(println)", toks[0])
	}
	if toks[1].Kind != token.OPERATOR || toks[1].Literal != "!" {
		t.Errorf("token 1 = %v, want OPERATOR(!)", toks[1])
	}
	if toks[3].Kind != token.STRING || toks[3].Literal != `"Привет, {}!"` {
		t.Errorf("token 3 = %v, want the Unicode string literal intact", toks[3])
	}

	last := toks[len(toks)-2]
	if last.Kind != token.TERMINATOR {
		t.Errorf("statement should end with TERMINATOR, got %v", last)
	}
}

func TestLexNumbers(t *testing.T) {
	cases := []struct {
		input string
		kind  token.Kind
	}{
		{"42", token.INT},
		{"1_000_000", token.INT},
		{"0xFF", token.INT},
		{"0b1010", token.INT},
		{"0o777", token.INT},
		{"42u32", token.INT},
		{"3.14", token.FLOAT},
		{"1e-5", token.FLOAT},
		{"2.5f64", token.FLOAT},
	}

	for _, c := range cases {
		toks := lexAll(t, c.input)
		if toks[0].Kind != c.kind {
			t.Errorf("Lex(%q): kind = %v, want %v", c.input, toks[0].Kind, c.kind)
		}
		if toks[0].Literal != c.input {
			t.Errorf("Lex(%q): literal = %q", c.input, toks[0].Literal)
		}
	}
}

func TestLexStrings(t *testing.T) {
	cases := []string{
		`"plain"`,
		`"escaped \" quote"`,
		`r"raw"`,
		`r#"raw with "quotes""#`,
		`b"bytes"`,
		`"Начало программы"`,
	}

	for _, c := range cases {
		toks := lexAll(t, c)
		if toks[0].Kind != token.STRING {
			t.Errorf("Lex(%q): kind = %v, want STRING", c, toks[0].Kind)
		}
		if toks[0].Literal != c {
			t.Errorf("Lex(%q): literal = %q", c, toks[0].Literal)
		}
	}
}

func TestLexCharVersusLifetime(t *testing.T) {
	toks := lexAll(t, "'a'")
	if toks[0].Kind != token.CHAR {
		t.Errorf("'a' should lex as CHAR, got %v", toks[0])
	}

	toks = lexAll(t, "'static")
	if toks[0].Kind != token.LIFETIME {
		t.Errorf("'static should lex as LIFETIME, got %v", toks[0])
	}
}

func TestLexComments(t *testing.T) {
	toks := lexAll(t, `
// line comment
/* block /* nested */ comment */
fn
`)
	if len(toks) != 2 {
		t.Fatalf("comments should produce no tokens, got %v", toks)
	}
	if toks[0].Kind != token.KEYWORD || toks[0].Literal != "fn" {
		t.Errorf("token 0 = %v, want KEYWORD(fn)", toks[0])
	}
}

func TestLexAttribute(t *testing.T) {
	toks := lexAll(t, "#[derive(Debug, Clone)]")
	if toks[0].Kind != token.ATTRIBUTE {
		t.Fatalf("kind = %v, want ATTRIBUTE", toks[0].Kind)
	}
	if toks[0].Literal != "#[derive(Debug, Clone)]" {
		t.Errorf("literal = %q", toks[0].Literal)
	}
}

func TestLexOperatorsLongestMatch(t *testing.T) {
	toks := lexAll(t, "== != <= >= && || -> :: .. ! & =")

	want := []string{"==", "!=", "<=", ">=", "&&", "||", "->", "::", "..", "!", "&", "="}
	for i, w := range want {
		if toks[i].Literal != w {
			t.Errorf("token %d = %q, want %q", i, toks[i].Literal, w)
		}
	}
}

func TestLexPositions(t *testing.T) {
	toks := lexAll(t, "fn main() {\n    let x = 7;\n}")

	// "let" starts line 2, column 5.
	var let token.Token
	for _, tok := range toks {
		if tok.Literal == "let" {
			let = tok
			break
		}
	}
	if let.Line != 2 || let.Col != 5 {
		t.Errorf("let position = %d:%d, want 2:5", let.Line, let.Col)
	}
}

func TestLexErrors(t *testing.T) {
	cases := []string{
		`"unterminated`,
		"/* unterminated",
		"#[unterminated",
		`r#"unterminated`,
	}

	for _, c := range cases {
		if _, err := New().Lex(c); err == nil {
			t.Errorf("Lex(%q) should fail", c)
		}
	}
}

func TestLexEOFAlwaysLast(t *testing.T) {
	toks := lexAll(t, "")
	if len(toks) != 1 || toks[0].Kind != token.EOF {
		t.Fatalf("empty input should lex to a lone EOF, got %v", toks)
	}
}
