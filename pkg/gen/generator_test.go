package gen

import (
	"strings"
	"testing"

	"github.com/mamaar/rustgo/pkg/ir"
	"github.com/mamaar/rustgo/pkg/lexer"
	"github.com/mamaar/rustgo/pkg/parser"
)

func generate(t *testing.T, src string) string {
	t.Helper()

	tokens, err := lexer.New().Lex(src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	crate, errs := parser.New(tokens).ParseFile()
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	module := ir.NewLowerer().Lower(crate, "main")
	return New().Generate(module)
}

func TestGenerateFunctionSignature(t *testing.T) {
	out := generate(t, `
fn add_numbers(a: i32, b: i32) -> i32 {
    a + b
}
`)

	if !strings.Contains(out, "func add_numbers(a int, b int) int {") {
		t.Errorf("missing function signature in output:\n%s", out)
	}
	if !strings.Contains(out, "return (a + b)") {
		t.Errorf("tail expression not emitted as return:\n%s", out)
	}
}

func TestGenerateHeader(t *testing.T) {
	out := generate(t, `fn main() {}`)

	if !strings.HasPrefix(out, Header) {
		t.Errorf("output does not start with generated-code header:\n%s", out)
	}
	if !strings.Contains(out, "package main") {
		t.Errorf("missing package clause:\n%s", out)
	}
}

func TestGeneratePrintlnPlaceholders(t *testing.T) {
	out := generate(t, `
fn main() {
    let result = 8;
    println!("Результат сложения: {}", result);
}
`)

	want := `fmt.Printf("Результат сложения: %v\n", result)`
	if !strings.Contains(out, want) {
		t.Errorf("placeholder not converted, want %s in:\n%s", want, out)
	}
	if !strings.Contains(out, `import "fmt"`) {
		t.Errorf("fmt import missing:\n%s", out)
	}
}

func TestGeneratePrintlnPlain(t *testing.T) {
	out := generate(t, `
fn main() {
    println!("=== Начало программы ===");
}
`)

	want := `fmt.Println("=== Начало программы ===")`
	if !strings.Contains(out, want) {
		t.Errorf("want %s in:\n%s", want, out)
	}
	if strings.Contains(out, "Printf") {
		t.Errorf("plain text should not use Printf:\n%s", out)
	}
}

func TestGeneratePrintlnExpression(t *testing.T) {
	out := generate(t, `
fn hello_user(name: &str) -> String {
    format!("Привет {}!", name)
}

fn main() {
    println!(hello_user("Данил"));
}
`)

	if !strings.Contains(out, `fmt.Println(hello_user("Данил"))`) {
		t.Errorf("non-literal println argument mishandled:\n%s", out)
	}
	if !strings.Contains(out, `return fmt.Sprintf("Привет %v!", name)`) {
		t.Errorf("format! not lowered to Sprintf:\n%s", out)
	}
}

func TestGenerateEprintln(t *testing.T) {
	out := generate(t, `
fn main() {
    eprintln!("boom: {}", 1);
}
`)

	if !strings.Contains(out, `fmt.Fprintf(os.Stderr, "boom: %v\n", 1)`) {
		t.Errorf("eprintln! mishandled:\n%s", out)
	}
	if !strings.Contains(out, `"os"`) || !strings.Contains(out, `"fmt"`) {
		t.Errorf("imports incomplete:\n%s", out)
	}
}

func TestGenerateLetBinding(t *testing.T) {
	out := generate(t, `
fn main() {
    let result = add_numbers(5, 3);
}

fn add_numbers(a: i32, b: i32) -> i32 {
    a + b
}
`)

	if !strings.Contains(out, "result := add_numbers(5, 3)") {
		t.Errorf("let binding not emitted as short declaration:\n%s", out)
	}
}

func TestGenerateStruct(t *testing.T) {
	out := generate(t, `
struct Point {
    x: i32,
    y: f64,
}
`)

	if !strings.Contains(out, "type Point struct {") {
		t.Errorf("struct missing:\n%s", out)
	}
	if !strings.Contains(out, "X int") || !strings.Contains(out, "Y float64") {
		t.Errorf("fields not exported or mistyped:\n%s", out)
	}
}

func TestGenerateNoImportsForPureCode(t *testing.T) {
	out := generate(t, `
fn is_even(n: i32) -> bool {
    n % 2 == 0
}
`)

	if strings.Contains(out, "import") {
		t.Errorf("unexpected import in output:\n%s", out)
	}
	if !strings.Contains(out, "return ((n % 2) == 0)") {
		t.Errorf("modulo comparison mis-emitted:\n%s", out)
	}
}

func TestConvertFormat(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		count int
	}{
		{"no placeholders", "no placeholders", 0},
		{"x = {}", "x = %v", 1},
		{"{} and {}", "%v and %v", 2},
		{"brace {{literal}}", "brace {literal}", 0},
		{"100% done: {}", "100%% done: %v", 1},
	}
	for _, tt := range tests {
		got, count := convertFormat(tt.in)
		if got != tt.want || count != tt.count {
			t.Errorf("convertFormat(%q) = %q, %d; want %q, %d", tt.in, got, count, tt.want, tt.count)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"plain"`, "plain"},
		{`"with \"quotes\""`, `with "quotes"`},
		{`r"raw \n text"`, `raw \n text`},
		{`r#"hash "raw""#`, `hash "raw"`},
		{`"Привет"`, "Привет"},
	}
	for _, tt := range tests {
		if got := unquote(tt.in); got != tt.want {
			t.Errorf("unquote(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripNumericSuffix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"42u32", "42"},
		{"7i64", "7"},
		{"2.5f64", "2.5"},
		{"1_000", "1_000"},
		{"42", "42"},
	}
	for _, tt := range tests {
		if got := stripNumericSuffix(tt.in); got != tt.want {
			t.Errorf("stripNumericSuffix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
