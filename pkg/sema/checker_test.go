package sema

import (
	"strings"
	"testing"

	"github.com/mamaar/rustgo/pkg/lexer"
	"github.com/mamaar/rustgo/pkg/parser"
)

// check is a test helper: lex, parse and type-check src.
func check(t *testing.T, src string) []Error {
	t.Helper()
	toks, err := lexer.New().Lex(src)
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	crate, errs := parser.New(toks).ParseFile()
	if len(errs) > 0 {
		t.Fatalf("parse failed: %v", errs)
	}
	return New().Check(crate)
}

// expectError asserts that at least one diagnostic contains the substring.
func expectError(t *testing.T, errs []Error, substr string) {
	t.Helper()
	for _, e := range errs {
		if strings.Contains(e.Msg, substr) {
			return
		}
	}
	t.Errorf("no diagnostic containing %q, got %v", substr, errs)
}

func TestCheckValidProgram(t *testing.T) {
	errs := check(t, `
fn main() {
    println!("=== Начало программы ===");
    let result = add_numbers(5, 3);
    println!("Результат сложения: {}", result);
    greet_user("Алексей");
    println!(hello_user("Данил"));
    let number = 7;
    let is_even_result = is_even(number);
    println!("Число {} чётное: {}", number, is_even_result);
    println!("=== Конец программы ===");
}

fn add_numbers(a: i32, b: i32) -> i32 {
    a + b
}

fn greet_user(name: &str) {
    println!("Привет, {}! Добро пожаловать в Rust!", name);
}

fn hello_user(name: &str) -> String {
    format!("Привет {}!", name)
}

fn is_even(num: i32) -> bool {
    num % 2 == 0
}
`)
	if len(errs) != 0 {
		t.Fatalf("valid program should check cleanly, got %v", errs)
	}
}

func TestCheckUndefinedIdentifier(t *testing.T) {
	errs := check(t, `fn main() { let x = missing; }`)
	expectError(t, errs, "undefined identifier: missing")
}

func TestCheckUndefinedFunction(t *testing.T) {
	errs := check(t, `fn main() { nope(1); }`)
	expectError(t, errs, "undefined function: nope")
}

func TestCheckDuplicateDeclaration(t *testing.T) {
	errs := check(t, `
fn f() {}
fn f() {}
`)
	expectError(t, errs, "duplicate declaration of f")
}

func TestCheckDuplicateVariable(t *testing.T) {
	errs := check(t, `
fn main() {
    let x = 1;
    let x = 2;
}
`)
	expectError(t, errs, "already declared")
}

func TestCheckArity(t *testing.T) {
	errs := check(t, `
fn add(a: i32, b: i32) -> i32 { a + b }
fn main() { let x = add(1); }
`)
	expectError(t, errs, "add expects 2 arguments, got 1")
}

func TestCheckArgumentTypes(t *testing.T) {
	errs := check(t, `
fn add(a: i32, b: i32) -> i32 { a + b }
fn main() { let x = add(1, "two"); }
`)
	expectError(t, errs, "argument 2 of add")
}

func TestCheckLetAscription(t *testing.T) {
	errs := check(t, `fn main() { let flag: bool = 42; }`)
	expectError(t, errs, "type mismatch")

	errs = check(t, `fn main() { let n: i32 = 42; }`)
	if len(errs) != 0 {
		t.Errorf("matching ascription should pass, got %v", errs)
	}
}

func TestCheckStrStringCompatibility(t *testing.T) {
	errs := check(t, `
fn greet(name: &str) {}
fn main() { greet("Алексей"); }
`)
	if len(errs) != 0 {
		t.Errorf("&str parameter should accept a string literal, got %v", errs)
	}
}

func TestCheckOperandRules(t *testing.T) {
	errs := check(t, `fn main() { let x = "a" + 1; }`)
	expectError(t, errs, "operands of + must be numeric")

	errs = check(t, `fn main() { let x = 1 && true; }`)
	expectError(t, errs, "operands of && must be bool")

	errs = check(t, `fn main() { let x = 1 == "a"; }`)
	expectError(t, errs, "cannot compare i32 with String")
}

func TestCheckUnaryRules(t *testing.T) {
	errs := check(t, `fn main() { let x = -true; }`)
	expectError(t, errs, "unary - must be numeric")

	errs = check(t, `fn main() { let x = !3; }`)
	expectError(t, errs, "! must be bool")
}

func TestCheckReturnType(t *testing.T) {
	errs := check(t, `
fn answer() -> i32 {
    return "forty two";
}
`)
	expectError(t, errs, "return has type String, function returns i32")
}

func TestCheckTailExpressionType(t *testing.T) {
	errs := check(t, `
fn answer() -> bool {
    41 + 1
}
`)
	expectError(t, errs, "tail expression has type i32, function returns bool")
}

func TestCheckMacros(t *testing.T) {
	errs := check(t, `
fn main() {
    let s: String = format!("x = {}", 1);
    println!("{}", s);
}
`)
	if len(errs) != 0 {
		t.Errorf("format! should produce a String, got %v", errs)
	}

	errs = check(t, `fn main() { frobnicate!(1); }`)
	expectError(t, errs, "unsupported macro: frobnicate!")
}

func TestCheckCallPrecedesDeclaration(t *testing.T) {
	// main calls helpers declared later in the file.
	errs := check(t, `
fn main() { let x = later(); }
fn later() -> i32 { 1 }
`)
	if len(errs) != 0 {
		t.Errorf("forward call should pass, got %v", errs)
	}
}

func TestCheckErrorsCarryPositions(t *testing.T) {
	errs := check(t, `fn main() {
    let x = missing;
}`)
	if len(errs) == 0 {
		t.Fatal("expected diagnostics")
	}
	if errs[0].Pos.Line != 2 {
		t.Errorf("diagnostic line = %d, want 2", errs[0].Pos.Line)
	}
	if !strings.Contains(errs[0].Error(), "2:") {
		t.Errorf("Error() should render position, got %q", errs[0].Error())
	}
}
