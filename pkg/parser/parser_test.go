package parser

import (
	"strings"
	"testing"

	"github.com/mamaar/rustgo/pkg/ast"
	"github.com/mamaar/rustgo/pkg/lexer"
)

// parseSource is a test helper running lexer and parser, failing on any error.
func parseSource(t *testing.T, src string) *ast.Crate {
	t.Helper()
	toks, err := lexer.New().Lex(src)
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	crate, errs := New(toks).ParseFile()
	if len(errs) > 0 {
		t.Fatalf("parse failed: %v", errs)
	}
	return crate
}

func TestParseFunctionSignature(t *testing.T) {
	crate := parseSource(t, `
fn add_numbers(a: i32, b: i32) -> i32 {
    a + b
}
`)
	if len(crate.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(crate.Items))
	}

	fn, ok := crate.Items[0].(*ast.Function)
	if !ok {
		t.Fatalf("item is %T, want *ast.Function", crate.Items[0])
	}
	if fn.Name != "add_numbers" {
		t.Errorf("name = %q, want add_numbers", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(fn.Params))
	}
	if fn.Params[0].Name != "a" || fn.Params[1].Name != "b" {
		t.Errorf("param names = %q, %q", fn.Params[0].Name, fn.Params[1].Name)
	}
	ret, ok := fn.ReturnType.(*ast.PathType)
	if !ok || ret.Path != "i32" {
		t.Errorf("return type = %v, want i32", fn.ReturnType)
	}

	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("got %d body stmts, want 1", len(fn.Body.Stmts))
	}
	tail, ok := fn.Body.Stmts[0].(*ast.ExprStmt)
	if !ok || !tail.Tail {
		t.Fatalf("body stmt should be a tail expression, got %v", fn.Body.Stmts[0])
	}
	bin, ok := tail.Expr.(*ast.BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Errorf("tail expr = %v, want binary +", tail.Expr)
	}
}

func TestParseVoidFunctionDefaultsToUnit(t *testing.T) {
	crate := parseSource(t, `
fn greet_user(name: &str) {
    println!("Привет, {}! Добро пожаловать в Rust!", name);
}
`)
	fn := crate.Items[0].(*ast.Function)
	if !ast.IsUnit(fn.ReturnType) {
		t.Errorf("return type = %v, want unit", fn.ReturnType)
	}

	// &str strips the reference.
	pt := fn.Params[0].Type.(*ast.PathType)
	if pt.Path != "str" {
		t.Errorf("param type = %q, want str", pt.Path)
	}

	stmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	if stmt.Tail {
		t.Error("semicolon-terminated statement should not be a tail expression")
	}
	mac, ok := stmt.Expr.(*ast.MacroCall)
	if !ok {
		t.Fatalf("stmt expr = %T, want *ast.MacroCall", stmt.Expr)
	}
	if mac.Name != "println" {
		t.Errorf("macro name = %q, want println (without bang)", mac.Name)
	}
	if len(mac.Args) != 2 {
		t.Errorf("got %d macro args, want 2", len(mac.Args))
	}
}

func TestParseLetBindings(t *testing.T) {
	crate := parseSource(t, `
fn main() {
    let number = 7;
    let is_even_result: bool = is_even(number);
}
`)
	fn := crate.Items[0].(*ast.Function)
	if len(fn.Body.Stmts) != 2 {
		t.Fatalf("got %d stmts, want 2", len(fn.Body.Stmts))
	}

	first := fn.Body.Stmts[0].(*ast.LetStmt)
	if first.Name != "number" {
		t.Errorf("first let name = %q", first.Name)
	}
	if first.Type != nil {
		t.Errorf("un-ascribed let should have nil type, got %v", first.Type)
	}
	lit, ok := first.Init.(*ast.Literal)
	if !ok || lit.Kind != ast.IntLit || lit.Value != "7" {
		t.Errorf("first init = %v, want int literal 7", first.Init)
	}

	second := fn.Body.Stmts[1].(*ast.LetStmt)
	pt, ok := second.Type.(*ast.PathType)
	if !ok || pt.Path != "bool" {
		t.Errorf("second let type = %v, want bool", second.Type)
	}
	call, ok := second.Init.(*ast.CallExpr)
	if !ok || call.Name != "is_even" || len(call.Args) != 1 {
		t.Errorf("second init = %v, want is_even(number)", second.Init)
	}
}

func TestParseReturn(t *testing.T) {
	crate := parseSource(t, `
fn hello_user(name: &str) -> String {
    return format!("Привет {}!", name);
}
`)
	fn := crate.Items[0].(*ast.Function)
	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("stmt = %T, want *ast.ReturnStmt", fn.Body.Stmts[0])
	}
	mac, ok := ret.Value.(*ast.MacroCall)
	if !ok || mac.Name != "format" {
		t.Errorf("return value = %v, want format! macro", ret.Value)
	}
}

func TestParsePrecedence(t *testing.T) {
	crate := parseSource(t, `
fn check(num: i32) -> bool {
    num % 2 == 0 && num > -10
}
`)
	fn := crate.Items[0].(*ast.Function)
	tail := fn.Body.Stmts[0].(*ast.ExprStmt)

	// Top must be &&, with == and > below, and % below ==.
	and, ok := tail.Expr.(*ast.BinaryExpr)
	if !ok || and.Op != "&&" {
		t.Fatalf("top = %v, want &&", tail.Expr)
	}
	eq, ok := and.X.(*ast.BinaryExpr)
	if !ok || eq.Op != "==" {
		t.Fatalf("left of && = %v, want ==", and.X)
	}
	mod, ok := eq.X.(*ast.BinaryExpr)
	if !ok || mod.Op != "%" {
		t.Errorf("left of == = %v, want %%", eq.X)
	}
	gt, ok := and.Y.(*ast.BinaryExpr)
	if !ok || gt.Op != ">" {
		t.Fatalf("right of && = %v, want >", and.Y)
	}
	neg, ok := gt.Y.(*ast.UnaryExpr)
	if !ok || neg.Op != "-" {
		t.Errorf("right of > = %v, want unary -", gt.Y)
	}
}

func TestParseStruct(t *testing.T) {
	crate := parseSource(t, `
struct Point {
    x: i32,
    y: i32,
}
`)
	st, ok := crate.Items[0].(*ast.Struct)
	if !ok {
		t.Fatalf("item = %T, want *ast.Struct", crate.Items[0])
	}
	if st.Name != "Point" || len(st.Fields) != 2 {
		t.Errorf("struct = %s with %d fields, want Point with 2", st.Name, len(st.Fields))
	}
}

func TestParseAttributesSkipped(t *testing.T) {
	crate := parseSource(t, `
#[derive(Debug)]
struct Point { x: i32 }
`)
	if len(crate.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(crate.Items))
	}
}

func TestParseNestedMacroArgument(t *testing.T) {
	crate := parseSource(t, `
fn main() {
    println!(hello_user("Данил"));
}
`)
	fn := crate.Items[0].(*ast.Function)
	mac := fn.Body.Stmts[0].(*ast.ExprStmt).Expr.(*ast.MacroCall)
	if len(mac.Args) != 1 {
		t.Fatalf("got %d args, want 1", len(mac.Args))
	}
	call, ok := mac.Args[0].(*ast.CallExpr)
	if !ok || call.Name != "hello_user" {
		t.Errorf("arg = %v, want hello_user call", mac.Args[0])
	}
}

func TestParseErrorRecovery(t *testing.T) {
	toks, err := lexer.New().Lex(`
fn broken() {
    let = 5;
    println!("still reached");
}

fn intact() {}
`)
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	crate, errs := New(toks).ParseFile()
	if len(errs) == 0 {
		t.Fatal("expected parse errors")
	}

	// Both functions should still appear despite the broken statement.
	if len(crate.Items) != 2 {
		t.Fatalf("got %d items after recovery, want 2", len(crate.Items))
	}

	found := false
	for _, e := range errs {
		if strings.Contains(e.Msg, "name after let") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors should mention the let binding: %v", errs)
	}
}

func TestParseErrorPositions(t *testing.T) {
	toks, err := lexer.New().Lex("fn f() { let x = ; }")
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	_, errs := New(toks).ParseFile()
	if len(errs) == 0 {
		t.Fatal("expected parse errors")
	}
	if errs[0].Pos.Line != 1 || errs[0].Pos.Col == 0 {
		t.Errorf("error position = %v, want line 1 with a real column", errs[0].Pos)
	}
}
