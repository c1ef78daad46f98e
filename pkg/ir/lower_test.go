package ir

import (
	"testing"

	"github.com/mamaar/rustgo/pkg/lexer"
	"github.com/mamaar/rustgo/pkg/parser"
)

// lower is a test helper running the frontend and lowering the result.
func lower(t *testing.T, src string) *Module {
	t.Helper()
	toks, err := lexer.New().Lex(src)
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	crate, errs := parser.New(toks).ParseFile()
	if len(errs) > 0 {
		t.Fatalf("parse failed: %v", errs)
	}
	return NewLowerer().Lower(crate, "main")
}

func TestLowerFunctionSignature(t *testing.T) {
	module := lower(t, `fn add_numbers(a: i32, b: i32) -> i32 { a + b }`)

	if len(module.Functions) != 1 {
		t.Fatalf("got %d functions, want 1", len(module.Functions))
	}
	fn := module.Functions[0]
	if fn.Name != "add_numbers" {
		t.Errorf("name = %q", fn.Name)
	}
	if fn.ReturnType != "int" {
		t.Errorf("return type = %q, want int (i32 maps to int)", fn.ReturnType)
	}
	if len(fn.Params) != 2 || fn.Params[0].Type != "int" {
		t.Errorf("params = %v, want two int params", fn.Params)
	}
}

func TestLowerTailExpressionBecomesReturn(t *testing.T) {
	module := lower(t, `fn is_even(num: i32) -> bool { num % 2 == 0 }`)

	fn := module.Functions[0]
	if len(fn.Body) != 1 {
		t.Fatalf("got %d stmts, want 1", len(fn.Body))
	}
	ret, ok := fn.Body[0].(*Return)
	if !ok {
		t.Fatalf("stmt = %T, want *Return", fn.Body[0])
	}
	bin, ok := ret.Value.(*Binary)
	if !ok || bin.Op != "==" {
		t.Errorf("return value = %v, want == binary", ret.Value)
	}
	if bin.Type() != "bool" {
		t.Errorf("comparison type = %q, want bool", bin.Type())
	}
}

func TestLowerTailInVoidFunctionStaysExpr(t *testing.T) {
	module := lower(t, `fn shout() { println!("hey") }`)

	fn := module.Functions[0]
	if _, ok := fn.Body[0].(*ExprStmt); !ok {
		t.Errorf("stmt = %T, want *ExprStmt in a void function", fn.Body[0])
	}
}

func TestLowerCallResultTypes(t *testing.T) {
	// hello_user is declared after main; the signature pass must still
	// resolve its result type.
	module := lower(t, `
fn main() {
    let s = hello_user("Данил");
}
fn hello_user(name: &str) -> String {
    format!("Привет {}!", name)
}
`)
	mainFn := module.Functions[0]
	decl := mainFn.Body[0].(*VarDecl)
	call, ok := decl.Init.(*Call)
	if !ok {
		t.Fatalf("init = %T, want *Call", decl.Init)
	}
	if call.Result != "string" {
		t.Errorf("call result = %q, want string", call.Result)
	}
	if decl.Type != "string" {
		t.Errorf("inferred var type = %q, want string", decl.Type)
	}
}

func TestLowerLetAscription(t *testing.T) {
	module := lower(t, `fn main() { let n: i64 = 42; }`)

	decl := module.Functions[0].Body[0].(*VarDecl)
	if decl.Type != "int64" {
		t.Errorf("declared type = %q, want int64", decl.Type)
	}
}

func TestLowerExplicitReturn(t *testing.T) {
	module := lower(t, `fn f() -> i32 { return 1; }`)

	ret, ok := module.Functions[0].Body[0].(*Return)
	if !ok {
		t.Fatalf("stmt = %T, want *Return", module.Functions[0].Body[0])
	}
	if ret.Value == nil {
		t.Error("return should carry a value")
	}
}

func TestLowerStruct(t *testing.T) {
	module := lower(t, `struct Point { x: i32, y: f64 }`)

	if len(module.Structs) != 1 {
		t.Fatalf("got %d structs, want 1", len(module.Structs))
	}
	st := module.Structs[0]
	if st.Fields[0].Type != "int" || st.Fields[1].Type != "float64" {
		t.Errorf("field types = %v, want int and float64", st.Fields)
	}
}

func TestLowerMacro(t *testing.T) {
	module := lower(t, `fn main() { println!("x = {}", 42); }`)

	es := module.Functions[0].Body[0].(*ExprStmt)
	mac, ok := es.Expr.(*MacroCall)
	if !ok {
		t.Fatalf("expr = %T, want *MacroCall", es.Expr)
	}
	if mac.Name != "println" || len(mac.Args) != 2 {
		t.Errorf("macro = %s! with %d args", mac.Name, len(mac.Args))
	}
}

func TestGoType(t *testing.T) {
	cases := map[string]string{
		"i32":    "int",
		"i64":    "int64",
		"u8":     "uint8",
		"f32":    "float32",
		"f64":    "float64",
		"bool":   "bool",
		"str":    "string",
		"String": "string",
		"()":     "",
		"Point":  "Point", // user types pass through
	}
	for rust, want := range cases {
		if got := GoType(rust); got != want {
			t.Errorf("GoType(%q) = %q, want %q", rust, got, want)
		}
	}
}
