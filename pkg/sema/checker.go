// Package sema checks the parsed crate for semantic errors: undefined
// names, duplicate declarations, arity mismatches and type errors. It runs
// in two passes so functions can call each other regardless of order.
package sema

import (
	"fmt"

	"github.com/mamaar/rustgo/pkg/ast"
	"github.com/mamaar/rustgo/pkg/token"
)

// Error is a semantic diagnostic with a source position.
type Error struct {
	Msg string
	Pos token.Position
}

func (e Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
}

// TypeInfo is the checker's view of a type. Name uses Rust spelling
// ("i32", "String", "bool", "()"). The pseudo-type "infer" is compatible
// with everything and marks positions where inference applies.
type TypeInfo struct {
	Name string
}

// Unit is the type of expressions with no value.
var Unit = TypeInfo{Name: "()"}

// SymbolKind classifies entries in the symbol table.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolStruct
)

// Symbol is a named entity: a global function or struct, or a local
// variable or parameter.
type Symbol struct {
	Kind SymbolKind
	Name string
	Type TypeInfo
	Pos  token.Position
	Fn   *ast.Function // set for functions
}

// macroResults maps supported macro names (without the bang) to their
// result types.
var macroResults = map[string]TypeInfo{
	"println":  Unit,
	"print":    Unit,
	"eprintln": Unit,
	"eprint":   Unit,
	"format":   {Name: "String"},
	"panic":    Unit,
}

// Checker verifies one crate. Zero value is not usable; call New.
type Checker struct {
	errors  []Error
	globals map[string]*Symbol
}

// New creates a Checker.
func New() *Checker {
	return &Checker{globals: make(map[string]*Symbol)}
}

// Check analyzes the crate and returns all semantic errors found.
func (c *Checker) Check(crate *ast.Crate) []Error {
	c.declareItems(crate)
	c.checkBodies(crate)
	return c.errors
}

func (c *Checker) errorf(pos token.Position, format string, args ...any) {
	c.errors = append(c.errors, Error{Msg: fmt.Sprintf(format, args...), Pos: pos})
}

// declareItems registers every top-level function and struct.
func (c *Checker) declareItems(crate *ast.Crate) {
	for _, item := range crate.Items {
		switch it := item.(type) {
		case *ast.Function:
			if _, exists := c.globals[it.Name]; exists {
				c.errorf(it.Pos(), "duplicate declaration of %s", it.Name)
				continue
			}
			c.globals[it.Name] = &Symbol{
				Kind: SymbolFunction,
				Name: it.Name,
				Type: typeOf(it.ReturnType),
				Pos:  it.Pos(),
				Fn:   it,
			}
		case *ast.Struct:
			if _, exists := c.globals[it.Name]; exists {
				c.errorf(it.Pos(), "duplicate declaration of %s", it.Name)
				continue
			}
			c.globals[it.Name] = &Symbol{
				Kind: SymbolStruct,
				Name: it.Name,
				Type: TypeInfo{Name: it.Name},
				Pos:  it.Pos(),
			}
		}
	}
}

func (c *Checker) checkBodies(crate *ast.Crate) {
	for _, item := range crate.Items {
		if fn, ok := item.(*ast.Function); ok {
			c.checkFunction(fn)
		}
	}
}

// checkFunction checks one function body in a fresh local scope seeded
// with the parameters.
func (c *Checker) checkFunction(fn *ast.Function) {
	scope := make(map[string]*Symbol)
	for i := range fn.Params {
		p := &fn.Params[i]
		pt := typeOf(p.Type)
		if pt.Name == "str" {
			pt.Name = "String"
		}
		if _, exists := scope[p.Name]; exists {
			c.errorf(p.Pos(), "duplicate parameter %s", p.Name)
			continue
		}
		scope[p.Name] = &Symbol{Kind: SymbolVariable, Name: p.Name, Type: pt, Pos: p.Pos()}
	}

	ret := typeOf(fn.ReturnType)
	for _, stmt := range fn.Body.Stmts {
		c.checkStmt(stmt, scope, ret)
	}
}

func (c *Checker) checkStmt(stmt ast.Stmt, scope map[string]*Symbol, ret TypeInfo) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		c.checkLet(s, scope)
	case *ast.ExprStmt:
		t := c.checkExpr(s.Expr, scope)
		// A tail expression is the function's result.
		if s.Tail && ret.Name != "()" && !compatible(ret, t) {
			c.errorf(s.Pos(), "tail expression has type %s, function returns %s", t.Name, ret.Name)
		}
	case *ast.ReturnStmt:
		t := Unit
		if s.Value != nil {
			t = c.checkExpr(s.Value, scope)
		}
		if !compatible(ret, t) {
			c.errorf(s.Pos(), "return has type %s, function returns %s", t.Name, ret.Name)
		}
	case *ast.Block:
		for _, inner := range s.Stmts {
			c.checkStmt(inner, scope, ret)
		}
	}
}

func (c *Checker) checkLet(let *ast.LetStmt, scope map[string]*Symbol) {
	if _, exists := scope[let.Name]; exists {
		c.errorf(let.Pos(), "variable %s already declared in this scope", let.Name)
		return
	}

	initType := c.checkExpr(let.Init, scope)

	declared := initType
	if let.Type != nil {
		declared = typeOf(let.Type)
		if !compatible(declared, initType) {
			c.errorf(let.Pos(), "type mismatch: declared %s, initializer is %s", declared.Name, initType.Name)
		}
	}

	scope[let.Name] = &Symbol{Kind: SymbolVariable, Name: let.Name, Type: declared, Pos: let.Pos()}
}

// checkExpr checks an expression and returns its type.
func (c *Checker) checkExpr(expr ast.Expr, scope map[string]*Symbol) TypeInfo {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalType(e)
	case *ast.Ident:
		return c.resolve(e, scope)
	case *ast.UnaryExpr:
		return c.checkUnary(e, scope)
	case *ast.BinaryExpr:
		return c.checkBinary(e, scope)
	case *ast.CallExpr:
		return c.checkCall(e, scope)
	case *ast.MacroCall:
		return c.checkMacro(e, scope)
	case *ast.BlockExpr:
		for _, stmt := range e.Block.Stmts {
			c.checkStmt(stmt, scope, Unit)
		}
		return Unit
	default:
		c.errorf(expr.Pos(), "unsupported expression")
		return Unit
	}
}

func literalType(lit *ast.Literal) TypeInfo {
	switch lit.Kind {
	case ast.IntLit:
		return TypeInfo{Name: "i32"}
	case ast.FloatLit:
		return TypeInfo{Name: "f64"}
	case ast.StringLit:
		return TypeInfo{Name: "String"}
	case ast.CharLit:
		return TypeInfo{Name: "char"}
	case ast.BoolLit:
		return TypeInfo{Name: "bool"}
	}
	return Unit
}

// resolve looks an identifier up in the local scope, then the globals.
func (c *Checker) resolve(id *ast.Ident, scope map[string]*Symbol) TypeInfo {
	if sym, ok := scope[id.Name]; ok {
		return sym.Type
	}
	if sym, ok := c.globals[id.Name]; ok {
		return sym.Type
	}
	c.errorf(id.Pos(), "undefined identifier: %s", id.Name)
	return Unit
}

func (c *Checker) checkUnary(u *ast.UnaryExpr, scope map[string]*Symbol) TypeInfo {
	t := c.checkExpr(u.X, scope)
	switch u.Op {
	case "-":
		if !isNumeric(t) {
			c.errorf(u.Pos(), "operand of unary - must be numeric, got %s", t.Name)
		}
		return t
	case "!":
		if !isBool(t) {
			c.errorf(u.Pos(), "operand of ! must be bool, got %s", t.Name)
		}
		return TypeInfo{Name: "bool"}
	}
	return Unit
}

func (c *Checker) checkBinary(b *ast.BinaryExpr, scope map[string]*Symbol) TypeInfo {
	left := c.checkExpr(b.X, scope)
	right := c.checkExpr(b.Y, scope)

	switch b.Op {
	case "+", "-", "*", "/", "%":
		if !isNumeric(left) || !isNumeric(right) {
			c.errorf(b.Pos(), "operands of %s must be numeric, got %s and %s", b.Op, left.Name, right.Name)
			return Unit
		}
		return left
	case "==", "!=", "<", ">", "<=", ">=":
		if !compatible(left, right) {
			c.errorf(b.Pos(), "cannot compare %s with %s", left.Name, right.Name)
		}
		return TypeInfo{Name: "bool"}
	case "&&", "||":
		if !isBool(left) || !isBool(right) {
			c.errorf(b.Pos(), "operands of %s must be bool, got %s and %s", b.Op, left.Name, right.Name)
		}
		return TypeInfo{Name: "bool"}
	}
	return Unit
}

func (c *Checker) checkCall(call *ast.CallExpr, scope map[string]*Symbol) TypeInfo {
	sym, ok := c.globals[call.Name]
	if !ok {
		c.errorf(call.Pos(), "undefined function: %s", call.Name)
		return Unit
	}
	if sym.Kind != SymbolFunction || sym.Fn == nil {
		c.errorf(call.Pos(), "%s is not a function", call.Name)
		return Unit
	}

	fn := sym.Fn
	if len(call.Args) != len(fn.Params) {
		c.errorf(call.Pos(), "%s expects %d arguments, got %d", call.Name, len(fn.Params), len(call.Args))
		return typeOf(fn.ReturnType)
	}

	for i, arg := range call.Args {
		argType := c.checkExpr(arg, scope)
		paramType := typeOf(fn.Params[i].Type)
		if !compatible(paramType, argType) {
			c.errorf(arg.Pos(), "argument %d of %s: expected %s, got %s", i+1, call.Name, paramType.Name, argType.Name)
		}
	}

	return typeOf(fn.ReturnType)
}

func (c *Checker) checkMacro(m *ast.MacroCall, scope map[string]*Symbol) TypeInfo {
	result, known := macroResults[m.Name]
	if !known {
		c.errorf(m.Pos(), "unsupported macro: %s!", m.Name)
		result = Unit
	}
	for _, arg := range m.Args {
		c.checkExpr(arg, scope)
	}
	return result
}

// typeOf converts a syntactic type to the checker's representation.
func typeOf(t ast.Type) TypeInfo {
	if t == nil {
		return Unit
	}
	if pt, ok := t.(*ast.PathType); ok {
		return TypeInfo{Name: pt.Path}
	}
	return Unit
}

// compatible reports whether want and got are interchangeable. The
// pseudo-type "infer" matches anything, and str is interchangeable with
// String (both become Go strings).
func compatible(want, got TypeInfo) bool {
	if want.Name == "infer" || got.Name == "infer" {
		return true
	}
	if isStringy(want) && isStringy(got) {
		return true
	}
	return want.Name == got.Name
}

func isStringy(t TypeInfo) bool {
	return t.Name == "str" || t.Name == "String"
}

func isNumeric(t TypeInfo) bool {
	switch t.Name {
	case "i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "f32", "f64":
		return true
	}
	return false
}

func isBool(t TypeInfo) bool {
	return t.Name == "bool"
}
