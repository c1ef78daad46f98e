// Package ir defines the intermediate representation the generator consumes.
// Lowering resolves Rust types to Go types and normalizes tail expressions
// into returns, so the generator deals only with Go-shaped constructs.
package ir

import "github.com/mamaar/rustgo/pkg/token"

// Module is one lowered compilation unit.
type Module struct {
	Name        string
	PackageName string
	Functions   []*Function
	Structs     []*Struct
}

// Function is a lowered function. ReturnType is the empty string for
// functions without a result.
type Function struct {
	Name       string
	Params     []Param
	ReturnType string
	Body       []Stmt
	Pos        token.Position
}

// Param is a lowered parameter with its Go type.
type Param struct {
	Name string
	Type string
}

// Struct is a lowered struct definition.
type Struct struct {
	Name   string
	Fields []Field
	Pos    token.Position
}

// Field is a lowered struct field with its Go type.
type Field struct {
	Name string
	Type string
}

// Stmt is a lowered statement.
type Stmt interface {
	stmtNode()
	Pos() token.Position
}

// VarDecl declares and initializes a local variable (Go ":=").
type VarDecl struct {
	Name     string
	Type     string
	Init     Expr
	Position token.Position
}

func (d *VarDecl) stmtNode()           {}
func (d *VarDecl) Pos() token.Position { return d.Position }

// Return returns from the enclosing function, with or without a value.
type Return struct {
	Value    Expr
	Position token.Position
}

func (r *Return) stmtNode()           {}
func (r *Return) Pos() token.Position { return r.Position }

// ExprStmt evaluates an expression for its side effects.
type ExprStmt struct {
	Expr     Expr
	Position token.Position
}

func (e *ExprStmt) stmtNode()           {}
func (e *ExprStmt) Pos() token.Position { return e.Position }

// Expr is a lowered expression. Type returns the Go type name, or the
// empty string for valueless expressions.
type Expr interface {
	exprNode()
	Type() string
	Pos() token.Position
}

// Var references a local variable or parameter.
type Var struct {
	Name     string
	TypeName string
	Position token.Position
}

func (v *Var) exprNode()           {}
func (v *Var) Type() string        { return v.TypeName }
func (v *Var) Pos() token.Position { return v.Position }

// LitKind classifies lowered literals.
type LitKind int

const (
	IntLit LitKind = iota
	FloatLit
	StringLit
	CharLit
	BoolLit
)

// Literal is a literal value. Value keeps the source spelling; for strings
// it includes the surrounding quotes.
type Literal struct {
	Kind     LitKind
	Value    string
	Position token.Position
}

func (l *Literal) exprNode() {}
func (l *Literal) Type() string {
	switch l.Kind {
	case IntLit:
		return "int"
	case FloatLit:
		return "float64"
	case StringLit:
		return "string"
	case CharLit:
		return "rune"
	case BoolLit:
		return "bool"
	}
	return ""
}
func (l *Literal) Pos() token.Position { return l.Position }

// Unary is a prefix operation.
type Unary struct {
	Op       string
	X        Expr
	Position token.Position
}

func (u *Unary) exprNode() {}
func (u *Unary) Type() string {
	if u.Op == "!" {
		return "bool"
	}
	return u.X.Type()
}
func (u *Unary) Pos() token.Position { return u.Position }

// Binary is an infix operation.
type Binary struct {
	X        Expr
	Op       string
	Y        Expr
	Position token.Position
}

func (b *Binary) exprNode() {}
func (b *Binary) Type() string {
	switch b.Op {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		return "bool"
	}
	return b.X.Type()
}
func (b *Binary) Pos() token.Position { return b.Position }

// Call invokes a user-defined function.
type Call struct {
	Name     string
	Args     []Expr
	Result   string // Go result type, "" for none
	Position token.Position
}

func (c *Call) exprNode()           {}
func (c *Call) Type() string        { return c.Result }
func (c *Call) Pos() token.Position { return c.Position }

// MacroCall is a lowered Rust macro invocation. The generator maps it to
// the corresponding fmt call.
type MacroCall struct {
	Name     string // without the bang: "println", "format", ...
	Args     []Expr
	Position token.Position
}

func (m *MacroCall) exprNode() {}
func (m *MacroCall) Type() string {
	if m.Name == "format" {
		return "string"
	}
	return ""
}
func (m *MacroCall) Pos() token.Position { return m.Position }

// goTypes maps Rust type names to Go type names. The unit type maps to
// the empty string (no return type).
var goTypes = map[string]string{
	"i8":     "int8",
	"i16":    "int16",
	"i32":    "int",
	"i64":    "int64",
	"u8":     "uint8",
	"u16":    "uint16",
	"u32":    "uint32",
	"u64":    "uint64",
	"f32":    "float32",
	"f64":    "float64",
	"bool":   "bool",
	"char":   "rune",
	"str":    "string",
	"String": "string",
	"()":     "",
}

// GoType maps a Rust type name to its Go counterpart. User-defined type
// names pass through unchanged.
func GoType(rust string) string {
	if goType, ok := goTypes[rust]; ok {
		return goType
	}
	return rust
}
