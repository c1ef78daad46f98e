// Package ast defines the syntax tree for the supported Rust subset.
package ast

import (
	"fmt"

	"github.com/mamaar/rustgo/pkg/token"
)

// Node is implemented by every syntax tree node.
type Node interface {
	Pos() token.Position
	String() string
}

// Item is a top-level declaration: a function or a struct.
type Item interface {
	Node
	itemNode()
}

// Stmt is a statement inside a block.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// Type is a type annotation.
type Type interface {
	Node
	typeNode()
}

// Crate is the root of the tree: one source file's worth of items.
type Crate struct {
	Position token.Position
	Items    []Item
}

func (c *Crate) Pos() token.Position { return c.Position }
func (c *Crate) String() string      { return fmt.Sprintf("Crate(%d items)", len(c.Items)) }

// Function is a fn item. ReturnType is the unit type "()" when the source
// declares no return type.
type Function struct {
	Position   token.Position
	Name       string
	Params     []Param
	ReturnType Type
	Body       *Block
}

func (f *Function) Pos() token.Position { return f.Position }
func (f *Function) String() string      { return "Function " + f.Name }
func (f *Function) itemNode()           {}

// Param is a function parameter.
type Param struct {
	Position token.Position
	Name     string
	Type     Type
}

func (p *Param) Pos() token.Position { return p.Position }
func (p *Param) String() string      { return "Param " + p.Name }

// Struct is a struct item.
type Struct struct {
	Position token.Position
	Name     string
	Fields   []Field
}

func (s *Struct) Pos() token.Position { return s.Position }
func (s *Struct) String() string      { return "Struct " + s.Name }
func (s *Struct) itemNode()           {}

// Field is a named struct field.
type Field struct {
	Position token.Position
	Name     string
	Type     Type
}

func (f *Field) Pos() token.Position { return f.Position }
func (f *Field) String() string      { return "Field " + f.Name }

// Block is a brace-delimited statement list.
type Block struct {
	Position token.Position
	Stmts    []Stmt
}

func (b *Block) Pos() token.Position { return b.Position }
func (b *Block) String() string      { return fmt.Sprintf("Block(%d stmts)", len(b.Stmts)) }
func (b *Block) stmtNode()           {}

// LetStmt is a variable binding. Type is nil when the source has no
// ascription and the type must be inferred from Init.
type LetStmt struct {
	Position token.Position
	Name     string
	Type     Type
	Init     Expr
}

func (l *LetStmt) Pos() token.Position { return l.Position }
func (l *LetStmt) String() string      { return "Let " + l.Name }
func (l *LetStmt) stmtNode()           {}

// ExprStmt is an expression in statement position. Tail reports whether the
// expression ended the block without a semicolon, which makes it the block's
// value in Rust.
type ExprStmt struct {
	Position token.Position
	Expr     Expr
	Tail     bool
}

func (e *ExprStmt) Pos() token.Position { return e.Position }
func (e *ExprStmt) String() string {
	if e.Tail {
		return "TailExpr"
	}
	return "ExprStmt"
}
func (e *ExprStmt) stmtNode() {}

// ReturnStmt is an explicit return, with or without a value.
type ReturnStmt struct {
	Position token.Position
	Value    Expr
}

func (r *ReturnStmt) Pos() token.Position { return r.Position }
func (r *ReturnStmt) String() string      { return "Return" }
func (r *ReturnStmt) stmtNode()           {}

// LitKind classifies literal expressions.
type LitKind int

const (
	IntLit LitKind = iota
	FloatLit
	StringLit
	CharLit
	BoolLit
)

var litKindNames = [...]string{
	IntLit:    "int",
	FloatLit:  "float",
	StringLit: "string",
	CharLit:   "char",
	BoolLit:   "bool",
}

func (k LitKind) String() string {
	if k < 0 || int(k) >= len(litKindNames) {
		return "unknown"
	}
	return litKindNames[k]
}

// Literal is a literal expression. Value holds the source text, including
// quotes for strings and chars.
type Literal struct {
	Position token.Position
	Kind     LitKind
	Value    string
}

func (l *Literal) Pos() token.Position { return l.Position }
func (l *Literal) String() string      { return fmt.Sprintf("Literal %s %s", l.Kind, l.Value) }
func (l *Literal) exprNode()           {}

// Ident is a reference to a named variable or function.
type Ident struct {
	Position token.Position
	Name     string
}

func (i *Ident) Pos() token.Position { return i.Position }
func (i *Ident) String() string      { return "Ident " + i.Name }
func (i *Ident) exprNode()           {}

// UnaryExpr is a prefix operation: -x or !flag.
type UnaryExpr struct {
	Position token.Position
	Op       string
	X        Expr
}

func (u *UnaryExpr) Pos() token.Position { return u.Position }
func (u *UnaryExpr) String() string      { return "Unary " + u.Op }
func (u *UnaryExpr) exprNode()           {}

// BinaryExpr is an infix operation.
type BinaryExpr struct {
	Position token.Position
	X        Expr
	Op       string
	Y        Expr
}

func (b *BinaryExpr) Pos() token.Position { return b.Position }
func (b *BinaryExpr) String() string      { return "Binary " + b.Op }
func (b *BinaryExpr) exprNode()           {}

// CallExpr is a call of a named function. The subset has no method calls or
// function values, so the callee is always a plain name.
type CallExpr struct {
	Position token.Position
	Name     string
	Args     []Expr
}

func (c *CallExpr) Pos() token.Position { return c.Position }
func (c *CallExpr) String() string      { return "Call " + c.Name }
func (c *CallExpr) exprNode()           {}

// MacroCall is a macro invocation such as println!(...). Name excludes the
// trailing bang.
type MacroCall struct {
	Position token.Position
	Name     string
	Args     []Expr
}

func (m *MacroCall) Pos() token.Position { return m.Position }
func (m *MacroCall) String() string      { return "Macro " + m.Name + "!" }
func (m *MacroCall) exprNode()           {}

// BlockExpr wraps a block used in expression position.
type BlockExpr struct {
	Position token.Position
	Block    *Block
}

func (b *BlockExpr) Pos() token.Position { return b.Position }
func (b *BlockExpr) String() string      { return "BlockExpr" }
func (b *BlockExpr) exprNode()           {}

// PathType is a type named by a path, e.g. i32, String, MyStruct or the
// unit type "()".
type PathType struct {
	Position token.Position
	Path     string
}

func (p *PathType) Pos() token.Position { return p.Position }
func (p *PathType) String() string      { return "Type " + p.Path }
func (p *PathType) typeNode()           {}

// Unit is the path used for the unit type.
const Unit = "()"

// IsUnit reports whether t is absent or the unit type.
func IsUnit(t Type) bool {
	pt, ok := t.(*PathType)
	return t == nil || (ok && pt.Path == Unit)
}
