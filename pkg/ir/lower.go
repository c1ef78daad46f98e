package ir

import (
	"github.com/mamaar/rustgo/pkg/ast"
)

// Lowerer converts a checked crate into an IR module. It makes a signature
// pass first so calls to functions declared later in the file still get
// their real result types.
type Lowerer struct {
	returns map[string]string // function name -> Go result type
}

// NewLowerer creates a Lowerer.
func NewLowerer() *Lowerer {
	return &Lowerer{returns: make(map[string]string)}
}

// Lower converts the crate into a module targeting the given Go package.
func (l *Lowerer) Lower(crate *ast.Crate, pkgName string) *Module {
	if pkgName == "" {
		pkgName = "main"
	}
	module := &Module{Name: pkgName, PackageName: pkgName}

	for _, item := range crate.Items {
		if fn, ok := item.(*ast.Function); ok {
			l.returns[fn.Name] = goTypeOf(fn.ReturnType)
		}
	}

	for _, item := range crate.Items {
		switch it := item.(type) {
		case *ast.Function:
			module.Functions = append(module.Functions, l.lowerFunction(it))
		case *ast.Struct:
			module.Structs = append(module.Structs, l.lowerStruct(it))
		}
	}
	return module
}

func (l *Lowerer) lowerFunction(fn *ast.Function) *Function {
	out := &Function{
		Name:       fn.Name,
		ReturnType: goTypeOf(fn.ReturnType),
		Pos:        fn.Pos(),
	}
	for i := range fn.Params {
		p := &fn.Params[i]
		out.Params = append(out.Params, Param{Name: p.Name, Type: goTypeOf(p.Type)})
	}

	locals := make(map[string]string)
	for _, p := range out.Params {
		locals[p.Name] = p.Type
	}

	stmts := fn.Body.Stmts
	for i, stmt := range stmts {
		lowered := l.lowerStmt(stmt, locals)
		if lowered == nil {
			continue
		}
		// A tail expression in a value-returning function becomes a return.
		if es, ok := stmt.(*ast.ExprStmt); ok && es.Tail && i == len(stmts)-1 && out.ReturnType != "" {
			lowered = &Return{Value: lowered.(*ExprStmt).Expr, Position: es.Pos()}
		}
		out.Body = append(out.Body, lowered)
	}
	return out
}

func (l *Lowerer) lowerStruct(st *ast.Struct) *Struct {
	out := &Struct{Name: st.Name, Pos: st.Pos()}
	for i := range st.Fields {
		f := &st.Fields[i]
		out.Fields = append(out.Fields, Field{Name: f.Name, Type: goTypeOf(f.Type)})
	}
	return out
}

func (l *Lowerer) lowerStmt(stmt ast.Stmt, locals map[string]string) Stmt {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		init := l.lowerExpr(s.Init, locals)
		declType := ""
		if s.Type != nil {
			declType = goTypeOf(s.Type)
		} else if init != nil {
			declType = init.Type()
		}
		locals[s.Name] = declType
		return &VarDecl{Name: s.Name, Type: declType, Init: init, Position: s.Pos()}
	case *ast.ReturnStmt:
		var value Expr
		if s.Value != nil {
			value = l.lowerExpr(s.Value, locals)
		}
		return &Return{Value: value, Position: s.Pos()}
	case *ast.ExprStmt:
		expr := l.lowerExpr(s.Expr, locals)
		if expr == nil {
			return nil
		}
		return &ExprStmt{Expr: expr, Position: s.Pos()}
	}
	return nil
}

func (l *Lowerer) lowerExpr(expr ast.Expr, locals map[string]string) Expr {
	switch e := expr.(type) {
	case *ast.Literal:
		return &Literal{Kind: litKind(e.Kind), Value: e.Value, Position: e.Pos()}
	case *ast.Ident:
		return &Var{Name: e.Name, TypeName: locals[e.Name], Position: e.Pos()}
	case *ast.UnaryExpr:
		return &Unary{Op: e.Op, X: l.lowerExpr(e.X, locals), Position: e.Pos()}
	case *ast.BinaryExpr:
		return &Binary{
			X:        l.lowerExpr(e.X, locals),
			Op:       e.Op,
			Y:        l.lowerExpr(e.Y, locals),
			Position: e.Pos(),
		}
	case *ast.CallExpr:
		call := &Call{Name: e.Name, Result: l.returns[e.Name], Position: e.Pos()}
		for _, arg := range e.Args {
			call.Args = append(call.Args, l.lowerExpr(arg, locals))
		}
		return call
	case *ast.MacroCall:
		m := &MacroCall{Name: e.Name, Position: e.Pos()}
		for _, arg := range e.Args {
			m.Args = append(m.Args, l.lowerExpr(arg, locals))
		}
		return m
	case *ast.BlockExpr:
		// Block expressions carry no value in the subset; drop them.
		return nil
	}
	return nil
}

func litKind(k ast.LitKind) LitKind {
	switch k {
	case ast.IntLit:
		return IntLit
	case ast.FloatLit:
		return FloatLit
	case ast.StringLit:
		return StringLit
	case ast.CharLit:
		return CharLit
	case ast.BoolLit:
		return BoolLit
	}
	return IntLit
}

func goTypeOf(t ast.Type) string {
	if t == nil {
		return ""
	}
	if pt, ok := t.(*ast.PathType); ok {
		return GoType(pt.Path)
	}
	return ""
}
