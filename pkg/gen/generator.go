// Package gen emits Go source from an IR module. Macro invocations are
// mapped to fmt calls, with Rust {} placeholders rewritten to %v verbs so
// the generated program prints what the Rust source printed.
package gen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mamaar/rustgo/pkg/ir"
)

// Header marks generated files.
const Header = "// Code generated by rustgo. DO NOT EDIT."

// Generator emits one module. A Generator can be reused; Generate resets it.
type Generator struct {
	sb      strings.Builder
	indent  int
	imports map[string]bool
}

// New creates a Generator.
func New() *Generator {
	return &Generator{}
}

// Generate renders the module as unformatted Go source.
func (g *Generator) Generate(module *ir.Module) string {
	g.sb.Reset()
	g.indent = 0
	g.imports = map[string]bool{}

	for _, fn := range module.Functions {
		g.collectImports(fn.Body)
	}

	g.emit("%s", Header)
	g.emit("")
	g.emit("package %s", module.PackageName)
	g.emit("")
	switch len(g.imports) {
	case 0:
	case 1:
		for path := range g.imports {
			g.emit("import %q", path)
		}
		g.emit("")
	default:
		g.emit("import (")
		g.indent++
		for _, path := range []string{"fmt", "os"} {
			if g.imports[path] {
				g.emit("%q", path)
			}
		}
		g.indent--
		g.emit(")")
		g.emit("")
	}

	for _, st := range module.Structs {
		g.genStruct(st)
		g.emit("")
	}
	for _, fn := range module.Functions {
		g.genFunction(fn)
		g.emit("")
	}

	return g.sb.String()
}

// collectImports walks statements for macro usage that needs fmt or os.
func (g *Generator) collectImports(stmts []ir.Stmt) {
	var walkExpr func(e ir.Expr)
	walkExpr = func(e ir.Expr) {
		switch x := e.(type) {
		case *ir.MacroCall:
			switch x.Name {
			case "println", "print", "format":
				g.imports["fmt"] = true
			case "eprintln", "eprint":
				g.imports["fmt"] = true
				g.imports["os"] = true
			case "panic":
				if len(x.Args) > 1 {
					g.imports["fmt"] = true
				}
			}
			for _, a := range x.Args {
				walkExpr(a)
			}
		case *ir.Call:
			for _, a := range x.Args {
				walkExpr(a)
			}
		case *ir.Unary:
			walkExpr(x.X)
		case *ir.Binary:
			walkExpr(x.X)
			walkExpr(x.Y)
		}
	}
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ir.VarDecl:
			if s.Init != nil {
				walkExpr(s.Init)
			}
		case *ir.Return:
			if s.Value != nil {
				walkExpr(s.Value)
			}
		case *ir.ExprStmt:
			walkExpr(s.Expr)
		}
	}
}

func (g *Generator) genStruct(st *ir.Struct) {
	g.emit("type %s struct {", st.Name)
	g.indent++
	for _, field := range st.Fields {
		g.emit("%s %s", exportName(field.Name), field.Type)
	}
	g.indent--
	g.emit("}")
}

func (g *Generator) genFunction(fn *ir.Function) {
	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, p.Name+" "+p.Type)
	}
	ret := ""
	if fn.ReturnType != "" {
		ret = " " + fn.ReturnType
	}
	g.emit("func %s(%s)%s {", fn.Name, strings.Join(params, ", "), ret)
	g.indent++
	for _, stmt := range fn.Body {
		g.genStmt(stmt)
	}
	g.indent--
	g.emit("}")
}

func (g *Generator) genStmt(stmt ir.Stmt) {
	switch s := stmt.(type) {
	case *ir.VarDecl:
		if s.Init != nil {
			g.emit("%s := %s", s.Name, g.expr(s.Init))
		} else if s.Type != "" {
			g.emit("var %s %s", s.Name, s.Type)
		}
	case *ir.Return:
		if s.Value != nil {
			g.emit("return %s", g.expr(s.Value))
		} else {
			g.emit("return")
		}
	case *ir.ExprStmt:
		g.emit("%s", g.expr(s.Expr))
	}
}

func (g *Generator) expr(e ir.Expr) string {
	switch x := e.(type) {
	case *ir.Var:
		return x.Name
	case *ir.Literal:
		return goLiteral(x)
	case *ir.Unary:
		return x.Op + g.expr(x.X)
	case *ir.Binary:
		return fmt.Sprintf("(%s %s %s)", g.expr(x.X), x.Op, g.expr(x.Y))
	case *ir.Call:
		args := make([]string, 0, len(x.Args))
		for _, a := range x.Args {
			args = append(args, g.expr(a))
		}
		return fmt.Sprintf("%s(%s)", x.Name, strings.Join(args, ", "))
	case *ir.MacroCall:
		return g.macro(x)
	}
	return ""
}

// macro maps a Rust macro invocation to the equivalent Go expression.
func (g *Generator) macro(m *ir.MacroCall) string {
	switch m.Name {
	case "println":
		return g.printCall("fmt.Println", "fmt.Printf", "", m.Args, true)
	case "print":
		return g.printCall("fmt.Print", "fmt.Printf", "", m.Args, false)
	case "eprintln":
		return g.printCall("fmt.Fprintln", "fmt.Fprintf", "os.Stderr", m.Args, true)
	case "eprint":
		return g.printCall("fmt.Fprint", "fmt.Fprintf", "os.Stderr", m.Args, false)
	case "format":
		return g.formatCall(m.Args)
	case "panic":
		if len(m.Args) == 0 {
			return `panic("explicit panic")`
		}
		if len(m.Args) == 1 {
			return fmt.Sprintf("panic(%s)", g.expr(m.Args[0]))
		}
		return fmt.Sprintf("panic(%s)", g.formatCall(m.Args))
	}
	// sema rejects unknown macros; emit a placeholder for robustness.
	return fmt.Sprintf("/* unsupported macro %s! */", m.Name)
}

// printCall renders the print macro family. plain and formatted name the
// target functions; extra is a leading argument (os.Stderr) or empty;
// newline selects the println variants.
func (g *Generator) printCall(plain, formatted, extra string, args []ir.Expr, newline bool) string {
	lead := ""
	if extra != "" {
		lead = extra + ", "
	}

	if len(args) == 0 {
		return fmt.Sprintf("%s(%s)", plain, strings.TrimSuffix(lead, ", "))
	}

	lit, isLit := stringArg(args[0])
	if !isLit {
		// println!(expr): print the value itself.
		rest := make([]string, 0, len(args))
		for _, a := range args {
			rest = append(rest, g.expr(a))
		}
		return fmt.Sprintf("%s(%s%s)", plain, lead, strings.Join(rest, ", "))
	}

	text, placeholders := convertFormat(lit)
	if placeholders == 0 && len(args) == 1 {
		// Plain Println does no verb processing, so undo the % doubling.
		return fmt.Sprintf("%s(%s%q)", plain, lead, strings.ReplaceAll(text, "%%", "%"))
	}

	if newline {
		text += "\n"
	}
	parts := []string{fmt.Sprintf("%q", text)}
	for _, a := range args[1:] {
		parts = append(parts, g.expr(a))
	}
	return fmt.Sprintf("%s(%s%s)", formatted, lead, strings.Join(parts, ", "))
}

// formatCall renders format! as fmt.Sprintf (or fmt.Sprint for a
// non-literal first argument).
func (g *Generator) formatCall(args []ir.Expr) string {
	if len(args) == 0 {
		return `""`
	}

	lit, isLit := stringArg(args[0])
	if !isLit {
		rest := make([]string, 0, len(args))
		for _, a := range args {
			rest = append(rest, g.expr(a))
		}
		return fmt.Sprintf("fmt.Sprint(%s)", strings.Join(rest, ", "))
	}

	text, _ := convertFormat(lit)
	parts := []string{fmt.Sprintf("%q", text)}
	for _, a := range args[1:] {
		parts = append(parts, g.expr(a))
	}
	return fmt.Sprintf("fmt.Sprintf(%s)", strings.Join(parts, ", "))
}

// stringArg returns the unquoted text of a string literal argument.
func stringArg(e ir.Expr) (string, bool) {
	lit, ok := e.(*ir.Literal)
	if !ok || lit.Kind != ir.StringLit {
		return "", false
	}
	return unquote(lit.Value), true
}

// unquote strips the delimiters of a Rust string literal and interprets
// its escape sequences. Raw strings (r"...", r#"..."#) have no escapes.
func unquote(s string) string {
	raw := false
	s = strings.TrimPrefix(s, "b")
	if strings.HasPrefix(s, "r") {
		raw = true
		s = strings.TrimPrefix(s, "r")
		s = strings.Trim(s, "#")
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if raw {
		return s
	}
	if unquoted, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return unquoted
	}
	return s
}

// convertFormat rewrites Rust format placeholders into fmt verbs:
// {} becomes %v, {{ and }} unescape to braces, and literal % is doubled
// so Printf does not misread it. Returns the converted text and the
// number of placeholders.
func convertFormat(text string) (string, int) {
	var out strings.Builder
	placeholders := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch {
		case runes[i] == '{' && i+1 < len(runes) && runes[i+1] == '{':
			out.WriteRune('{')
			i++
		case runes[i] == '}' && i+1 < len(runes) && runes[i+1] == '}':
			out.WriteRune('}')
			i++
		case runes[i] == '{' && i+1 < len(runes) && runes[i+1] == '}':
			out.WriteString("%v")
			placeholders++
			i++
		case runes[i] == '%':
			out.WriteString("%%")
		default:
			out.WriteRune(runes[i])
		}
	}
	return out.String(), placeholders
}

// goLiteral renders an IR literal as Go source text.
func goLiteral(lit *ir.Literal) string {
	switch lit.Kind {
	case ir.IntLit, ir.FloatLit:
		return stripNumericSuffix(lit.Value)
	case ir.StringLit:
		return strconv.Quote(unquote(lit.Value))
	default:
		return lit.Value
	}
}

// stripNumericSuffix removes Rust type suffixes (42u32, 2.5f64) that Go
// does not accept.
func stripNumericSuffix(s string) string {
	for _, suffix := range []string{
		"i8", "i16", "i32", "i64", "isize",
		"u8", "u16", "u32", "u64", "usize",
		"f32", "f64",
	} {
		if strings.HasSuffix(s, suffix) && len(s) > len(suffix) {
			return s[:len(s)-len(suffix)]
		}
	}
	return s
}

// exportName upper-cases the first letter so struct fields are exported.
func exportName(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (g *Generator) emit(format string, args ...any) {
	g.sb.WriteString(strings.Repeat("\t", g.indent))
	fmt.Fprintf(&g.sb, format, args...)
	g.sb.WriteString("\n")
}
