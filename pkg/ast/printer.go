package ast

import "strings"

// Dump renders a node and its children as an indented tree, one node per
// line. Used by the ast CLI command and the dump_ast MCP tool.
func Dump(n Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n Node, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.String())
	sb.WriteString("\n")

	switch node := n.(type) {
	case *Crate:
		for _, item := range node.Items {
			dump(sb, item, depth+1)
		}
	case *Function:
		for i := range node.Params {
			dump(sb, &node.Params[i], depth+1)
		}
		if !IsUnit(node.ReturnType) {
			dump(sb, node.ReturnType, depth+1)
		}
		dump(sb, node.Body, depth+1)
	case *Param:
		dump(sb, node.Type, depth+1)
	case *Struct:
		for i := range node.Fields {
			dump(sb, &node.Fields[i], depth+1)
		}
	case *Field:
		dump(sb, node.Type, depth+1)
	case *Block:
		for _, stmt := range node.Stmts {
			dump(sb, stmt, depth+1)
		}
	case *LetStmt:
		if node.Type != nil {
			dump(sb, node.Type, depth+1)
		}
		dump(sb, node.Init, depth+1)
	case *ExprStmt:
		dump(sb, node.Expr, depth+1)
	case *ReturnStmt:
		dump(sb, node.Value, depth+1)
	case *UnaryExpr:
		dump(sb, node.X, depth+1)
	case *BinaryExpr:
		dump(sb, node.X, depth+1)
		dump(sb, node.Y, depth+1)
	case *CallExpr:
		for _, arg := range node.Args {
			dump(sb, arg, depth+1)
		}
	case *MacroCall:
		for _, arg := range node.Args {
			dump(sb, arg, depth+1)
		}
	case *BlockExpr:
		dump(sb, node.Block, depth+1)
	}
	// Literal, Ident and PathType are leaves.
}
