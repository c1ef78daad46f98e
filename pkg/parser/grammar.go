package parser

import (
	"github.com/mamaar/rustgo/pkg/ast"
	"github.com/mamaar/rustgo/pkg/token"
)

// Binary operator precedence, loosest first. Each level is left-associative.
var precedence = [][]string{
	{"||"},
	{"&&"},
	{"==", "!=", "<", ">", "<=", ">="},
	{"+", "-"},
	{"*", "/", "%"},
}

// parseCrate parses items until EOF.
func (p *Parser) parseCrate() *ast.Crate {
	crate := &ast.Crate{Position: p.stream.Pos()}
	for !p.stream.IsEOF() {
		item := p.parseItem()
		if item != nil {
			crate.Items = append(crate.Items, item)
			continue
		}
		// parseItem already recorded an error; skip a token so a stray
		// symbol cannot loop forever.
		if !p.stream.IsEOF() {
			p.stream.Next()
		}
	}
	return crate
}

// parseItem parses one top-level item. Outer attributes are consumed and
// discarded; the subset does not act on them.
func (p *Parser) parseItem() ast.Item {
	for p.stream.Peek().Kind == token.ATTRIBUTE {
		p.stream.Next()
	}
	tok := p.stream.Peek()
	if tok.Kind == token.KEYWORD {
		switch tok.Literal {
		case "fn":
			return p.parseFunction()
		case "struct":
			return p.parseStruct()
		}
	}
	p.errorf(tok, "expected item (fn or struct)")
	return nil
}

// parseFunction parses: fn NAME ( params ) [-> Type] Block
func (p *Parser) parseFunction() *ast.Function {
	fnTok := p.stream.Next() // "fn"
	nameTok := p.expect(token.IDENT, "", "function name")

	fn := &ast.Function{Position: fnTok.Pos(), Name: nameTok.Literal}

	p.expect(token.PUNCT, "(", "'('")
	for !p.stream.IsEOF() && p.stream.Peek().Literal != ")" {
		paramTok := p.expect(token.IDENT, "", "parameter name")
		if paramTok.Kind != token.IDENT {
			p.sync(")")
			break
		}
		p.expect(token.PUNCT, ":", "':' after parameter name")
		paramType := p.parseType()
		fn.Params = append(fn.Params, ast.Param{
			Position: paramTok.Pos(),
			Name:     paramTok.Literal,
			Type:     paramType,
		})
		if !p.accept(",") {
			break
		}
	}
	p.expect(token.PUNCT, ")", "')'")

	if p.accept("->") {
		fn.ReturnType = p.parseType()
	} else {
		fn.ReturnType = &ast.PathType{Position: fnTok.Pos(), Path: ast.Unit}
	}

	fn.Body = p.parseBlock()
	return fn
}

// parseStruct parses: struct NAME { fields }
func (p *Parser) parseStruct() *ast.Struct {
	structTok := p.stream.Next() // "struct"
	nameTok := p.expect(token.IDENT, "", "struct name")

	st := &ast.Struct{Position: structTok.Pos(), Name: nameTok.Literal}

	p.expect(token.PUNCT, "{", "'{'")
	for !p.stream.IsEOF() && p.stream.Peek().Literal != "}" {
		fieldTok := p.expect(token.IDENT, "", "field name")
		if fieldTok.Kind != token.IDENT {
			p.sync("}")
			break
		}
		p.expect(token.PUNCT, ":", "':' after field name")
		fieldType := p.parseType()
		st.Fields = append(st.Fields, ast.Field{
			Position: fieldTok.Pos(),
			Name:     fieldTok.Literal,
			Type:     fieldType,
		})
		if !p.accept(",") {
			break
		}
	}
	p.expect(token.PUNCT, "}", "'}'")
	return st
}

// parseBlock parses: { stmts }
func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Position: p.stream.Pos()}
	p.expect(token.PUNCT, "{", "'{'")
	for !p.stream.IsEOF() && p.stream.Peek().Literal != "}" {
		stmt := p.parseStmt()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		} else {
			p.sync()
		}
	}
	p.expect(token.PUNCT, "}", "'}'")
	return block
}

// parseStmt parses a let binding, a return, an expression statement or a
// tail expression.
func (p *Parser) parseStmt() ast.Stmt {
	tok := p.stream.Peek()

	if tok.Kind == token.KEYWORD && tok.Literal == "let" {
		return p.parseLet()
	}

	if tok.Kind == token.KEYWORD && tok.Literal == "return" {
		p.stream.Next()
		ret := &ast.ReturnStmt{Position: tok.Pos()}
		if p.stream.Peek().Kind != token.TERMINATOR {
			ret.Value = p.parseExpr()
			if ret.Value == nil {
				return nil
			}
		}
		p.expect(token.TERMINATOR, ";", "';' after return")
		return ret
	}

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	if p.stream.Peek().Kind == token.TERMINATOR {
		p.stream.Next()
		return &ast.ExprStmt{Position: expr.Pos(), Expr: expr}
	}

	// No semicolon before the closing brace: the block's tail expression.
	if p.stream.Peek().Literal == "}" {
		return &ast.ExprStmt{Position: expr.Pos(), Expr: expr, Tail: true}
	}

	p.errorf(p.stream.Peek(), "expected ';' after expression")
	return nil
}

// parseLet parses: let NAME [: Type] = Expr ;
func (p *Parser) parseLet() ast.Stmt {
	letTok := p.stream.Next() // "let"
	nameTok := p.expect(token.IDENT, "", "name after let")

	let := &ast.LetStmt{Position: letTok.Pos(), Name: nameTok.Literal}

	if p.accept(":") {
		let.Type = p.parseType()
	}

	if eq := p.expect(token.OPERATOR, "=", "'=' in let binding"); eq.Kind != token.OPERATOR {
		return nil
	}

	let.Init = p.parseExpr()
	if let.Init == nil {
		return nil
	}

	p.expect(token.TERMINATOR, ";", "';' after let binding")
	return let
}

// parseExpr parses a full expression through the precedence ladder.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinary(0)
}

// parseBinary parses left-associative binary expressions at the given
// precedence level and tighter.
func (p *Parser) parseBinary(level int) ast.Expr {
	if level >= len(precedence) {
		return p.parseUnary()
	}

	expr := p.parseBinary(level + 1)
	for expr != nil {
		tok := p.stream.Peek()
		if tok.Kind != token.OPERATOR || !contains(precedence[level], tok.Literal) {
			break
		}
		p.stream.Next()
		right := p.parseBinary(level + 1)
		if right == nil {
			p.errorf(p.stream.Peek(), "expected expression after %q", tok.Literal)
			return nil
		}
		expr = &ast.BinaryExpr{Position: expr.Pos(), X: expr, Op: tok.Literal, Y: right}
	}
	return expr
}

// parseUnary parses prefix - and ! operators.
func (p *Parser) parseUnary() ast.Expr {
	tok := p.stream.Peek()
	if tok.Kind == token.OPERATOR && (tok.Literal == "-" || tok.Literal == "!") {
		p.stream.Next()
		x := p.parseUnary()
		if x == nil {
			return nil
		}
		return &ast.UnaryExpr{Position: tok.Pos(), Op: tok.Literal, X: x}
	}
	return p.parsePrimary()
}

// parsePrimary parses literals, identifiers, calls, macro calls,
// parenthesized expressions and block expressions.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.stream.Peek()
	pos := tok.Pos()

	switch tok.Kind {
	case token.INT:
		p.stream.Next()
		return &ast.Literal{Position: pos, Kind: ast.IntLit, Value: tok.Literal}
	case token.FLOAT:
		p.stream.Next()
		return &ast.Literal{Position: pos, Kind: ast.FloatLit, Value: tok.Literal}
	case token.STRING:
		p.stream.Next()
		return &ast.Literal{Position: pos, Kind: ast.StringLit, Value: tok.Literal}
	case token.CHAR:
		p.stream.Next()
		return &ast.Literal{Position: pos, Kind: ast.CharLit, Value: tok.Literal}

	case token.KEYWORD:
		if tok.Literal == "true" || tok.Literal == "false" {
			p.stream.Next()
			return &ast.Literal{Position: pos, Kind: ast.BoolLit, Value: tok.Literal}
		}

	case token.IDENT:
		identTok := p.stream.Next()

		// ident!(...) is a macro invocation.
		if p.stream.Peek().Kind == token.OPERATOR && p.stream.Peek().Literal == "!" {
			p.stream.Next()
			args := p.parseCallArgs()
			return &ast.MacroCall{Position: identTok.Pos(), Name: identTok.Literal, Args: args}
		}

		// ident(...) is a function call.
		if p.stream.Peek().Literal == "(" {
			args := p.parseCallArgs()
			return &ast.CallExpr{Position: identTok.Pos(), Name: identTok.Literal, Args: args}
		}

		return &ast.Ident{Position: identTok.Pos(), Name: identTok.Literal}

	case token.PUNCT:
		if tok.Literal == "(" {
			p.stream.Next()
			inner := p.parseExpr()
			p.expect(token.PUNCT, ")", "')'")
			return inner
		}
		if tok.Literal == "{" {
			block := p.parseBlock()
			return &ast.BlockExpr{Position: pos, Block: block}
		}
	}

	p.errorf(tok, "expected expression")
	p.stream.Next() // consume the offending token so recovery makes progress
	return nil
}

// parseCallArgs parses a parenthesized, comma-separated argument list.
// A malformed argument is skipped up to the next ',' or ')'.
func (p *Parser) parseCallArgs() []ast.Expr {
	var args []ast.Expr
	p.expect(token.PUNCT, "(", "'('")

	if p.accept(")") {
		return args
	}

	for {
		arg := p.parseExpr()
		if arg != nil {
			args = append(args, arg)
		} else {
			for !p.stream.IsEOF() && p.stream.Peek().Literal != "," && p.stream.Peek().Literal != ")" {
				p.stream.Next()
			}
		}
		if !p.accept(",") {
			break
		}
	}

	p.expect(token.PUNCT, ")", "')'")
	return args
}

// parseType parses a type annotation. References (&T) lose their reference;
// the generated Go works with values. "()" parses as the unit type.
func (p *Parser) parseType() ast.Type {
	if p.stream.Peek().Literal == "&" {
		p.stream.Next()
		if p.stream.Peek().Kind == token.LIFETIME {
			p.stream.Next()
		}
		return p.parseType()
	}
	if p.stream.Peek().Literal == "(" {
		pos := p.stream.Pos()
		p.stream.Next()
		p.expect(token.PUNCT, ")", "')' in unit type")
		return &ast.PathType{Position: pos, Path: ast.Unit}
	}
	tok := p.expect(token.IDENT, "", "type name")
	return &ast.PathType{Position: tok.Pos(), Path: tok.Literal}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
