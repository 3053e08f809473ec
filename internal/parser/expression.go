package parser

import (
	"lilit/internal/ast"
	"lilit/internal/diag"
	"lilit/internal/token"
)

// parseExpr:
//
//	expr    := Ident '=' expr | postfix
//	postfix := atom ('.' Ident ('(' args ')')?)*
//	atom    := literal | Ident ('(' args ')')? | TypeIdent ('[' TypeIdent,* ']')? '(' args ')'
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		name := p.intern(tok.Text)
		if p.at(token.Assign) {
			p.advance()
			value, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			sp := tok.Span.Cover(p.arenas.Exprs.Get(value).Span)
			return p.arenas.Exprs.NewAssign(sp, name, tok.Span, value), true
		}
		var atom ast.ExprID
		if p.at(token.LParen) {
			args := p.parseArgs()
			atom = p.arenas.Exprs.NewInvoke(tok.Span.Cover(p.lastSpan), ast.NoExprID, name, tok.Span, args)
		} else {
			atom = p.arenas.Exprs.NewIdent(tok.Span, name)
		}
		return p.parsePostfix(atom), true

	case token.TypeIdent:
		return p.parsePostfix(p.parseNew()), true

	case token.IntLit, token.StringLit, token.CharLit:
		p.advance()
		kind := ast.LitInt
		switch tok.Kind {
		case token.StringLit:
			kind = ast.LitString
		case token.CharLit:
			kind = ast.LitChar
		}
		lit := p.arenas.Exprs.NewLiteral(tok.Span, kind, p.arenas.Strings.Intern(tok.Text))
		return p.parsePostfix(lit), true

	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
		return ast.NoExprID, false
	}
}

// parseNew: Class[G, ...](args). Без списка аргументов - SynNewWithoutArgs,
// но узел всё равно создаётся.
func (p *Parser) parseNew() ast.ExprID {
	tok := p.advance()
	name := p.intern(tok.Text)

	var generics []ast.TypeID
	if p.at(token.LBracket) {
		p.advance()
		for !p.atOr(token.RBracket, token.EOF) {
			gName, gSpan, ok := p.parseTypeName()
			if !ok {
				break
			}
			generics = append(generics, p.arenas.Types.New(gName, gSpan))
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after generic arguments")
	}

	var args []ast.ExprID
	if p.at(token.LParen) {
		args = p.parseArgs()
	} else {
		p.report(diag.SynNewWithoutArgs, diag.SevError, tok.Span,
			"class instantiation requires an argument list, e.g. "+tok.Text+"()")
	}
	return p.arenas.Exprs.NewNew(tok.Span.Cover(p.lastSpan), name, tok.Span, generics, args)
}

func (p *Parser) parsePostfix(x ast.ExprID) ast.ExprID {
	for p.at(token.Dot) {
		p.advance()
		name, nameSpan, ok := p.parseIdent()
		if !ok {
			return x
		}
		start := p.arenas.Exprs.Get(x).Span
		if p.at(token.LParen) {
			args := p.parseArgs()
			x = p.arenas.Exprs.NewInvoke(start.Cover(p.lastSpan), x, name, nameSpan, args)
			continue
		}
		x = p.arenas.Exprs.NewMember(start.Cover(nameSpan), x, name, nameSpan)
	}
	return x
}

// parseArgs: '(' (expr (',' expr)*)? ')'
func (p *Parser) parseArgs() []ast.ExprID {
	p.advance() // '('
	var args []ast.ExprID
	for !p.atOr(token.RParen, token.EOF) {
		id, ok := p.parseExpr()
		if ok {
			args = append(args, id)
		} else {
			p.resyncUntil(token.Comma, token.RParen, token.KwEnd, token.KwDef, token.KwClass)
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list")
	return args
}
