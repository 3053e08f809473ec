package parser

import (
	"lilit/internal/ast"
	"lilit/internal/diag"
	"lilit/internal/token"
)

// parseMethod разбирает `def name(params): Ret body... end`.
// Метод класса получает неявный безымянный receiver с индексом 0.
func (p *Parser) parseMethod(owner ast.ClassID) ast.MethodID {
	kw := p.advance() // 'def'
	name, nameSpan, _ := p.parseIdent()

	id := p.arenas.Items.NewMethod(p.unit, owner, name, nameSpan, kw.Span)

	var params []ast.ParamID
	next := uint32(0)
	if owner.IsValid() {
		cls := p.arenas.Items.Class(owner)
		recvType := p.arenas.Types.New(cls.Name, cls.NameSpan)
		params = append(params, p.arenas.Items.NewParam(ast.Param{
			Span:     nameSpan,
			Type:     recvType,
			Receiver: true,
			Owner:    ast.ParamOwner{Method: id},
		}))
		next = 1
	}
	if p.at(token.LParen) {
		params = append(params, p.parseParamList(ast.ParamOwner{Method: id}, next)...)
	}
	p.arenas.Items.Method(id).Params = params

	ret := ast.NoTypeID
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' before return type"); ok || p.at(token.TypeIdent) {
		if retName, retSpan, ok := p.parseTypeName(); ok {
			ret = p.arenas.Types.New(retName, retSpan)
		}
	}
	p.arenas.Items.Method(id).Return = ret

	body := p.parseBody()
	p.arenas.Items.Method(id).Body = body

	if p.at(token.KwEnd) {
		p.advance()
	} else {
		p.err(diag.SynExpectEnd, "expected 'end' to close method")
	}

	m := p.arenas.Items.Method(id)
	m.Span = kw.Span.Cover(p.lastSpan)
	return id
}

// parseBody читает выражения до 'end' (или до начала следующего item / EOF).
func (p *Parser) parseBody() []ast.ExprID {
	var body []ast.ExprID
	for !p.at(token.KwEnd) && !p.at(token.EOF) && !isItemStarter(p.lx.Peek().Kind) {
		if !p.lx.Peek().StartsExpr() {
			p.err(diag.SynExpectExpression, "expected expression, got "+describe(p.lx.Peek()))
			p.advance()
			continue
		}
		if id, ok := p.parseExpr(); ok {
			body = append(body, id)
		}
	}
	return body
}

// parseParamList: '(' (param (',' param)*)? ')', где param := Ident '...'? ':' TypeIdent.
// Индексы начинаются со start.
func (p *Parser) parseParamList(owner ast.ParamOwner, start uint32) []ast.ParamID {
	p.advance() // '('
	var out []ast.ParamID
	for !p.atOr(token.RParen, token.EOF) {
		id, ok := p.parseParam(owner, start+index32(len(out)))
		if ok {
			out = append(out, id)
		} else {
			p.resyncUntil(token.Comma, token.RParen, token.KwDef, token.KwEnd, token.KwClass)
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list")
	return out
}

func (p *Parser) parseParam(owner ast.ParamOwner, index uint32) (ast.ParamID, bool) {
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoParamID, false
	}
	variadic := false
	if p.at(token.Ellipsis) {
		p.advance()
		variadic = true
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after parameter name"); !ok {
		return ast.NoParamID, false
	}
	typeName, typeSpan, ok := p.parseTypeName()
	if !ok {
		return ast.NoParamID, false
	}
	return p.arenas.Items.NewParam(ast.Param{
		Name:     name,
		Span:     nameSpan.Cover(typeSpan),
		Type:     p.arenas.Types.New(typeName, typeSpan),
		Index:    index,
		Variadic: variadic,
		Owner:    owner,
	}), true
}
