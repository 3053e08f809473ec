package parser

import (
	"fmt"

	"fortio.org/safecast"

	"lilit/internal/ast"
	"lilit/internal/diag"
	"lilit/internal/token"
)

// parseClass разбирает
//
//	class Name[G, ...](field: T, ...)
//	  def ... end
//	end
//
// Ошибка в заголовке не прерывает разбор: класс без имени всё равно попадает в юнит,
// чтобы методы внутри не превратились в свободные.
func (p *Parser) parseClass() ast.ClassID {
	kw := p.advance() // 'class'
	name, nameSpan, _ := p.parseTypeName()

	id := p.arenas.Items.NewClass(p.unit, name, nameSpan, kw.Span)

	if p.at(token.LBracket) {
		p.arenas.Items.Class(id).Generics = p.parseGenericDefs(id)
	}
	if p.at(token.LParen) {
		p.arenas.Items.Class(id).Fields = p.parseParamList(ast.ParamOwner{Class: id}, 0)
	}

	for {
		switch {
		case p.at(token.KwDef):
			m := p.parseMethod(id)
			cls := p.arenas.Items.Class(id)
			cls.Methods = append(cls.Methods, m)
			continue
		case p.at(token.KwEnd):
			p.advance()
		case p.atOr(token.EOF, token.KwClass):
			p.err(diag.SynExpectEnd, "expected 'end' to close class")
		default:
			p.err(diag.SynUnexpectedToken, "expected 'def' or 'end' in class body, got "+describe(p.lx.Peek()))
			p.advance()
			p.resyncUntil(token.KwDef, token.KwEnd, token.KwClass)
			continue
		}
		break
	}

	cls := p.arenas.Items.Class(id)
	cls.Span = kw.Span.Cover(p.lastSpan)
	return id
}

// parseGenericDefs: '[' TypeIdent (',' TypeIdent)* ']'
func (p *Parser) parseGenericDefs(owner ast.ClassID) []ast.GenericID {
	p.advance() // '['
	var out []ast.GenericID
	for !p.atOr(token.RBracket, token.EOF) {
		name, sp, ok := p.parseTypeName()
		if !ok {
			p.resyncUntil(token.Comma, token.RBracket, token.LParen, token.KwDef, token.KwEnd)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
			continue
		}
		out = append(out, p.arenas.Items.NewGeneric(owner, name, sp, index32(len(out))))
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after generic parameters")
	return out
}

func index32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("param index overflow: %w", err))
	}
	return v
}
