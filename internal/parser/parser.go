package parser

import (
	"slices"

	"golang.org/x/text/unicode/norm"

	"lilit/internal/ast"
	"lilit/internal/diag"
	"lilit/internal/lexer"
	"lilit/internal/source"
	"lilit/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Unit ast.UnitID
	Bag  *diag.Bag
}

// Parser - состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer // поток токенов (Peek/Next)
	arenas   *ast.Builder // построитель аренных узлов
	unit     ast.UnitID   // текущий юнит
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile - входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		unit:     arenas.NewUnit(lx.File().ID, lx.EmptySpan()),
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()
	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		Unit: p.unit,
		Bag:  bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseItems - основной цикл верхнего уровня: пока не EOF - class или def.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.KwClass:
			p.arenas.PushClass(p.unit, p.parseClass())
		case token.KwDef:
			p.arenas.PushMethod(p.unit, p.parseMethod(ast.NoClassID))
		default:
			p.report(diag.SynUnexpectedTopLevel, diag.SevError, p.lx.Peek().Span,
				"expected 'class' or 'def' at top level, got "+describe(p.lx.Peek()))
			p.resyncTop()
		}
	}
	p.arenas.Units.Get(p.unit).Span = startSpan.Cover(p.lx.Peek().Span)
}

// resyncTop - пропускаем хотя бы один токен и крутим до следующего item или EOF.
func (p *Parser) resyncTop() {
	p.advance()
	p.resyncUntil(token.KwClass, token.KwDef, token.EOF)
}

// resyncUntil прокручивает токены, пока не встретит один из stop (сам stop не съедается).
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(stop...) {
		p.advance()
	}
}

func isItemStarter(k token.Kind) bool {
	return k == token.KwClass || k == token.KwDef
}

// parseIdent - ожидает Ident и интернирует его.
// На ошибке - репорт SynExpectIdentifier.
func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got "+describe(p.lx.Peek()))
	return source.NoStringID, p.getDiagnosticSpan(), false
}

// parseTypeName - ожидает TypeIdent (имя класса или generic-параметра).
func (p *Parser) parseTypeName() (source.StringID, source.Span, bool) {
	if p.at(token.TypeIdent) {
		tok := p.advance()
		return p.intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynExpectTypeName, "expected type name, got "+describe(p.lx.Peek()))
	return source.NoStringID, p.getDiagnosticSpan(), false
}

func (p *Parser) intern(text string) source.StringID {
	return p.arenas.Strings.Intern(norm.NFC.String(text))
}

func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of file"
	}
	return "\"" + tok.Text + "\""
}
