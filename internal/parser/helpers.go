package parser

import (
	"lilit/internal/diag"
	"lilit/internal/source"
	"lilit/internal/token"
)

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan - на EOF указываем сразу за последним съеденным токеном,
// иначе на текущий токен.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
		}
	}
	return peek.Span
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false // нет reporter - ничего не записали
	}
	if sev == diag.SevError {
		if p.opts.Enough() {
			return false // достигли максимального количества ошибок
		}
		p.opts.CurrentErrors++
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}
