package lexer

import (
	"lilit/internal/diag"
	"lilit/internal/token"
)

// Только десятичные целые: -?[0-9]+. Буква сразу после цифр - ошибка LexBadNumber,
// токен при этом доедается до конца, чтобы парсер не видел хвост как идентификатор.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Eat('-')
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		text := string(lx.file.Content[sp.Start:sp.End])
		lx.errLex(diag.LexBadNumber, sp, "malformed integer literal "+quoteText(text))
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
