package lexer

import (
	"lilit/internal/diag"
	"lilit/internal/token"
)

// scanString: "..." с escape-последовательностями. Декодирование делает
// семантика, здесь только границы литерала.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.bumpRune()
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		default:
			lx.bumpRune()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanChar: 'c' или '\c'. Ровно одна руна (или пара с '\') между кавычками.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''

	invalid := func(code diag.Code, msg string) token.Token {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(code, sp, msg)
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	switch lx.cursor.Peek() {
	case '\'':
		lx.cursor.Bump()
		return invalid(diag.LexEmptyChar, "empty character literal")
	case '\n', 0:
		return invalid(diag.LexUnterminatedChar, "unterminated character literal")
	case '\\':
		lx.cursor.Bump()
		lx.bumpRune()
	default:
		lx.bumpRune()
	}

	if !lx.cursor.Eat('\'') {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\'' && lx.cursor.Peek() != '\n' {
			lx.bumpRune()
		}
		lx.cursor.Eat('\'')
		return invalid(diag.LexUnterminatedChar, "character literal must contain exactly one character")
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.CharLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
