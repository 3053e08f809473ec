package lexer

import (
	"unicode"
	"unicode/utf8"

	"lilit/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет LookupKeyword.
// Заглавная первая буква даёт TypeIdent: имена классов всегда такие.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 || (r < utf8RuneSelf && !isIdentStartByte(byte(r))) || (r >= utf8RuneSelf && !isIdentStartRune(r)) {
		return lx.scanPunct()
	}
	for {
		r, sz = lx.peekRune()
		if sz == 0 {
			break
		}
		if r < utf8RuneSelf {
			if !isIdentContinueByte(byte(r)) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	first, _ := utf8.DecodeRuneInString(text)
	if unicode.IsUpper(first) {
		return token.Token{Kind: token.TypeIdent, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
