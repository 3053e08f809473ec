package lexer

import (
	"lilit/internal/diag"
	"lilit/internal/token"
)

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

func isNewline(b byte) bool { return b == '\n' }

// collectLeadingTrivia fills lx.hold with the trivia before the next token.
// Runs of blanks and runs of newlines each become one trivia; block comments nest.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = nil
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch {
		case lx.cursor.SkipWhile(isSpace):
			lx.pushTrivia(token.TriviaSpace, start)
		case lx.cursor.SkipWhile(isNewline):
			lx.pushTrivia(token.TriviaNewline, start)
		case lx.cursor.EatPair('/', '/'):
			lx.cursor.SkipWhile(func(b byte) bool { return b != '\n' })
			lx.pushTrivia(token.TriviaLineComment, start)
		case lx.cursor.EatPair('/', '*'):
			lx.skipBlockComment(start)
			lx.pushTrivia(token.TriviaBlockComment, start)
		default:
			return
		}
	}
}

// skipBlockComment consumes up to the matching "*/"; an unclosed comment runs to EOF.
func (lx *Lexer) skipBlockComment(start Mark) {
	for depth := 1; depth > 0; {
		switch {
		case lx.cursor.EOF():
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
			return
		case lx.cursor.EatPair('/', '*'):
			depth++
		case lx.cursor.EatPair('*', '/'):
			depth--
		default:
			lx.cursor.Bump()
		}
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}
