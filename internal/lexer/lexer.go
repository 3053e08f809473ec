package lexer

import (
	"lilit/internal/diag"
	"lilit/internal/source"
	"lilit/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the source being tokenized.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// Next возвращает следующий значимый токен с собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()
	if lx.cursor.EOF() {
		tok := token.Token{Kind: token.EOF, Span: lx.EmptySpan(), Leading: lx.hold}
		lx.hold = nil
		return tok
	}

	var tok token.Token
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '-' && lx.isNumberAfterMinus():
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	case ch == '\'':
		tok = lx.scanChar()
	default:
		tok = lx.scanPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan is a zero-width span at the current offset.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	if lx.tryEllipsis() {
		return emit(token.Ellipsis)
	}
	switch lx.cursor.Bump() {
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case ',':
		return emit(token.Comma)
	case ':':
		return emit(token.Colon)
	case '.':
		return emit(token.Dot)
	case '=':
		return emit(token.Assign)
	}

	// неизвестный символ: съедаем руну целиком, чтобы не резать UTF-8
	lx.cursor.Reset(start)
	lx.bumpRune()
	tok := emit(token.Invalid)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character "+quoteText(tok.Text))
	return tok
}

func (lx *Lexer) tryEllipsis() bool {
	m := lx.cursor.Mark()
	if lx.cursor.Eat('.') && lx.cursor.Eat('.') && lx.cursor.Eat('.') {
		return true
	}
	lx.cursor.Reset(m)
	return false
}
