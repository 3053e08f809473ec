package token

import (
	"lilit/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is an int, string or char literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit, CharLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwClass, KwDef, KwEnd:
		return true
	default:
		return false
	}
}

// StartsExpr reports whether an expression may begin with this token.
func (t Token) StartsExpr() bool {
	switch t.Kind {
	case Ident, TypeIdent, IntLit, StringLit, CharLit:
		return true
	default:
		return false
	}
}
