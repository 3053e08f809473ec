package sema

import (
	"encoding/json"
	"errors"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"lilit/internal/ast"
	"lilit/internal/diag"
	"lilit/internal/prelude"
)

// resolveLiteral строит Wrapper(Native(leaf)) для литерала.
// При ошибке декодирования экземпляр всё равно создаётся (с нулевым значением),
// чтобы тип выражения остался известен.
func (r *resolver) resolveLiteral(id ast.ExprID, expr *ast.Expr) {
	data, _ := r.b.Exprs.Literal(id)

	wrapperName, nativeName := literalClasses(data.Kind)
	wrapper, okW := r.wellKnown(wrapperName, expr.Span)
	native, okN := r.wellKnown(nativeName, expr.Span)
	if !okW || !okN {
		return
	}

	raw := r.name(data.Raw)
	leaf, err := decodeLiteral(data.Kind, raw)
	if err != "" {
		r.errorf(diag.SemaBadLiteral, expr.Span, "invalid %s literal %s: %s", data.Kind, raw, err).Emit()
	}

	inner := r.res.newInstance(Instance{Class: native, Literal: id, Leaf: leaf})
	outer := r.res.newInstance(Instance{Class: wrapper, Literal: id, Arg: inner})
	r.res.Literals[id] = outer
}

func literalClasses(kind ast.ExprLitKind) (wrapper, native string) {
	switch kind {
	case ast.LitChar:
		return prelude.CharClass, prelude.NativeCharClass
	case ast.LitString:
		return prelude.StringClass, prelude.NativeStringClass
	default:
		return prelude.IntClass, prelude.NativeIntClass
	}
}

// decodeLiteral возвращает нативное значение и текст ошибки ("" если всё хорошо).
//   - int: десятичный int64
//   - char: второй символ исходного текста, то есть сразу после открывающей кавычки
//   - string: JSON-строка, затем NFC
func decodeLiteral(kind ast.ExprLitKind, raw string) (NativeValue, string) {
	switch kind {
	case ast.LitInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return NativeValue{Kind: NativeInt}, "out of 64-bit range"
			}
			return NativeValue{Kind: NativeInt}, "not a base-10 integer"
		}
		return NativeValue{Kind: NativeInt, Int: v}, ""

	case ast.LitChar:
		if len(raw) < 2 {
			return NativeValue{Kind: NativeChar}, "empty character"
		}
		c, size := utf8.DecodeRuneInString(raw[1:])
		if c == utf8.RuneError && size <= 1 {
			return NativeValue{Kind: NativeChar}, "not valid UTF-8"
		}
		return NativeValue{Kind: NativeChar, Char: c}, ""

	case ast.LitString:
		var s string
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return NativeValue{Kind: NativeString}, "bad escape sequence"
		}
		return NativeValue{Kind: NativeString, Str: norm.NFC.String(s)}, ""
	}
	return NativeValue{}, "unknown literal kind"
}
