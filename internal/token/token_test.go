package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	for word, want := range map[string]Kind{"class": KwClass, "def": KwDef, "end": KwEnd} {
		got, ok := LookupKeyword(word)
		if !ok || got != want {
			t.Fatalf("%q: want %v, got %v (ok=%v)", word, want, got, ok)
		}
	}
	for _, word := range []string{"Class", "END", "main", "Int"} {
		if _, ok := LookupKeyword(word); ok {
			t.Fatalf("%q must not be a keyword", word)
		}
	}
}

func TestKindString(t *testing.T) {
	if Ellipsis.String() != "Ellipsis" || TypeIdent.String() != "TypeIdent" {
		t.Fatalf("unexpected names %s %s", Ellipsis, TypeIdent)
	}
	if Kind(200).String() != "Unknown" {
		t.Fatalf("out of range kinds must print Unknown")
	}
}

func TestTriviaKindString(t *testing.T) {
	cases := map[TriviaKind]string{
		TriviaSpace:        "Space",
		TriviaNewline:      "Newline",
		TriviaLineComment:  "LineComment",
		TriviaBlockComment: "BlockComment",
		TriviaKind(9):      "Unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Fatalf("TriviaKind(%d) = %q, want %q", kind, got, want)
		}
	}
}

func TestTokenClassifiers(t *testing.T) {
	if !(Token{Kind: CharLit}).IsLiteral() {
		t.Fatalf("char literal must be a literal")
	}
	if (Token{Kind: KwEnd}).StartsExpr() {
		t.Fatalf("'end' must not start an expression")
	}
	if !(Token{Kind: TypeIdent}).StartsExpr() {
		t.Fatalf("type identifiers start instance construction")
	}
}
