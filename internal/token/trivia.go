package token

import "lilit/internal/source"

// TriviaKind classifies non-significant source text.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

var triviaNames = [...]string{
	TriviaSpace:        "Space",
	TriviaNewline:      "Newline",
	TriviaLineComment:  "LineComment",
	TriviaBlockComment: "BlockComment",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaNames) {
		return triviaNames[k]
	}
	return "Unknown"
}

// Trivia is whitespace or a comment attached to the following token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
