package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lilit/internal/source"
	"lilit/internal/token"
)

type TokenOutput struct {
	Kind    string   `json:"kind"`
	Text    string   `json:"text,omitempty"`
	Line    uint32   `json:"line"`
	Col     uint32   `json:"col"`
	Start   uint32   `json:"start"`
	End     uint32   `json:"end"`
	Leading []string `json:"leading,omitempty"`
}

func leadingKinds(tok token.Token) []string {
	if len(tok.Leading) == 0 {
		return nil
	}
	out := make([]string, 0, len(tok.Leading))
	for _, trivia := range tok.Leading {
		out = append(out, trivia.Kind.String())
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		line := fmt.Sprintf("%3d: %-10s", i+1, tok.Kind.String())
		if tok.Text != "" {
			line += fmt.Sprintf(" %q", tok.Text)
		}
		line += fmt.Sprintf(" at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if leading := leadingKinds(tok); len(leading) > 0 {
			line += fmt.Sprintf(" (leading: %s)", strings.Join(leading, ", "))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		pos, _ := fs.Resolve(tok.Span)
		output = append(output, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Line:    pos.Line,
			Col:     pos.Col,
			Start:   tok.Span.Start,
			End:     tok.Span.End,
			Leading: leadingKinds(tok),
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
