// Package token defines lexical token kinds and trivia for lilit sources.
// Invariants:
//   - Token.Span matches Text exactly.
//   - Identifiers starting with an upper-case letter are TypeIdent; every
//     class name and type reference uses that form.
//   - Whitespace, newlines and comments are trivia and never reach the parser
//     as tokens; the grammar is newline-insensitive.
package token
