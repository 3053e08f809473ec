package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident     // foo, native__printf
	TypeIdent // Int, Native__Int

	KwClass // class
	KwDef   // def
	KwEnd   // end

	IntLit    // 42
	StringLit // "text"
	CharLit   // 'c'

	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	Comma    // ,
	Colon    // :
	Dot      // .
	Ellipsis // ...
	Assign   // =
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	TypeIdent: "TypeIdent",
	KwClass:   "KwClass",
	KwDef:     "KwDef",
	KwEnd:     "KwEnd",
	IntLit:    "IntLit",
	StringLit: "StringLit",
	CharLit:   "CharLit",
	LParen:    "LParen",
	RParen:    "RParen",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
	Comma:     "Comma",
	Colon:     "Colon",
	Dot:       "Dot",
	Ellipsis:  "Ellipsis",
	Assign:    "Assign",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
