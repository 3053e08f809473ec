package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexEmptyChar                Code = 1006

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectTypeName     Code = 2004
	SynExpectColon        Code = 2005
	SynExpectEnd          Code = 2006
	SynUnclosedParen      Code = 2007
	SynUnclosedBracket    Code = 2008
	SynExpectExpression   Code = 2009
	SynNewWithoutArgs     Code = 2010

	// Семантические
	SemaInfo                    Code = 3000
	SemaUnresolvedClass         Code = 3001
	SemaUnresolvedMethod        Code = 3002
	SemaUnresolvedIdentifier    Code = 3003
	SemaMissingPrelude          Code = 3004
	SemaUnknownMember           Code = 3005
	SemaReceiverCallUnsupported Code = 3006
	SemaGenericArgsDiscarded    Code = 3007
	SemaVariadicNotLast         Code = 3008
	SemaBadLiteral              Code = 3009
	SemaMemberOnGeneric         Code = 3010

	// IO
	IOLoadFileError Code = 4001
	IONoSources     Code = 4002

	// Project
	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number",
		LexUnterminatedChar:         "Unterminated character literal",
		LexEmptyChar:                "Empty character literal",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnexpectedTopLevel:       "Unexpected top-level construct",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectTypeName:           "Expected type name",
		SynExpectColon:              "Expected ':'",
		SynExpectEnd:                "Expected 'end'",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBracket:          "Unclosed bracket",
		SynExpectExpression:         "Expected expression",
		SynNewWithoutArgs:           "Instance construction without arguments",
		SemaInfo:                    "Semantic information",
		SemaUnresolvedClass:         "Unresolved class",
		SemaUnresolvedMethod:        "Unresolved method",
		SemaUnresolvedIdentifier:    "Unresolved identifier",
		SemaMissingPrelude:          "Missing prelude class",
		SemaUnknownMember:           "Unknown member",
		SemaReceiverCallUnsupported: "Receiver calls are not supported",
		SemaGenericArgsDiscarded:    "Generic arguments discarded",
		SemaVariadicNotLast:         "Variadic parameter is not last",
		SemaBadLiteral:              "Bad literal",
		SemaMemberOnGeneric:         "Member access on generic parameter",
		IOLoadFileError:             "I/O load file error",
		IONoSources:                 "No source files",
		ProjInfo:                    "Project information",
		ProjManifestInvalid:         "Invalid project manifest",
	}
)

// ID returns the stable short form, e.g. "SEM3003".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return fmt.Sprintf("E%04d", int(c))
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
