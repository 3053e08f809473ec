package scope

import (
	"lilit/internal/ast"
	"lilit/internal/index"
	"lilit/internal/source"
)

type LevelKind uint8

const (
	LevelProgram LevelKind = iota
	LevelClass
	LevelMethod
)

func (k LevelKind) String() string {
	switch k {
	case LevelProgram:
		return "program"
	case LevelClass:
		return "class"
	case LevelMethod:
		return "method"
	default:
		return "level?"
	}
}

// Local - переменная, введённая присваиванием в теле метода.
type Local struct {
	Name   source.StringID
	Assign ast.ExprID
}

// Level is one frame of the chain. Which of Index/Class/Method is set depends on Kind.
type Level struct {
	Kind   LevelKind
	Index  *index.Index
	Class  *index.Class
	Method ast.MethodID
	locals []Local
}

// Locals returns the bindings in the order they were added. READONLY
func (l *Level) Locals() []Local {
	return l.locals
}

func (l *Level) findLocal(name source.StringID) (Local, bool) {
	for i := len(l.locals) - 1; i >= 0; i-- {
		if l.locals[i].Name == name {
			return l.locals[i], true
		}
	}
	return Local{}, false
}

type SourceKind uint8

const (
	SourceParam SourceKind = iota
	SourceField
	SourceLocal
)

func (k SourceKind) String() string {
	switch k {
	case SourceParam:
		return "param"
	case SourceField:
		return "field"
	case SourceLocal:
		return "local"
	default:
		return "source?"
	}
}

// Source is what an identifier resolved to.
// Для поля Receiver - параметр-получатель метода, через который к полю обращаются.
type Source struct {
	Kind     SourceKind
	Param    ast.ParamID
	Assign   ast.ExprID
	Receiver ast.ParamID
}
