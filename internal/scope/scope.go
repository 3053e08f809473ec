package scope

import (
	"fmt"

	"lilit/internal/ast"
	"lilit/internal/index"
	"lilit/internal/source"
)

type Scope struct {
	b      *ast.Builder
	levels []Level
}

func New(b *ast.Builder) *Scope {
	return &Scope{b: b, levels: make([]Level, 0, 3)}
}

// Depth returns the number of levels on the stack.
func (s *Scope) Depth() int {
	return len(s.levels)
}

// Top returns the innermost level or nil.
func (s *Scope) Top() *Level {
	if len(s.levels) == 0 {
		return nil
	}
	return &s.levels[len(s.levels)-1]
}

func (s *Scope) EnterProgram(ix *index.Index) {
	if ix == nil {
		panic(fmt.Errorf("scope: enter program with nil index"))
	}
	if len(s.levels) != 0 {
		panic(fmt.Errorf("scope: program level must be the outermost, depth=%d", len(s.levels)))
	}
	s.levels = append(s.levels, Level{Kind: LevelProgram, Index: ix})
}

// EnterClass ищет класс по идентичности в индексах Program-уровней.
func (s *Scope) EnterClass(id ast.ClassID) {
	top := s.Top()
	if top == nil || top.Kind != LevelProgram {
		panic(fmt.Errorf("scope: class %d entered outside a program level", id))
	}
	for i := len(s.levels) - 1; i >= 0; i-- {
		lvl := &s.levels[i]
		if lvl.Kind != LevelProgram {
			continue
		}
		if entry, ok := lvl.Index.ClassEntry(id); ok {
			s.levels = append(s.levels, Level{Kind: LevelClass, Class: entry})
			return
		}
	}
	panic(fmt.Errorf("scope: class %d is not indexed", id))
}

// EnterMethod: Program-уровень отдаёт свободные методы, Class-уровень - свои.
func (s *Scope) EnterMethod(id ast.MethodID) {
	top := s.Top()
	if top == nil || top.Kind == LevelMethod {
		panic(fmt.Errorf("scope: method %d entered at invalid depth", id))
	}
	for i := len(s.levels) - 1; i >= 0; i-- {
		lvl := &s.levels[i]
		var hit bool
		switch lvl.Kind {
		case LevelProgram:
			hit = lvl.Index.HasMethod(id)
		case LevelClass:
			hit = lvl.Class.HasMethod(id)
		}
		if hit {
			s.levels = append(s.levels, Level{Kind: LevelMethod, Method: id})
			return
		}
	}
	panic(fmt.Errorf("scope: method %d is not indexed", id))
}

func (s *Scope) Leave() {
	if len(s.levels) == 0 {
		panic(fmt.Errorf("scope: leave on empty stack"))
	}
	s.levels = s.levels[:len(s.levels)-1]
}

// AddLocal binds name to an assignment in the innermost level.
func (s *Scope) AddLocal(name source.StringID, assign ast.ExprID) {
	top := s.Top()
	if top == nil {
		panic(fmt.Errorf("scope: add local on empty stack"))
	}
	top.locals = append(top.locals, Local{Name: name, Assign: assign})
}

func (s *Scope) FindClass(name source.StringID) (ast.ClassID, bool) {
	for i := len(s.levels) - 1; i >= 0; i-- {
		lvl := &s.levels[i]
		if lvl.Kind != LevelProgram {
			continue
		}
		if cls, ok := lvl.Index.FindClass(name); ok {
			return cls.ID, true
		}
	}
	return ast.NoClassID, false
}

func (s *Scope) FindMethod(name source.StringID) (ast.MethodID, bool) {
	for i := len(s.levels) - 1; i >= 0; i-- {
		lvl := &s.levels[i]
		switch lvl.Kind {
		case LevelClass:
			if m, ok := lvl.Class.FindMethod(name); ok {
				return m.ID, true
			}
		case LevelProgram:
			if m, ok := lvl.Index.FindMethod(name); ok {
				return m.ID, true
			}
		}
	}
	return ast.NoMethodID, false
}

// FindIdentifier: на каждом уровне сначала локальные (последняя привязка выигрывает),
// потом параметры метода или поля класса.
func (s *Scope) FindIdentifier(name source.StringID) (Source, bool) {
	if name == source.NoStringID {
		return Source{}, false
	}
	for i := len(s.levels) - 1; i >= 0; i-- {
		lvl := &s.levels[i]
		if local, ok := lvl.findLocal(name); ok {
			return Source{Kind: SourceLocal, Assign: local.Assign}, true
		}
		switch lvl.Kind {
		case LevelMethod:
			for _, pid := range s.b.Items.Method(lvl.Method).Params {
				if s.b.Items.Param(pid).Name == name {
					return Source{Kind: SourceParam, Param: pid}, true
				}
			}
		case LevelClass:
			for _, fid := range s.b.Items.Class(lvl.Class.ID).Fields {
				if s.b.Items.Param(fid).Name == name {
					return Source{Kind: SourceField, Param: fid, Receiver: s.Receiver()}, true
				}
			}
		}
	}
	return Source{}, false
}

// EnclosingClass returns the class of the nearest Class level.
func (s *Scope) EnclosingClass() (ast.ClassID, bool) {
	for i := len(s.levels) - 1; i >= 0; i-- {
		if s.levels[i].Kind == LevelClass {
			return s.levels[i].Class.ID, true
		}
	}
	return ast.NoClassID, false
}

// EnclosingMethod returns the method of the nearest Method level.
func (s *Scope) EnclosingMethod() (ast.MethodID, bool) {
	for i := len(s.levels) - 1; i >= 0; i-- {
		if s.levels[i].Kind == LevelMethod {
			return s.levels[i].Method, true
		}
	}
	return ast.NoMethodID, false
}

// Receiver returns the implicit receiver of the enclosing method, NoParamID outside class methods.
func (s *Scope) Receiver() ast.ParamID {
	mid, ok := s.EnclosingMethod()
	if !ok {
		return ast.NoParamID
	}
	params := s.b.Items.Method(mid).Params
	if len(params) > 0 && s.b.Items.Param(params[0]).Receiver {
		return params[0]
	}
	return ast.NoParamID
}
