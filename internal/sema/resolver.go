package sema

import (
	"fmt"

	"lilit/internal/ast"
	"lilit/internal/diag"
	"lilit/internal/index"
	"lilit/internal/prelude"
	"lilit/internal/scope"
	"lilit/internal/source"
	"lilit/internal/trace"
)

// resolver walks one unit with its own scope chain.
type resolver struct {
	b        *ast.Builder
	ix       *index.Index
	scope    *scope.Scope
	res      *Result
	reporter diag.Reporter
	tracer   trace.Tracer
	span     uint64

	prelude *preludeClasses
	// присваивания текущего тела метода - для подсказки "used before assignment"
	bodyAssigns []ast.ExprID
}

func newResolver(b *ast.Builder, ix *index.Index, res *Result, pc *preludeClasses, opts Options) *resolver {
	return &resolver{
		b:        b,
		ix:       ix,
		scope:    scope.New(b),
		res:      res,
		reporter: opts.reporter(),
		tracer:   opts.tracer(),
		span:     opts.Parent,
		prelude:  pc,
	}
}

func (r *resolver) name(id source.StringID) string {
	return r.b.Name(id)
}

func (r *resolver) errorf(code diag.Code, sp source.Span, format string, args ...any) *diag.ReportBuilder {
	return diag.ReportError(r.reporter, code, sp, fmt.Sprintf(format, args...))
}

func (r *resolver) enterProgram() {
	r.scope.EnterProgram(r.ix)
}

func (r *resolver) leaveProgram() {
	r.scope.Leave()
	if r.scope.Depth() != 0 {
		panic(fmt.Errorf("sema: unbalanced scope, depth=%d", r.scope.Depth()))
	}
}

// preludeClasses кэширует well-known классы; MissingPrelude репортится один раз на имя.
type preludeClasses struct {
	b        *ast.Builder
	ix       *index.Index
	found    map[string]ast.ClassID
	reported map[string]bool
}

func newPreludeClasses(b *ast.Builder, ix *index.Index) *preludeClasses {
	return &preludeClasses{
		b:        b,
		ix:       ix,
		found:    make(map[string]ast.ClassID),
		reported: make(map[string]bool),
	}
}

func (pc *preludeClasses) lookup(name string) (ast.ClassID, bool) {
	if id, ok := pc.found[name]; ok {
		return id, true
	}
	sid, ok := pc.b.Strings.Find(name)
	if !ok {
		return ast.NoClassID, false
	}
	cls, ok := pc.ix.FindClass(sid)
	if !ok {
		return ast.NoClassID, false
	}
	pc.found[name] = cls.ID
	return cls.ID, true
}

// wellKnown returns a prelude class, reporting MissingPrelude at use on the first miss.
func (r *resolver) wellKnown(name string, use source.Span) (ast.ClassID, bool) {
	id, ok := r.prelude.lookup(name)
	if ok {
		return id, true
	}
	if !r.prelude.reported[name] {
		r.prelude.reported[name] = true
		r.errorf(diag.SemaMissingPrelude, use, "built-in class %s is not defined", name).
			WithNote(use, "literals need the prelude classes "+prelude.IntClass+", "+prelude.CharClass+", "+prelude.StringClass+" and their native counterparts").
			Emit()
	}
	return ast.NoClassID, false
}
