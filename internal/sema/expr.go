package sema

import (
	"fmt"

	"lilit/internal/ast"
	"lilit/internal/diag"
	"lilit/internal/trace"
	"lilit/internal/types"
)

func (r *resolver) resolveBody(mid ast.MethodID) {
	body := r.b.Items.Method(mid).Body
	r.bodyAssigns = r.bodyAssigns[:0]
	for _, e := range body {
		r.b.Exprs.Walk(e, func(id ast.ExprID) bool {
			if r.b.Exprs.Get(id).Kind == ast.ExprAssign {
				r.bodyAssigns = append(r.bodyAssigns, id)
			}
			return true
		})
	}
	for _, e := range body {
		r.resolveExpr(e)
	}
}

// resolveExpr: подвыражения раньше родителя, слева направо; каждый узел ровно один раз.
func (r *resolver) resolveExpr(id ast.ExprID) {
	expr := r.b.Exprs.Get(id)
	if expr == nil {
		panic(fmt.Errorf("sema: unknown expression %d", id))
	}
	r.res.markVisited(id)
	trace.Point(r.tracer, trace.ScopeNode, "resolve_expr", r.span, expr.Kind.String())

	switch expr.Kind {
	case ast.ExprIdent:
		r.resolveIdent(id, expr)
	case ast.ExprLit:
		r.resolveLiteral(id, expr)
	case ast.ExprInvoke:
		r.resolveInvoke(id)
	case ast.ExprMember:
		r.resolveMember(id)
	case ast.ExprNew:
		r.resolveNew(id)
	case ast.ExprAssign:
		r.resolveAssign(id)
	default:
		panic(fmt.Errorf("sema: unexpected expression kind %v", expr.Kind))
	}
}

func (r *resolver) resolveIdent(id ast.ExprID, expr *ast.Expr) {
	data, _ := r.b.Exprs.Ident(id)
	if src, ok := r.scope.FindIdentifier(data.Name); ok {
		r.res.Idents[id] = src
		return
	}
	rb := r.errorf(diag.SemaUnresolvedIdentifier, expr.Span, "unresolved identifier '%s'", r.name(data.Name))
	for _, aid := range r.bodyAssigns {
		assign, _ := r.b.Exprs.Assign(aid)
		if assign.Name == data.Name && expr.Span.Before(assign.NameSpan) {
			rb.WithNote(assign.NameSpan, "'"+r.name(data.Name)+"' is assigned here, after its use")
			break
		}
	}
	rb.Emit()
}

func (r *resolver) resolveInvoke(id ast.ExprID) {
	data, _ := r.b.Exprs.Invoke(id)
	if data.Receiver.IsValid() {
		r.resolveExpr(data.Receiver)
		for _, arg := range data.Args {
			r.resolveExpr(arg)
		}
		r.errorf(diag.SemaReceiverCallUnsupported, data.NameSpan,
			"calls with an explicit receiver are not supported: '.%s(...)'", r.name(data.Name)).
			WithNote(r.b.Exprs.Get(data.Receiver).Span, "receiver expression").
			Emit()
		return
	}

	for _, arg := range data.Args {
		r.resolveExpr(arg)
	}
	if mid, ok := r.scope.FindMethod(data.Name); ok {
		r.res.Invokes[id] = mid
		return
	}
	r.errorf(diag.SemaUnresolvedMethod, data.NameSpan, "unresolved method '%s'", r.name(data.Name)).Emit()
}

func (r *resolver) resolveMember(id ast.ExprID) {
	data, _ := r.b.Exprs.Member(id)
	r.resolveExpr(data.Target)

	parent := r.res.TypeOf(data.Target)
	switch parent.Kind {
	case types.KindInvalid:
		// ошибка уже сообщена при разрешении родителя
		return
	case types.KindGeneric:
		r.errorf(diag.SemaMemberOnGeneric, data.NameSpan,
			"cannot access member '%s' on generic parameter %s", r.name(data.Name), types.Format(r.b, parent)).Emit()
		return
	}

	cls := r.b.Items.Class(parent.Class)
	for _, fid := range cls.Fields {
		if r.b.Items.Param(fid).Name == data.Name {
			r.res.Members[id] = fid
			return
		}
	}
	r.errorf(diag.SemaUnknownMember, data.NameSpan, "class %s has no field '%s'", r.name(cls.Name), r.name(data.Name)).
		WithNote(cls.NameSpan, "class "+r.name(cls.Name)+" is declared here").
		Emit()
}

func (r *resolver) resolveNew(id ast.ExprID) {
	data, _ := r.b.Exprs.New(id)
	if cid, ok := r.scope.FindClass(data.Class); ok {
		r.res.News[id] = cid
		own := r.b.Items.Class(cid).Generics
		r.res.Generics[id] = append([]ast.GenericID(nil), own...)
		if len(data.Generics) > 0 {
			r.reportDiscardedGenerics(data, cid)
		}
	} else {
		r.errorf(diag.SemaUnresolvedClass, data.ClassSpan, "unknown class '%s'", r.name(data.Class)).Emit()
	}

	for _, tid := range data.Generics {
		r.resolveTypeRef(tid)
	}
	for _, arg := range data.Args {
		r.resolveExpr(arg)
	}
}

func (r *resolver) reportDiscardedGenerics(data *ast.ExprNewData, cid ast.ClassID) {
	first := r.b.Types.Get(data.Generics[0]).Span
	last := r.b.Types.Get(data.Generics[len(data.Generics)-1]).Span
	cls := r.b.Items.Class(cid)
	diag.ReportWarning(r.reporter, diag.SemaGenericArgsDiscarded, first.Cover(last),
		fmt.Sprintf("generic arguments of %s are replaced by its declared parameters", r.name(cls.Name))).
		WithNote(cls.NameSpan, "class "+r.name(cls.Name)+" is declared here").
		Emit()
}

func (r *resolver) resolveAssign(id ast.ExprID) {
	data, _ := r.b.Exprs.Assign(id)
	r.resolveExpr(data.Value)
	r.res.Assigns[id] = r.res.TypeOf(data.Value)
	r.scope.AddLocal(data.Name, id)
}
