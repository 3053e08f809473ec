package sema

import (
	"lilit/internal/ast"
	"lilit/internal/diag"
	"lilit/internal/types"
)

// resolveDefinitions: типы полей, параметров и возвращаемых значений всех items юнита.
func (r *resolver) resolveDefinitions(unit *ast.Unit) {
	r.enterProgram()
	for _, item := range unit.Items {
		switch item.Kind {
		case ast.ItemClass:
			r.scope.EnterClass(item.Class)
			cls := r.b.Items.Class(item.Class)
			for _, fid := range cls.Fields {
				r.resolveTypeRef(r.b.Items.Param(fid).Type)
			}
			r.checkVariadic(cls.Fields)
			for _, mid := range cls.Methods {
				r.resolveSignature(mid)
			}
			r.scope.Leave()
		case ast.ItemMethod:
			r.scope.EnterMethod(item.Method)
			r.resolveSignature(item.Method)
			r.scope.Leave()
		}
	}
	r.leaveProgram()
}

// resolveBodies: тела методов в порядке объявления.
func (r *resolver) resolveBodies(unit *ast.Unit) {
	r.enterProgram()
	for _, item := range unit.Items {
		switch item.Kind {
		case ast.ItemClass:
			r.scope.EnterClass(item.Class)
			for _, mid := range r.b.Items.Class(item.Class).Methods {
				r.scope.EnterMethod(mid)
				r.resolveBody(mid)
				r.scope.Leave()
			}
			r.scope.Leave()
		case ast.ItemMethod:
			r.scope.EnterMethod(item.Method)
			r.resolveBody(item.Method)
			r.scope.Leave()
		}
	}
	r.leaveProgram()
}

func (r *resolver) resolveSignature(mid ast.MethodID) {
	m := r.b.Items.Method(mid)
	for _, pid := range m.Params {
		p := r.b.Items.Param(pid)
		if p.Receiver {
			// тип получателя - сам класс-владелец, по имени не ищем
			r.res.TypeRefs[p.Type] = types.Class(m.Owner)
			continue
		}
		r.resolveTypeRef(p.Type)
	}
	r.checkVariadic(m.Params)
	r.resolveTypeRef(m.Return)
}

func (r *resolver) checkVariadic(params []ast.ParamID) {
	for i, pid := range params {
		p := r.b.Items.Param(pid)
		if p.Variadic && i != len(params)-1 {
			r.errorf(diag.SemaVariadicNotLast, p.Span, "variadic parameter '%s' must be the last one", r.name(p.Name)).Emit()
		}
	}
}

// resolveTypeRef: сначала generic-параметры объемлющего класса, потом классы программы.
func (r *resolver) resolveTypeRef(id ast.TypeID) types.Type {
	ref := r.b.Types.Get(id)
	if ref == nil {
		return types.Invalid
	}
	t := r.lookupType(ref)
	if !t.IsValid() {
		r.errorf(diag.SemaUnresolvedClass, ref.Span, "unknown class '%s'", r.name(ref.Name)).Emit()
	}
	r.res.TypeRefs[id] = t
	return t
}

func (r *resolver) lookupType(ref *ast.TypeRef) types.Type {
	if cid, ok := r.scope.EnclosingClass(); ok {
		for _, gid := range r.b.Items.Class(cid).Generics {
			if r.b.Items.Generic(gid).Name == ref.Name {
				return types.Generic(gid)
			}
		}
	}
	if cls, ok := r.scope.FindClass(ref.Name); ok {
		return types.Class(cls)
	}
	return types.Invalid
}
