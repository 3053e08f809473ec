package ast

// Children returns direct sub-expressions of id in evaluation order.
func (e *Exprs) Children(id ExprID) []ExprID {
	expr := e.Get(id)
	if expr == nil {
		return nil
	}
	switch expr.Kind {
	case ExprInvoke:
		data, _ := e.Invoke(id)
		out := make([]ExprID, 0, len(data.Args)+1)
		if data.Receiver.IsValid() {
			out = append(out, data.Receiver)
		}
		return append(out, data.Args...)
	case ExprMember:
		data, _ := e.Member(id)
		return []ExprID{data.Target}
	case ExprNew:
		data, _ := e.New(id)
		return data.Args
	case ExprAssign:
		data, _ := e.Assign(id)
		return []ExprID{data.Value}
	default:
		return nil
	}
}

// Walk visits id and its sub-expressions depth-first, parents first.
// Returning false from fn skips the children of that node.
func (e *Exprs) Walk(id ExprID, fn func(ExprID) bool) {
	if !id.IsValid() || !fn(id) {
		return
	}
	for _, child := range e.Children(id) {
		e.Walk(child, fn)
	}
}
