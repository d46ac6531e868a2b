package meta

import (
	"cppmirror/internal/decl"
)

// ArgInfo iterates the parameters of the method a handle currently
// resolves to. Like the handle itself, it is invalidated when the
// enumerator advances.
type ArgInfo struct {
	mi  *MethodInfo
	idx int
}

// Args returns a parameter iterator positioned before the first parameter.
func (m *MethodInfo) Args() *ArgInfo {
	return &ArgInfo{mi: m, idx: -1}
}

// Next advances to the next parameter.
func (a *ArgInfo) Next() bool {
	a.idx++
	return a.idx < a.mi.NArg()
}

func (a *ArgInfo) param() *decl.Param {
	d := a.mi.sess.Table.Decls.Get(a.mi.Decl())
	if d == nil || a.idx < 0 || a.idx >= len(d.Params) {
		return nil
	}
	return &d.Params[a.idx]
}

// Name returns the parameter name, or "" when unnamed or out of range.
func (a *ArgInfo) Name() string {
	p := a.param()
	if p == nil {
		return ""
	}
	name, _ := a.mi.sess.Table.Strings.Lookup(p.Name)
	return name
}

// TypeOf returns the parameter type handle.
func (a *ArgInfo) TypeOf() TypeInfo {
	p := a.param()
	if p == nil {
		return TypeInfo{sess: a.mi.sess}
	}
	return TypeInfo{sess: a.mi.sess, id: p.Type}
}

// HasDefault reports whether the parameter carries a default argument.
func (a *ArgInfo) HasDefault() bool {
	p := a.param()
	return p != nil && p.HasDefault
}
