package meta

import (
	"cppmirror/internal/decl"
	"cppmirror/internal/types"
)

// instantiateWithDefaults tries to materialize a concrete function from a
// function template all of whose template parameters carry defaults.
// Every failure mode answers NoDeclID — "skip this candidate, keep
// iterating" — never an error. Must run inside an open transaction: the
// lookup may create the canonical instantiation.
func (m *MethodInfo) instantiateWithDefaults(template decl.DeclID) decl.DeclID {
	sess := m.sess
	d := sess.Table.Decls.Get(template)
	if d == nil || d.Kind != decl.DeclFunctionTemplate {
		return decl.NoDeclID
	}
	// Packs and non-defaulted parameters disqualify the template.
	args, ok := sess.DefaultTemplateArgs(template)
	if !ok {
		return decl.NoDeclID
	}
	pattern := sess.Table.Decls.Get(d.Templated)
	if pattern == nil {
		return decl.NoDeclID
	}

	// Substitute dependent parameter types against the defaults. If any
	// stays dependent even then, do not look it up.
	paramTypes := make([]types.TypeID, len(pattern.Params))
	for i, p := range pattern.Params {
		pt := p.Type
		if sess.Table.Types.IsDependent(pt) {
			pt = sess.Table.Types.Subst(pt, args)
			if pt == types.NoTypeID || sess.Table.Types.IsDependent(pt) {
				return decl.NoDeclID
			}
		}
		paramTypes[i] = pt
	}

	name, _ := sess.Table.Strings.Lookup(pattern.Name)
	return sess.FindFunctionProto(d.Owner, name, paramTypes, pattern.HasFlag(decl.FlagConstMethod))
}
