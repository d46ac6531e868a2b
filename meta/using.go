package meta

import (
	"cppmirror/internal/decl"
	"cppmirror/internal/interp"
)

// usingIterator expands one using declaration into the sequence of concrete
// functions it brings into scope. Every resolution queries live declaration
// data and therefore runs inside its own scoped transaction.
type usingIterator struct {
	sess    *interp.Session
	shadows []decl.DeclID
	pos     int
}

// newUsingIterator positions the iterator at the first resolvable shadow.
func newUsingIterator(sess *interp.Session, using decl.DeclID) *usingIterator {
	u := &usingIterator{sess: sess}
	if d := sess.Table.Decls.Get(using); d != nil && d.Kind == decl.DeclUsing {
		u.shadows = d.Shadows
	}
	for u.pos < len(u.shadows) && !u.resolve(u.shadows[u.pos]).IsValid() {
		u.pos++
	}
	return u
}

// advance moves to the next shadow position; it does not skip unresolvable
// positions, the enumerator's step loop does.
func (u *usingIterator) advance() bool {
	u.pos++
	return u.pos < len(u.shadows)
}

// current resolves the shadow under the cursor, or NoDeclID when the
// cursor is exhausted or the position is unresolvable.
func (u *usingIterator) current() decl.DeclID {
	if u.pos >= len(u.shadows) {
		return decl.NoDeclID
	}
	return u.resolve(u.shadows[u.pos])
}

func (u *usingIterator) resolve(shadowID decl.DeclID) decl.DeclID {
	tx := u.sess.Transaction()
	defer tx.Commit()

	sh := u.sess.Table.Decls.Get(shadowID)
	if sh == nil {
		return decl.NoDeclID
	}
	switch sh.Kind {
	case decl.DeclCtorUsingShadow:
		base := u.sess.Table.Decls.Get(sh.Target)
		if base == nil || base.Kind != decl.DeclConstructor {
			return decl.NoDeclID
		}
		if base.HasFlag(decl.FlagImplicit) {
			// The session synthesizes these in the derived class anyway;
			// re-exposing the base one would duplicate it.
			return decl.NoDeclID
		}
		return u.sess.InheritingConstructor(shadowID)
	case decl.DeclUsingShadow:
		target := u.sess.Table.Decls.Get(sh.Target)
		if target == nil {
			return decl.NoDeclID
		}
		if target.Kind.IsMethodLike() || target.Kind == decl.DeclFunction {
			return sh.Target
		}
	}
	return decl.NoDeclID
}

// clone deep-copies the sub-iterator. Callers hold the global lock.
func (u *usingIterator) clone() *usingIterator {
	cp := *u
	cp.shadows = append([]decl.DeclID(nil), u.shadows...)
	return &cp
}
