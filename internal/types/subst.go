package types

// IsDependent reports whether the type mentions an unresolved template
// parameter at any layer.
func (in *Interner) IsDependent(id TypeID) bool {
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case KindDependent:
		return true
	case KindPointer, KindLValueRef, KindRValueRef, KindArray:
		return in.IsDependent(tt.Elem)
	case KindMemberPtr:
		return in.IsDependent(tt.Elem) || in.IsDependent(tt.Class)
	}
	return false
}

// Subst rewrites dependent layers of id using args, indexed by template
// parameter position. It returns NoTypeID when a referenced parameter has
// no concrete argument or when the substituted result is still dependent.
func (in *Interner) Subst(id TypeID, args []TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok {
		return NoTypeID
	}
	switch tt.Kind {
	case KindDependent:
		if int(tt.Payload) >= len(args) {
			return NoTypeID
		}
		arg := args[tt.Payload]
		if arg == NoTypeID || in.IsDependent(arg) {
			return NoTypeID
		}
		if tt.Const {
			arg = in.WithConst(arg)
		}
		return arg
	case KindPointer, KindLValueRef, KindRValueRef, KindArray:
		elem := in.Subst(tt.Elem, args)
		if elem == NoTypeID {
			return NoTypeID
		}
		tt.Elem = elem
		return in.Intern(tt)
	case KindMemberPtr:
		elem := in.Subst(tt.Elem, args)
		class := in.Subst(tt.Class, args)
		if elem == NoTypeID || class == NoTypeID {
			return NoTypeID
		}
		tt.Elem = elem
		tt.Class = class
		return in.Intern(tt)
	default:
		return id
	}
}
