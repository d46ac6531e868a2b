package meta

import (
	"cppmirror/internal/interp"
	"cppmirror/internal/types"
)

// TypeInfo is an opaque handle to a type in the session, consumed by type
// introspection collaborators and renderable as its C++ spelling.
type TypeInfo struct {
	sess *interp.Session
	id   types.TypeID
}

// IsValid reports whether the handle refers to a type.
func (t TypeInfo) IsValid() bool {
	return t.sess != nil && t.id != types.NoTypeID
}

// ID exposes the underlying type identity.
func (t TypeInfo) ID() types.TypeID { return t.id }

// Name renders the C++ spelling, or "" for an invalid handle.
func (t TypeInfo) Name() string {
	if !t.IsValid() {
		return ""
	}
	return t.sess.Table.Types.CppString(t.id)
}
