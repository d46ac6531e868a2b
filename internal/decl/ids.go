package decl

// DeclID identifies a declaration in the arena.
type DeclID uint32

const (
	// NoDeclID marks the absence of a declaration reference.
	NoDeclID DeclID = 0
)

// IsValid reports whether the ID refers to an allocated declaration.
func (id DeclID) IsValid() bool { return id != NoDeclID }

// ContextID identifies a declaration context in the arena.
type ContextID uint32

const (
	// NoContextID marks the absence of a context reference.
	NoContextID ContextID = 0
)

// IsValid reports whether the ID refers to an allocated context.
func (id ContextID) IsValid() bool { return id != NoContextID }
