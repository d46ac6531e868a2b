package decl

// ContextKind enumerates traversable declaration containers.
type ContextKind uint8

const (
	ContextInvalid ContextKind = iota
	ContextTranslationUnit
	ContextClass
	ContextNamespace
)

func (k ContextKind) String() string {
	switch k {
	case ContextTranslationUnit:
		return "translation-unit"
	case ContextClass:
		return "class"
	case ContextNamespace:
		return "namespace"
	default:
		return "invalid"
	}
}

// Context is one ordered container of declarations: a class body, a
// namespace body, or the translation unit itself. A context may start out
// deferred (its declarations known but not yet materialized); adoption by
// a traversal forces materialization inside a compilation transaction.
type Context struct {
	Kind         ContextKind
	Owner        DeclID // owning class/namespace decl, NoDeclID for the TU
	Parent       ContextID
	Decls        []DeclID
	Deferred     bool // declarations require compiler work before first use
	ImplicitDone bool // implicit members already forced for this class
}

// IsTranslationUnit reports whether this is the root context.
func (c *Context) IsTranslationUnit() bool {
	return c.Kind == ContextTranslationUnit
}
