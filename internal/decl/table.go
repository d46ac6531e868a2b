package decl

import (
	"fmt"

	"fortio.org/safecast"

	"cppmirror/internal/source"
	"cppmirror/internal/types"
)

// Hints provide optional capacity suggestions for the arenas.
type Hints struct{ Decls, Contexts uint }

// Table aggregates the declaration arenas and shared resources of one
// session. The string interner is shared with the type interner.
type Table struct {
	Decls    *Decls
	Contexts *Contexts
	Types    *types.Interner
	Strings  *source.Interner

	tu ContextID
}

// NewTable builds a fresh table with optional capacity hints.
func NewTable(h Hints) *Table {
	declCap, err := safecast.Conv[uint32](h.Decls)
	if err != nil {
		panic(fmt.Errorf("decl capacity overflow: %w", err))
	}
	ctxCap, err := safecast.Conv[uint32](h.Contexts)
	if err != nil {
		panic(fmt.Errorf("context capacity overflow: %w", err))
	}
	strings := source.NewInterner()
	t := &Table{
		Decls:    NewDecls(declCap),
		Contexts: NewContexts(ctxCap),
		Types:    types.NewInterner(strings),
		Strings:  strings,
	}
	t.tu = t.Contexts.New(&Context{Kind: ContextTranslationUnit})
	return t
}

// TranslationUnit returns the root context.
func (t *Table) TranslationUnit() ContextID { return t.tu }

// AddDecl allocates d and appends it to its owner context.
func (t *Table) AddDecl(d *Decl) DeclID {
	id := t.Decls.New(d)
	if ctx := t.Contexts.Get(d.Owner); ctx != nil {
		ctx.Decls = append(ctx.Decls, id)
	}
	return id
}

// NewContext allocates a child context of parent.
func (t *Table) NewContext(kind ContextKind, owner DeclID, parent ContextID) ContextID {
	return t.Contexts.New(&Context{Kind: kind, Owner: owner, Parent: parent})
}

// DeclName returns the declared name, or "" for an invalid ID.
func (t *Table) DeclName(id DeclID) string {
	d := t.Decls.Get(id)
	if d == nil {
		return ""
	}
	name, _ := t.Strings.Lookup(d.Name)
	return name
}

// QualifiedName renders the owner chain down to the declaration,
// e.g. "ns::MyClass::bar".
func (t *Table) QualifiedName(id DeclID) string {
	d := t.Decls.Get(id)
	if d == nil {
		return ""
	}
	name := t.DeclName(id)
	for ctx := t.Contexts.Get(d.Owner); ctx != nil && !ctx.IsTranslationUnit(); {
		owner := t.Decls.Get(ctx.Owner)
		if owner == nil {
			break
		}
		if ownerName, _ := t.Strings.Lookup(owner.Name); ownerName != "" {
			name = ownerName + "::" + name
		}
		ctx = t.Contexts.Get(owner.Owner)
	}
	return name
}

// OwnerClass returns the class declaration enclosing id, or NoDeclID when
// the declaration is not a class member.
func (t *Table) OwnerClass(id DeclID) DeclID {
	d := t.Decls.Get(id)
	if d == nil {
		return NoDeclID
	}
	ctx := t.Contexts.Get(d.Owner)
	if ctx == nil || ctx.Kind != ContextClass {
		return NoDeclID
	}
	return ctx.Owner
}
