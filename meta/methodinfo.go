// Package meta is the reflection surface of the module: it enumerates the
// callable members of a class or namespace in a live session and exposes
// per-method metadata (access, mutability, virtuality, mangled name,
// return type, documentation) without re-parsing anything.
//
// The enumerator walks one or more declaration contexts lazily. Walking can
// itself trigger compiler work: deferred contexts are materialized on
// adoption, using declarations expand into their shadow targets, and
// function templates whose parameters all carry defaults are instantiated
// opportunistically. Each step yields one normalized method handle.
package meta

import (
	"cppmirror/internal/decl"
	"cppmirror/internal/diag"
	"cppmirror/internal/interp"
	"cppmirror/internal/types"
)

// cursor is a position inside one context's declaration sequence.
type cursor struct {
	decls []decl.DeclID
	pos   int
}

func (c *cursor) valid() bool {
	return c.pos >= 0 && c.pos < len(c.decls)
}

func (c *cursor) current() decl.DeclID {
	if !c.valid() {
		return decl.NoDeclID
	}
	return c.decls[c.pos]
}

// MethodInfo is both the enumerator over a scope's callable members and
// the handle to the member under the cursor. The handle is rebound by
// every Next; callers that need a step's data past the next advance must
// copy it out.
type MethodInfo struct {
	sess   *interp.Session
	single decl.DeclID // set when wrapping one known function; not an iterator

	contexts   []decl.ContextID
	contextIdx int
	iter       cursor
	firstTime  bool

	templateSpec decl.DeclID
	usingIter    *usingIterator
	accessDecl   decl.DeclID // the using declaration governing effective access

	nameCache string
}

// NewEnumerator builds an enumerator over every callable member of scope
// (a class or namespace declaration). The enumerator starts positioned
// before the first member; call Next to reach it. The scope must outlive
// the enumerator.
func NewEnumerator(sess *interp.Session, scope decl.DeclID) *MethodInfo {
	m := &MethodInfo{sess: sess, firstTime: true}

	lock := interp.Global()
	lock.Acquire()
	defer lock.Release()

	d := sess.Table.Decls.Get(scope)
	if d == nil || !d.Body.IsValid() {
		return m
	}
	if d.Kind == decl.DeclClass {
		// Make sure the class has entries for all its implicit members.
		// Could trigger materialization of deferred declarations.
		tx := sess.Transaction()
		sess.ForceDeclarationOfImplicitMembers(scope)
		tx.Commit()
	}
	m.contexts = sess.CollectAllContexts(scope)
	if len(m.contexts) == 0 {
		return m
	}
	tx := sess.Transaction()
	m.iter = cursor{decls: sess.ContextDecls(m.contexts[0])}
	tx.Commit()
	m.internalNext()
	// The first Next must not move past the member the constructor already
	// found, so the positioning above counts as not having started.
	m.firstTime = true
	return m
}

// NewMethodInfo wraps a single, already-resolved function declaration.
// The result answers every query but is not an iterator.
func NewMethodInfo(sess *interp.Session, fn decl.DeclID) *MethodInfo {
	return &MethodInfo{sess: sess, single: fn, firstTime: true}
}

// Next advances to the next callable member. It returns false once the
// scope is exhausted; after that every query reports the invalid sentinel.
func (m *MethodInfo) Next() bool {
	if m.single.IsValid() {
		panic("meta: MethodInfo over a single declaration is not an iterator")
	}
	return m.internalNext()
}

func (m *MethodInfo) internalNext() bool {
	m.nameCache = "" // invalidate: the handle is about to rebind

	if !m.firstTime && !m.iter.valid() {
		// Already exhausted.
		return false
	}
	for {
		// The slot belongs to the step just consumed.
		m.templateSpec = decl.NoDeclID

		if m.firstTime {
			// The constructor already positioned the cursor at the first
			// raw declaration; consume this advance without moving.
			m.firstTime = false
		} else if m.usingIter != nil {
			for m.usingIter.advance() {
				if m.usingIter.current().IsValid() {
					return true
				}
			}
			m.usingIter = nil
			m.accessDecl = decl.NoDeclID
			m.iter.pos++
		} else {
			m.iter.pos++
		}

		// Fix up when we have gone past the end of the current context.
		for !m.iter.valid() {
			m.contextIdx++
			if m.contextIdx >= len(m.contexts) {
				// Enumerator is now exhausted.
				return false
			}
			// Adoption may materialize deferred declarations.
			tx := m.sess.Transaction()
			m.iter = cursor{decls: m.sess.ContextDecls(m.contexts[m.contextIdx])}
			tx.Commit()
		}

		cur := m.iter.current()
		d := m.sess.Table.Decls.Get(cur)
		if d == nil {
			continue
		}

		if d.Kind == decl.DeclFunctionTemplate {
			// If this template can be instantiated without arguments it is
			// worth having; common for enable_if-style functions.
			tx := m.sess.Transaction()
			spec := m.instantiateWithDefaults(cur)
			tx.Commit()
			if spec.IsValid() {
				if sd := m.sess.Table.Decls.Get(spec); sd != nil && sd.HasFlag(decl.FlagDeleted) {
					spec = decl.NoDeclID
				}
			}
			if spec.IsValid() {
				m.templateSpec = spec
				return true
			}
		}

		if d.Kind == decl.DeclUsing {
			// A using declaration potentially brings in several functions;
			// open an inner loop to catch them all. Its first resolvable
			// position is immediately consumable.
			ui := newUsingIterator(m.sess, cur)
			if ui.current().IsValid() {
				m.usingIter = ui
				m.accessDecl = cur
				return true
			}
			// Nothing the expansion resolves to a function: no step here.
			m.usingIter = nil
			m.accessDecl = decl.NoDeclID
			continue
		}

		if d.Kind.IsFunctionLike() && !d.HasFlag(decl.FlagDeleted) {
			return true
		}

		// Collect compiler-internal inline namespaces found directly under
		// the root scope; their bodies are traversed later. Appends only
		// ever land past the current position, so growth is safe.
		if d.Kind == decl.DeclNamespace && d.HasFlag(decl.FlagInlineNamespace|decl.FlagInternal) {
			if octx := m.sess.Table.Contexts.Get(d.Owner); octx != nil && octx.IsTranslationUnit() && d.Body.IsValid() {
				m.contexts = append(m.contexts, d.Body)
			}
		}
	}
}

// Decl returns the declaration the handle currently resolves to:
// instantiated, shadow-resolved, or direct.
func (m *MethodInfo) Decl() decl.DeclID {
	if m.single.IsValid() {
		return m.single
	}
	if m.templateSpec.IsValid() {
		return m.templateSpec
	}
	if m.usingIter != nil {
		return m.usingIter.current()
	}
	return m.iter.current()
}

// IsValid reports whether the handle currently resolves to a declaration.
func (m *MethodInfo) IsValid() bool {
	return m.Decl().IsValid()
}

// Clone checkpoints the iteration state. An active using expansion is
// deep-copied under the global lock, since its construction queried live
// declaration data.
func (m *MethodInfo) Clone() *MethodInfo {
	cp := *m
	if m.usingIter != nil {
		lock := interp.Global()
		lock.Acquire()
		cp.usingIter = m.usingIter.clone()
		lock.Release()
	}
	return &cp
}

// NArg returns the parameter count, or -1 for an invalid handle.
func (m *MethodInfo) NArg() int {
	d := m.sess.Table.Decls.Get(m.Decl())
	if d == nil {
		return -1
	}
	return d.NumParams()
}

// NDefaultArg returns the number of defaulted parameters, or -1 for an
// invalid handle.
func (m *MethodInfo) NDefaultArg() int {
	d := m.sess.Table.Decls.Get(m.Decl())
	if d == nil {
		return -1
	}
	return d.NumParams() - d.MinRequiredArgs()
}

// Name returns the display name, qualified by the owner chain. Cached
// until the handle rebinds.
func (m *MethodInfo) Name() string {
	if !m.IsValid() {
		return ""
	}
	if m.nameCache != "" {
		return m.nameCache
	}
	m.nameCache = m.sess.FunctionName(m.Decl())
	return m.nameCache
}

// MangledName returns the ABI symbol name: the complete-object variant for
// constructors, the deleting variant for destructors.
func (m *MethodInfo) MangledName() string {
	id := m.Decl()
	if !id.IsValid() {
		return ""
	}
	tx := m.sess.Transaction()
	defer tx.Commit()
	return m.sess.MangledName(id)
}

// Title returns the documentation string: an explicit annotation found
// anywhere on the redeclaration chain wins; declarations that did not come
// from a precompiled archive fall back to their associated comment.
//
// Never cached: the using sub-iterator rebinds this same handle across
// differently-accessed targets, and a cache would leak titles between them.
func (m *MethodInfo) Title() string {
	id := m.Decl()
	if !id.IsValid() {
		return ""
	}
	tx := m.sess.Transaction()
	defer tx.Commit()

	fd := m.sess.Table.Decls.Get(id)
	for cur := fd; cur != nil; {
		if cur.Annotation != 0 {
			return m.sess.Table.Strings.MustLookup(cur.Annotation)
		}
		cur = m.sess.Table.Decls.Get(cur.Prev)
	}
	if !fd.HasFlag(decl.FlagFromCache) {
		doc, _ := m.sess.Table.Strings.Lookup(fd.Doc)
		return doc
	}
	return ""
}

// Property computes the main bitmask, fresh on every call.
func (m *MethodInfo) Property() Property {
	fd := m.sess.Table.Decls.Get(m.Decl())
	if fd == nil {
		return 0
	}
	if fd.HasFlag(decl.FlagDeleted) {
		return 0
	}
	p := PropCompiled
	if fd.HasFlag(decl.FlagConstexpr) {
		p |= PropConstexpr
	}

	// Access is taken from the using declaration when this step came via
	// shadow expansion: the target's own access is not what is visible
	// through the alias.
	access := fd.Access
	if m.accessDecl.IsValid() && m.usingIter != nil {
		if ad := m.sess.Table.Decls.Get(m.accessDecl); ad != nil {
			access = ad.Access
		}
	}
	switch access {
	case decl.AccessPublic:
		p |= PropPublic
	case decl.AccessProtected:
		p |= PropProtected
	case decl.AccessPrivate:
		p |= PropPrivate
	case decl.AccessNone:
		if ctx := m.sess.Table.Contexts.Get(fd.Owner); ctx != nil && ctx.Kind != decl.ContextClass {
			p |= PropPublic
		}
	}
	if fd.HasFlag(decl.FlagStatic) {
		p |= PropStatic
	}

	p |= m.returnTypeBits(fd.Return)

	if fd.Kind.IsMethodLike() {
		if fd.HasFlag(decl.FlagConstMethod) {
			p |= PropConstant | PropConstMethod
		}
		if fd.HasFlag(decl.FlagVirtual) {
			p |= PropVirtual
		}
		if fd.HasFlag(decl.FlagPure) {
			p |= PropPureVirtual
		}
		if fd.Kind == decl.DeclConstructor || fd.Kind == decl.DeclConversion {
			if fd.HasFlag(decl.FlagExplicit) {
				p |= PropExplicit
			}
		}
	}
	return p
}

// returnTypeBits unwraps the return type layer by layer, recording
// reference/pointer facts and testing constness at the top level and at
// the innermost layer.
func (m *MethodInfo) returnTypeBits(rt types.TypeID) Property {
	in := m.sess.Table.Types
	var p Property
	tt, ok := in.Lookup(rt)
	if !ok {
		return 0
	}
	if tt.Const {
		p |= PropConstant
	}
	for {
		switch tt.Kind {
		case types.KindArray:
			tt = in.MustLookup(tt.Elem)
			continue
		case types.KindLValueRef, types.KindRValueRef:
			p |= PropReference
			tt = in.MustLookup(tt.Elem)
			continue
		case types.KindPointer:
			p |= PropPointer
			if tt.Const {
				p |= PropConstPointer
			}
			tt = in.MustLookup(tt.Elem)
			continue
		case types.KindMemberPtr:
			tt = in.MustLookup(tt.Elem)
			continue
		}
		break
	}
	if tt.Const {
		p |= PropConstant
	}
	return p
}

// ExtraProperty computes the second bitmask, fresh on every call.
func (m *MethodInfo) ExtraProperty() ExtraProperty {
	fd := m.sess.Table.Decls.Get(m.Decl())
	if fd == nil {
		return 0
	}
	if fd.HasFlag(decl.FlagDeleted) {
		return 0
	}
	var p ExtraProperty
	if isOverloadedOperator(fd, m.sess) {
		p |= XPropOperator
	}
	switch fd.Kind {
	case decl.DeclConversion:
		p |= XPropConversion
	case decl.DeclConstructor:
		p |= XPropConstructor
	case decl.DeclDestructor:
		p |= XPropDestructor
	}
	if fd.HasFlag(decl.FlagInline) {
		p |= XPropInlined
	}
	if fd.TemplateOrigin.IsValid() {
		p |= XPropTemplateSpec
	}
	return p
}

func isOverloadedOperator(fd *decl.Decl, sess *interp.Session) bool {
	if fd.Kind != decl.DeclMethod && fd.Kind != decl.DeclFunction {
		return false
	}
	name, _ := sess.Table.Strings.Lookup(fd.Name)
	const prefix = "operator"
	if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
		return false
	}
	c := name[len(prefix)]
	return !(c == '_' || c == ' ' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'))
}

// TypeOf returns the handle's return type. Constructors report the
// enclosing class type; undeduced placeholder returns go through a
// deduction pass first and fall back to the placeholder when it fails.
func (m *MethodInfo) TypeOf() TypeInfo {
	id := m.Decl()
	fd := m.sess.Table.Decls.Get(id)
	if fd == nil {
		return TypeInfo{sess: m.sess}
	}
	if fd.Kind == decl.DeclConstructor {
		class := m.sess.Table.OwnerClass(id)
		cd := m.sess.Table.Decls.Get(class)
		if cd == nil {
			m.sess.ReportError(diag.MetaNoEnclosingClass, id,
				"cannot find enclosing class for constructor %q", m.sess.Table.DeclName(id))
			return TypeInfo{sess: m.sess}
		}
		return TypeInfo{sess: m.sess, id: cd.Type}
	}
	rt, ok := m.sess.Table.Types.Lookup(fd.Return)
	if ok && rt.Kind == types.KindAuto {
		tx := m.sess.Transaction()
		if !m.sess.DeduceReturnType(id) {
			diag.ReportWarning(m.sess.Reporter, diag.MetaDeduceFailed, fd.Span,
				"cannot deduce return type of "+m.sess.Table.DeclName(id)).Emit()
		}
		tx.Commit()
	}
	return TypeInfo{sess: m.sess, id: fd.Return}
}
