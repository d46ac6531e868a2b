package interp

import (
	"fmt"

	"cppmirror/internal/decl"
	"cppmirror/internal/diag"
	"cppmirror/internal/mangle"
	"cppmirror/internal/source"
	"cppmirror/internal/types"
)

// CollectAllContexts returns every declaration context making up the given
// scope: the scope's own body plus the bodies of all its redeclarations
// (namespace pieces merged from multiple headers). The enumerator may grow
// the returned slice while walking it.
func (s *Session) CollectAllContexts(scope decl.DeclID) []decl.ContextID {
	d := s.Table.Decls.Get(scope)
	if d == nil || !d.Body.IsValid() {
		return nil
	}
	out := []decl.ContextID{d.Body}
	for prev := d.Prev; prev.IsValid(); {
		pd := s.Table.Decls.Get(prev)
		if pd == nil {
			break
		}
		if pd.Body.IsValid() {
			out = append(out, pd.Body)
		}
		prev = pd.Prev
	}
	return out
}

// ContextDecls adopts a context's declaration sequence, materializing it
// first when the context is deferred. Materialization is deferred compiler
// work and therefore requires an open transaction.
func (s *Session) ContextDecls(id decl.ContextID) []decl.DeclID {
	ctx := s.Table.Contexts.Get(id)
	if ctx == nil {
		return nil
	}
	if ctx.Deferred {
		s.requireTx()
		ctx.Deferred = false
		s.DeferredLoads++
	}
	return ctx.Decls
}

// ForceDeclarationOfImplicitMembers makes sure the class has entries for
// the member functions the compiler would synthesize: a default
// constructor when no constructor is declared, and a destructor when none
// is declared. Idempotent per class.
func (s *Session) ForceDeclarationOfImplicitMembers(class decl.DeclID) {
	s.requireTx()
	d := s.Table.Decls.Get(class)
	if d == nil || d.Kind != decl.DeclClass || !d.Body.IsValid() {
		return
	}
	ctx := s.Table.Contexts.Get(d.Body)
	if ctx == nil || ctx.ImplicitDone {
		return
	}
	ctx.ImplicitDone = true
	s.noteImplicit(d.Body)

	hasCtor, hasDtor := false, false
	for _, memberID := range ctx.Decls {
		switch m := s.Table.Decls.Get(memberID); {
		case m == nil:
		case m.Kind == decl.DeclConstructor:
			hasCtor = true
		case m.Kind == decl.DeclDestructor:
			hasDtor = true
		}
	}
	if !hasCtor {
		s.noteGrowth(d.Body)
		s.Table.AddDecl(&decl.Decl{
			Name:   d.Name,
			Kind:   decl.DeclConstructor,
			Access: decl.AccessPublic,
			Flags:  decl.FlagImplicit | decl.FlagInline,
			Owner:  d.Body,
			Return: s.Table.Types.Builtins().Void,
		})
	}
	if !hasDtor {
		s.noteGrowth(d.Body)
		name := s.Table.Strings.Intern("~" + s.Table.Strings.MustLookup(d.Name))
		s.Table.AddDecl(&decl.Decl{
			Name:   name,
			Kind:   decl.DeclDestructor,
			Access: decl.AccessPublic,
			Flags:  decl.FlagImplicit | decl.FlagInline,
			Owner:  d.Body,
			Return: s.Table.Types.Builtins().Void,
		})
	}
}

// InheritingConstructor resolves a constructor-using shadow to the
// inheriting constructor synthesized in the derived class, creating it on
// first request. The shadow-to-constructor mapping is one-to-one for the
// lifetime of the session. The synthesized declaration is session-owned:
// it never joins the class's declaration sequence, so the shadow path is
// the only way to reach it.
func (s *Session) InheritingConstructor(shadow decl.DeclID) decl.DeclID {
	s.requireTx()
	if id, ok := s.inheriting[shadow]; ok {
		return id
	}
	sh := s.Table.Decls.Get(shadow)
	if sh == nil || sh.Kind != decl.DeclCtorUsingShadow {
		return decl.NoDeclID
	}
	base := s.Table.Decls.Get(sh.Target)
	if base == nil || base.Kind != decl.DeclConstructor {
		return decl.NoDeclID
	}
	using := s.Table.Decls.Get(sh.Introducer)
	if using == nil {
		return decl.NoDeclID
	}
	derivedCtx := using.Owner
	derived := s.Table.Contexts.Get(derivedCtx)
	if derived == nil || !derived.Owner.IsValid() {
		return decl.NoDeclID
	}
	derivedClass := s.Table.Decls.Get(derived.Owner)

	inherited := decl.Decl{
		Name:   derivedClass.Name,
		Kind:   decl.DeclConstructor,
		Access: using.Access,
		Flags:  decl.FlagInherited | base.Flags&(decl.FlagExplicit|decl.FlagConstexpr|decl.FlagDeleted),
		Owner:  derivedCtx,
		Return: base.Return,
		Params: append([]decl.Param(nil), base.Params...),
	}
	id := s.Table.Decls.New(&inherited)
	s.inheriting[shadow] = id
	return id
}

type instKey struct {
	template decl.DeclID
	params   string
	isConst  bool
}

// DefaultTemplateArgs builds the all-defaults template argument list for a
// function template. It fails (ok == false) when the parameter list has a
// pack, a parameter without a default, or a default that is itself
// dependent.
func (s *Session) DefaultTemplateArgs(template decl.DeclID) ([]types.TypeID, bool) {
	d := s.Table.Decls.Get(template)
	if d == nil || d.Kind != decl.DeclFunctionTemplate {
		return nil, false
	}
	args := make([]types.TypeID, len(d.TParams))
	for i, tp := range d.TParams {
		if tp.IsPack || !tp.HasDefault {
			return nil, false
		}
		switch tp.Kind {
		case decl.TParamType:
			if tp.DefaultType == types.NoTypeID || s.Table.Types.IsDependent(tp.DefaultType) {
				return nil, false
			}
			args[i] = tp.DefaultType
		default:
			// Non-type and template-template parameters never occur inside
			// our parameter types; a defaulted one just holds its slot.
			args[i] = types.NoTypeID
		}
	}
	return args, true
}

// FindFunctionProto performs a name + parameter-type lookup in a context.
// A concrete declaration wins; otherwise a function template whose
// all-defaults substitution produces exactly the requested parameter types
// is instantiated (or its cached instantiation returned). Substitution
// failures are swallowed: the result is simply NoDeclID.
func (s *Session) FindFunctionProto(ctx decl.ContextID, name string, params []types.TypeID, isConst bool) decl.DeclID {
	s.requireTx()
	nameID := s.Table.Strings.Intern(name)
	for _, id := range s.ContextDecls(ctx) {
		d := s.Table.Decls.Get(id)
		if d == nil || d.Name != nameID {
			continue
		}
		if d.Kind.IsFunctionLike() && paramsMatch(d.Params, params) && d.HasFlag(decl.FlagConstMethod) == isConst {
			return id
		}
	}
	for _, id := range s.ContextDecls(ctx) {
		d := s.Table.Decls.Get(id)
		if d == nil || d.Kind != decl.DeclFunctionTemplate {
			continue
		}
		pattern := s.Table.Decls.Get(d.Templated)
		if pattern == nil || pattern.Name != nameID {
			continue
		}
		if pattern.HasFlag(decl.FlagConstMethod) != isConst {
			continue
		}
		args, ok := s.DefaultTemplateArgs(id)
		if !ok {
			continue
		}
		if inst := s.instantiate(id, args, params); inst.IsValid() {
			return inst
		}
	}
	return decl.NoDeclID
}

// instantiate creates (or fetches) the canonical instantiation of the
// template for the given argument list, provided the substituted parameter
// types equal want.
func (s *Session) instantiate(template decl.DeclID, args []types.TypeID, want []types.TypeID) decl.DeclID {
	d := s.Table.Decls.Get(template)
	pattern := s.Table.Decls.Get(d.Templated)
	if pattern == nil {
		return decl.NoDeclID
	}
	substParams := make([]decl.Param, len(pattern.Params))
	for i, p := range pattern.Params {
		pt := p.Type
		if s.Table.Types.IsDependent(pt) {
			pt = s.Table.Types.Subst(pt, args)
			if pt == types.NoTypeID {
				return decl.NoDeclID
			}
		}
		substParams[i] = decl.Param{Name: p.Name, Type: pt, HasDefault: p.HasDefault}
	}
	got := make([]types.TypeID, len(substParams))
	for i := range substParams {
		got[i] = substParams[i].Type
	}
	if !typeListEqual(got, want) {
		return decl.NoDeclID
	}

	key := instKey{template: template, params: typeListKey(want), isConst: pattern.HasFlag(decl.FlagConstMethod)}
	if id, ok := s.instCache[key]; ok {
		return id
	}

	ret := pattern.Return
	if s.Table.Types.IsDependent(ret) {
		if substRet := s.Table.Types.Subst(ret, args); substRet != types.NoTypeID {
			ret = substRet
		}
	}
	inst := decl.Decl{
		Name:           pattern.Name,
		Kind:           pattern.Kind,
		Access:         d.Access,
		Flags:          pattern.Flags | d.Flags&decl.FlagDeleted,
		Owner:          d.Owner,
		Return:         ret,
		Params:         substParams,
		TemplateOrigin: template,
		Annotation:     pattern.Annotation,
		Doc:            pattern.Doc,
	}
	// Session-owned: instantiations stay out of the context's declaration
	// sequence so the primary cursor never revisits them.
	id := s.Table.Decls.New(&inst)
	s.instCache[key] = id
	return id
}

// DeduceReturnType resolves an undeduced placeholder return type in place.
// Returns false when the declaration has no deducible return.
func (s *Session) DeduceReturnType(fn decl.DeclID) bool {
	s.requireTx()
	d := s.Table.Decls.Get(fn)
	if d == nil {
		return false
	}
	rt, ok := s.Table.Types.Lookup(d.Return)
	if !ok || rt.Kind != types.KindAuto {
		return true
	}
	if d.DeducedReturn == types.NoTypeID {
		return false
	}
	d.Return = d.DeducedReturn
	return true
}

// FunctionName renders the display name of a function declaration,
// qualified by its owner chain.
func (s *Session) FunctionName(fn decl.DeclID) string {
	return s.Table.QualifiedName(fn)
}

// MangledName computes the ABI symbol name for a function declaration,
// selecting the complete-object variant for constructors and the deleting
// variant for destructors.
func (s *Session) MangledName(fn decl.DeclID) string {
	s.requireTx()
	d := s.Table.Decls.Get(fn)
	if d == nil {
		return ""
	}
	variant := mangle.VariantNone
	switch d.Kind {
	case decl.DeclConstructor:
		variant = mangle.CtorComplete
	case decl.DeclDestructor:
		variant = mangle.DtorDeleting
	}
	return mangle.Function(s.Table, fn, variant)
}

// ReportError forwards a non-fatal condition to the embedding host.
func (s *Session) ReportError(code diag.Code, at decl.DeclID, msg string, args ...any) {
	var sp source.Span
	if d := s.Table.Decls.Get(at); d != nil {
		sp = d.Span
	}
	diag.ReportError(s.Reporter, code, sp, fmt.Sprintf(msg, args...)).Emit()
}

func paramsMatch(have []decl.Param, want []types.TypeID) bool {
	if len(have) != len(want) {
		return false
	}
	for i := range have {
		if have[i].Type != want[i] {
			return false
		}
	}
	return true
}

func typeListEqual(a, b []types.TypeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func typeListKey(ids []types.TypeID) string {
	key := make([]byte, 0, len(ids)*5)
	for _, id := range ids {
		key = fmt.Appendf(key, "%d,", id)
	}
	return string(key)
}
