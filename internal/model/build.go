package model

import (
	"sort"
	"strings"

	"cppmirror/internal/decl"
	"cppmirror/internal/diag"
	"cppmirror/internal/interp"
	"cppmirror/internal/source"
	"cppmirror/internal/types"
)

// Model is a loaded manifest: the live session plus a scope directory.
type Model struct {
	Sess   *interp.Session
	scopes map[string]decl.DeclID
}

// Scope resolves a qualified scope name ("" is the global scope).
func (m *Model) Scope(name string) (decl.DeclID, bool) {
	id, ok := m.scopes[name]
	return id, ok
}

// ScopeNames lists every named scope, sorted.
func (m *Model) ScopeNames() []string {
	names := make([]string, 0, len(m.scopes))
	for name := range m.scopes {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Load builds a session from raw manifest TOML.
func Load(data string, r diag.Reporter) (*Model, error) {
	m, err := decode(data)
	if err != nil {
		return nil, err
	}
	return build(m, r), nil
}

// LoadFile builds a session from a manifest on disk.
func LoadFile(path string, r diag.Reporter) (*Model, error) {
	m, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	return build(m, r), nil
}

type builder struct {
	sess *interp.Session
	out  *Model
	r    diag.Reporter
}

func build(m *Manifest, r diag.Reporter) *Model {
	if r == nil {
		r = diag.NopReporter{}
	}
	sess := interp.NewSession(r)
	b := &builder{
		sess: sess,
		out:  &Model{Sess: sess, scopes: make(map[string]decl.DeclID)},
		r:    r,
	}
	// The global scope: a nameless namespace wrapping the translation unit.
	global := sess.Table.Decls.New(&decl.Decl{
		Kind: decl.DeclNamespace,
		Body: sess.Table.TranslationUnit(),
	})
	b.out.scopes[""] = global

	for i := range m.Namespaces {
		b.addNamespace(&m.Namespaces[i])
	}
	for i := range m.Classes {
		b.addClass(&m.Classes[i])
	}
	for i := range m.Functions {
		f := &m.Functions[i]
		ctx, ok := b.scopeBody(f.Scope)
		if !ok {
			continue
		}
		b.addFunction(f, ctx, "", false)
	}
	for i := range m.Templates {
		b.addTemplate(&m.Templates[i])
	}
	return b.out
}

func (b *builder) report(code diag.Code, msg string) {
	diag.ReportWarning(b.r, code, source.Span{}, msg).Emit()
}

// scopeBody resolves a qualified scope name to its body context.
func (b *builder) scopeBody(name string) (decl.ContextID, bool) {
	id, ok := b.out.scopes[name]
	if !ok {
		b.report(diag.ModelUnknownClass, "unknown scope "+name)
		return decl.NoContextID, false
	}
	d := b.sess.Table.Decls.Get(id)
	if d == nil || !d.Body.IsValid() {
		return decl.NoContextID, false
	}
	return d.Body, true
}

func qualify(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "::" + name
}

func (b *builder) addNamespace(ns *Namespace) {
	parent, ok := b.scopeBody(ns.Scope)
	if !ok {
		return
	}
	qualified := qualify(ns.Scope, ns.Name)

	var flags decl.Flags
	if ns.Inline {
		flags |= decl.FlagInlineNamespace
	}
	if ns.Internal {
		flags |= decl.FlagInternal
	}
	prev := b.out.scopes[qualified] // redeclaration chains namespace pieces

	id := b.sess.Table.AddDecl(&decl.Decl{
		Name:  b.sess.Table.Strings.Intern(ns.Name),
		Kind:  decl.DeclNamespace,
		Owner: parent,
		Flags: flags,
		Prev:  prev,
	})
	body := b.sess.Table.NewContext(decl.ContextNamespace, id, parent)
	b.sess.Table.Decls.Get(id).Body = body
	if ns.Lazy {
		b.sess.Table.Contexts.Get(body).Deferred = true
	}
	b.out.scopes[qualified] = id
}

func (b *builder) addClass(c *Class) {
	parent, ok := b.scopeBody(c.Scope)
	if !ok {
		return
	}
	qualified := qualify(c.Scope, c.Name)
	if _, dup := b.out.scopes[qualified]; dup {
		b.report(diag.ModelDuplicateName, "class "+qualified+" declared twice")
		return
	}
	tbl := b.sess.Table
	nameID := tbl.Strings.Intern(c.Name)
	record := tbl.Types.RegisterRecord(nameID, tbl.Strings.Intern(qualified), source.Span{})

	id := tbl.AddDecl(&decl.Decl{
		Name:  nameID,
		Kind:  decl.DeclClass,
		Owner: parent,
		Type:  record,
	})
	body := tbl.NewContext(decl.ContextClass, id, parent)
	d := tbl.Decls.Get(id)
	d.Body = body
	if c.Lazy {
		tbl.Contexts.Get(body).Deferred = true
	}
	for _, base := range c.Bases {
		baseID, ok := b.out.scopes[base]
		if !ok {
			b.report(diag.ModelUnknownClass, "unknown base class "+base)
			continue
		}
		d = tbl.Decls.Get(id)
		d.Bases = append(d.Bases, baseID)
	}
	b.out.scopes[qualified] = id

	for i := range c.Methods {
		b.addFunction(&c.Methods[i], body, c.Name, c.FromCache)
	}
	for i := range c.Usings {
		b.addUsing(&c.Usings[i], body)
	}
}

func (b *builder) addFunction(f *Function, ctx decl.ContextID, className string, fromCache bool) decl.DeclID {
	tbl := b.sess.Table

	kind := decl.DeclFunction
	switch {
	case f.Conversion:
		kind = decl.DeclConversion
	case className != "" && f.Name == className:
		kind = decl.DeclConstructor
	case strings.HasPrefix(f.Name, "~"):
		kind = decl.DeclDestructor
	case className != "":
		kind = decl.DeclMethod
	}

	dfltAccess := decl.AccessNone
	if className != "" {
		dfltAccess = decl.AccessPublic
	}

	ret := tbl.Types.Builtins().Void
	if f.Return != "" {
		if id := b.parseType(f.Return, nil); id != types.NoTypeID {
			ret = id
		} else {
			b.report(diag.ModelUnknownType, "unknown return type "+f.Return+" on "+f.Name)
		}
	}
	var deduced types.TypeID
	if f.DeducedReturn != "" {
		deduced = b.parseType(f.DeducedReturn, nil)
	}

	d := decl.Decl{
		Name:          tbl.Strings.Intern(f.Name),
		Kind:          kind,
		Access:        b.parseAccess(f.Access, dfltAccess),
		Flags:         functionFlags(f, fromCache),
		Owner:         ctx,
		Return:        ret,
		DeducedReturn: deduced,
		Params:        b.parseParams(f, nil),
	}
	if f.Doc != "" {
		d.Doc = tbl.Strings.Intern(f.Doc)
	}
	if f.Annotation != "" {
		d.Annotation = tbl.Strings.Intern(f.Annotation)
	}
	return tbl.AddDecl(&d)
}

func (b *builder) parseParams(f *Function, tparams map[string]uint32) []decl.Param {
	params := make([]decl.Param, 0, len(f.Params))
	firstDefault := len(f.Params) - f.Defaults
	for i, spelling := range f.Params {
		pt := b.parseType(spelling, tparams)
		if pt == types.NoTypeID {
			b.report(diag.ModelUnknownType, "unknown parameter type "+spelling+" on "+f.Name)
		}
		var name source.StringID
		if i < len(f.ParamNames) {
			name = b.sess.Table.Strings.Intern(f.ParamNames[i])
		}
		params = append(params, decl.Param{
			Name:       name,
			Type:       pt,
			HasDefault: i >= firstDefault,
		})
	}
	return params
}

func functionFlags(f *Function, fromCache bool) decl.Flags {
	var flags decl.Flags
	if f.Virtual {
		flags |= decl.FlagVirtual
	}
	if f.Pure {
		flags |= decl.FlagPure
	}
	if f.Const {
		flags |= decl.FlagConstMethod
	}
	if f.Static {
		flags |= decl.FlagStatic
	}
	if f.Constexpr {
		flags |= decl.FlagConstexpr
	}
	if f.Explicit {
		flags |= decl.FlagExplicit
	}
	if f.Deleted {
		flags |= decl.FlagDeleted
	}
	if f.Inline {
		flags |= decl.FlagInline
	}
	if f.Implicit {
		flags |= decl.FlagImplicit
	}
	if fromCache {
		flags |= decl.FlagFromCache
	}
	return flags
}

func (b *builder) parseAccess(s string, dflt decl.Access) decl.Access {
	switch s {
	case "":
		return dflt
	case "public":
		return decl.AccessPublic
	case "protected":
		return decl.AccessProtected
	case "private":
		return decl.AccessPrivate
	case "none":
		return decl.AccessNone
	}
	b.report(diag.ModelBadManifest, "bad access specifier "+s)
	return dflt
}

func (b *builder) addUsing(u *Using, ctx decl.ContextID) {
	tbl := b.sess.Table
	baseID, ok := b.out.scopes[u.Base]
	if !ok {
		b.report(diag.ModelUnknownClass, "unknown base class "+u.Base+" in using declaration")
		return
	}
	base := tbl.Decls.Get(baseID)
	if base == nil || !base.Body.IsValid() {
		return
	}
	baseBody := base.Body

	name := u.Name
	if u.Ctor {
		name = tbl.DeclName(baseID) // using Base::Base
	}
	usingID := tbl.AddDecl(&decl.Decl{
		Name:   tbl.Strings.Intern(name),
		Kind:   decl.DeclUsing,
		Access: b.parseAccess(u.Access, decl.AccessPublic),
		Owner:  ctx,
	})

	nameID := tbl.Strings.Intern(name)
	var shadows []decl.DeclID
	for _, memberID := range tbl.Contexts.Get(baseBody).Decls {
		member := tbl.Decls.Get(memberID)
		if member == nil {
			continue
		}
		switch {
		case u.Ctor && member.Kind == decl.DeclConstructor:
			shadows = append(shadows, tbl.AddDecl(&decl.Decl{
				Name:       member.Name,
				Kind:       decl.DeclCtorUsingShadow,
				Owner:      ctx,
				Target:     memberID,
				Introducer: usingID,
			}))
		case !u.Ctor && member.Name == nameID && member.Kind.IsFunctionLike():
			shadows = append(shadows, tbl.AddDecl(&decl.Decl{
				Name:       member.Name,
				Kind:       decl.DeclUsingShadow,
				Owner:      ctx,
				Target:     memberID,
				Introducer: usingID,
			}))
		}
	}
	if len(shadows) == 0 {
		b.report(diag.ModelBadManifest, "using declaration for "+u.Base+"::"+name+" names no function")
	}
	tbl.Decls.Get(usingID).Shadows = shadows
}

func (b *builder) addTemplate(t *Template) {
	ctx, ok := b.scopeBody(t.Scope)
	if !ok {
		return
	}
	tbl := b.sess.Table

	tparamIdx := make(map[string]uint32, len(t.TParams))
	tparams := make([]decl.TemplateParam, 0, len(t.TParams))
	for i, tp := range t.TParams {
		kind := decl.TParamType
		switch tp.Kind {
		case "", "type":
		case "nontype":
			kind = decl.TParamNonType
		case "template":
			kind = decl.TParamTemplate
		default:
			b.report(diag.ModelBadManifest, "bad template parameter kind "+tp.Kind)
		}
		param := decl.TemplateParam{
			Kind:       kind,
			Name:       tbl.Strings.Intern(tp.Name),
			IsPack:     tp.Pack,
			HasDefault: tp.Default != "",
		}
		if kind == decl.TParamType && tp.Default != "" {
			param.DefaultType = b.parseType(tp.Default, tparamIdx)
		}
		tparams = append(tparams, param)
		tparamIdx[tp.Name] = uint32(i)
	}

	isMethod := false
	if scopeID, ok := b.out.scopes[t.Scope]; ok {
		if sd := tbl.Decls.Get(scopeID); sd != nil && sd.Kind == decl.DeclClass {
			isMethod = true
		}
	}
	patternKind := decl.DeclFunction
	if isMethod {
		patternKind = decl.DeclMethod
	}

	ret := tbl.Types.Builtins().Void
	if t.Return != "" {
		if id := b.parseType(t.Return, tparamIdx); id != types.NoTypeID {
			ret = id
		}
	}
	var flags decl.Flags
	if t.Const {
		flags |= decl.FlagConstMethod
	}
	if t.Deleted {
		flags |= decl.FlagDeleted
	}

	fn := Function{Name: t.Name, Params: t.Params, ParamNames: t.Names}
	pattern := decl.Decl{
		Name:   tbl.Strings.Intern(t.Name),
		Kind:   patternKind,
		Access: b.parseAccess(t.Access, decl.AccessPublic),
		Flags:  flags,
		Owner:  ctx,
		Return: ret,
		Params: b.parseParams(&fn, tparamIdx),
	}
	// The pattern lives inside the template; it never joins the context's
	// declaration sequence.
	patternID := tbl.Decls.New(&pattern)

	tbl.AddDecl(&decl.Decl{
		Name:      tbl.Strings.Intern(t.Name),
		Kind:      decl.DeclFunctionTemplate,
		Access:    b.parseAccess(t.Access, decl.AccessPublic),
		Flags:     flags & decl.FlagDeleted,
		Owner:     ctx,
		TParams:   tparams,
		Templated: patternID,
	})
}
