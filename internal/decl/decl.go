package decl

import (
	"cppmirror/internal/source"
	"cppmirror/internal/types"
)

// Kind classifies the declaration shape.
type Kind uint8

const (
	DeclInvalid Kind = iota
	DeclFunction
	DeclMethod
	DeclConstructor
	DeclDestructor
	DeclConversion
	DeclFunctionTemplate
	DeclUsing
	DeclUsingShadow
	DeclCtorUsingShadow
	DeclNamespace
	DeclClass
	DeclField
	DeclVar
	DeclTypedef
)

func (k Kind) String() string {
	switch k {
	case DeclFunction:
		return "function"
	case DeclMethod:
		return "method"
	case DeclConstructor:
		return "constructor"
	case DeclDestructor:
		return "destructor"
	case DeclConversion:
		return "conversion"
	case DeclFunctionTemplate:
		return "function-template"
	case DeclUsing:
		return "using"
	case DeclUsingShadow:
		return "using-shadow"
	case DeclCtorUsingShadow:
		return "ctor-using-shadow"
	case DeclNamespace:
		return "namespace"
	case DeclClass:
		return "class"
	case DeclField:
		return "field"
	case DeclVar:
		return "var"
	case DeclTypedef:
		return "typedef"
	default:
		return "invalid"
	}
}

// IsFunctionLike reports whether the declaration is directly callable.
func (k Kind) IsFunctionLike() bool {
	switch k {
	case DeclFunction, DeclMethod, DeclConstructor, DeclDestructor, DeclConversion:
		return true
	}
	return false
}

// IsMethodLike reports whether the declaration is a class member function.
func (k Kind) IsMethodLike() bool {
	switch k {
	case DeclMethod, DeclConstructor, DeclDestructor, DeclConversion:
		return true
	}
	return false
}

// Access is an effective access specifier.
type Access uint8

const (
	AccessNone Access = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	default:
		return "none"
	}
}

// Flags encode misc declaration attributes for quick checks.
type Flags uint32

const (
	FlagDeleted Flags = 1 << iota
	FlagImplicit
	FlagInherited // constructor synthesized on behalf of a base constructor
	FlagConstexpr
	FlagStatic
	FlagVirtual
	FlagPure
	FlagExplicit
	FlagInline
	FlagConstMethod
	FlagInlineNamespace
	FlagInternal  // compiler-synthesized helper namespace
	FlagFromCache // loaded from a precompiled archive, not from a header
)

// Strings returns a slice of textual flag labels.
func (f Flags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 6)
	for _, e := range flagLabels {
		if f&e.flag != 0 {
			labels = append(labels, e.name)
		}
	}
	return labels
}

var flagLabels = []struct {
	flag Flags
	name string
}{
	{FlagDeleted, "deleted"},
	{FlagImplicit, "implicit"},
	{FlagInherited, "inherited"},
	{FlagConstexpr, "constexpr"},
	{FlagStatic, "static"},
	{FlagVirtual, "virtual"},
	{FlagPure, "pure"},
	{FlagExplicit, "explicit"},
	{FlagInline, "inline"},
	{FlagConstMethod, "const"},
	{FlagInlineNamespace, "inline-namespace"},
	{FlagInternal, "internal"},
	{FlagFromCache, "from-cache"},
}

// Param describes one function parameter.
type Param struct {
	Name       source.StringID
	Type       types.TypeID
	HasDefault bool
}

// TemplateParamKind distinguishes template parameter shapes.
type TemplateParamKind uint8

const (
	TParamType TemplateParamKind = iota
	TParamNonType
	TParamTemplate
)

// TemplateParam describes one template parameter of a function template.
type TemplateParam struct {
	Kind        TemplateParamKind
	Name        source.StringID
	IsPack      bool
	HasDefault  bool
	DefaultType types.TypeID // for TParamType; the substitution argument
}

// Decl describes one declaration in the model. Fields beyond the common
// head are meaningful only for the kinds noted next to them.
type Decl struct {
	Name   source.StringID
	Kind   Kind
	Access Access
	Flags  Flags
	Owner  ContextID // context the declaration appears in
	Span   source.Span

	// Function-like declarations.
	Return        types.TypeID
	DeducedReturn types.TypeID // concrete type behind an auto return, if knowable
	Params        []Param

	// Using declarations and their shadows.
	Shadows    []DeclID // DeclUsing: one shadow per named target
	Target     DeclID   // shadow target / typedef target
	Introducer DeclID   // shadow: the using declaration that made it

	// Templates.
	TParams        []TemplateParam
	Templated      DeclID // DeclFunctionTemplate: the templated pattern
	TemplateOrigin DeclID // instantiation: the template it came from

	// Classes and namespaces.
	Body  ContextID
	Type  types.TypeID // DeclClass: its record type
	Bases []DeclID     // DeclClass: direct base classes

	// Documentation.
	Annotation source.StringID
	Doc        source.StringID
	Prev       DeclID // previous declaration in the redeclaration chain
}

// NumParams returns the parameter count.
func (d *Decl) NumParams() int { return len(d.Params) }

// MinRequiredArgs returns the number of leading parameters without a
// default argument.
func (d *Decl) MinRequiredArgs() int {
	n := 0
	for _, p := range d.Params {
		if p.HasDefault {
			break
		}
		n++
	}
	return n
}

// HasFlag reports whether all bits of f are set.
func (d *Decl) HasFlag(f Flags) bool { return d.Flags&f == f }
