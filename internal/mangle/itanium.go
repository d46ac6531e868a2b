// Package mangle computes Itanium-ABI symbol names for function
// declarations in the model. Constructors and destructors mangle to their
// ABI sub-variants (complete-object constructor, deleting destructor), the
// two forms embedders need when matching symbols from separately compiled
// code.
package mangle

import (
	"fmt"
	"strings"

	"cppmirror/internal/decl"
	"cppmirror/internal/types"
)

// Variant selects the ABI sub-variant of a special member function.
type Variant uint8

const (
	VariantNone Variant = iota
	CtorComplete
	DtorDeleting
)

// Function returns the mangled symbol for a function-like declaration, or
// "" when the declaration cannot be mangled.
func Function(tbl *decl.Table, id decl.DeclID, variant Variant) string {
	d := tbl.Decls.Get(id)
	if d == nil || !d.Kind.IsFunctionLike() {
		return ""
	}

	var b strings.Builder
	b.WriteString("_Z")

	prefix := ownerChain(tbl, d.Owner)
	unq := unqualifiedName(tbl, d, variant)
	if unq == "" {
		return ""
	}
	if len(prefix) > 0 {
		b.WriteByte('N')
		if d.HasFlag(decl.FlagConstMethod) {
			b.WriteByte('K')
		}
		for _, part := range prefix {
			fmt.Fprintf(&b, "%d%s", len(part), part)
		}
		b.WriteString(unq)
		b.WriteByte('E')
	} else {
		b.WriteString(unq)
	}

	if len(d.Params) == 0 {
		b.WriteByte('v')
	} else {
		for _, p := range d.Params {
			b.WriteString(paramType(tbl.Types, p.Type))
		}
	}
	return b.String()
}

// ownerChain collects enclosing namespace/class names outermost first.
func ownerChain(tbl *decl.Table, ctx decl.ContextID) []string {
	var parts []string
	for c := tbl.Contexts.Get(ctx); c != nil && !c.IsTranslationUnit(); {
		owner := tbl.Decls.Get(c.Owner)
		if owner == nil {
			break
		}
		name, _ := tbl.Strings.Lookup(owner.Name)
		if name != "" {
			parts = append([]string{name}, parts...)
		}
		c = tbl.Contexts.Get(owner.Owner)
	}
	return parts
}

func unqualifiedName(tbl *decl.Table, d *decl.Decl, variant Variant) string {
	switch d.Kind {
	case decl.DeclConstructor:
		// Only the complete-object constructor is exposed.
		_ = variant
		return "C1"
	case decl.DeclDestructor:
		return "D0"
	case decl.DeclConversion:
		return "cv" + Type(tbl.Types, d.Return)
	}
	name, _ := tbl.Strings.Lookup(d.Name)
	if name == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(name, "operator"); ok {
		if code, ok := operatorCodes[rest]; ok {
			return code
		}
	}
	return fmt.Sprintf("%d%s", len(name), name)
}

// paramType mangles a parameter position: arrays decay to pointers and
// top-level cv-qualification is dropped, per ABI.
func paramType(in *types.Interner, id types.TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return ""
	}
	if tt.Kind == types.KindArray {
		return "P" + Type(in, tt.Elem)
	}
	if tt.Const && !tt.IsCompound() {
		tt.Const = false
		return Type(in, in.Intern(tt))
	}
	return Type(in, id)
}

// Type mangles a type in a non-parameter position.
func Type(in *types.Interner, id types.TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return ""
	}
	var qual string
	if tt.Const {
		qual = "K"
	}
	switch tt.Kind {
	case types.KindPointer:
		return qual + "P" + Type(in, tt.Elem)
	case types.KindLValueRef:
		return "R" + Type(in, tt.Elem)
	case types.KindRValueRef:
		return "O" + Type(in, tt.Elem)
	case types.KindArray:
		return qual + fmt.Sprintf("A%d_", tt.Count) + Type(in, tt.Elem)
	case types.KindMemberPtr:
		return qual + "M" + Type(in, in.StripConst(tt.Class)) + Type(in, tt.Elem)
	case types.KindRecord:
		info, ok := in.RecordInfo(id)
		if !ok {
			return ""
		}
		qn, _ := in.Strings.Lookup(info.Qualified)
		parts := strings.Split(qn, "::")
		var b strings.Builder
		b.WriteString(qual)
		if len(parts) > 1 {
			b.WriteByte('N')
		}
		for _, part := range parts {
			fmt.Fprintf(&b, "%d%s", len(part), part)
		}
		if len(parts) > 1 {
			b.WriteByte('E')
		}
		return b.String()
	case types.KindAuto:
		return qual + "Da"
	}
	if code, ok := fundamentalCodes[fundamentalKey{tt.Kind, tt.Unsigned}]; ok {
		return qual + code
	}
	return ""
}

type fundamentalKey struct {
	kind     types.Kind
	unsigned bool
}

var fundamentalCodes = map[fundamentalKey]string{
	{types.KindVoid, false}:     "v",
	{types.KindBool, false}:     "b",
	{types.KindChar, false}:     "c",
	{types.KindChar, true}:      "h",
	{types.KindWChar, false}:    "w",
	{types.KindShort, false}:    "s",
	{types.KindShort, true}:     "t",
	{types.KindInt, false}:      "i",
	{types.KindInt, true}:       "j",
	{types.KindLong, false}:     "l",
	{types.KindLong, true}:      "m",
	{types.KindLongLong, false}: "x",
	{types.KindLongLong, true}:  "y",
	{types.KindFloat, false}:    "f",
	{types.KindDouble, false}:   "d",
}

var operatorCodes = map[string]string{
	"==":  "eq",
	"!=":  "ne",
	"<":   "lt",
	">":   "gt",
	"<=":  "le",
	">=":  "ge",
	"+":   "pl",
	"-":   "mi",
	"*":   "ml",
	"/":   "dv",
	"%":   "rm",
	"^":   "eo",
	"&":   "an",
	"|":   "or",
	"~":   "co",
	"!":   "nt",
	"=":   "aS",
	"+=":  "pL",
	"-=":  "mI",
	"*=":  "mL",
	"/=":  "dV",
	"%=":  "rM",
	"&=":  "aN",
	"|=":  "oR",
	"^=":  "eO",
	"<<":  "ls",
	">>":  "rs",
	"<<=": "lS",
	">>=": "rS",
	"&&":  "aa",
	"||":  "oo",
	"++":  "pp",
	"--":  "mm",
	",":   "cm",
	"->*": "pm",
	"->":  "pt",
	"()":  "cl",
	"[]":  "ix",
}
