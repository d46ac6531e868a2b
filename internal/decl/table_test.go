package decl

import (
	"testing"
)

func TestArenaReservesSentinel(t *testing.T) {
	tbl := NewTable(Hints{})

	if tbl.Decls.Get(NoDeclID) != nil {
		t.Error("NoDeclID must not resolve to a declaration")
	}
	if tbl.Contexts.Get(NoContextID) != nil {
		t.Error("NoContextID must not resolve to a context")
	}
	if tbl.Decls.Len() != 0 {
		t.Errorf("fresh arena Len = %d, want 0", tbl.Decls.Len())
	}

	id := tbl.AddDecl(&Decl{Name: tbl.Strings.Intern("foo"), Kind: DeclFunction, Owner: tbl.TranslationUnit()})
	if !id.IsValid() {
		t.Fatal("AddDecl must return a valid ID")
	}
	if got := tbl.DeclName(id); got != "foo" {
		t.Errorf("DeclName = %q, want foo", got)
	}
}

func TestArenaTruncate(t *testing.T) {
	tbl := NewTable(Hints{})
	mark := tbl.Decls.Watermark()
	id := tbl.Decls.New(&Decl{Name: tbl.Strings.Intern("scratch")})
	if tbl.Decls.Get(id) == nil {
		t.Fatal("freshly allocated decl must resolve")
	}
	tbl.Decls.Truncate(mark)
	if tbl.Decls.Get(id) != nil {
		t.Error("truncated decl must no longer resolve")
	}
}

func TestAddDeclAppendsToOwner(t *testing.T) {
	tbl := NewTable(Hints{})
	class := tbl.AddDecl(&Decl{Name: tbl.Strings.Intern("C"), Kind: DeclClass, Owner: tbl.TranslationUnit()})
	body := tbl.NewContext(ContextClass, class, tbl.TranslationUnit())
	tbl.Decls.Get(class).Body = body

	m := tbl.AddDecl(&Decl{Name: tbl.Strings.Intern("f"), Kind: DeclMethod, Owner: body})
	got := tbl.Contexts.Get(body).Decls
	if len(got) != 1 || got[0] != m {
		t.Errorf("owner context decls = %v, want [%d]", got, m)
	}
	if tbl.OwnerClass(m) != class {
		t.Errorf("OwnerClass = %d, want %d", tbl.OwnerClass(m), class)
	}
}

func TestQualifiedName(t *testing.T) {
	tbl := NewTable(Hints{})
	ns := tbl.AddDecl(&Decl{Name: tbl.Strings.Intern("ns"), Kind: DeclNamespace, Owner: tbl.TranslationUnit()})
	nsBody := tbl.NewContext(ContextNamespace, ns, tbl.TranslationUnit())
	tbl.Decls.Get(ns).Body = nsBody

	class := tbl.AddDecl(&Decl{Name: tbl.Strings.Intern("MyClass"), Kind: DeclClass, Owner: nsBody})
	body := tbl.NewContext(ContextClass, class, nsBody)
	tbl.Decls.Get(class).Body = body

	m := tbl.AddDecl(&Decl{Name: tbl.Strings.Intern("bar"), Kind: DeclMethod, Owner: body})
	if got := tbl.QualifiedName(m); got != "ns::MyClass::bar" {
		t.Errorf("QualifiedName = %q, want ns::MyClass::bar", got)
	}
}

func TestMinRequiredArgs(t *testing.T) {
	tbl := NewTable(Hints{})
	b := tbl.Types.Builtins()

	d := Decl{
		Kind: DeclFunction,
		Params: []Param{
			{Type: b.Int},
			{Type: b.Double},
			{Type: b.Char, HasDefault: true},
		},
	}
	if got := d.NumParams(); got != 3 {
		t.Errorf("NumParams = %d, want 3", got)
	}
	if got := d.MinRequiredArgs(); got != 2 {
		t.Errorf("MinRequiredArgs = %d, want 2", got)
	}

	none := Decl{Kind: DeclFunction}
	if got := none.MinRequiredArgs(); got != 0 {
		t.Errorf("MinRequiredArgs with no params = %d, want 0", got)
	}

	allDefault := Decl{
		Kind: DeclFunction,
		Params: []Param{
			{Type: b.Int, HasDefault: true},
			{Type: b.Int, HasDefault: true},
		},
	}
	if got := allDefault.MinRequiredArgs(); got != 0 {
		t.Errorf("MinRequiredArgs with all defaults = %d, want 0", got)
	}
}

func TestFlagsStrings(t *testing.T) {
	f := FlagConstexpr | FlagStatic | FlagVirtual
	got := f.Strings()
	want := map[string]bool{"constexpr": true, "static": true, "virtual": true}
	if len(got) != len(want) {
		t.Fatalf("Strings() = %v", got)
	}
	for _, s := range got {
		if !want[s] {
			t.Errorf("unexpected flag string %q", s)
		}
	}
}
