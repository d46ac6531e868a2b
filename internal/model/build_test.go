package model

import (
	"testing"

	"cppmirror/internal/decl"
	"cppmirror/internal/diag"
)

const testManifest = `
schema = 1

[[namespace]]
name = "ns"

[[class]]
name = "Base"
scope = "ns"

  [[class.method]]
  name = "Base"
  params = ["int"]
  explicit = true

  [[class.method]]
  name = "baz"
  return = "int"

[[class]]
name = "MyClass"
scope = "ns"
bases = ["ns::Base"]

  [[class.method]]
  name = "bar"
  return = "const int&"
  params = ["double", "char"]
  defaults = 1
  const = true
  virtual = true
  pure = true

  [[class.using]]
  base = "ns::Base"
  name = "baz"

  [[class.using]]
  base = "ns::Base"
  ctor = true

[[function]]
name = "foo"
params = ["int"]

[[template]]
name = "identity"
scope = "ns::MyClass"
params = ["T"]

  [[template.tparam]]
  name = "T"
  default = "int"
`

func loadTestModel(t *testing.T) *Model {
	t.Helper()
	bag := diag.NewBag(16)
	m, err := Load(testManifest, bag)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if bag.HasErrors() {
		t.Fatalf("manifest produced errors: %+v", bag.Items())
	}
	return m
}

func findMember(m *Model, scope, name string) *decl.Decl {
	id, ok := m.Scope(scope)
	if !ok {
		return nil
	}
	tbl := m.Sess.Table
	body := tbl.Decls.Get(id).Body
	for _, memberID := range tbl.Contexts.Get(body).Decls {
		if tbl.DeclName(memberID) == name {
			return tbl.Decls.Get(memberID)
		}
	}
	return nil
}

func TestLoadScopes(t *testing.T) {
	m := loadTestModel(t)

	for _, scope := range []string{"", "ns", "ns::Base", "ns::MyClass"} {
		if _, ok := m.Scope(scope); !ok {
			t.Errorf("scope %q not registered", scope)
		}
	}
	names := m.ScopeNames()
	if len(names) != 3 {
		t.Errorf("ScopeNames = %v, want ns, ns::Base, ns::MyClass", names)
	}
}

func TestLoadMethodShape(t *testing.T) {
	m := loadTestModel(t)
	tbl := m.Sess.Table

	bar := findMember(m, "ns::MyClass", "bar")
	if bar == nil {
		t.Fatal("bar not found")
	}
	if bar.Kind != decl.DeclMethod {
		t.Errorf("bar kind = %v", bar.Kind)
	}
	if !bar.HasFlag(decl.FlagConstMethod | decl.FlagVirtual | decl.FlagPure) {
		t.Errorf("bar flags = %v", bar.Flags)
	}
	if bar.Access != decl.AccessPublic {
		t.Errorf("bar access = %v, want public default", bar.Access)
	}
	if got := tbl.Types.CppString(bar.Return); got != "const int&" {
		t.Errorf("bar return = %q", got)
	}
	if len(bar.Params) != 2 {
		t.Fatalf("bar params = %d", len(bar.Params))
	}
	if bar.Params[0].HasDefault || !bar.Params[1].HasDefault {
		t.Errorf("trailing default mapping wrong: %+v", bar.Params)
	}
	if bar.MinRequiredArgs() != 1 {
		t.Errorf("MinRequiredArgs = %d, want 1", bar.MinRequiredArgs())
	}
}

func TestLoadCtorClassification(t *testing.T) {
	m := loadTestModel(t)

	ctor := findMember(m, "ns::Base", "Base")
	if ctor == nil {
		t.Fatal("Base constructor not found")
	}
	if ctor.Kind != decl.DeclConstructor {
		t.Errorf("a method named after its class must classify as constructor, got %v", ctor.Kind)
	}
	if !ctor.HasFlag(decl.FlagExplicit) {
		t.Errorf("ctor flags = %v", ctor.Flags)
	}
}

func TestLoadUsings(t *testing.T) {
	m := loadTestModel(t)
	tbl := m.Sess.Table

	id, _ := m.Scope("ns::MyClass")
	body := tbl.Decls.Get(id).Body

	var usings []*decl.Decl
	for _, memberID := range tbl.Contexts.Get(body).Decls {
		if d := tbl.Decls.Get(memberID); d.Kind == decl.DeclUsing {
			usings = append(usings, d)
		}
	}
	if len(usings) != 2 {
		t.Fatalf("expected 2 using declarations, got %d", len(usings))
	}

	baz := usings[0]
	if len(baz.Shadows) != 1 {
		t.Fatalf("using baz shadows = %d, want 1", len(baz.Shadows))
	}
	shadow := tbl.Decls.Get(baz.Shadows[0])
	if shadow.Kind != decl.DeclUsingShadow || tbl.DeclName(shadow.Target) != "baz" {
		t.Errorf("baz shadow = %v -> %q", shadow.Kind, tbl.DeclName(shadow.Target))
	}

	ctorUsing := usings[1]
	if len(ctorUsing.Shadows) != 1 {
		t.Fatalf("ctor using shadows = %d, want 1", len(ctorUsing.Shadows))
	}
	if tbl.Decls.Get(ctorUsing.Shadows[0]).Kind != decl.DeclCtorUsingShadow {
		t.Errorf("ctor shadow kind = %v", tbl.Decls.Get(ctorUsing.Shadows[0]).Kind)
	}
}

func TestLoadBases(t *testing.T) {
	m := loadTestModel(t)
	tbl := m.Sess.Table

	id, _ := m.Scope("ns::MyClass")
	d := tbl.Decls.Get(id)
	if len(d.Bases) != 1 || tbl.DeclName(d.Bases[0]) != "Base" {
		t.Errorf("bases = %v", d.Bases)
	}
}

func TestLoadFreeFunction(t *testing.T) {
	m := loadTestModel(t)
	tbl := m.Sess.Table

	foo := findMember(m, "", "foo")
	if foo == nil {
		t.Fatal("foo not found in the global scope")
	}
	if foo.Kind != decl.DeclFunction {
		t.Errorf("foo kind = %v", foo.Kind)
	}
	if foo.Access != decl.AccessNone {
		t.Errorf("free function access = %v, want none", foo.Access)
	}
	if got := tbl.Types.CppString(foo.Params[0].Type); got != "int" {
		t.Errorf("foo param = %q", got)
	}
}

func TestLoadTemplate(t *testing.T) {
	m := loadTestModel(t)
	tbl := m.Sess.Table

	tmpl := findMember(m, "ns::MyClass", "identity")
	if tmpl == nil || tmpl.Kind != decl.DeclFunctionTemplate {
		t.Fatal("identity template not found")
	}
	if len(tmpl.TParams) != 1 || !tmpl.TParams[0].HasDefault {
		t.Fatalf("tparams = %+v", tmpl.TParams)
	}
	if got := tbl.Types.CppString(tmpl.TParams[0].DefaultType); got != "int" {
		t.Errorf("default = %q", got)
	}

	pattern := tbl.Decls.Get(tmpl.Templated)
	if pattern == nil || pattern.Kind != decl.DeclMethod {
		t.Fatalf("pattern = %+v", pattern)
	}
	if !tbl.Types.IsDependent(pattern.Params[0].Type) {
		t.Error("pattern parameter must be dependent")
	}
}

func TestLoadRejectsBadSchema(t *testing.T) {
	if _, err := Load("schema = 99\n", diag.NewBag(4)); err == nil {
		t.Error("unsupported schema must fail")
	}
	if _, err := Load("schema = [", diag.NewBag(4)); err == nil {
		t.Error("malformed TOML must fail")
	}
}

func TestLoadReportsUnknownType(t *testing.T) {
	bag := diag.NewBag(4)
	_, err := Load(`
schema = 1

[[function]]
name = "f"
params = ["mystery_t"]
`, bag)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ModelUnknownType {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a ModelUnknownType diagnostic, got %+v", bag.Items())
	}
}
