package export

import (
	"os"
	"path/filepath"
	"testing"

	"cppmirror/internal/diag"
	"cppmirror/internal/model"
)

const testManifest = `
schema = 1

[[class]]
name = "MyClass"

  [[class.method]]
  name = "bar"
  return = "int"
  params = ["int"]
  const = true
`

func TestCollect(t *testing.T) {
	m, err := model.Load(testManifest, diag.NewBag(8))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	a, err := Collect(m, nil)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(a.Scopes) != 1 || a.Scopes[0].Name != "MyClass" {
		t.Fatalf("scopes = %+v", a.Scopes)
	}

	// bar plus the implicit constructor and destructor
	methods := a.Scopes[0].Methods
	if len(methods) != 3 {
		t.Fatalf("methods = %d, want 3", len(methods))
	}
	bar := methods[0]
	if bar.Name != "MyClass::bar" {
		t.Errorf("first method = %q, want MyClass::bar", bar.Name)
	}
	if bar.Mangled != "_ZNK7MyClass3barEi" {
		t.Errorf("mangled = %q", bar.Mangled)
	}
	if bar.NArgs != 1 || bar.NDefault != 0 {
		t.Errorf("NArgs=%d NDefault=%d", bar.NArgs, bar.NDefault)
	}
	if bar.Return != "int" || len(bar.Params) != 1 || bar.Params[0] != "int" {
		t.Errorf("types = %q %v", bar.Return, bar.Params)
	}

	if _, err := Collect(m, []string{"Nope"}); err == nil {
		t.Error("collecting an unknown scope must fail")
	}
}

func TestWriteReadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "model.mp")

	a := &Archive{
		Schema: archiveSchemaVersion,
		Scopes: []ScopeDescriptor{{
			Name: "MyClass",
			Methods: []MethodDescriptor{{
				Name:     "MyClass::bar",
				Mangled:  "_ZNK7MyClass3barEi",
				Title:    "int MyClass::bar(int)",
				Property: 42,
				NArgs:    1,
				Return:   "int",
				Params:   []string{"int"},
			}},
		}},
	}
	if err := Write(path, a); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got.Scopes) != 1 || len(got.Scopes[0].Methods) != 1 {
		t.Fatalf("roundtrip shape = %+v", got)
	}
	m := got.Scopes[0].Methods[0]
	if m.Mangled != "_ZNK7MyClass3barEi" || m.Property != 42 {
		t.Errorf("roundtrip method = %+v", m)
	}

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory should hold only the archive, got %d entries", len(entries))
	}
}

func TestReadRejectsWrongSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.mp")
	if err := Write(path, &Archive{Schema: 99}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := Read(path); err == nil {
		t.Error("wrong schema must be rejected")
	}
	if _, err := Read(filepath.Join(dir, "missing.mp")); err == nil {
		t.Error("missing archive must be rejected")
	}
}

func TestExportAll(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "widgets.toml")
	if err := os.WriteFile(manifest, []byte(testManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "out")
	if err := ExportAll([]string{manifest}, outDir, diag.NewBag(8)); err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}

	a, err := Read(filepath.Join(outDir, "widgets.mp"))
	if err != nil {
		t.Fatalf("archive not readable: %v", err)
	}
	if len(a.Scopes) != 1 || a.Scopes[0].Name != "MyClass" {
		t.Errorf("archive scopes = %+v", a.Scopes)
	}
}
