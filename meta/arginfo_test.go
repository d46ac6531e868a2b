package meta

import (
	"testing"
)

func TestArgIteration(t *testing.T) {
	m, _ := loadModel(t, `
schema = 1

[[class]]
name = "Painter"

  [[class.method]]
  name = "fill"
  params = ["double", "const char*", "int"]
  names = ["alpha", "pattern"]
  defaults = 1
`)
	id, _ := m.Scope("Painter")
	mi := NewEnumerator(m.Sess, id)
	for mi.Next() {
		if mi.Name() != "Painter::fill" {
			continue
		}
		type arg struct {
			name       string
			typ        string
			hasDefault bool
		}
		want := []arg{
			{"alpha", "double", false},
			{"pattern", "const char*", false},
			{"", "int", true},
		}
		i := 0
		for a := mi.Args(); a.Next(); i++ {
			if i >= len(want) {
				t.Fatalf("too many parameters")
			}
			if a.Name() != want[i].name {
				t.Errorf("arg %d name = %q, want %q", i, a.Name(), want[i].name)
			}
			if got := a.TypeOf().Name(); got != want[i].typ {
				t.Errorf("arg %d type = %q, want %q", i, got, want[i].typ)
			}
			if a.HasDefault() != want[i].hasDefault {
				t.Errorf("arg %d HasDefault = %v", i, a.HasDefault())
			}
		}
		if i != 3 {
			t.Errorf("iterated %d parameters, want 3", i)
		}
		return
	}
	t.Fatal("fill not enumerated")
}

func TestArgsOnInvalidHandle(t *testing.T) {
	m, _ := loadModel(t, `
schema = 1

[[class]]
name = "Empty"
`)
	id, _ := m.Scope("Empty")
	mi := NewEnumerator(m.Sess, id)
	for mi.Next() {
	}
	a := mi.Args()
	if a.Next() {
		t.Error("exhausted handle must iterate no parameters")
	}
	if a.Name() != "" || a.HasDefault() {
		t.Error("out-of-range parameter queries must answer zero values")
	}
}
