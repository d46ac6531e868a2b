package types

import (
	"testing"

	"cppmirror/internal/source"
)

func newTestInterner() *Interner {
	return NewInterner(source.NewInterner())
}

func TestInternDedup(t *testing.T) {
	in := newTestInterner()
	b := in.Builtins()

	p1 := in.Intern(MakePointer(b.Int, false))
	p2 := in.Intern(MakePointer(b.Int, false))
	if p1 != p2 {
		t.Errorf("structurally equal types must intern to one ID: %d != %d", p1, p2)
	}

	p3 := in.Intern(MakePointer(b.Int, true))
	if p3 == p1 {
		t.Error("const pointer and plain pointer must differ")
	}
}

func TestWithConstStripConst(t *testing.T) {
	in := newTestInterner()
	b := in.Builtins()

	ci := in.WithConst(b.Int)
	if ci == b.Int {
		t.Fatal("WithConst must produce a distinct type")
	}
	ty := in.MustLookup(ci)
	if !ty.Const || ty.Kind != KindInt {
		t.Errorf("const int lookup = %+v", ty)
	}
	if got := in.StripConst(ci); got != b.Int {
		t.Errorf("StripConst(const int) = %d, want %d", got, b.Int)
	}
	// idempotent on a non-const type
	if got := in.StripConst(b.Int); got != b.Int {
		t.Errorf("StripConst(int) = %d, want %d", got, b.Int)
	}
}

func TestRecordRegistration(t *testing.T) {
	in := newTestInterner()

	name := in.Strings.Intern("MyClass")
	qual := in.Strings.Intern("ns::MyClass")
	r1 := in.RegisterRecord(name, qual, source.Span{})
	r2 := in.RegisterRecord(name, qual, source.Span{})
	if r1 != r2 {
		t.Errorf("same qualified name must map to one record type: %d != %d", r1, r2)
	}

	info, ok := in.RecordInfo(r1)
	if !ok {
		t.Fatal("RecordInfo must resolve a registered record")
	}
	if in.Strings.MustLookup(info.Qualified) != "ns::MyClass" {
		t.Errorf("qualified name = %q", in.Strings.MustLookup(info.Qualified))
	}

	id, ok := in.RecordByName("ns::MyClass")
	if !ok || id != r1 {
		t.Errorf("RecordByName = %d, ok=%v, want %d", id, ok, r1)
	}
	if _, ok := in.RecordByName("ns::Missing"); ok {
		t.Error("unknown record name must not resolve")
	}
}

func TestSubst(t *testing.T) {
	in := newTestInterner()
	b := in.Builtins()

	t0 := in.Intern(MakeDependent(0))
	refT0 := in.Intern(MakeLValueRef(in.WithConst(t0)))

	if !in.IsDependent(refT0) {
		t.Fatal("const T0& must be dependent")
	}

	got := in.Subst(refT0, []TypeID{b.Int})
	want := in.Intern(MakeLValueRef(in.WithConst(b.Int)))
	if got != want {
		t.Errorf("Subst(const T0&, [int]) = %d, want %d (const int&)", got, want)
	}

	// missing argument slot
	t1 := in.Intern(MakeDependent(1))
	if got := in.Subst(t1, []TypeID{b.Int}); got != NoTypeID {
		t.Errorf("substituting an out-of-range parameter must fail, got %d", got)
	}
	if got := in.Subst(t0, []TypeID{NoTypeID}); got != NoTypeID {
		t.Errorf("substituting a hole must fail, got %d", got)
	}

	// non-dependent types pass through
	if got := in.Subst(b.Double, nil); got != b.Double {
		t.Errorf("Subst on a concrete type = %d, want %d", got, b.Double)
	}
}

func TestCppString(t *testing.T) {
	in := newTestInterner()
	b := in.Builtins()

	name := in.Strings.Intern("MyClass")
	qual := in.Strings.Intern("MyClass")
	rec := in.RegisterRecord(name, qual, source.Span{})

	cases := []struct {
		id   TypeID
		want string
	}{
		{b.Int, "int"},
		{in.WithConst(b.Int), "const int"},
		{in.Intern(MakeLValueRef(in.WithConst(b.Int))), "const int&"},
		{in.Intern(MakePointer(b.Char, true)), "char* const"},
		{in.Intern(MakeRValueRef(b.Double)), "double&&"},
		{in.Intern(MakeArray(b.Int, 4)), "int[4]"},
		{rec, "MyClass"},
		{in.Intern(MakeMemberPtr(rec, b.Int)), "int MyClass::*"},
		{in.Intern(MakeDependent(2)), "type-parameter-2"},
	}
	for _, tc := range cases {
		if got := in.CppString(tc.id); got != tc.want {
			t.Errorf("CppString(%d) = %q, want %q", tc.id, got, tc.want)
		}
	}
}
