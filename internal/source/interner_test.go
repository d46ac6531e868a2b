package source

import "testing"

func TestInternerBasic(t *testing.T) {
	interner := NewInterner()

	// NoStringID is reserved for the empty string
	if s, ok := interner.Lookup(NoStringID); !ok || s != "" {
		t.Errorf("NoStringID should resolve to the empty string, got %q, ok=%v", s, ok)
	}

	id1 := interner.Intern("hello")
	if id1 == NoStringID {
		t.Error("Intern must not return NoStringID for a non-empty string")
	}

	id2 := interner.Intern("hello")
	if id1 != id2 {
		t.Errorf("equal strings must intern to equal IDs: %d != %d", id1, id2)
	}

	if s, ok := interner.Lookup(id1); !ok || s != "hello" {
		t.Errorf("Lookup returned %q, ok=%v", s, ok)
	}

	id3 := interner.Intern("world")
	if id3 == id1 {
		t.Error("different strings must have different IDs")
	}

	if interner.Len() != 3 { // "", "hello", "world"
		t.Errorf("Len should be 3, got %d", interner.Len())
	}
}

func TestInternerInvalidLookup(t *testing.T) {
	interner := NewInterner()
	if _, ok := interner.Lookup(StringID(99)); ok {
		t.Error("Lookup of an unknown ID must fail")
	}
	if interner.Has(StringID(99)) {
		t.Error("Has must be false for an unknown ID")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustLookup should panic on an invalid ID")
		}
	}()
	interner.MustLookup(StringID(99))
}

func TestInternerSnapshot(t *testing.T) {
	interner := NewInterner()
	interner.Intern("a")
	interner.Intern("b")

	snap := interner.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot length = %d, want 3", len(snap))
	}
	snap[1] = "mutated"
	if s := interner.MustLookup(StringID(1)); s != "a" {
		t.Errorf("mutating the snapshot must not affect the interner, got %q", s)
	}
}

func TestSpanEmpty(t *testing.T) {
	var sp Span
	if !sp.Empty() {
		t.Error("zero span should be empty")
	}
	sp = Span{File: FileID(1), Line: 42}
	if sp.Empty() {
		t.Error("span with a file should not be empty")
	}
}
