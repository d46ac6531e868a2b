package decl

import (
	"fmt"

	"fortio.org/safecast"
)

// Decls stores all declarations in a compact slice-based arena.
type Decls struct {
	data []Decl
}

// NewDecls creates an arena with an optional capacity hint.
func NewDecls(capacity uint32) *Decls {
	if capacity == 0 {
		capacity = 64
	}
	return &Decls{
		data: make([]Decl, 1, capacity+1), // index 0 reserved for NoDeclID
	}
}

// New allocates a declaration and returns its ID.
func (s *Decls) New(d *Decl) DeclID {
	if d == nil {
		panic("decl.Decls.New: nil decl")
	}
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("decl arena overflow: %w", err))
	}
	id := DeclID(value)
	s.data = append(s.data, *d)
	return id
}

// Get returns the declaration pointer or nil for an invalid ID.
func (s *Decls) Get(id DeclID) *Decl {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Len reports the number of stored declarations excluding the sentinel.
func (s *Decls) Len() int { return len(s.data) - 1 }

// Truncate discards declarations allocated at or after the watermark.
// Used by transaction rollback; callers must also unlink the IDs from any
// context decl lists.
func (s *Decls) Truncate(watermark int) {
	if watermark < 1 || watermark > len(s.data) {
		return
	}
	s.data = s.data[:watermark]
}

// Watermark returns the current arena length for later Truncate.
func (s *Decls) Watermark() int { return len(s.data) }

// Contexts stores declaration contexts in a compact arena.
type Contexts struct {
	data []Context
}

// NewContexts creates a context arena with an optional capacity hint.
func NewContexts(capacity uint32) *Contexts {
	if capacity == 0 {
		capacity = 16
	}
	return &Contexts{
		data: make([]Context, 1, capacity+1), // index 0 reserved for NoContextID
	}
}

// New allocates a context and returns its ID.
func (s *Contexts) New(c *Context) ContextID {
	if c == nil {
		panic("decl.Contexts.New: nil context")
	}
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("context arena overflow: %w", err))
	}
	id := ContextID(value)
	s.data = append(s.data, *c)
	return id
}

// Get returns the context pointer or nil for an invalid ID.
func (s *Contexts) Get(id ContextID) *Context {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Len reports the number of stored contexts excluding the sentinel.
func (s *Contexts) Len() int { return len(s.data) - 1 }
