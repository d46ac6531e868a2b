package types

import (
	"fmt"

	"fortio.org/safecast"

	"cppmirror/internal/source"
)

// Builtins stores TypeIDs for the fundamental types.
type Builtins struct {
	Invalid  TypeID
	Void     TypeID
	Bool     TypeID
	Char     TypeID
	WChar    TypeID
	Short    TypeID
	Int      TypeID
	UInt     TypeID
	Long     TypeID
	ULong    TypeID
	LongLong TypeID
	Float    TypeID
	Double   TypeID
	Auto     TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// It also owns the record side table and shares the session's string
// interner for record names.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	records  []RecordInfo
	byQName  map[source.StringID]TypeID
	Strings  *source.Interner
}

// NewInterner constructs an interner seeded with the fundamental types.
// If strings is nil, a fresh string interner is allocated.
func NewInterner(strings *source.Interner) *Interner {
	if strings == nil {
		strings = source.NewInterner()
	}
	in := &Interner{
		index:   make(map[typeKey]TypeID, 64),
		byQName: make(map[source.StringID]TypeID),
		Strings: strings,
	}
	in.records = append(in.records, RecordInfo{}) // reserve 0 as invalid sentinel
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Char = in.Intern(Type{Kind: KindChar})
	in.builtins.WChar = in.Intern(Type{Kind: KindWChar})
	in.builtins.Short = in.Intern(Type{Kind: KindShort})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.UInt = in.Intern(Type{Kind: KindInt, Unsigned: true})
	in.builtins.Long = in.Intern(Type{Kind: KindLong})
	in.builtins.ULong = in.Intern(Type{Kind: KindLong, Unsigned: true})
	in.builtins.LongLong = in.Intern(Type{Kind: KindLongLong})
	in.builtins.Float = in.Intern(Type{Kind: KindFloat})
	in.builtins.Double = in.Intern(Type{Kind: KindDouble})
	in.builtins.Auto = in.Intern(Type{Kind: KindAuto})
	return in
}

// Builtins returns TypeIDs for the fundamental types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	key := typeKey(t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// WithConst returns id with the top-level const bit set.
func (in *Interner) WithConst(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok || tt.Const {
		return id
	}
	tt.Const = true
	return in.Intern(tt)
}

// StripConst returns id without the top-level const bit.
func (in *Interner) StripConst(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok || !tt.Const {
		return id
	}
	tt.Const = false
	return in.Intern(tt)
}

type typeKey struct {
	Kind     Kind
	Elem     TypeID
	Class    TypeID
	Count    uint32
	Payload  uint32
	Const    bool
	Unsigned bool
}
