package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBool
	KindChar
	KindWChar
	KindShort
	KindInt
	KindLong
	KindLongLong
	KindFloat
	KindDouble
	KindRecord    // class/struct, Payload -> RecordInfo slot
	KindPointer   // Elem
	KindLValueRef // Elem
	KindRValueRef // Elem
	KindArray     // Elem, Count
	KindMemberPtr // Elem (pointee), Class (owning record)
	KindDependent // unresolved template parameter, Payload -> parameter index
	KindAuto      // undeduced placeholder return type
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindWChar:
		return "wchar_t"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindLongLong:
		return "long long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindRecord:
		return "record"
	case KindPointer:
		return "pointer"
	case KindLValueRef:
		return "lvalue-reference"
	case KindRValueRef:
		return "rvalue-reference"
	case KindArray:
		return "array"
	case KindMemberPtr:
		return "member-pointer"
	case KindDependent:
		return "dependent"
	case KindAuto:
		return "auto"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type. Const qualification
// is part of the descriptor, so "int" and "const int" intern separately and
// every compound layer carries its own const bit.
type Type struct {
	Kind     Kind
	Elem     TypeID // pointee/element/referee
	Class    TypeID // owning record for member pointers
	Count    uint32 // array extent
	Payload  uint32 // record slot or dependent parameter index
	Const    bool
	Unsigned bool // for integral primitives
}

// IsFundamental reports whether the descriptor is a builtin scalar.
func (t Type) IsFundamental() bool {
	return t.Kind >= KindVoid && t.Kind <= KindDouble
}

// IsCompound reports whether the descriptor wraps another type.
func (t Type) IsCompound() bool {
	switch t.Kind {
	case KindPointer, KindLValueRef, KindRValueRef, KindArray, KindMemberPtr:
		return true
	}
	return false
}

// Descriptor helpers ---------------------------------------------------------

// MakePointer describes elem* (constPtr marks a const pointer, "T* const").
func MakePointer(elem TypeID, constPtr bool) Type {
	return Type{Kind: KindPointer, Elem: elem, Const: constPtr}
}

// MakeLValueRef describes elem&.
func MakeLValueRef(elem TypeID) Type {
	return Type{Kind: KindLValueRef, Elem: elem}
}

// MakeRValueRef describes elem&&.
func MakeRValueRef(elem TypeID) Type {
	return Type{Kind: KindRValueRef, Elem: elem}
}

// MakeArray describes elem[count].
func MakeArray(elem TypeID, count uint32) Type {
	return Type{Kind: KindArray, Elem: elem, Count: count}
}

// MakeMemberPtr describes pointee class::*.
func MakeMemberPtr(class, pointee TypeID) Type {
	return Type{Kind: KindMemberPtr, Class: class, Elem: pointee}
}

// MakeDependent describes a reference to the template parameter at index.
func MakeDependent(index uint32) Type {
	return Type{Kind: KindDependent, Payload: index}
}
