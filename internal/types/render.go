package types

import (
	"fmt"
	"strings"
)

// CppString renders the C++ spelling of a type, e.g. "const int&" or
// "char* const". Invalid IDs render as the empty string.
func (in *Interner) CppString(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return ""
	}
	switch tt.Kind {
	case KindPointer:
		s := in.CppString(tt.Elem) + "*"
		if tt.Const {
			s += " const"
		}
		return s
	case KindLValueRef:
		return in.CppString(tt.Elem) + "&"
	case KindRValueRef:
		return in.CppString(tt.Elem) + "&&"
	case KindArray:
		return fmt.Sprintf("%s[%d]", in.CppString(tt.Elem), tt.Count)
	case KindMemberPtr:
		return fmt.Sprintf("%s %s::*", in.CppString(tt.Elem), in.CppString(in.StripConst(tt.Class)))
	}

	var b strings.Builder
	if tt.Const {
		b.WriteString("const ")
	}
	switch tt.Kind {
	case KindRecord:
		if info, ok := in.RecordInfo(id); ok {
			b.WriteString(in.Strings.MustLookup(info.Qualified))
		} else {
			b.WriteString("<record>")
		}
	case KindDependent:
		fmt.Fprintf(&b, "type-parameter-%d", tt.Payload)
	case KindAuto:
		b.WriteString("auto")
	default:
		if tt.Unsigned {
			b.WriteString("unsigned ")
		}
		b.WriteString(tt.Kind.String())
	}
	return b.String()
}
