package model

import (
	"strconv"
	"strings"

	"cppmirror/internal/types"
)

// parseType resolves a C++ type spelling ("const int&", "char*", "Base*")
// against the session's type interner. Names listed in tparams resolve to
// dependent types. Unknown names answer NoTypeID; the caller reports.
func (b *builder) parseType(s string, tparams map[string]uint32) types.TypeID {
	s = strings.TrimSpace(s)
	if s == "" {
		return types.NoTypeID
	}
	in := b.sess.Table.Types

	switch {
	case strings.HasSuffix(s, "&&"):
		elem := b.parseType(s[:len(s)-2], tparams)
		if elem == types.NoTypeID {
			return types.NoTypeID
		}
		return in.Intern(types.MakeRValueRef(elem))
	case strings.HasSuffix(s, "&"):
		elem := b.parseType(s[:len(s)-1], tparams)
		if elem == types.NoTypeID {
			return types.NoTypeID
		}
		return in.Intern(types.MakeLValueRef(elem))
	case strings.HasSuffix(s, "const") && strings.HasSuffix(strings.TrimSpace(s[:len(s)-5]), "*"):
		// "T* const": a const pointer.
		inner := strings.TrimSpace(s[:len(s)-5])
		elem := b.parseType(inner[:len(inner)-1], tparams)
		if elem == types.NoTypeID {
			return types.NoTypeID
		}
		return in.Intern(types.MakePointer(elem, true))
	case strings.HasSuffix(s, "*"):
		elem := b.parseType(s[:len(s)-1], tparams)
		if elem == types.NoTypeID {
			return types.NoTypeID
		}
		return in.Intern(types.MakePointer(elem, false))
	case strings.HasSuffix(s, "]"):
		open := strings.LastIndexByte(s, '[')
		if open < 0 {
			return types.NoTypeID
		}
		count, err := strconv.ParseUint(strings.TrimSpace(s[open+1:len(s)-1]), 10, 32)
		if err != nil {
			return types.NoTypeID
		}
		elem := b.parseType(s[:open], tparams)
		if elem == types.NoTypeID {
			return types.NoTypeID
		}
		return in.Intern(types.MakeArray(elem, uint32(count)))
	}

	isConst := false
	if rest, ok := strings.CutPrefix(s, "const "); ok {
		isConst = true
		s = strings.TrimSpace(rest)
	} else if rest, ok := strings.CutSuffix(s, " const"); ok {
		isConst = true
		s = strings.TrimSpace(rest)
	}

	id := b.parseBaseType(s, tparams)
	if id == types.NoTypeID {
		return types.NoTypeID
	}
	if isConst {
		id = in.WithConst(id)
	}
	return id
}

func (b *builder) parseBaseType(s string, tparams map[string]uint32) types.TypeID {
	in := b.sess.Table.Types
	bt := in.Builtins()

	switch s {
	case "void":
		return bt.Void
	case "bool":
		return bt.Bool
	case "char":
		return bt.Char
	case "wchar_t":
		return bt.WChar
	case "short":
		return bt.Short
	case "unsigned short":
		return in.Intern(types.Type{Kind: types.KindShort, Unsigned: true})
	case "int":
		return bt.Int
	case "unsigned", "unsigned int":
		return bt.UInt
	case "long":
		return bt.Long
	case "unsigned long":
		return bt.ULong
	case "long long":
		return bt.LongLong
	case "unsigned long long":
		return in.Intern(types.Type{Kind: types.KindLongLong, Unsigned: true})
	case "unsigned char":
		return in.Intern(types.Type{Kind: types.KindChar, Unsigned: true})
	case "float":
		return bt.Float
	case "double":
		return bt.Double
	case "auto":
		return bt.Auto
	}
	if idx, ok := tparams[s]; ok {
		return in.Intern(types.MakeDependent(idx))
	}
	if id, ok := in.RecordByName(s); ok {
		return id
	}
	return types.NoTypeID
}
